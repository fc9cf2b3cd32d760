package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/wundergraph/relay-go-tools/pkg/schema"
)

const lowerTestServerSchema = `
type Query {
	me: User
}

type User {
	id: ID!
	name: String
	friends: [User]
}
`

const lowerTestClientSchema = `
extend type User {
	localBadge: Boolean
}
`

func lowerTestDocument(t *testing.T, operation string) *Document {
	t.Helper()

	schemas, err := schema.ParsePair(lowerTestServerSchema, lowerTestClientSchema)
	require.NoError(t, err)

	parsed, err := parser.ParseQuery(&ast.Source{Input: operation})
	require.NoError(t, err)

	doc, err := Lower(parsed, schemas)
	require.NoError(t, err)
	return doc
}

func TestLowerFields(t *testing.T) {
	doc := lowerTestDocument(t, `
		query Profile {
			me {
				handle: name
				localBadge
				friends {
					id
				}
			}
		}`)

	require.Len(t, doc.Definitions, 1)
	def := doc.Definitions[0]
	assert.Equal(t, DefinitionKindRoot, def.Kind)
	assert.Equal(t, ast.Query, def.Operation)
	assert.Equal(t, "Profile", def.Name)

	require.Len(t, def.Selections, 1)
	me, ok := def.Selections[0].(*LinkedField)
	require.True(t, ok)
	assert.Equal(t, "User", RawTypeName(me.Type))

	require.Len(t, me.Selections, 3)

	name, ok := me.Selections[0].(*ScalarField)
	require.True(t, ok)
	assert.Equal(t, "name", name.Name)
	assert.Equal(t, "handle", name.Alias)
	assert.Equal(t, "String", RawTypeName(name.Type))

	badge, ok := me.Selections[1].(*ScalarField)
	require.True(t, ok)
	assert.Equal(t, "localBadge", badge.Name)
	assert.Equal(t, "Boolean", RawTypeName(badge.Type), "client extension fields resolve their declared type")

	friends, ok := me.Selections[2].(*LinkedField)
	require.True(t, ok)
	assert.Equal(t, "User", RawTypeName(friends.Type))
	require.Len(t, friends.Selections, 1)
}

func TestLowerUnknownFieldsKeepNoType(t *testing.T) {
	doc := lowerTestDocument(t, `
		query Loose {
			whatever
		}`)

	field, ok := doc.Definitions[0].Selections[0].(*ScalarField)
	require.True(t, ok)
	assert.Nil(t, field.Type)
}

func TestLowerConditionDirectives(t *testing.T) {
	doc := lowerTestDocument(t, `
		query Cond($show: Boolean!) {
			me {
				name @include(if: $show)
				id @skip(if: true)
			}
		}`)

	me := doc.Definitions[0].Selections[0].(*LinkedField)
	require.Len(t, me.Selections, 2)

	include, ok := me.Selections[0].(*Condition)
	require.True(t, ok)
	assert.True(t, include.PassingValue)
	assert.Equal(t, "show", include.Variable)
	require.Len(t, include.Selections, 1)
	assert.Equal(t, SelectionKindScalarField, include.Selections[0].SelectionKind())

	skip, ok := me.Selections[1].(*Condition)
	require.True(t, ok)
	assert.False(t, skip.PassingValue)
	assert.Empty(t, skip.Variable)
	assert.True(t, skip.Constant)
}

func TestLowerIncrementalDirectives(t *testing.T) {
	doc := lowerTestDocument(t, `
		query Inc($v: Boolean!) {
			me {
				... @defer(label: "slow", if: $v) {
					name
				}
				friends @stream(label: "fast", initialCount: 2) {
					id
				}
			}
		}`)

	me := doc.Definitions[0].Selections[0].(*LinkedField)
	require.Len(t, me.Selections, 2)

	deferred, ok := me.Selections[0].(*Defer)
	require.True(t, ok)
	assert.Equal(t, "slow", deferred.Label)
	assert.Equal(t, "v", deferred.If)
	require.Len(t, deferred.Selections, 1)

	stream, ok := me.Selections[1].(*Stream)
	require.True(t, ok)
	assert.Equal(t, "fast", stream.Label)
	assert.Equal(t, 2, stream.InitialCount)
	require.Len(t, stream.Selections, 1)
	assert.Equal(t, SelectionKindLinkedField, stream.Selections[0].SelectionKind())
}

func TestLowerModuleAndClientExtension(t *testing.T) {
	doc := lowerTestDocument(t, `
		query Sugar {
			me {
				...profile @module(name: "Profile")
				... @clientExtension {
					localBadge
				}
			}
		}
		fragment profile on User {
			name
		}`)

	me := doc.Definitions[0].Selections[0].(*LinkedField)
	require.Len(t, me.Selections, 2)

	module, ok := me.Selections[0].(*ModuleImport)
	require.True(t, ok)
	assert.Equal(t, "Profile", module.Module)
	require.Len(t, module.Selections, 1)
	assert.Equal(t, SelectionKindFragmentSpread, module.Selections[0].SelectionKind())

	extension, ok := me.Selections[1].(*ClientExtension)
	require.True(t, ok)
	require.Len(t, extension.Selections, 1)
	assert.Equal(t, SelectionKindScalarField, extension.Selections[0].SelectionKind())

	require.Len(t, doc.Definitions, 2)
	fragment := doc.Definitions[1]
	assert.Equal(t, DefinitionKindFragment, fragment.Kind)
	assert.Equal(t, "profile", fragment.Name)
	assert.Equal(t, "User", fragment.TypeCondition)
}

func TestLowerBareInlineFragmentSelectsEnclosingType(t *testing.T) {
	doc := lowerTestDocument(t, `
		query Bare {
			me {
				... {
					name
				}
			}
		}`)

	me := doc.Definitions[0].Selections[0].(*LinkedField)
	fragment, ok := me.Selections[0].(*InlineFragment)
	require.True(t, ok)
	assert.Equal(t, "User", fragment.TypeCondition)
}

func TestLowerStackedDirectivesNest(t *testing.T) {
	doc := lowerTestDocument(t, `
		query Stacked($a: Boolean!, $b: Boolean!) {
			me {
				name @include(if: $a) @skip(if: $b)
			}
		}`)

	me := doc.Definitions[0].Selections[0].(*LinkedField)
	outer, ok := me.Selections[0].(*Condition)
	require.True(t, ok)
	assert.True(t, outer.PassingValue, "first directive becomes the outermost wrapper")
	assert.Equal(t, "a", outer.Variable)

	inner, ok := outer.Selections[0].(*Condition)
	require.True(t, ok)
	assert.False(t, inner.PassingValue)
	assert.Equal(t, "b", inner.Variable)
}
