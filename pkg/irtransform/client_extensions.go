package irtransform

import (
	"context"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/relay-go-tools/pkg/ir"
	"github.com/wundergraph/relay-go-tools/pkg/operationreport"
	"github.com/wundergraph/relay-go-tools/pkg/schema"
)

// ClientExtensions partitions every level of a definition's selection tree
// into selections the server schema can resolve and selections that only
// exist in the client schema extension, and groups the client only selections
// of each level under a single ClientExtension node appended after the server
// selections. Downstream stages use that node to decide which parts of a
// response must be filled locally instead of fetched.
type ClientExtensions struct {
	schemas *schema.Pair
	opts    options
}

// NewClientExtensions builds the pass for the given schema pair.
func NewClientExtensions(schemas *schema.Pair, opts ...Option) *ClientExtensions {
	return &ClientExtensions{
		schemas: schemas,
		opts:    newOptions(schemas, opts),
	}
}

// TransformDocument transforms every definition of the document. Definitions
// that fail to classify are reported and omitted from the output.
func (c *ClientExtensions) TransformDocument(doc *ir.Document, report *operationreport.Report) *ir.Document {
	fragments := c.opts.registryFor(doc)
	return transformDocument(doc, report, c.opts.log, func(def *ir.Definition) (*ir.Definition, error) {
		return c.transformDefinition(def, fragments)
	})
}

// TransformDocumentConcurrently transforms definitions in parallel. Safe
// because the pass never mutates its input and all schema and fragment
// lookups are read only.
func (c *ClientExtensions) TransformDocumentConcurrently(ctx context.Context, doc *ir.Document, report *operationreport.Report) *ir.Document {
	fragments := c.opts.registryFor(doc)
	return transformDocumentConcurrently(ctx, doc, report, c.opts.log, func(def *ir.Definition) (*ir.Definition, error) {
		return c.transformDefinition(def, fragments)
	})
}

// TransformDefinition transforms a single definition, resolving fragment
// spreads against the registry configured on the pass.
func (c *ClientExtensions) TransformDefinition(def *ir.Definition, fragments FragmentRegistry) (*ir.Definition, error) {
	if fragments == nil {
		fragments = c.opts.fragments
	}
	return c.transformDefinition(def, fragments)
}

func (c *ClientExtensions) transformDefinition(def *ir.Definition, fragments FragmentRegistry) (*ir.Definition, error) {
	parentType, err := c.resolveRootType(def)
	if err != nil {
		return nil, err
	}
	server, client, err := c.partitionSelections(def.Selections, parentType, fragments)
	if err != nil {
		return nil, err
	}
	return def.WithSelections(groupedSelections(server, client, def.Position)), nil
}

// resolveRootType resolves the type a definition's selections are classified
// against. Absence is a user facing error: the document or schema can be
// corrected.
func (c *ClientExtensions) resolveRootType(def *ir.Definition) (*ast.Definition, error) {
	switch def.Kind {
	case ir.DefinitionKindRoot:
		var rootType *ast.Definition
		var ok bool
		switch def.Operation {
		case ast.Mutation:
			rootType, ok = c.schemas.Server().MutationType()
		case ast.Subscription:
			rootType, ok = c.schemas.Server().SubscriptionType()
		default:
			rootType, ok = c.schemas.Server().QueryType()
		}
		if !ok {
			return nil, operationreport.ErrRootOperationTypeUndefined(def.Operation, def.Position)
		}
		return rootType, nil
	case ir.DefinitionKindSplitOperation:
		rootType, ok := c.schemas.TypeInServer(def.TypeName)
		if !ok {
			return nil, operationreport.ErrTypeUndefined(def.TypeName, def.Position)
		}
		return rootType, nil
	case ir.DefinitionKindFragment:
		rootType, ok := c.schemas.ResolveNamedType(def.TypeCondition)
		if !ok {
			return nil, operationreport.ErrTypeUndefined(def.TypeCondition, def.Position)
		}
		return rootType, nil
	default:
		return nil, operationreport.InternalErrorAt(def.Position, "clientextensions: unknown definition kind %d", def.Kind)
	}
}

// partitionSelections walks one selection list in order and splits it into
// the server and client groups, recursing where a kind requires descent.
func (c *ClientExtensions) partitionSelections(
	selections []ir.Selection,
	parentType *ast.Definition,
	fragments FragmentRegistry,
) (server, client []ir.Selection, err error) {
	for _, selection := range selections {
		switch s := selection.(type) {
		case *ir.ClientExtension:
			// Already a finished grouping from an earlier application of
			// this pass; it stays in place and is not re-entered.
			server = append(server, s)

		case *ir.Condition:
			srv, cli, err := c.partitionSelections(s.Selections, parentType, fragments)
			if err != nil {
				return nil, nil, err
			}
			server = append(server, s.WithSelections(groupedSelections(srv, cli, s.Position)))

		case *ir.Defer:
			srv, cli, err := c.partitionSelections(s.Selections, parentType, fragments)
			if err != nil {
				return nil, nil, err
			}
			server = append(server, s.WithSelections(groupedSelections(srv, cli, s.Position)))

		case *ir.Stream:
			srv, cli, err := c.partitionSelections(s.Selections, parentType, fragments)
			if err != nil {
				return nil, nil, err
			}
			server = append(server, s.WithSelections(groupedSelections(srv, cli, s.Position)))

		case *ir.ModuleImport:
			srv, cli, err := c.partitionSelections(s.Selections, parentType, fragments)
			if err != nil {
				return nil, nil, err
			}
			server = append(server, s.WithSelections(groupedSelections(srv, cli, s.Position)))

		case *ir.ScalarField:
			if c.opts.isClientOnlyField(s, parentType) {
				client = append(client, s)
			} else {
				server = append(server, s)
			}

		case *ir.LinkedField:
			if c.opts.isClientOnlyField(s, parentType) {
				// The whole field is a client concept; its subtree is not
				// split further.
				client = append(client, s)
				continue
			}
			rawTypeName := ir.RawTypeName(s.Type)
			if rawTypeName == "" {
				return nil, nil, operationreport.InternalErrorAt(s.Position, "clientextensions: field %q carries no declared type", s.Name)
			}
			fieldType, ok := c.schemas.ResolveNamedType(rawTypeName)
			if !ok {
				return nil, nil, operationreport.InternalErrorAt(s.Position, "clientextensions: type %q of server field %q undefined in both schemas", rawTypeName, s.Name)
			}
			srv, cli, err := c.partitionSelections(s.Selections, fieldType, fragments)
			if err != nil {
				return nil, nil, err
			}
			server = append(server, s.WithSelections(groupedSelections(srv, cli, s.Position)))

		case *ir.InlineFragment:
			if conditionType, ok := c.schemas.TypeInServer(s.TypeCondition); ok {
				srv, cli, err := c.partitionSelections(s.Selections, conditionType, fragments)
				if err != nil {
					return nil, nil, err
				}
				server = append(server, s.WithSelections(groupedSelections(srv, cli, s.Position)))
			} else if _, ok := c.schemas.TypeInClient(s.TypeCondition); ok {
				client = append(client, s)
			} else {
				return nil, nil, operationreport.ErrTypeUndefined(s.TypeCondition, s.Position)
			}

		case *ir.FragmentSpread:
			fragment, ok := fragments.FragmentDefinition(s.FragmentName)
			if !ok {
				return nil, nil, operationreport.InternalErrorAt(s.Position, "clientextensions: fragment %q not registered", s.FragmentName)
			}
			if c.typeResolvesOnlyInClient(fragment.TypeCondition) {
				client = append(client, s)
			} else {
				server = append(server, s)
			}

		default:
			return nil, nil, operationreport.InternalErrorAt(selection.Pos(), "clientextensions: unhandled selection kind %s", selection.SelectionKind())
		}
	}
	return server, client, nil
}

func (c *ClientExtensions) typeResolvesOnlyInClient(name string) bool {
	if _, ok := c.schemas.TypeInServer(name); ok {
		return false
	}
	_, ok := c.schemas.TypeInClient(name)
	return ok
}

// groupedSelections rebuilds a level's selection list: untouched when no
// client only selections exist, otherwise with exactly one ClientExtension
// appended after all server selections.
func groupedSelections(server, client []ir.Selection, pos *ir.Position) []ir.Selection {
	if len(client) == 0 {
		return server
	}
	return append(server, &ir.ClientExtension{
		Selections: client,
		Position:   pos,
	})
}
