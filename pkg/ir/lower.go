package ir

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/wundergraph/relay-go-tools/pkg/schema"
)

// Directive names the lowering desugars into wrapper selection kinds.
const (
	directiveInclude         = "include"
	directiveSkip            = "skip"
	directiveDefer           = "defer"
	directiveStream          = "stream"
	directiveModule          = "module"
	directiveClientExtension = "clientExtension"
)

// Lower builds the IR document for a parsed query document. Field types are
// resolved best effort against the schema pair: lowering never validates the
// document, unresolvable declarations simply yield nodes without a declared
// type and are reported by later passes if they matter there.
func Lower(doc *ast.QueryDocument, schemas *schema.Pair) (*Document, error) {
	l := lowerer{schemas: schemas}
	out := &Document{Definitions: make([]*Definition, 0, len(doc.Operations)+len(doc.Fragments))}

	for _, op := range doc.Operations {
		rootTypeName := l.rootTypeName(op.Operation)
		selections, err := l.lowerSelectionSet(op.SelectionSet, rootTypeName)
		if err != nil {
			return nil, err
		}
		out.Definitions = append(out.Definitions, &Definition{
			Kind:       DefinitionKindRoot,
			Name:       op.Name,
			Operation:  op.Operation,
			Selections: selections,
			Position:   op.Position,
		})
	}

	for _, fragment := range doc.Fragments {
		selections, err := l.lowerSelectionSet(fragment.SelectionSet, fragment.TypeCondition)
		if err != nil {
			return nil, err
		}
		out.Definitions = append(out.Definitions, &Definition{
			Kind:          DefinitionKindFragment,
			Name:          fragment.Name,
			TypeCondition: fragment.TypeCondition,
			Selections:    selections,
			Position:      fragment.Position,
		})
	}

	return out, nil
}

type lowerer struct {
	schemas *schema.Pair
}

func (l *lowerer) rootTypeName(operation ast.Operation) string {
	var def *ast.Definition
	var ok bool
	switch operation {
	case ast.Mutation:
		def, ok = l.schemas.Server().MutationType()
	case ast.Subscription:
		def, ok = l.schemas.Server().SubscriptionType()
	default:
		def, ok = l.schemas.Server().QueryType()
	}
	if !ok {
		return ""
	}
	return def.Name
}

func (l *lowerer) lowerSelectionSet(set ast.SelectionSet, parentTypeName string) ([]Selection, error) {
	if len(set) == 0 {
		return nil, nil
	}
	out := make([]Selection, 0, len(set))
	for _, selection := range set {
		lowered, err := l.lowerSelection(selection, parentTypeName)
		if err != nil {
			return nil, err
		}
		out = append(out, lowered)
	}
	return out, nil
}

func (l *lowerer) lowerSelection(selection ast.Selection, parentTypeName string) (Selection, error) {
	switch s := selection.(type) {
	case *ast.Field:
		return l.lowerField(s, parentTypeName)
	case *ast.InlineFragment:
		return l.lowerInlineFragment(s, parentTypeName)
	case *ast.FragmentSpread:
		spread := &FragmentSpread{FragmentName: s.Name, Position: s.Position}
		return l.wrapSingle(spread, s.Directives, s.Position)
	default:
		return nil, errors.Errorf("lower: unexpected parser selection type %T", selection)
	}
}

func (l *lowerer) lowerField(field *ast.Field, parentTypeName string) (Selection, error) {
	var declaredType *ast.Type
	if definition, ok := l.schemas.FieldDefinition(parentTypeName, field.Name); ok {
		declaredType = definition.Type
	}

	alias := field.Alias
	if alias == field.Name {
		alias = ""
	}

	var node Selection
	if len(field.SelectionSet) > 0 {
		selections, err := l.lowerSelectionSet(field.SelectionSet, RawTypeName(declaredType))
		if err != nil {
			return nil, err
		}
		node = &LinkedField{
			Alias:      alias,
			Name:       field.Name,
			Arguments:  field.Arguments,
			Type:       declaredType,
			Selections: selections,
			Position:   field.Position,
		}
	} else {
		node = &ScalarField{
			Alias:     alias,
			Name:      field.Name,
			Arguments: field.Arguments,
			Type:      declaredType,
			Position:  field.Position,
		}
	}
	return l.wrapSingle(node, field.Directives, field.Position)
}

func (l *lowerer) lowerInlineFragment(fragment *ast.InlineFragment, parentTypeName string) (Selection, error) {
	if fragment.TypeCondition != "" {
		selections, err := l.lowerSelectionSet(fragment.SelectionSet, fragment.TypeCondition)
		if err != nil {
			return nil, err
		}
		node := &InlineFragment{
			TypeCondition: fragment.TypeCondition,
			Selections:    selections,
			Position:      fragment.Position,
		}
		return l.wrapSingle(node, fragment.Directives, fragment.Position)
	}

	// A spread without a type condition either desugars into one of the
	// wrapper kinds, or selects on the enclosing type.
	selections, err := l.lowerSelectionSet(fragment.SelectionSet, parentTypeName)
	if err != nil {
		return nil, err
	}
	wrapped, consumed, err := l.wrapList(selections, fragment.Directives, fragment.Position)
	if err != nil {
		return nil, err
	}
	if consumed {
		return wrapped[0], nil
	}
	return &InlineFragment{
		TypeCondition: parentTypeName,
		Selections:    selections,
		Position:      fragment.Position,
	}, nil
}

// wrapSingle wraps one lowered node in the wrapper kinds its directives
// desugar into. Directives that are not part of the compiled surface are
// dropped.
func (l *lowerer) wrapSingle(node Selection, directives ast.DirectiveList, pos *Position) (Selection, error) {
	wrapped, _, err := l.wrapList([]Selection{node}, directives, pos)
	if err != nil {
		return nil, err
	}
	return wrapped[0], nil
}

// wrapList folds recognized directives over a selection list, innermost last.
// The first listed directive becomes the outermost wrapper.
func (l *lowerer) wrapList(selections []Selection, directives ast.DirectiveList, pos *Position) ([]Selection, bool, error) {
	consumed := false
	for i := len(directives) - 1; i >= 0; i-- {
		directive := directives[i]
		wrapper, ok, err := l.wrapperFor(directive, selections, pos)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		selections = []Selection{wrapper}
		consumed = true
	}
	return selections, consumed, nil
}

func (l *lowerer) wrapperFor(directive *ast.Directive, selections []Selection, pos *Position) (Selection, bool, error) {
	switch directive.Name {
	case directiveInclude, directiveSkip:
		condition := &Condition{
			PassingValue: directive.Name == directiveInclude,
			Selections:   selections,
			Position:     pos,
		}
		if value := argumentValue(directive, "if"); value != nil {
			if value.Kind == ast.Variable {
				condition.Variable = value.Raw
			} else {
				condition.Constant = value.Raw == "true"
			}
		}
		return condition, true, nil
	case directiveDefer:
		return &Defer{
			Label:      argumentRaw(directive, "label"),
			If:         variableArgument(directive, "if"),
			Selections: selections,
			Position:   pos,
		}, true, nil
	case directiveStream:
		stream := &Stream{
			Label:      argumentRaw(directive, "label"),
			If:         variableArgument(directive, "if"),
			Selections: selections,
			Position:   pos,
		}
		if raw := argumentRaw(directive, "initialCount"); raw != "" {
			count, err := strconv.Atoi(raw)
			if err != nil {
				return nil, false, errors.Wrap(err, "lower: stream initialCount")
			}
			stream.InitialCount = count
		}
		return stream, true, nil
	case directiveModule:
		return &ModuleImport{
			Module:     argumentRaw(directive, "name"),
			Key:        argumentRaw(directive, "key"),
			Selections: selections,
			Position:   pos,
		}, true, nil
	case directiveClientExtension:
		return &ClientExtension{
			Selections: selections,
			Position:   pos,
		}, true, nil
	default:
		return nil, false, nil
	}
}

func argumentValue(directive *ast.Directive, name string) *ast.Value {
	argument := directive.Arguments.ForName(name)
	if argument == nil {
		return nil
	}
	return argument.Value
}

func argumentRaw(directive *ast.Directive, name string) string {
	value := argumentValue(directive, name)
	if value == nil {
		return ""
	}
	return value.Raw
}

func variableArgument(directive *ast.Directive, name string) string {
	value := argumentValue(directive, name)
	if value == nil || value.Kind != ast.Variable {
		return ""
	}
	return value.Raw
}
