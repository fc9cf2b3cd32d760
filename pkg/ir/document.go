package ir

import (
	"github.com/vektah/gqlparser/v2/ast"
)

type DefinitionKind int

const (
	DefinitionKindUnknown DefinitionKind = iota
	DefinitionKindRoot
	DefinitionKindFragment
	DefinitionKindSplitOperation
)

func (k DefinitionKind) String() string {
	switch k {
	case DefinitionKindRoot:
		return "Root"
	case DefinitionKindFragment:
		return "Fragment"
	case DefinitionKindSplitOperation:
		return "SplitOperation"
	default:
		return "Unknown"
	}
}

// Definition is a top level compiled unit: a root operation, a fragment, or a
// split operation carved out of a parent operation by an earlier pass.
type Definition struct {
	Kind DefinitionKind
	Name string

	// Operation is set for Root definitions.
	Operation ast.Operation
	// TypeCondition is set for Fragment definitions.
	TypeCondition string
	// TypeName is set for SplitOperation definitions.
	TypeName string

	Selections []Selection
	Position   *Position
}

// WithSelections returns a copy of the definition with a replaced selection
// list.
func (d *Definition) WithSelections(selections []Selection) *Definition {
	next := *d
	next.Selections = selections
	return &next
}

// Document is an ordered list of definitions compiled together. It doubles as
// the fragment registry for passes that resolve fragment spreads by name.
type Document struct {
	Definitions []*Definition
}

// FragmentDefinition returns the fragment with the given name.
func (d *Document) FragmentDefinition(name string) (*Definition, bool) {
	for _, def := range d.Definitions {
		if def.Kind == DefinitionKindFragment && def.Name == name {
			return def, true
		}
	}
	return nil, false
}
