// Package ir holds the compiled intermediate representation of GraphQL
// operations and fragments: a tree of immutable selection values that compiler
// passes rewrite by building fresh nodes instead of mutating their input.
package ir

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// Position is the source location carried by every IR node.
type Position = ast.Position

type SelectionKind int

const (
	SelectionKindUnknown SelectionKind = iota
	SelectionKindScalarField
	SelectionKindLinkedField
	SelectionKindInlineFragment
	SelectionKindFragmentSpread
	SelectionKindCondition
	SelectionKindDefer
	SelectionKindStream
	SelectionKindModuleImport
	SelectionKindClientExtension
)

func (k SelectionKind) String() string {
	switch k {
	case SelectionKindScalarField:
		return "ScalarField"
	case SelectionKindLinkedField:
		return "LinkedField"
	case SelectionKindInlineFragment:
		return "InlineFragment"
	case SelectionKindFragmentSpread:
		return "FragmentSpread"
	case SelectionKindCondition:
		return "Condition"
	case SelectionKindDefer:
		return "Defer"
	case SelectionKindStream:
		return "Stream"
	case SelectionKindModuleImport:
		return "ModuleImport"
	case SelectionKindClientExtension:
		return "ClientExtension"
	default:
		return "Unknown"
	}
}

// Selection is one node in a definition's selection tree.
//
// The kinds shipped with this package form the complete set the compiler
// understands. The interface is deliberately open so that a kind added by a
// future pass surfaces as an explicit error during traversal instead of being
// silently mis-routed.
type Selection interface {
	SelectionKind() SelectionKind
	Pos() *Position
}

// Field is implemented by the two field selection kinds.
type Field interface {
	Selection
	FieldName() string
	FieldType() *ast.Type
}

var (
	_ Selection = (*ScalarField)(nil)
	_ Selection = (*LinkedField)(nil)
	_ Selection = (*InlineFragment)(nil)
	_ Selection = (*FragmentSpread)(nil)
	_ Selection = (*Condition)(nil)
	_ Selection = (*Defer)(nil)
	_ Selection = (*Stream)(nil)
	_ Selection = (*ModuleImport)(nil)
	_ Selection = (*ClientExtension)(nil)

	_ Field = (*ScalarField)(nil)
	_ Field = (*LinkedField)(nil)
)

// ScalarField is a leaf field carrying no sub selections.
type ScalarField struct {
	Alias     string
	Name      string
	Arguments ast.ArgumentList
	Type      *ast.Type
	Position  *Position
}

func (f *ScalarField) SelectionKind() SelectionKind { return SelectionKindScalarField }
func (f *ScalarField) Pos() *Position               { return f.Position }
func (f *ScalarField) FieldName() string            { return f.Name }
func (f *ScalarField) FieldType() *ast.Type         { return f.Type }

// LinkedField is a field selecting into a composite type.
type LinkedField struct {
	Alias      string
	Name       string
	Arguments  ast.ArgumentList
	Type       *ast.Type
	Selections []Selection
	Position   *Position
}

func (f *LinkedField) SelectionKind() SelectionKind { return SelectionKindLinkedField }
func (f *LinkedField) Pos() *Position               { return f.Position }
func (f *LinkedField) FieldName() string            { return f.Name }
func (f *LinkedField) FieldType() *ast.Type         { return f.Type }

// WithSelections returns a copy of the field with a replaced selection list.
func (f *LinkedField) WithSelections(selections []Selection) *LinkedField {
	next := *f
	next.Selections = selections
	return &next
}

type InlineFragment struct {
	TypeCondition string
	Selections    []Selection
	Position      *Position
}

func (f *InlineFragment) SelectionKind() SelectionKind { return SelectionKindInlineFragment }
func (f *InlineFragment) Pos() *Position               { return f.Position }

func (f *InlineFragment) WithSelections(selections []Selection) *InlineFragment {
	next := *f
	next.Selections = selections
	return &next
}

type FragmentSpread struct {
	FragmentName string
	Position     *Position
}

func (f *FragmentSpread) SelectionKind() SelectionKind { return SelectionKindFragmentSpread }
func (f *FragmentSpread) Pos() *Position               { return f.Position }

// Condition wraps selections that are only included (or skipped) depending on
// a boolean variable or constant. PassingValue is the value of the condition
// under which the wrapped selections are included.
type Condition struct {
	Variable     string // empty when the condition is a constant
	Constant     bool   // used when Variable is empty
	PassingValue bool
	Selections   []Selection
	Position     *Position
}

func (c *Condition) SelectionKind() SelectionKind { return SelectionKindCondition }
func (c *Condition) Pos() *Position               { return c.Position }

func (c *Condition) WithSelections(selections []Selection) *Condition {
	next := *c
	next.Selections = selections
	return &next
}

// Defer wraps selections whose delivery may be deferred by the executor.
type Defer struct {
	Label      string
	If         string // variable name, empty when unconditional
	Selections []Selection
	Position   *Position
}

func (d *Defer) SelectionKind() SelectionKind { return SelectionKindDefer }
func (d *Defer) Pos() *Position               { return d.Position }

func (d *Defer) WithSelections(selections []Selection) *Defer {
	next := *d
	next.Selections = selections
	return &next
}

// Stream wraps list selections whose items may be delivered incrementally.
type Stream struct {
	Label        string
	If           string
	InitialCount int
	Selections   []Selection
	Position     *Position
}

func (s *Stream) SelectionKind() SelectionKind { return SelectionKindStream }
func (s *Stream) Pos() *Position               { return s.Position }

func (s *Stream) WithSelections(selections []Selection) *Stream {
	next := *s
	next.Selections = selections
	return &next
}

// ModuleImport wraps selections that are resolved through a runtime loaded
// module component.
type ModuleImport struct {
	Module     string
	Key        string
	Selections []Selection
	Position   *Position
}

func (m *ModuleImport) SelectionKind() SelectionKind { return SelectionKindModuleImport }
func (m *ModuleImport) Pos() *Position               { return m.Position }

func (m *ModuleImport) WithSelections(selections []Selection) *ModuleImport {
	next := *m
	next.Selections = selections
	return &next
}

// ClientExtension groups the selections of one tree level that only exist in
// the client schema. It is produced by the clientextensions pass and may also
// appear in input documents that were already transformed.
type ClientExtension struct {
	Selections []Selection
	Position   *Position
}

func (c *ClientExtension) SelectionKind() SelectionKind { return SelectionKindClientExtension }
func (c *ClientExtension) Pos() *Position               { return c.Position }

func (c *ClientExtension) WithSelections(selections []Selection) *ClientExtension {
	next := *c
	next.Selections = selections
	return &next
}

// RawTypeName strips list and non-null wrapping from a declared field type and
// returns the underlying named type.
func RawTypeName(t *ast.Type) string {
	if t == nil {
		return ""
	}
	return t.Name()
}
