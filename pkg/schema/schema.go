// Package schema layers the two type systems a client aware compiler works
// against: the server schema understood by the remote execution engine and the
// local client schema extension. Lookups are indexed once at construction so
// passes can resolve types without re-walking parsed documents.
package schema

import (
	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Schema is an indexed view over a parsed SDL document.
type Schema struct {
	types      map[string]*ast.Definition
	extensions map[string][]*ast.Definition

	query        *ast.Definition
	mutation     *ast.Definition
	subscription *ast.Definition
}

// ParseString parses SDL input and indexes it. The input is not validated
// beyond what the parser enforces; type resolution is the concern of this
// package, full schema validation is not.
func ParseString(name, input string) (*Schema, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: input})
	if err != nil {
		return nil, errors.Wrapf(err, "parse schema %q", name)
	}
	return FromDocument(doc), nil
}

// FromDocument indexes an already parsed SDL document.
func FromDocument(doc *ast.SchemaDocument) *Schema {
	s := &Schema{
		types:      make(map[string]*ast.Definition, len(doc.Definitions)),
		extensions: make(map[string][]*ast.Definition, len(doc.Extensions)),
	}
	for _, def := range doc.Definitions {
		s.types[def.Name] = def
	}
	for _, ext := range doc.Extensions {
		s.extensions[ext.Name] = append(s.extensions[ext.Name], ext)
	}

	queryName, mutationName, subscriptionName := "Query", "Mutation", "Subscription"
	for _, schemaDef := range doc.Schema {
		for _, op := range schemaDef.OperationTypes {
			switch op.Operation {
			case ast.Query:
				queryName = op.Type
			case ast.Mutation:
				mutationName = op.Type
			case ast.Subscription:
				subscriptionName = op.Type
			}
		}
	}
	s.query = s.types[queryName]
	s.mutation = s.types[mutationName]
	s.subscription = s.types[subscriptionName]
	return s
}

// Empty returns a schema that defines nothing. It stands in for an absent
// client schema extension.
func Empty() *Schema {
	return &Schema{
		types:      map[string]*ast.Definition{},
		extensions: map[string][]*ast.Definition{},
	}
}

// TypeByName returns the type definition for name.
func (s *Schema) TypeByName(name string) (*ast.Definition, bool) {
	def, ok := s.types[name]
	return def, ok
}

func (s *Schema) QueryType() (*ast.Definition, bool) {
	return s.query, s.query != nil
}

func (s *Schema) MutationType() (*ast.Definition, bool) {
	return s.mutation, s.mutation != nil
}

func (s *Schema) SubscriptionType() (*ast.Definition, bool) {
	return s.subscription, s.subscription != nil
}

// FieldDefinition returns the definition of fieldName on typeName, considering
// both the type definition itself and any extensions of it.
func (s *Schema) FieldDefinition(typeName, fieldName string) (*ast.FieldDefinition, bool) {
	if def, ok := s.types[typeName]; ok {
		if field := def.Fields.ForName(fieldName); field != nil {
			return field, true
		}
	}
	for _, ext := range s.extensions[typeName] {
		if field := ext.Fields.ForName(fieldName); field != nil {
			return field, true
		}
	}
	return nil, false
}

// DefinesField reports whether the schema declares fieldName on typeName,
// either on the type definition or on an extension of it.
func (s *Schema) DefinesField(typeName, fieldName string) bool {
	_, ok := s.FieldDefinition(typeName, fieldName)
	return ok
}
