package schema

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// Pair combines the server schema with the client schema extension. Lookup
// order is always server first, client second.
type Pair struct {
	server *Schema
	client *Schema
}

// NewPair builds a pair from the two schemas. A nil client schema is treated
// as an empty extension.
func NewPair(server, client *Schema) *Pair {
	if client == nil {
		client = Empty()
	}
	return &Pair{server: server, client: client}
}

// ParsePair parses the server SDL and the client extension SDL into a pair.
// clientSDL may be empty.
func ParsePair(serverSDL, clientSDL string) (*Pair, error) {
	server, err := ParseString("server", serverSDL)
	if err != nil {
		return nil, err
	}
	client := Empty()
	if clientSDL != "" {
		client, err = ParseString("client", clientSDL)
		if err != nil {
			return nil, err
		}
	}
	return NewPair(server, client), nil
}

func (p *Pair) Server() *Schema { return p.server }
func (p *Pair) Client() *Schema { return p.client }

// ResolveNamedType looks name up in the server schema, falling back to the
// client schema.
func (p *Pair) ResolveNamedType(name string) (*ast.Definition, bool) {
	if def, ok := p.server.TypeByName(name); ok {
		return def, true
	}
	return p.client.TypeByName(name)
}

// TypeInServer looks name up in the server schema only.
func (p *Pair) TypeInServer(name string) (*ast.Definition, bool) {
	return p.server.TypeByName(name)
}

// TypeInClient looks name up in the client schema only.
func (p *Pair) TypeInClient(name string) (*ast.Definition, bool) {
	return p.client.TypeByName(name)
}

// FieldDefinition resolves a field declaration, server schema first, then the
// client schema extension.
func (p *Pair) FieldDefinition(typeName, fieldName string) (*ast.FieldDefinition, bool) {
	if field, ok := p.server.FieldDefinition(typeName, fieldName); ok {
		return field, true
	}
	return p.client.FieldDefinition(typeName, fieldName)
}

// ClientOnlyField reports whether fieldName on parentTypeName cannot be
// resolved by the remote execution engine: it is declared in the client schema
// extension and not in the server schema.
func (p *Pair) ClientOnlyField(parentTypeName, fieldName string) bool {
	if p.server.DefinesField(parentTypeName, fieldName) {
		return false
	}
	return p.client.DefinesField(parentTypeName, fieldName)
}
