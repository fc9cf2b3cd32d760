package operationreport

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"
)

// Location is a line and column in the source document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// LocationsFromPosition converts a parser position into the location list
// attached to an external error. A nil position yields no locations.
func LocationsFromPosition(pos *ast.Position) []Location {
	if pos == nil {
		return nil
	}
	return []Location{{Line: pos.Line, Column: pos.Column}}
}

// ExternalError is a user facing error: the document or schema it points at
// can be corrected and the compilation re-run.
type ExternalError struct {
	Message   string     `json:"message"`
	Locations []Location `json:"locations,omitempty"`
}

func (e ExternalError) Error() string {
	if len(e.Locations) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s, locations: %+v", e.Message, e.Locations)
}

// ErrTypeUndefined is raised when a declared type resolves in neither the
// server schema nor the client schema.
func ErrTypeUndefined(typeName string, pos *ast.Position) (err ExternalError) {
	err.Message = fmt.Sprintf("type %q undefined in both server and client schema", typeName)
	err.Locations = LocationsFromPosition(pos)
	return err
}

// ErrRootOperationTypeUndefined is raised when the server schema declares no
// root type for the given operation.
func ErrRootOperationTypeUndefined(operation ast.Operation, pos *ast.Position) (err ExternalError) {
	err.Message = fmt.Sprintf("server schema defines no %s root operation type", operation)
	err.Locations = LocationsFromPosition(pos)
	return err
}

// InternalErrorAt builds an internal error that carries the source location of
// the node the invariant was violated on.
func InternalErrorAt(pos *ast.Position, format string, args ...interface{}) error {
	err := errors.Errorf(format, args...)
	if pos == nil {
		return err
	}
	return errors.WithMessagef(err, "at %d:%d", pos.Line, pos.Column)
}
