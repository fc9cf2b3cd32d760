package operationreport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestReport(t *testing.T) {
	report := Report{}
	assert.False(t, report.HasErrors())

	report.AddInternalError(errors.New("broken invariant"))
	report.AddExternalError(ErrTypeUndefined("Ghost", &ast.Position{Line: 3, Column: 7}))
	require.True(t, report.HasErrors())

	out := report.Error()
	assert.Contains(t, out, "internal: broken invariant")
	assert.Contains(t, out, `external: type "Ghost" undefined`)
	assert.Contains(t, out, "Line:3")

	report.Reset()
	assert.False(t, report.HasErrors())
}

func TestExternalErrorAsError(t *testing.T) {
	var err error = ErrTypeUndefined("Ghost", nil)

	var external ExternalError
	require.True(t, errors.As(err, &external))
	assert.Equal(t, `type "Ghost" undefined in both server and client schema`, external.Message)
	assert.Empty(t, external.Locations)
}

func TestErrRootOperationTypeUndefined(t *testing.T) {
	err := ErrRootOperationTypeUndefined(ast.Subscription, &ast.Position{Line: 1, Column: 1})
	assert.Contains(t, err.Message, "subscription")
	require.Len(t, err.Locations, 1)
	assert.Equal(t, 1, err.Locations[0].Line)
}

func TestInternalErrorAt(t *testing.T) {
	err := InternalErrorAt(&ast.Position{Line: 4, Column: 2}, "unhandled selection kind %d", 99)
	assert.Contains(t, err.Error(), "at 4:2")
	assert.Contains(t, err.Error(), "unhandled selection kind 99")

	err = InternalErrorAt(nil, "no position")
	assert.Equal(t, "no position", err.Error())
}
