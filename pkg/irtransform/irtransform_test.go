package irtransform

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jensneuse/abstractlogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/wundergraph/relay-go-tools/internal/pkg/unsafelower"
	"github.com/wundergraph/relay-go-tools/internal/pkg/unsafeprinter"
	"github.com/wundergraph/relay-go-tools/pkg/ir"
	"github.com/wundergraph/relay-go-tools/pkg/operationreport"
)

func testLogger(t *testing.T) abstractlogger.Logger {
	t.Helper()
	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatal(err)
	}
	return abstractlogger.NewZapLogger(zapLogger, abstractlogger.DebugLevel)
}

func TestTransformDocumentConcurrently(t *testing.T) {
	defer goleak.VerifyNone(t)

	var operations strings.Builder
	for i := 0; i < 32; i++ {
		fmt.Fprintf(&operations, `
			query Q%d {
				me {
					name
					localBadge
				}
			}`, i)
	}

	schemas := unsafelower.ParseSchemaPair(testServerSchema, testClientSchema)
	document := unsafelower.LowerDocumentString(schemas, operations.String())

	transformer := NewClientExtensions(schemas)

	sequentialReport := operationreport.Report{}
	sequential := transformer.TransformDocument(document, &sequentialReport)
	require.False(t, sequentialReport.HasErrors(), sequentialReport.Error())

	concurrentReport := operationreport.Report{}
	concurrent := transformer.TransformDocumentConcurrently(context.Background(), document, &concurrentReport)
	require.False(t, concurrentReport.HasErrors(), concurrentReport.Error())

	assert.Equal(t,
		unsafeprinter.PrintDocument(sequential),
		unsafeprinter.PrintDocument(concurrent),
	)
}

func TestTransformDocumentConcurrentlyCollectsErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	schemas := unsafelower.ParseSchemaPair(testServerSchema, testClientSchema)
	document := unsafelower.LowerDocumentString(schemas, `
		query Good {
			me {
				name
			}
		}
		fragment Missing on Ghost {
			name
		}`)

	transformer := NewClientExtensions(schemas, WithLogger(abstractlogger.NoopLogger))
	report := operationreport.Report{}
	out := transformer.TransformDocumentConcurrently(context.Background(), document, &report)

	require.Len(t, report.ExternalErrors, 1)
	require.Len(t, out.Definitions, 1)
	assert.Equal(t, "Good", out.Definitions[0].Name)
}

func TestWithFragmentRegistry(t *testing.T) {
	schemas := unsafelower.ParseSchemaPair(testServerSchema, testClientSchema)
	registry := unsafelower.LowerDocumentString(schemas, `
		fragment profile on User {
			name
		}`)
	document := unsafelower.LowerDocumentString(schemas, `
		query External {
			me {
				...profile
			}
		}`)

	transformer := NewClientExtensions(schemas,
		WithLogger(testLogger(t)),
		WithFragmentRegistry(registry),
	)
	report := operationreport.Report{}
	out := transformer.TransformDocument(document, &report)

	require.False(t, report.HasErrors(), report.Error())
	require.Len(t, out.Definitions, 1)
}

func TestAddErrorRouting(t *testing.T) {
	t.Run("external error lands in external list", func(t *testing.T) {
		report := operationreport.Report{}
		addError(&report, operationreport.ErrTypeUndefined("Ghost", nil))
		assert.Len(t, report.ExternalErrors, 1)
		assert.Empty(t, report.InternalErrors)
	})
	t.Run("internal error lands in internal list", func(t *testing.T) {
		report := operationreport.Report{}
		addError(&report, operationreport.InternalErrorAt(&ir.Position{Line: 1, Column: 2}, "boom"))
		assert.Len(t, report.InternalErrors, 1)
		assert.Empty(t, report.ExternalErrors)
	})
}
