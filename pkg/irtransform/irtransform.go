// Package irtransform contains compiler passes over the IR document tree.
// Every pass rewrites by constructing fresh nodes, so a transformed document
// shares no mutable state with its input and passes compose freely.
package irtransform

import (
	"context"
	"errors"
	"sync"

	"github.com/jensneuse/abstractlogger"
	"github.com/vektah/gqlparser/v2/ast"
	"golang.org/x/sync/errgroup"

	"github.com/wundergraph/relay-go-tools/pkg/ir"
	"github.com/wundergraph/relay-go-tools/pkg/operationreport"
	"github.com/wundergraph/relay-go-tools/pkg/schema"
)

// ClientOnlyFieldFunc reports whether a field cannot be resolved by the remote
// execution engine for the given parent type.
type ClientOnlyFieldFunc func(field ir.Field, parentType *ast.Definition) bool

// FragmentRegistry resolves fragment definitions by name. *ir.Document
// implements it.
type FragmentRegistry interface {
	FragmentDefinition(name string) (*ir.Definition, bool)
}

// Option configures a transformer.
type Option func(*options)

type options struct {
	log               abstractlogger.Logger
	fragments         FragmentRegistry
	isClientOnlyField ClientOnlyFieldFunc
}

// WithLogger sets the logger the transformer reports failed definitions to.
func WithLogger(log abstractlogger.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithFragmentRegistry overrides the fragment registry. Without this option
// fragment spreads are resolved against the document being transformed.
func WithFragmentRegistry(fragments FragmentRegistry) Option {
	return func(o *options) {
		o.fragments = fragments
	}
}

// WithClientOnlyFieldFunc overrides the field origin predicate. The default
// consults the client schema extension of the schema pair.
func WithClientOnlyFieldFunc(f ClientOnlyFieldFunc) Option {
	return func(o *options) {
		o.isClientOnlyField = f
	}
}

func newOptions(schemas *schema.Pair, opts []Option) options {
	o := options{
		log: abstractlogger.NoopLogger,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.isClientOnlyField == nil {
		o.isClientOnlyField = func(field ir.Field, parentType *ast.Definition) bool {
			if parentType == nil {
				return false
			}
			return schemas.ClientOnlyField(parentType.Name, field.FieldName())
		}
	}
	return o
}

func (o *options) registryFor(doc *ir.Document) FragmentRegistry {
	if o.fragments != nil {
		return o.fragments
	}
	return doc
}

// addError routes a definition error into the matching report category.
func addError(report *operationreport.Report, err error) {
	var external operationreport.ExternalError
	if errors.As(err, &external) {
		report.AddExternalError(external)
		return
	}
	report.AddInternalError(err)
}

// transformDocument drives a per-definition transform over a document. A
// definition that fails contributes its error to the report and no output
// definition; the remaining definitions still transform.
func transformDocument(
	doc *ir.Document,
	report *operationreport.Report,
	log abstractlogger.Logger,
	transform func(def *ir.Definition) (*ir.Definition, error),
) *ir.Document {
	out := &ir.Document{Definitions: make([]*ir.Definition, 0, len(doc.Definitions))}
	for _, def := range doc.Definitions {
		next, err := transform(def)
		if err != nil {
			log.Error("irtransform: definition failed",
				abstractlogger.String("definition", def.Name),
				abstractlogger.Error(err),
			)
			addError(report, err)
			continue
		}
		out.Definitions = append(out.Definitions, next)
	}
	return out
}

// transformDocumentConcurrently is the parallel variant of transformDocument.
// Definitions are independent and all compiler inputs are read only, so they
// partition without coordination; output order matches input order.
func transformDocumentConcurrently(
	ctx context.Context,
	doc *ir.Document,
	report *operationreport.Report,
	log abstractlogger.Logger,
	transform func(def *ir.Definition) (*ir.Definition, error),
) *ir.Document {
	results := make([]*ir.Definition, len(doc.Definitions))

	var mu sync.Mutex
	group, ctx := errgroup.WithContext(ctx)
	for i, def := range doc.Definitions {
		i, def := i, def
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			next, err := transform(def)
			if err != nil {
				log.Error("irtransform: definition failed",
					abstractlogger.String("definition", def.Name),
					abstractlogger.Error(err),
				)
				mu.Lock()
				addError(report, err)
				mu.Unlock()
				return nil
			}
			results[i] = next
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		report.AddInternalError(err)
	}

	out := &ir.Document{Definitions: make([]*ir.Definition, 0, len(results))}
	for _, def := range results {
		if def != nil {
			out.Definitions = append(out.Definitions, def)
		}
	}
	return out
}
