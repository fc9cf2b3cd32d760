// Package operationreport collects the errors of a compiler pass, split into
// the two categories downstream consumers treat differently: external errors
// are user facing and point at the document or schema, internal errors signal
// a defect in a compiler invariant.
package operationreport

import (
	"strings"
)

type Report struct {
	InternalErrors []error
	ExternalErrors []ExternalError
}

func (r Report) Error() string {
	var out strings.Builder
	for i := range r.InternalErrors {
		if out.Len() > 0 {
			out.WriteString("\n")
		}
		out.WriteString("internal: ")
		out.WriteString(r.InternalErrors[i].Error())
	}
	for i := range r.ExternalErrors {
		if out.Len() > 0 {
			out.WriteString("\n")
		}
		out.WriteString("external: ")
		out.WriteString(r.ExternalErrors[i].Error())
	}
	return out.String()
}

func (r *Report) HasErrors() bool {
	return len(r.InternalErrors) > 0 || len(r.ExternalErrors) > 0
}

func (r *Report) Reset() {
	r.InternalErrors = r.InternalErrors[:0]
	r.ExternalErrors = r.ExternalErrors[:0]
}

func (r *Report) AddInternalError(err error) {
	r.InternalErrors = append(r.InternalErrors, err)
}

func (r *Report) AddExternalError(err ExternalError) {
	r.ExternalErrors = append(r.ExternalErrors, err)
}
