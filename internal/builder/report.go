package builder

import (
	"context"

	"github.com/specialistvlad/contentgrid/internal/content"
	"github.com/specialistvlad/contentgrid/internal/contenterr"
	"github.com/specialistvlad/contentgrid/internal/ctxlog"
)

// Diagnostic describes one entry that was excluded from the registry.
type Diagnostic struct {
	Code    contenterr.Code
	Ref     content.Ref
	Origin  string
	Field   string
	Message string
}

// Err converts the diagnostic into a pipeline error.
func (d Diagnostic) Err() error {
	e := contenterr.New(d.Code, d.Message).
		With("identity", d.Ref.String()).
		With("origin", d.Origin)
	if d.Field != "" {
		e = e.With("field", d.Field)
	}
	return e
}

// Report summarizes a build.
type Report struct {
	Flattened    int
	Duplicates   int
	Materialized int
	Diagnostics  []Diagnostic
}

func (r *Report) add(code contenterr.Code, e content.Entry, field, message string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Code:    code,
		Ref:     e.Identity.Ref(),
		Origin:  e.Origin,
		Field:   field,
		Message: message,
	})
}

// Count returns the number of diagnostics with the given code.
func (r *Report) Count(code contenterr.Code) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}

// Log writes every diagnostic to the logger carried by ctx.
func (r *Report) Log(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	for _, d := range r.Diagnostics {
		args := []any{"identity", d.Ref.String(), "origin", d.Origin, "code", string(d.Code)}
		if d.Field != "" {
			args = append(args, "field", d.Field)
		}
		logger.Warn(d.Message, args...)
	}
}
