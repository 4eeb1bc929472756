package builder

import (
	"context"

	"github.com/specialistvlad/contentgrid/internal/config"
	"github.com/specialistvlad/contentgrid/internal/ctxlog"
	"github.com/specialistvlad/contentgrid/internal/registry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/specialistvlad/contentgrid/internal/builder"

// Build runs the flatten, resolve, join and allocate phases over a complete
// collection. Per-entry problems are logged and returned in the report; only
// fatal problems produce an error.
func Build(ctx context.Context, col *config.Collection) (*registry.Registry, *Report, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "builder.Build", trace.WithAttributes(
		attribute.Int("modules", len(col.Modules())),
		attribute.Int("declarations", col.Len()),
	))
	defer span.End()

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Builder: Starting build.", "modules", len(col.Modules()), "declarations", col.Len())

	_, flattenSpan := otel.Tracer(tracerName).Start(ctx, "builder.Flatten")
	entries := Flatten(col)
	flattenSpan.SetAttributes(attribute.Int("entries", len(entries)))
	flattenSpan.End()
	logger.Debug("Builder: Flattened declarations.", "entries", len(entries))

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	_, resolveSpan := otel.Tracer(tracerName).Start(ctx, "builder.Resolve")
	resolved, duplicates := Resolve(ctx, entries)
	resolveSpan.SetAttributes(attribute.Int("resolved", len(resolved)), attribute.Int("duplicates", duplicates))
	resolveSpan.End()
	logger.Debug("Builder: Resolved conflicts.", "resolved", len(resolved), "duplicates", duplicates)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	_, joinSpan := otel.Tracer(tracerName).Start(ctx, "builder.Join")
	records, report := Join(ctx, resolved)
	joinSpan.SetAttributes(attribute.Int("records", len(records)), attribute.Int("diagnostics", len(report.Diagnostics)))
	joinSpan.End()
	report.Flattened = len(entries)
	report.Duplicates = duplicates
	report.Log(ctx)

	reg, err := Allocate(records)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, report, err
	}

	stats := reg.Stats()
	span.SetAttributes(attribute.Int("records", stats.Total()))
	logger.Debug("Builder: Registry assembled.", "records", stats.Total(), "dropped", len(report.Diagnostics))
	return reg, report, nil
}
