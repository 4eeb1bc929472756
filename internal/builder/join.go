package builder

import (
	"context"
	"math"

	"github.com/specialistvlad/contentgrid/internal/content"
	"github.com/specialistvlad/contentgrid/internal/contenterr"
	"github.com/specialistvlad/contentgrid/internal/ctxlog"
	"github.com/specialistvlad/contentgrid/internal/identity"
)

// Join attaches visual data to the entries that need it and materializes
// every surviving non-visual entry into a record. The returned records carry
// no ids yet. Entries that cannot be materialized are left out and described
// in the report.
func Join(ctx context.Context, entries []content.Entry) ([]content.Record, *Report) {
	logger := ctxlog.FromContext(ctx)
	report := &Report{}

	visuals := make(map[identity.Key]*content.VisualPayload)
	for _, e := range entries {
		if v, ok := e.Payload.(content.VisualPayload); ok {
			visuals[e.Identity.VisualKey()] = &v
		}
	}
	logger.Debug("Joiner: Indexed visual data.", "count", len(visuals))

	records := make([]content.Record, 0, len(entries))
	for _, e := range entries {
		cat := e.Identity.Category
		if cat == content.VisualData {
			continue
		}

		var visual *content.VisualPayload
		if cat.RequiresVisual() {
			v, ok := visuals[e.Identity.VisualKey()]
			if !ok {
				report.add(contenterr.CodeMissingVisualData, e, "", "Entry dropped: no visual_data for "+e.Identity.Key().String()+".")
				continue
			}
			visual = v
		}

		rec, diag := materialize(e, visual)
		if diag != nil {
			report.Diagnostics = append(report.Diagnostics, *diag)
			continue
		}
		records = append(records, rec)
	}

	report.Materialized = len(records)
	return records, report
}

// materialize builds the record of one entry with category defaults applied.
func materialize(e content.Entry, visual *content.VisualPayload) (content.Record, *Diagnostic) {
	key := e.Identity.Key()
	display, displayName := content.DisplayFrom(visual)

	switch p := e.Payload.(type) {
	case content.TilePayload:
		weight, diag := worldGenWeight(e, p.WorldGenWeight)
		if diag != nil {
			return nil, diag
		}
		return content.TileType{
			Key:            key,
			Name:           displayName,
			Display:        display,
			Solid:          boolOr(p.Solid, true),
			WorldGenWeight: weight,
		}, nil

	case content.GroundPayload:
		weight, diag := worldGenWeight(e, p.WorldGenWeight)
		if diag != nil {
			return nil, diag
		}
		return content.GroundType{
			Key:            key,
			Name:           displayName,
			Display:        display,
			Solid:          boolOr(p.Solid, true),
			WorldGenWeight: weight,
		}, nil

	case content.ItemPayload:
		return content.ItemType{Key: key, Name: displayName, Display: display}, nil

	case content.VisibleThingPayload:
		if p.TypeIdentifier == nil {
			return nil, missingField(e, "type_identifier")
		}
		return content.VisibleThingType{
			Key:            key,
			Name:           displayName,
			TypeIdentifier: *p.TypeIdentifier,
			Bytes:          p.Bytes,
			Display:        display,
		}, nil

	case content.ThingPayload:
		if p.TypeIdentifier == nil {
			return nil, missingField(e, "type_identifier")
		}
		return content.ThingType{
			Key:            key,
			Name:           e.Identity.Name,
			TypeIdentifier: *p.TypeIdentifier,
			Bytes:          p.Bytes,
		}, nil

	case content.ByteStreamPayload:
		if p.Bytes == nil {
			return nil, missingField(e, "bytes")
		}
		return content.ByteStreamType{
			Key:            key,
			Name:           e.Identity.Name,
			TypeIdentifier: stringOr(p.TypeIdentifier, ""),
			Bytes:          p.Bytes,
		}, nil

	default:
		return nil, &Diagnostic{
			Code:    contenterr.CodeInvalidField,
			Ref:     e.Identity.Ref(),
			Origin:  e.Origin,
			Message: "Entry dropped: unsupported payload.",
		}
	}
}

func worldGenWeight(e content.Entry, w *float64) (float64, *Diagnostic) {
	if w == nil {
		return 0, nil
	}
	if math.IsNaN(*w) || math.IsInf(*w, 0) || *w < 0 {
		return 0, &Diagnostic{
			Code:    contenterr.CodeInvalidField,
			Ref:     e.Identity.Ref(),
			Origin:  e.Origin,
			Field:   "world_gen_weight",
			Message: "Entry dropped: world_gen_weight must be a finite, non-negative number.",
		}
	}
	return *w, nil
}

func missingField(e content.Entry, field string) *Diagnostic {
	return &Diagnostic{
		Code:    contenterr.CodeMissingRequiredField,
		Ref:     e.Identity.Ref(),
		Origin:  e.Origin,
		Field:   field,
		Message: "Entry dropped: missing required field " + field + ".",
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
