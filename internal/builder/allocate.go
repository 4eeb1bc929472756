package builder

import (
	"fmt"
	"math"

	"github.com/specialistvlad/contentgrid/internal/content"
	"github.com/specialistvlad/contentgrid/internal/contenterr"
	"github.com/specialistvlad/contentgrid/internal/registry"
)

// Allocate assigns dense ids per category in the order the records are given
// and assembles the registry.
func Allocate(records []content.Record) (*registry.Registry, error) {
	next := make(map[content.Category]int, len(content.RegisteredCategories))
	a := registry.NewAssembler()

	for _, rec := range records {
		cat := rec.Category()
		n := next[cat]
		if n > math.MaxUint16 {
			return nil, contenterr.Newf(contenterr.CodeCapacity,
				"too many %s records: the id space holds %d", cat, math.MaxUint16+1).
				With("category", cat.String())
		}
		if err := a.Add(withID(rec, uint16(n))); err != nil {
			return nil, fmt.Errorf("failed to register %s %s: %w", cat, rec.RecordKey(), err)
		}
		next[cat] = n + 1
	}
	return a.Registry(), nil
}

func withID(rec content.Record, id uint16) content.Record {
	switch r := rec.(type) {
	case content.TileType:
		r.ID = id
		return r
	case content.GroundType:
		r.ID = id
		return r
	case content.ItemType:
		r.ID = id
		return r
	case content.VisibleThingType:
		r.ID = id
		return r
	case content.ThingType:
		r.ID = id
		return r
	case content.ByteStreamType:
		r.ID = id
		return r
	default:
		return rec
	}
}
