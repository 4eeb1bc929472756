package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/contentgrid/internal/content"
)

var (
	// ErrUnknownID indicates an id that was not produced by this registry.
	ErrUnknownID = errors.New("registry: unknown id")
	// ErrUnknownCategory indicates a category without a registry table.
	ErrUnknownCategory = errors.New("registry: unknown category")
)

// Item is one entry of an enumeration.
type Item struct {
	ID     uint16
	Record content.Record
}

// Weighted is a world generation candidate.
type Weighted struct {
	ID     uint16
	Weight float64
}

// Stats counts the records of every category.
type Stats struct {
	Tiles         int `json:"tiles"`
	Grounds       int `json:"grounds"`
	Items         int `json:"items"`
	VisibleThings int `json:"visible_things"`
	Things        int `json:"things"`
	ByteStreams   int `json:"byte_streams"`
}

// Total returns the number of records across all categories.
func (s Stats) Total() int {
	return s.Tiles + s.Grounds + s.Items + s.VisibleThings + s.Things + s.ByteStreams
}

// Registry is the immutable content registry. The zero value is not usable;
// registries are produced by an Assembler or FromSnapshot.
type Registry struct {
	tiles         table[content.TileType]
	grounds       table[content.GroundType]
	items         table[content.ItemType]
	visibleThings table[content.VisibleThingType]
	things        table[content.ThingType]
	byteStreams   table[content.ByteStreamType]
}

func newRegistry() *Registry {
	return &Registry{
		tiles:         newTable[content.TileType](),
		grounds:       newTable[content.GroundType](),
		items:         newTable[content.ItemType](),
		visibleThings: newTable[content.VisibleThingType](),
		things:        newTable[content.ThingType](),
		byteStreams:   newTable[content.ByteStreamType](),
	}
}

// Tile returns the tile with the given id.
func (r *Registry) Tile(id uint16) (content.TileType, bool) { return r.tiles.get(id) }

// Ground returns the ground with the given id.
func (r *Registry) Ground(id uint16) (content.GroundType, bool) { return r.grounds.get(id) }

// Item returns the item with the given id.
func (r *Registry) Item(id uint16) (content.ItemType, bool) { return r.items.get(id) }

// VisibleThing returns the visible thing with the given id.
func (r *Registry) VisibleThing(id uint16) (content.VisibleThingType, bool) {
	return r.visibleThings.get(id)
}

// Thing returns the thing with the given id.
func (r *Registry) Thing(id uint16) (content.ThingType, bool) { return r.things.get(id) }

// ByteStream returns the byte stream with the given id.
func (r *Registry) ByteStream(id uint16) (content.ByteStreamType, bool) { return r.byteStreams.get(id) }

// Get returns the record of any registered category by id.
func (r *Registry) Get(cat content.Category, id uint16) (content.Record, error) {
	var (
		rec content.Record
		ok  bool
	)
	switch cat {
	case content.Tile:
		rec, ok = r.Tile(id)
	case content.Ground:
		rec, ok = r.Ground(id)
	case content.Item:
		rec, ok = r.Item(id)
	case content.VisibleThing:
		rec, ok = r.VisibleThing(id)
	case content.Thing:
		rec, ok = r.Thing(id)
	case content.ByteStream:
		rec, ok = r.ByteStream(id)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, cat)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", ErrUnknownID, cat, id)
	}
	return rec, nil
}

// IDByName resolves a `source:name` key to its id.
func (r *Registry) IDByName(cat content.Category, name string) (uint16, bool) {
	ids := r.identifiers(cat)
	if ids == nil {
		return 0, false
	}
	return ids.Value(name)
}

// NameByID resolves an id to its `source:name` key.
func (r *Registry) NameByID(cat content.Category, id uint16) (string, bool) {
	ids := r.identifiers(cat)
	if ids == nil {
		return "", false
	}
	return ids.Key(id)
}

// Enumerate returns every record of the category ordered by id.
func (r *Registry) Enumerate(cat content.Category) []Item {
	switch cat {
	case content.Tile:
		return r.tiles.items()
	case content.Ground:
		return r.grounds.items()
	case content.Item:
		return r.items.items()
	case content.VisibleThing:
		return r.visibleThings.items()
	case content.Thing:
		return r.things.items()
	case content.ByteStream:
		return r.byteStreams.items()
	default:
		return nil
	}
}

// WorldGenCandidates returns the tiles or grounds with a positive world
// generation weight, ordered by id.
func (r *Registry) WorldGenCandidates(cat content.Category) []Weighted {
	var out []Weighted
	switch cat {
	case content.Tile:
		for _, t := range r.tiles.sorted() {
			if t.WorldGenWeight > 0 {
				out = append(out, Weighted{ID: t.ID, Weight: t.WorldGenWeight})
			}
		}
	case content.Ground:
		for _, g := range r.grounds.sorted() {
			if g.WorldGenWeight > 0 {
				out = append(out, Weighted{ID: g.ID, Weight: g.WorldGenWeight})
			}
		}
	}
	return out
}

// Keys returns the sorted `source:name` keys of the category.
func (r *Registry) Keys(cat content.Category) []string {
	ids := r.identifiers(cat)
	if ids == nil {
		return nil
	}
	out := make([]string, 0, ids.Len())
	ids.Range(func(k string, _ uint16) bool {
		out = append(out, k)
		return true
	})
	sort.Strings(out)
	return out
}

// Len returns the number of records of the category.
func (r *Registry) Len(cat content.Category) int {
	ids := r.identifiers(cat)
	if ids == nil {
		return 0
	}
	return ids.Len()
}

// Stats counts the records of every category.
func (r *Registry) Stats() Stats {
	return Stats{
		Tiles:         len(r.tiles.records),
		Grounds:       len(r.grounds.records),
		Items:         len(r.items.records),
		VisibleThings: len(r.visibleThings.records),
		Things:        len(r.things.records),
		ByteStreams:   len(r.byteStreams.records),
	}
}

func (r *Registry) identifiers(cat content.Category) *IdentifierMap {
	switch cat {
	case content.Tile:
		return r.tiles.ids
	case content.Ground:
		return r.grounds.ids
	case content.Item:
		return r.items.ids
	case content.VisibleThing:
		return r.visibleThings.ids
	case content.Thing:
		return r.things.ids
	case content.ByteStream:
		return r.byteStreams.ids
	default:
		return nil
	}
}
