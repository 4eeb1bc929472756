package registry

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/contentgrid/internal/content"
)

// ErrNonContiguousID indicates an id that does not extend the 0..n-1 range.
var ErrNonContiguousID = errors.New("registry: non-contiguous id")

// table is the id -> record map of one category together with its
// identifier bijection.
type table[T content.Record] struct {
	records map[uint16]T
	ids     *IdentifierMap
}

func newTable[T content.Record]() table[T] {
	return table[T]{
		records: make(map[uint16]T),
		ids:     NewBiMap[string, uint16](),
	}
}

// insert adds rec to the bijection first and to the records only when that
// succeeded, so the two never disagree.
func (t *table[T]) insert(rec T) error {
	id := rec.RecordID()
	if int(id) != len(t.records) {
		return fmt.Errorf("%w: %s got %d, want %d", ErrNonContiguousID, rec.Category(), id, len(t.records))
	}
	if err := t.ids.Insert(rec.RecordKey().String(), id); err != nil {
		return fmt.Errorf("%s: %w", rec.Category(), err)
	}
	t.records[id] = rec
	return nil
}

func (t *table[T]) get(id uint16) (T, bool) {
	rec, ok := t.records[id]
	return rec, ok
}

// sorted returns the records ordered by id.
func (t *table[T]) sorted() []T {
	out := make([]T, 0, len(t.records))
	for id := 0; id < len(t.records); id++ {
		out = append(out, t.records[uint16(id)])
	}
	return out
}

func (t *table[T]) items() []Item {
	out := make([]Item, 0, len(t.records))
	for _, rec := range t.sorted() {
		out = append(out, Item{ID: rec.RecordID(), Record: rec})
	}
	return out
}
