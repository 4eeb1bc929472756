package registry

import (
	"errors"
	"testing"

	"github.com/specialistvlad/contentgrid/internal/content"
	"github.com/specialistvlad/contentgrid/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tile(id uint16, key string, weight float64) content.TileType {
	return content.TileType{
		ID:             id,
		Key:            identity.MustParse(key),
		Solid:          true,
		WorldGenWeight: weight,
		Display:        content.Display{Text: content.Text{Left: '#', Right: '#'}},
	}
}

func sampleRegistry(t *testing.T) *Registry {
	t.Helper()

	a := NewAssembler()
	records := []content.Record{
		tile(0, "core:stone", 0.4),
		tile(1, "core:lava", 0),
		tile(2, "core:grass", 0.6),
		content.GroundType{ID: 0, Key: identity.MustParse("core:dirt"), WorldGenWeight: 1},
		content.ItemType{ID: 0, Key: identity.MustParse("core:pick")},
		content.VisibleThingType{ID: 0, Key: identity.MustParse("core:door"), TypeIdentifier: "door"},
		content.ThingType{ID: 0, Key: identity.MustParse("core:spawner"), TypeIdentifier: "spawner"},
		content.ByteStreamType{ID: 0, Key: identity.MustParse("core:intro"), Bytes: []byte("hello")},
	}
	for _, rec := range records {
		require.NoError(t, a.Add(rec))
	}
	return a.Registry()
}

func TestRegistry_Queries(t *testing.T) {
	r := sampleRegistry(t)

	id, ok := r.IDByName(content.Tile, "core:grass")
	require.True(t, ok)
	assert.Equal(t, uint16(2), id)

	rec, err := r.Get(content.Tile, id)
	require.NoError(t, err)
	assert.Equal(t, "core:grass", rec.RecordKey().String())

	name, ok := r.NameByID(content.Ground, 0)
	require.True(t, ok)
	assert.Equal(t, "core:dirt", name)

	thing, ok := r.Thing(0)
	require.True(t, ok)
	assert.Equal(t, "spawner", thing.TypeIdentifier)

	_, ok = r.IDByName(content.Tile, "core:dirt")
	assert.False(t, ok, "names are scoped per category")

	_, ok = r.IDByName(content.VisualData, "core:stone")
	assert.False(t, ok)
}

func TestRegistry_GetErrors(t *testing.T) {
	r := sampleRegistry(t)

	_, err := r.Get(content.Tile, 99)
	assert.True(t, errors.Is(err, ErrUnknownID))

	_, err = r.Get(content.VisualData, 0)
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestRegistry_Bijection(t *testing.T) {
	r := sampleRegistry(t)

	for _, cat := range content.RegisteredCategories {
		t.Run(cat.String(), func(t *testing.T) {
			items := r.Enumerate(cat)
			assert.Equal(t, len(items), r.Len(cat))
			for i, item := range items {
				assert.Equal(t, uint16(i), item.ID, "ids must be contiguous from 0")

				name, ok := r.NameByID(cat, item.ID)
				require.True(t, ok)
				back, ok := r.IDByName(cat, name)
				require.True(t, ok)
				assert.Equal(t, item.ID, back)
			}
			for _, key := range r.Keys(cat) {
				id, ok := r.IDByName(cat, key)
				require.True(t, ok)
				name, ok := r.NameByID(cat, id)
				require.True(t, ok)
				assert.Equal(t, key, name)
			}
		})
	}
}

func TestRegistry_WorldGenCandidates(t *testing.T) {
	r := sampleRegistry(t)

	assert.Equal(t, []Weighted{{ID: 0, Weight: 0.4}, {ID: 2, Weight: 0.6}}, r.WorldGenCandidates(content.Tile))
	assert.Equal(t, []Weighted{{ID: 0, Weight: 1}}, r.WorldGenCandidates(content.Ground))
	assert.Empty(t, r.WorldGenCandidates(content.Item))
}

func TestRegistry_StatsAndKeys(t *testing.T) {
	r := sampleRegistry(t)

	stats := r.Stats()
	assert.Equal(t, Stats{Tiles: 3, Grounds: 1, Items: 1, VisibleThings: 1, Things: 1, ByteStreams: 1}, stats)
	assert.Equal(t, 8, stats.Total())
	assert.Equal(t, []string{"core:grass", "core:lava", "core:stone"}, r.Keys(content.Tile))
	assert.Nil(t, r.Keys(content.VisualData))
}

func TestAssembler_Invariants(t *testing.T) {
	testCases := []struct {
		name    string
		records []content.Record
		wantErr error
	}{
		{
			name:    "gap in ids",
			records: []content.Record{tile(0, "core:a", 0), tile(2, "core:b", 0)},
			wantErr: ErrNonContiguousID,
		},
		{
			name:    "not starting at zero",
			records: []content.Record{tile(1, "core:a", 0)},
			wantErr: ErrNonContiguousID,
		},
		{
			name:    "duplicate name",
			records: []content.Record{tile(0, "core:a", 0), tile(1, "core:a", 0)},
			wantErr: ErrDuplicateName,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAssembler()
			var err error
			for _, rec := range tc.records {
				if err = a.Add(rec); err != nil {
					break
				}
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

func TestAssembler_FailedInsertLeavesNoPartialRecord(t *testing.T) {
	a := NewAssembler()
	require.NoError(t, a.Add(tile(0, "core:a", 0)))
	require.Error(t, a.Add(tile(1, "core:a", 0)))

	r := a.Registry()
	assert.Equal(t, 1, r.Len(content.Tile))
	_, ok := r.Tile(1)
	assert.False(t, ok)
}

func TestAssembler_SealedAfterRegistry(t *testing.T) {
	a := NewAssembler()
	_ = a.Registry()

	err := a.Add(tile(0, "core:a", 0))
	assert.True(t, errors.Is(err, ErrSealed))
}
