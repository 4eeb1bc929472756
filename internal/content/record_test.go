package content

import (
	"testing"

	"github.com/specialistvlad/contentgrid/internal/identity"
	"github.com/stretchr/testify/assert"
)

func TestRecord_CategoryMatchesType(t *testing.T) {
	key := identity.Key{Source: "core", Name: "x"}
	testCases := []struct {
		record Record
		want   Category
	}{
		{TileType{Key: key}, Tile},
		{GroundType{Key: key}, Ground},
		{ItemType{Key: key}, Item},
		{VisibleThingType{Key: key}, VisibleThing},
		{ThingType{Key: key}, Thing},
		{ByteStreamType{ID: 7, Key: key}, ByteStream},
	}
	for _, tc := range testCases {
		t.Run(tc.want.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.record.Category())
			assert.True(t, tc.record.Category().Registered())
			assert.Equal(t, "core:x", tc.record.RecordKey().String())
		})
	}
}
