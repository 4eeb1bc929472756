package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory_RoundTripsEveryCategory(t *testing.T) {
	for _, c := range Categories {
		t.Run(c.String(), func(t *testing.T) {
			got, err := ParseCategory(c.String())
			require.NoError(t, err)
			assert.Equal(t, c, got)
		})
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	_, err := ParseCategory("vis_thing")
	assert.Error(t, err)
}

func TestCategory_Predicates(t *testing.T) {
	testCases := []struct {
		cat        Category
		visual     bool
		registered bool
	}{
		{Tile, true, true},
		{Ground, true, true},
		{Item, true, true},
		{VisibleThing, true, true},
		{Thing, false, true},
		{ByteStream, false, true},
		{VisualData, false, false},
		{Category(42), false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.cat.String(), func(t *testing.T) {
			assert.Equal(t, tc.visual, tc.cat.RequiresVisual())
			assert.Equal(t, tc.registered, tc.cat.Registered())
		})
	}
}

func TestPayload_CategoryMatchesVariant(t *testing.T) {
	payloads := []Payload{
		TilePayload{}, GroundPayload{}, ItemPayload{}, VisibleThingPayload{},
		ThingPayload{}, ByteStreamPayload{}, VisualPayload{},
	}
	require.Len(t, payloads, len(Categories))
	for i, p := range payloads {
		assert.Equal(t, Categories[i], p.Category())
	}
}
