package builder

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"testing"

	"github.com/specialistvlad/contentgrid/internal/config"
	"github.com/specialistvlad/contentgrid/internal/content"
	"github.com/specialistvlad/contentgrid/internal/contenterr"
	"github.com/specialistvlad/contentgrid/internal/ctxlog"
	"github.com/specialistvlad/contentgrid/internal/hcl"
	"github.com/specialistvlad/contentgrid/internal/registry"
	"github.com/specialistvlad/contentgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFromFiles runs the collector and the full build over a module tree.
func buildFromFiles(t *testing.T, files map[string]string) (*registry.Registry, *Report, string) {
	t.Helper()

	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

	root := testutil.WriteModules(t, files)
	col, err := hcl.NewLoader().Load(ctx, root)
	require.NoError(t, err)

	reg, report, err := Build(ctx, col)
	require.NoError(t, err)
	return reg, report, logs.String()
}

func tileByKey(t *testing.T, reg *registry.Registry, key string) content.TileType {
	t.Helper()
	id, ok := reg.IDByName(content.Tile, key)
	require.True(t, ok, "tile %s not registered", key)
	tile, ok := reg.Tile(id)
	require.True(t, ok)
	return tile
}

func TestBuild_PriorityReplacesWholePayload(t *testing.T) {
	// --- Arrange ---
	reg, _, _ := buildFromFiles(t, map[string]string{
		"core/stone.hcl": `
			tile {
				solid            = true
				world_gen_weight = 0.4
			}
			visual_data { character_left = "#" }
		`,
		"patch/stone.hcl": `
			source   = "core"
			priority = 5
			tile { solid = false }
		`,
	})

	// --- Act ---
	stone := tileByKey(t, reg, "core:stone")

	// --- Assert ---
	assert.False(t, stone.Solid, "the priority 5 payload wins")
	assert.Equal(t, 0.0, stone.WorldGenWeight, "fields of the losing payload are not merged in")
	assert.Equal(t, '#', stone.Display.Text.Left, "the visual is joined regardless of the winning tier")
	assert.Equal(t, 1, reg.Len(content.Tile))
}

func TestBuild_MissingVisualDropsOnlyThatEntry(t *testing.T) {
	// --- Arrange / Act ---
	reg, report, logs := buildFromFiles(t, map[string]string{
		"core/stone.hcl": `
			tile {}
			visual_data { character_left = "#" }
		`,
		"core/lava.hcl": `tile { solid = false }`,
	})

	// --- Assert ---
	_, ok := reg.IDByName(content.Tile, "core:lava")
	assert.False(t, ok, "lava must not be in the tile bijection")
	for _, item := range reg.Enumerate(content.Tile) {
		assert.NotEqual(t, "core:lava", item.Record.RecordKey().String())
	}
	tileByKey(t, reg, "core:stone")

	assert.Equal(t, 1, report.Count(contenterr.CodeMissingVisualData))
	testutil.AssertLogged(t, logs, "level=WARN", "identity=\"tile core:lava\"", "origin=core/lava.hcl", "code=MISSING_VISUAL_DATA")
}

func TestBuild_VisualFromAnotherModuleWithSourceOverride(t *testing.T) {
	reg, report, _ := buildFromFiles(t, map[string]string{
		"core/stone.hcl":  `tile {}`,
		"skins/stone.hcl": "source = \"core\"\nvisual_data { character_left = \"@\" }",
	})

	assert.Empty(t, report.Diagnostics)
	assert.Equal(t, '@', tileByKey(t, reg, "core:stone").Display.Text.Left)
}

func TestBuild_WeightedEnumeration(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{}
	for name, weight := range map[string]string{"grass": "0.4", "sand": "0.6", "rock": "0", "wall": ""} {
		body := "visual_data {}\ntile {"
		if weight != "" {
			body += " world_gen_weight = " + weight
		}
		files["core/"+name+".hcl"] = body + " }"
	}

	// --- Act ---
	reg, _, _ := buildFromFiles(t, files)

	// --- Assert ---
	var positive []registry.Item
	for _, item := range reg.Enumerate(content.Tile) {
		if item.Record.(content.TileType).WorldGenWeight > 0 {
			positive = append(positive, item)
		}
	}
	require.Len(t, positive, 2)

	byKey := map[string]float64{}
	for _, item := range positive {
		byKey[item.Record.RecordKey().String()] = item.Record.(content.TileType).WorldGenWeight
	}
	assert.Equal(t, map[string]float64{"core:grass": 0.4, "core:sand": 0.6}, byKey)

	candidates := reg.WorldGenCandidates(content.Tile)
	require.Len(t, candidates, 2)
	total := 0.0
	for _, c := range candidates {
		total += c.Weight
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestBuild_NoOpRebuildKeepsKeys(t *testing.T) {
	files := map[string]string{
		"core/stone.hcl":  "tile {}\nvisual_data {}",
		"core/dirt.hcl":   "ground { world_gen_weight = 1 }\nvisual_data {}",
		"core/pick.hcl":   "item {}\nvisual_data {}",
		"core/door.hcl":   "visible_thing { type_identifier = \"door\" }\nvisual_data {}",
		"core/spawn.hcl":  "thing { type_identifier = \"spawner\" }",
		"extra/intro.hcl": "byte_stream { bytes = \"hello\" }",
	}

	first, _, _ := buildFromFiles(t, files)
	second, _, _ := buildFromFiles(t, files)

	for _, cat := range content.RegisteredCategories {
		assert.Equal(t, first.Keys(cat), second.Keys(cat), "category %s", cat)
		assert.Equal(t, 1, first.Len(cat), "category %s", cat)
	}
}

func TestBuild_DeterministicIDs(t *testing.T) {
	reg, _, _ := buildFromFiles(t, map[string]string{
		"b/one.hcl": "item {}\nvisual_data {}",
		"a/two.hcl": "item {}\nvisual_data {}",
		"a/one.hcl": "item {}\nvisual_data {}",
	})

	for i, key := range []string{"a:one", "a:two", "b:one"} {
		id, ok := reg.IDByName(content.Item, key)
		require.True(t, ok)
		assert.Equal(t, uint16(i), id)
	}
}

func TestBuild_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Build(ctx, config.NewCollection())

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAllocate_CapacityIsFatal(t *testing.T) {
	records := make([]content.Record, 0, math.MaxUint16+2)
	for i := 0; i <= math.MaxUint16+1; i++ {
		records = append(records, content.ThingType{Key: content.Identity{Source: "core", Name: strconv.Itoa(i)}.Key()})
	}

	_, err := Allocate(records)

	require.Error(t, err)
	assert.Equal(t, contenterr.CodeCapacity, contenterr.CodeOf(err))
	assert.True(t, contenterr.CodeCapacity.Fatal())
}
