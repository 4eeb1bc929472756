package app

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/contentgrid/internal/config"
	"github.com/specialistvlad/contentgrid/internal/content"
	"github.com/specialistvlad/contentgrid/internal/contenterr"
	"github.com/specialistvlad/contentgrid/internal/inmemorystore"
	"github.com/specialistvlad/contentgrid/internal/registry"
	"github.com/specialistvlad/contentgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseModules = map[string]string{
	"core/tiles/stone.hcl": `
		tile {
			solid            = true
			world_gen_weight = 0.4
		}
		visual_data {
			name            = "Stone"
			character_left  = "#"
			character_right = "#"
		}
	`,
	"core/tiles/grass.hcl": `
		tile {
			solid            = false
			world_gen_weight = 0.6
		}
		visual_data {
			character_left  = "\""
			text_color_left = [0, 200, 0]
		}
	`,
	"core/tiles/lava.hcl": `tile { solid = false }`,
	"core/tiles/wall.hcl": `
		tile {}
		visual_data { character_left = "█" }
	`,
	"core/things/spawner.hcl": `thing { type_identifier = "spawner" }`,
	"core/README.md":          "not a declaration",
}

func newTestApp(t *testing.T, files map[string]string, opts ...Option) (*App, *testutil.SafeBuffer, string) {
	t.Helper()

	root := testutil.WriteModules(t, files)
	a, logs := SetupAppTest(t, &Config{ModulesPath: root, ScriptsEnabled: true}, opts...)
	return a, logs, root
}

func tileKeys(t *testing.T, reg *registry.Registry) []string {
	t.Helper()
	return reg.Keys(content.Tile)
}

func TestLoad_TransitionsToReady(t *testing.T) {
	// --- Arrange ---
	a, logs, _ := newTestApp(t, baseModules)
	require.Equal(t, StateUninitialized, a.State())
	require.Nil(t, a.Current())

	// --- Act ---
	err := a.Load(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, StateReady, a.State())
	assert.Equal(t, []string{"core:grass", "core:stone", "core:wall"}, tileKeys(t, a.Current()))
	testutil.AssertLogged(t, logs.String(), "Content registry loaded.", "identity=\"tile core:lava\"", "MISSING_VISUAL_DATA")
}

func TestLoad_SecondCallIsNoOp(t *testing.T) {
	a, _, _ := newTestApp(t, baseModules)
	require.NoError(t, a.Load(context.Background()))
	first := a.Current()

	require.NoError(t, a.Load(context.Background()))

	assert.Same(t, first, a.Current())
}

func TestLoad_ParseErrorIsFatal(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"core/broken.hcl": `tile {`}
	for k, v := range baseModules {
		files[k] = v
	}
	a, _, _ := newTestApp(t, files)

	// --- Act ---
	err := a.Load(context.Background())

	// --- Assert ---
	require.Error(t, err)
	assert.ErrorIs(t, err, contenterr.ErrParse)
	assert.Equal(t, StateUninitialized, a.State())
}

func TestLoad_BijectionHolds(t *testing.T) {
	a, _, _ := newTestApp(t, baseModules)
	require.NoError(t, a.Load(context.Background()))
	reg := a.Current()

	for _, cat := range content.RegisteredCategories {
		for _, it := range reg.Enumerate(cat) {
			name, ok := reg.NameByID(cat, it.ID)
			require.True(t, ok)
			id, ok := reg.IDByName(cat, name)
			require.True(t, ok)
			assert.Equal(t, it.ID, id, "%s %s", cat, name)
		}
	}
}

func TestLoad_ScriptDeclarationsMerge(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"extra/init.lua": `
			Core.InitializationInfo.GameData.core = {
				stone = {
					priority = 3,
					tile = { solid = false, world_gen_weight = 0.9 },
				},
				water = {
					tile = { solid = false },
					visual_data = { character_left = "~", back_color_left = {0, 0, 255} },
				},
			}
		`,
	}
	for k, v := range baseModules {
		files[k] = v
	}
	a, _, _ := newTestApp(t, files)

	// --- Act ---
	require.NoError(t, a.Load(context.Background()))
	reg := a.Current()

	// --- Assert ---
	assert.Equal(t, []string{"core:grass", "core:stone", "core:wall", "core:water"}, tileKeys(t, reg))

	id, _ := reg.IDByName(content.Tile, "core:stone")
	stone, _ := reg.Tile(id)
	assert.False(t, stone.Solid, "the priority 3 script payload wins")
	assert.Equal(t, 0.9, stone.WorldGenWeight)
	assert.Equal(t, '#', stone.Display.Text.Left, "the visual still comes from the file")

	id, _ = reg.IDByName(content.Tile, "core:water")
	water, _ := reg.Tile(id)
	assert.Equal(t, &content.RGB{B: 255}, water.Display.Color.BackLeft)
}

func TestLoad_ScriptsDisabled(t *testing.T) {
	// --- Arrange ---
	root := testutil.WriteModules(t, map[string]string{
		"core/init.lua": `Core.InitializationInfo.GameData.core = { gem = { item = {}, visual_data = {} } }`,
	})
	a, _ := SetupAppTest(t, &Config{ModulesPath: root})

	// --- Act ---
	require.NoError(t, a.Load(context.Background()))

	// --- Assert ---
	assert.Zero(t, a.Current().Len(content.Item))
	_, err := a.Eval(context.Background(), "return 1")
	assert.ErrorIs(t, err, ErrScriptsDisabled)
}

type fakeMergePoint struct {
	decls []config.ScriptDeclaration
	calls int
}

func (f *fakeMergePoint) PostCollection(_ context.Context, _ string) ([]config.ScriptDeclaration, error) {
	f.calls++
	return f.decls, nil
}

func TestLoad_CustomMergePoint(t *testing.T) {
	// --- Arrange ---
	solid := false
	mp := &fakeMergePoint{decls: []config.ScriptDeclaration{{
		Module: "core",
		NamedDeclaration: config.NamedDeclaration{
			Name:   "bridge",
			Origin: "test:core/bridge",
			Decl: &config.Declaration{
				Ground:     &config.TerrainDecl{Solid: &solid},
				VisualData: &config.VisualDecl{},
			},
		},
	}}}
	a, _, _ := newTestApp(t, baseModules, WithMergePoint(mp))

	// --- Act ---
	require.NoError(t, a.Load(context.Background()))

	// --- Assert ---
	assert.Equal(t, 1, mp.calls)
	assert.Equal(t, []string{"core:bridge"}, a.Current().Keys(content.Ground))
}

func TestEval_ScriptsSeeCurrentRegistry(t *testing.T) {
	a, _, _ := newTestApp(t, baseModules)
	require.NoError(t, a.Load(context.Background()))

	got, err := a.Eval(context.Background(), `
		local id = Core.GameInfo.Tile.Identifiers.get("core:stone")
		return Core.GameInfo.Tile.Types.get(id).world_gen_weight
	`)

	require.NoError(t, err)
	assert.Equal(t, 0.4, got)
}

func TestEval_CoreReloadRebuilds(t *testing.T) {
	// --- Arrange ---
	a, logs, root := newTestApp(t, baseModules)
	require.NoError(t, a.Load(context.Background()))
	testutil.WriteFiles(t, root, map[string]string{
		"core/tiles/sand.hcl": `
			tile {}
			visual_data { character_left = "." }
		`,
	})

	// --- Act ---
	_, err := a.Eval(context.Background(), `Core.reload()`)

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, tileKeys(t, a.Current()), "core:sand")
	testutil.AssertLogged(t, logs.String(), "Reload requested by script.", "Content registry reloaded.")
}

func TestReload_NoOpKeepsKeys(t *testing.T) {
	// --- Arrange ---
	a, _, _ := newTestApp(t, baseModules)
	require.NoError(t, a.Load(context.Background()))
	before := a.Current()

	// --- Act ---
	stats, err := a.Reload(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	after := a.Current()
	assert.NotSame(t, before, after, "reload installs a new registry")
	assert.Equal(t, before.Stats(), stats)
	for _, cat := range content.RegisteredCategories {
		if diff := cmp.Diff(before.Keys(cat), after.Keys(cat)); diff != "" {
			t.Errorf("%s keys changed (-before +after):\n%s", cat, diff)
		}
	}
}

func TestReload_PicksUpChanges(t *testing.T) {
	// --- Arrange ---
	a, logs, root := newTestApp(t, baseModules)
	require.NoError(t, a.Load(context.Background()))

	testutil.WriteFiles(t, root, map[string]string{
		"core/tiles/lava.hcl": `
			tile { solid = false }
			visual_data { character_left = "~" }
		`,
	})

	// --- Act ---
	_, err := a.Reload(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, tileKeys(t, a.Current()), "core:lava")
	testutil.AssertLogged(t, logs.String(), "Content registry reloaded.")
}

func TestReload_FailureKeepsPreviousRegistry(t *testing.T) {
	// --- Arrange ---
	a, logs, root := newTestApp(t, baseModules)
	require.NoError(t, a.Load(context.Background()))
	before := a.Current()
	testutil.WriteFiles(t, root, map[string]string{"core/broken.hcl": `tile { solid = }`})

	// --- Act ---
	_, err := a.Reload(context.Background())

	// --- Assert ---
	require.Error(t, err)
	assert.Same(t, before, a.Current())
	testutil.AssertLogged(t, logs.String(), "Reload failed, keeping the previous registry.")
}

func TestReload_ConcurrentReaders(t *testing.T) {
	a, _, _ := newTestApp(t, baseModules)
	require.NoError(t, a.Load(context.Background()))
	view := a.View()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				reg := view.Current()
				id, ok := reg.IDByName(content.Tile, "core:stone")
				if assert.True(t, ok) {
					_, err := reg.Get(content.Tile, id)
					assert.NoError(t, err)
				}
			}
		}()
	}
	for i := 0; i < 3; i++ {
		_, err := a.Reload(context.Background())
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestMapping_RestoresIdsForUnchangedTree(t *testing.T) {
	// --- Arrange ---
	store := inmemorystore.New()
	root := testutil.WriteModules(t, baseModules)

	first, _ := SetupAppTest(t, &Config{ModulesPath: root, ScriptsEnabled: true}, WithStore(store))
	require.NoError(t, first.Load(context.Background()))

	second, logs := SetupAppTest(t, &Config{ModulesPath: root, ScriptsEnabled: true}, WithStore(store))

	// --- Act ---
	require.NoError(t, second.Load(context.Background()))

	// --- Assert ---
	testutil.AssertLogged(t, logs.String(), "Mapping: registry restored.")
	for _, cat := range content.RegisteredCategories {
		for _, key := range first.Current().Keys(cat) {
			want, _ := first.Current().IDByName(cat, key)
			got, ok := second.Current().IDByName(cat, key)
			require.True(t, ok)
			assert.Equal(t, want, got, "%s %s", cat, key)
		}
	}
	_, err := second.Eval(context.Background(), "return 1")
	assert.NoError(t, err, "scripts still run on a restored registry")
}

func TestMapping_ChangedTreeRebuilds(t *testing.T) {
	// --- Arrange ---
	store := inmemorystore.New()
	a, logs, root := newTestApp(t, baseModules, WithStore(store))
	require.NoError(t, a.Load(context.Background()))
	testutil.WriteFiles(t, root, map[string]string{
		"core/tiles/sand.hcl": `
			tile {}
			visual_data {}
		`,
	})

	// --- Act ---
	_, err := a.Reload(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, tileKeys(t, a.Current()), "core:sand")
	assert.Equal(t, 2, strings.Count(logs.String(), "Mapping: unavailable, rebuilding from scratch."),
		"both the first load and the reload miss the cache")
}

func TestMapping_ScriptsToggleRebuilds(t *testing.T) {
	files := map[string]string{
		"core/init.lua": `
			Core.InitializationInfo.GameData.core = {
				ruby = { tile = {}, visual_data = { character_left = "*" } },
			}
		`,
	}
	for k, v := range baseModules {
		files[k] = v
	}

	testCases := []struct {
		name       string
		firstRun   bool
		secondRun  bool
		expectRuby bool
	}{
		{name: "disabling scripts drops script entries", firstRun: true, secondRun: false, expectRuby: false},
		{name: "enabling scripts adds script entries", firstRun: false, secondRun: true, expectRuby: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			store := inmemorystore.New()
			root := testutil.WriteModules(t, files)

			first, _ := SetupAppTest(t, &Config{ModulesPath: root, ScriptsEnabled: tc.firstRun}, WithStore(store))
			require.NoError(t, first.Load(context.Background()))
			second, logs := SetupAppTest(t, &Config{ModulesPath: root, ScriptsEnabled: tc.secondRun}, WithStore(store))

			// --- Act ---
			require.NoError(t, second.Load(context.Background()))

			// --- Assert ---
			testutil.AssertNotLogged(t, logs.String(), "Mapping: registry restored.")
			_, hasRuby := second.Current().IDByName(content.Tile, "core:ruby")
			assert.Equal(t, tc.expectRuby, hasRuby)
		})
	}
}

func TestMapping_SQLiteStore(t *testing.T) {
	// --- Arrange ---
	root := testutil.WriteModules(t, baseModules)
	cfg := &Config{ModulesPath: root, MappingPath: t.TempDir() + "/mapping.db"}
	first, _ := SetupAppTest(t, cfg)
	require.NoError(t, first.Load(context.Background()))
	require.NoError(t, first.Close())

	second, logs := SetupAppTest(t, &Config{ModulesPath: root, MappingPath: cfg.MappingPath})

	// --- Act ---
	require.NoError(t, second.Load(context.Background()))

	// --- Assert ---
	testutil.AssertLogged(t, logs.String(), "Mapping: registry restored.")
	assert.Equal(t, first.Current().Stats(), second.Current().Stats())
}
