package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func TestFindFilesByExtension_SortedAndFiltered(t *testing.T) {
	// --- Arrange ---
	root := t.TempDir()
	writeFile(t, root, "b/z.hcl", "")
	writeFile(t, root, "a/nested/y.hcl", "")
	writeFile(t, root, "a/readme.md", "")

	// --- Act ---
	files, err := FindFilesByExtension(root, ".hcl")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a/nested/y.hcl"),
		filepath.Join(root, "b/z.hcl"),
	}, files)
}

func TestListModules_IgnoresFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "zeta/a.hcl", "")
	writeFile(t, root, "core/b.hcl", "")
	writeFile(t, root, "stray.hcl", "")

	mods, err := ListModules(root)

	require.NoError(t, err)
	assert.Equal(t, []string{"core", "zeta"}, mods)
}

func TestListModules_MissingRoot(t *testing.T) {
	_, err := ListModules(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	// --- Arrange ---
	root := t.TempDir()
	writeFile(t, root, "core/stone.hcl", "tile {}")
	writeFile(t, root, "core/init.lua", "-- empty")
	writeFile(t, root, "core/notes.txt", "ignored")

	// --- Act ---
	first, err := Fingerprint(root, ".hcl", ".lua")
	require.NoError(t, err)
	writeFile(t, root, "core/notes.txt", "still ignored")
	second, err := Fingerprint(root, ".hcl", ".lua")
	require.NoError(t, err)
	writeFile(t, root, "core/stone.hcl", "tile { solid = false }")
	third, err := Fingerprint(root, ".hcl", ".lua")
	require.NoError(t, err)

	// --- Assert ---
	assert.Len(t, first, 16)
	assert.Equal(t, first, second, "unrelated files must not change the fingerprint")
	assert.NotEqual(t, first, third)
}
