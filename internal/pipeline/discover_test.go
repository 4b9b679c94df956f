package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func TestDiscover_FiltersExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "thesis.pdf")
	touch(t, dir, "notes.txt")
	touch(t, dir, "scan.PDF")
	touch(t, dir, "pdf")
	touch(t, dir, "draft.pdf.bak")

	files, err := Discover(dir, ".pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"scan.PDF", "thesis.pdf"}, basenames(files))
}

func TestDiscover_RecursiveAndSorted(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "z.pdf")
	touch(t, dir, "ch2/b.pdf")
	touch(t, dir, "ch1/deep/a.pdf")
	touch(t, dir, "a.pdf")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty.pdf"), 0o755))

	files, err := Discover(dir, ".pdf")
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.pdf"),
		filepath.Join(dir, "ch1/deep/a.pdf"),
		filepath.Join(dir, "ch2/b.pdf"),
		filepath.Join(dir, "z.pdf"),
	}
	assert.Equal(t, want, files)
}

func TestDiscover_Empty(t *testing.T) {
	files, err := Discover(t.TempDir(), ".pdf")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), ".pdf")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildItems_Paths(t *testing.T) {
	layout := Layout{OutputBase: "/out", ArtifactExt: "md"}
	items := BuildItems([]string{"/in/ch1/Thesis.pdf"}, layout)
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, "/in/ch1/Thesis.pdf", it.Path)
	assert.Equal(t, "Thesis", it.Name)
	assert.Equal(t, "/out/processed/Thesis", it.OutputDir)
	assert.Equal(t, "/out/processed/Thesis/Thesis.md", it.ArtifactPath)
	assert.Equal(t, "/out/logs/Thesis.log", it.LogPath)
	assert.Equal(t, "/out/failed/Thesis.pdf", it.FailedPath)
}

func TestBuildItems_Collisions(t *testing.T) {
	layout := Layout{OutputBase: "/out", ArtifactExt: "md"}
	items := BuildItems([]string{"/in/a/intro.pdf", "/in/b/intro.pdf", "/in/c/Intro.pdf"}, layout)

	assert.Equal(t, "intro", items[0].Name)
	assert.Equal(t, "intro - dup1", items[1].Name)
	assert.Equal(t, "Intro - dup2", items[2].Name)
	assert.Equal(t, "/out/failed/intro - dup1.pdf", items[1].FailedPath)
	assert.Equal(t, "/out/logs/Intro - dup2.log", items[2].LogPath)
}

func TestLayout(t *testing.T) {
	base := t.TempDir()
	l := Layout{OutputBase: base, ArtifactExt: "md"}
	require.NoError(t, l.Prepare())
	assert.ElementsMatch(t, []string{"processed", "failed", "logs", "stats"}, listDir(t, base))
	assert.Equal(t, filepath.Join(base, "stats", "processing_stats.json"), l.StatsFile())
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
