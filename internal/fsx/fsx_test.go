package fsx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic_CreatesAndReplaces(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stats")

	require.NoError(t, WriteFileAtomic(dir, "run.json", []byte(`{"a":1}`)))
	require.NoError(t, WriteFileAtomic(dir, "run.json", []byte(`{"a":2}`)))

	got, err := os.ReadFile(filepath.Join(dir, "run.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestCopyFileNoOverwrite(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := filepath.Join(srcDir, "paper.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.7 original"), 0o640))
	old := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, old, old))

	require.NoError(t, CopyFileNoOverwrite(src, dstDir, "paper.pdf"))

	dst := filepath.Join(dstDir, "paper.pdf")
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 original", string(got))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))

	// Source still in place: copy, never move.
	_, err = os.Stat(src)
	assert.NoError(t, err)
}

func TestCopyFileNoOverwrite_Exists(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := filepath.Join(srcDir, "paper.pdf")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dstDir, "paper.pdf"), []byte("first"), 0o644))

	err := CopyFileNoOverwrite(src, dstDir, "paper.pdf")
	assert.ErrorIs(t, err, os.ErrExist)

	got, err := os.ReadFile(filepath.Join(dstDir, "paper.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))
}

func TestCopyFileNoOverwrite_MissingSource(t *testing.T) {
	dstDir := t.TempDir()
	err := CopyFileNoOverwrite(filepath.Join(t.TempDir(), "gone.pdf"), dstDir, "gone.pdf")
	assert.Error(t, err)

	entries, err := os.ReadDir(dstDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
