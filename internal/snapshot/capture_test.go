package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Hara602/dirSentry/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func snapPaths(s map[string]float64) []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	return paths
}

func TestCaptureWalksTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "sub", "deep", "c.log"), "c")

	snap, err := Capture(dir, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "sub", "b.txt"),
		filepath.Join(dir, "sub", "deep", "c.log"),
	}, snapPaths(snap))
	for _, mtime := range snap {
		assert.Greater(t, mtime, 0.0)
	}
}

func TestCaptureAppliesFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "sub", "c.log"), "c")

	f, err := filter.New([]string{`\.txt$`}, nil)
	require.NoError(t, err)

	snap, err := Capture(dir, f)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "sub", "b.txt"),
	}, snapPaths(snap))
}

func TestCaptureSkipsDirectoriesAndSymlinks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "real.txt"), "x")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "emptydir"), 0755))
	if err := os.Symlink(filepath.Join(dir, "real.txt"), filepath.Join(dir, "link.txt")); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}

	snap, err := Capture(dir, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{filepath.Join(dir, "real.txt")}, snapPaths(snap))
}

func TestCaptureMissingRoot(t *testing.T) {
	_, err := Capture(filepath.Join(t.TempDir(), "nothing-here"), nil)
	assert.ErrorIs(t, err, ErrDirNotFound)
}

func TestCaptureRootIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	writeFile(t, file, "x")

	_, err := Capture(file, nil)
	assert.ErrorIs(t, err, ErrDirNotFound)
}

func TestCaptureMonotonicForUntouchedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")

	first, err := Capture(dir, nil)
	require.NoError(t, err)
	second, err := Capture(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
