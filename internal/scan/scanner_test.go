package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func paths(files []FileInfo) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func TestScanPaths_Directory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "a.TXT"), "aa")
	writeFile(t, filepath.Join(root, "notes.md"), "skip")
	writeFile(t, filepath.Join(root, "group", "c.txt"), "c")
	writeFile(t, filepath.Join(root, ".cache", "d.txt"), "hidden")

	files, err := ScanPaths(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a.TXT"),
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "group", "c.txt"),
	}, paths(files))
	assert.Equal(t, int64(2), files[0].Size)
	assert.Positive(t, files[0].Mtime)
}

func TestScanPaths_ExplicitFileAnyExtension(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "export.log")
	writeFile(t, file, "x")

	files, err := ScanPaths(file)
	require.NoError(t, err)
	assert.Equal(t, []string{file}, paths(files))
}

func TestScanPaths_Dedup(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "chat.txt")
	writeFile(t, file, "x")

	files, err := ScanPaths(file, root)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestScanPaths_Missing(t *testing.T) {
	_, err := ScanPaths(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
