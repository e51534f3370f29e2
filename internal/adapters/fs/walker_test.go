package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crossbow/internal/adapters/fs"
)

func collect(w *fs.Walker, root string, ignores []string) []string {
	var files []string
	for p := range w.WalkFiles(root, ignores) {
		files = append(files, p)
	}
	return files
}

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "b"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "a"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "b", "two.txt"), []byte("2"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a", "one.txt"), []byte("1"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "root.txt"), []byte("r"), 0o600))

	files := collect(fs.NewWalker(), tmpDir, nil)

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "a", "one.txt"),
		filepath.Join(tmpDir, "b", "two.txt"),
		filepath.Join(tmpDir, "root.txt"),
	}, files)
}

func TestWalker_WalkFiles_SkipsMetadataDirs(t *testing.T) {
	tmpDir := t.TempDir()

	for _, dir := range []string{".git", ".jj", ".crossbow", "src"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, dir), 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, dir, "file"), []byte(dir), 0o600))
	}

	files := collect(fs.NewWalker(), tmpDir, nil)

	assert.Equal(t, []string{filepath.Join(tmpDir, "src", "file")}, files)
}

func TestWalker_WalkFiles_Ignores(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "dist"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "dist", "bundle.js"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "main.go"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.tmp"), []byte("x"), 0o600))

	files := collect(fs.NewWalker(), tmpDir, []string{"dist", "*.tmp"})

	assert.Equal(t, []string{filepath.Join(tmpDir, "main.go")}, files)
}

func TestWalker_WalkFiles_EarlyStop(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte(name), 0o600))
	}

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir, nil) {
		count++
		if count == 2 {
			break
		}
	}

	assert.Equal(t, 2, count)
}
