package fs_test

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crossbow/internal/adapters/fs"
)

func newHasher() *fs.Hasher {
	return fs.NewHasher(fs.NewWalker())
}

func TestHasher_HashPath_File(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a.txt")
	b := filepath.Join(tmpDir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("same"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("same"), 0o600))

	h := newHasher()
	hashA, err := h.HashPath(a)
	require.NoError(t, err)
	hashB, err := h.HashPath(b)
	require.NoError(t, err)

	assert.Len(t, hashA, 16)
	assert.Equal(t, hashA, hashB, "identical content must hash identically")

	require.NoError(t, os.WriteFile(a, []byte("different"), 0o600))
	changed, err := h.HashPath(a)
	require.NoError(t, err)
	assert.NotEqual(t, hashA, changed)
}

func TestHasher_HashPath_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(src, "main.css"), []byte("body{}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "x.css"), []byte("a{}"), 0o600))

	h := newHasher()
	first, err := h.HashPath(src)
	require.NoError(t, err)

	again, err := h.HashPath(src)
	require.NoError(t, err)
	assert.Equal(t, first, again, "hashing must be deterministic")

	t.Run("content change", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "x.css"), []byte("a{color:red}"), 0o600))
		got, err := h.HashPath(src)
		require.NoError(t, err)
		assert.NotEqual(t, first, got)
	})

	t.Run("rename changes digest", func(t *testing.T) {
		before, err := h.HashPath(src)
		require.NoError(t, err)
		require.NoError(t, os.Rename(filepath.Join(src, "main.css"), filepath.Join(src, "site.css")))
		after, err := h.HashPath(src)
		require.NoError(t, err)
		assert.NotEqual(t, before, after)
	})
}

func TestHasher_HashPath_DirectoryIsLocationIndependent(t *testing.T) {
	h := newHasher()
	hashes := make([]string, 0, 2)

	for range 2 {
		dir := filepath.Join(t.TempDir(), "assets")
		require.NoError(t, os.MkdirAll(dir, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.svg"), []byte("<svg/>"), 0o600))

		sum, err := h.HashPath(dir)
		require.NoError(t, err)
		hashes = append(hashes, sum)
	}

	assert.Equal(t, hashes[0], hashes[1])
}

func TestHasher_HashPath_Missing(t *testing.T) {
	_, err := newHasher().HashPath(filepath.Join(t.TempDir(), "nope"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, iofs.ErrNotExist))
}
