package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes xxhash digests of files and directory trees.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// HashPath returns the hex digest of path. For a directory the digest covers
// the sorted relative paths of its files and their content digests, so renames
// and edits both change it.
func (h *Hasher) HashPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
	}

	if !info.IsDir() {
		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%016x", sum), nil
	}

	digest := xxhash.New()
	for file := range h.walker.WalkFiles(path, nil) {
		rel, err := filepath.Rel(path, file)
		if err != nil {
			rel = file
		}
		if err := h.hashEntry(digest, filepath.ToSlash(rel), file); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

// ComputeFileHash streams a file's content through xxhash.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return digest.Sum64(), nil
}

func (h *Hasher) hashEntry(main io.Writer, rel, file string) error {
	_, _ = main.Write([]byte(rel))
	_, _ = main.Write([]byte{0})

	sum, err := h.ComputeFileHash(file)
	if err != nil {
		return err
	}

	if err := binary.Write(main, binary.LittleEndian, sum); err != nil {
		return zerr.Wrap(err, domain.ErrWriteHashFailed.Error())
	}
	return nil
}
