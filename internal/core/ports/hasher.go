package ports

// Hasher computes content digests for change detection.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashPath returns the digest of a file, or of every file below a directory.
	// A missing path yields an error satisfying errors.Is(err, fs.ErrNotExist).
	HashPath(path string) (string, error)
}
