// Package history persists the change-detection manifest.
package history

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.HistoryStore = (*Store)(nil)

// Store keeps the manifest in a single JSON file below the project root.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the manifest. A missing file yields an empty history.
func (s *Store) Load(root string) (*domain.History, error) {
	path := filepath.Join(root, domain.DefaultHistoryPath())

	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the project root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &domain.History{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrHistoryReadFailed.Error()), "path", path)
	}

	var history domain.History
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrHistoryUnmarshalFailed.Error()), "path", path)
	}

	return &history, nil
}

// Save replaces the manifest. The content is written to a temporary file in
// the same directory and renamed over the target, so readers never observe a
// partially written manifest.
func (s *Store) Save(root string, history *domain.History) error {
	if history == nil {
		history = &domain.History{}
	}
	if history.Hashes == nil {
		history = &domain.History{Hashes: []domain.HashRecord{}}
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrHistoryMarshalFailed.Error())
	}
	data = append(data, '\n')

	path := filepath.Join(root, domain.DefaultHistoryPath())
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrHistoryCreateFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, domain.HistoryFileName+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error()), "path", dir)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Removing the temp file fails harmlessly after the rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error()), "path", tmpName)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error()), "path", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error()), "path", tmpName)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error()), "path", path)
	}

	return nil
}
