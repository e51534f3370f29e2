// Package changes decides which tasks can be skipped because their watched
// inputs are unchanged since the last run.
package changes

import (
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"

	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Tracker compares content digests of watched paths against the history manifest.
type Tracker struct {
	hasher ports.Hasher
	store  ports.HistoryStore
	logger ports.Logger
}

// NewTracker creates a new Tracker.
func NewTracker(hasher ports.Hasher, store ports.HistoryStore, logger ports.Logger) *Tracker {
	return &Tracker{hasher: hasher, store: store, logger: logger}
}

// Evaluate hashes every distinct path, resolved against cwd, and compares it
// with the manifest below cwd. A path without a previous record or with a
// different digest is changed. A path that cannot be hashed is recorded with
// an empty digest and always counts as changed.
func (t *Tracker) Evaluate(paths []string, cwd string) ([]domain.HashRecord, error) {
	history, err := t.store.Load(cwd)
	if err != nil {
		return nil, err
	}

	records := distinct(paths, cwd)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range records {
		g.Go(func() error {
			t.evaluate(&records[i], history)
			return nil
		})
	}
	_ = g.Wait()

	return records, nil
}

func (t *Tracker) evaluate(rec *domain.HashRecord, history *domain.History) {
	hash, err := t.hasher.HashPath(rec.Resolved)
	if err != nil {
		msg := "cannot hash " + rec.UserInput + ", treating it as changed"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "watched path " + rec.UserInput + " does not exist, treating it as changed"
		}
		t.logger.Warn(msg)
		rec.Hash = ""
		rec.Changed = true
		return
	}

	prev, ok := history.Find(rec.Resolved)
	rec.Hash = hash
	rec.Changed = !ok || prev.Hash != hash
}

// Persist merges records into the manifest below cwd and rewrites it.
// Records for paths not evaluated in this run are kept.
func (t *Tracker) Persist(records []domain.HashRecord, cwd string) error {
	if len(records) == 0 {
		return nil
	}

	history, err := t.store.Load(cwd)
	if err != nil {
		return err
	}
	history.Merge(records)

	if err := t.store.Save(cwd, history); err != nil {
		return zerr.With(err, "records", len(records))
	}
	t.logger.Debug("updated history for " + filepath.Join(cwd, domain.DefaultHistoryPath()))
	return nil
}

// Resolve returns the absolute, cleaned form of path relative to cwd.
func Resolve(path, cwd string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(cwd, path)
}

func distinct(paths []string, cwd string) []domain.HashRecord {
	seen := make(map[string]bool, len(paths))
	out := make([]domain.HashRecord, 0, len(paths))
	for _, p := range paths {
		resolved := Resolve(p, cwd)
		if seen[resolved] {
			continue
		}
		seen[resolved] = true
		out = append(out, domain.HashRecord{UserInput: p, Resolved: resolved})
	}
	return out
}
