package ports

import "go.trai.ch/crossbow/internal/core/domain"

// HistoryStore persists the change-detection manifest.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type HistoryStore interface {
	// Load reads the manifest below root. A missing manifest yields an empty history.
	Load(root string) (*domain.History, error)
	// Save replaces the manifest below root.
	Save(root string, history *domain.History) error
}
