package ports

import "go.trai.ch/crossbow/internal/core/domain"

// TaskLocator finds task files on disk.
//
//go:generate mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type TaskLocator interface {
	// Locate searches the lookup locations below cwd for name.
	// ok is false when nothing matched.
	Locate(name, cwd string) (payload *domain.ExternalPayload, ok bool)
	// Supported reports whether a file can be executed.
	Supported(path string) bool
}
