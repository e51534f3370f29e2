package ports

import "go.trai.ch/crossbow/internal/core/domain"

// ConfigLoader defines the interface for loading the task configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds and parses the configuration for the given working directory.
	// A non-empty path selects an explicit file. When no file is found an
	// empty configuration rooted at cwd is returned.
	Load(cwd, path string) (*domain.Config, error)
}
