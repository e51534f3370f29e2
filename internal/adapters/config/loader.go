// Package config loads crossbow.yaml into the domain configuration tree.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration. An explicit path must exist; otherwise the
// nearest crossbow.yaml (or crossbow.yml) in cwd or its ancestors is used, and
// an empty configuration rooted at cwd is returned when there is none.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "explicit configuration path"), "path", path)
			}
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
		}
		return l.loadFile(path)
	}

	found, ok := findConfiguration(cwd)
	if !ok {
		l.Logger.Debug("no configuration file found, using an empty configuration")
		return domain.NewConfig(cwd), nil
	}

	return l.loadFile(found)
}

func findConfiguration(cwd string) (string, bool) {
	current := cwd
	for {
		for _, name := range domain.ConfigFileNames() {
			candidate := filepath.Join(current, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is the discovered or user supplied config file
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Crossbowfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	tasks, err := decodeTasks(&file.Tasks)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	options, err := decodeOptions(&file.Options)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	cfg := domain.NewConfig(filepath.Dir(path))
	cfg.Path = path
	cfg.Tasks = tasks
	cfg.Options = options
	if file.Config != nil {
		if file.Config.Fail != nil {
			cfg.Settings.FailOnError = *file.Config.Fail
		}
		if file.Config.Parallel != nil {
			cfg.Settings.Parallel = *file.Config.Parallel
		}
	}

	l.Logger.Debug("loaded configuration from " + path)

	return cfg, nil
}
