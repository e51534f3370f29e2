package fs

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports"
)

var _ ports.TaskLocator = (*Locator)(nil)

// Locator finds task files by name below a working directory.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Candidates returns the lookup locations for name, relative to cwd, in order.
func Candidates(name string) []string {
	return []string{
		filepath.Join(domain.TasksDirName, name+".js"),
		filepath.Join(domain.TasksDirName, name+".sh"),
		filepath.Join(domain.TasksDirName, name),
		name + ".js",
		name + ".sh",
		name,
		filepath.Join(domain.NodeBinDir, name),
	}
}

// Locate returns the first candidate that exists. A directory yields each
// supported file directly inside it, sorted by name.
func (l *Locator) Locate(name, cwd string) (*domain.ExternalPayload, bool) {
	if name == "" {
		return nil, false
	}

	for _, candidate := range Candidates(name) {
		path := filepath.Join(cwd, candidate)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		if !info.IsDir() {
			return &domain.ExternalPayload{Path: path, Units: []string{path}}, true
		}

		return &domain.ExternalPayload{Path: path, Units: l.units(path)}, true
	}

	return nil, false
}

// Supported reports whether path has a known interpreter.
func (l *Locator) Supported(path string) bool {
	_, ok := domain.InterpreterFor(path)
	return ok
}

func (l *Locator) units(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var units []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if l.Supported(path) {
			units = append(units, path)
		}
	}
	slices.Sort(units)
	return units
}
