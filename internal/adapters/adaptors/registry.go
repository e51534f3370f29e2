// Package adaptors turns adaptor tasks ("@sh make") and task files into runnables.
package adaptors

import (
	"slices"

	"go.trai.ch/crossbow/internal/core/ports"
)

var _ ports.AdaptorRegistry = (*Registry)(nil)

// Registry maps adaptor names to adaptors.
type Registry struct {
	adaptors map[string]ports.Adaptor
}

// NewRegistry returns a registry holding the built-in adaptors backed by executor.
func NewRegistry(executor ports.Executor) *Registry {
	r := &Registry{adaptors: make(map[string]ports.Adaptor)}

	shell := &CommandAdaptor{executor: executor}
	r.Register("shell", shell)
	r.Register("sh", shell)
	r.Register("npm", &CommandAdaptor{executor: executor, nodeBin: true})
	r.Register("bg", &BackgroundAdaptor{executor: executor})

	return r
}

// Register adds or replaces the adaptor stored under name.
func (r *Registry) Register(name string, a ports.Adaptor) {
	r.adaptors[name] = a
}

// Lookup returns the adaptor registered under name.
func (r *Registry) Lookup(name string) (ports.Adaptor, bool) {
	a, ok := r.adaptors[name]
	return a, ok
}

// Names returns the registered adaptor names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adaptors))
	for name := range r.adaptors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
