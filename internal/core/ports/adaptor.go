package ports

import "go.trai.ch/crossbow/internal/core/domain"

// Adaptor turns an "@name command" task into a runnable.
//
//go:generate mockgen -source=adaptor.go -destination=mocks/mock_adaptor.go -package=mocks
type Adaptor interface {
	// Validate reports whether the adaptor can run the task.
	Validate(task *domain.Task, trigger *domain.Trigger) bool
	// Create returns the runnable for the task.
	Create(task *domain.Task, trigger *domain.Trigger) domain.Runnable
}

// AdaptorRegistry is the capability set of known adaptors.
type AdaptorRegistry interface {
	// Lookup returns the adaptor registered under name.
	Lookup(name string) (Adaptor, bool)
	// Names returns the registered adaptor names, sorted.
	Names() []string
}

// FileRunner creates runnables for task files.
type FileRunner interface {
	// CreateFile returns the runnable executing path on behalf of task.
	CreateFile(path string, task *domain.Task, trigger *domain.Trigger) domain.Runnable
}
