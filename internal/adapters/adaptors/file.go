package adaptors

import (
	"context"

	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileRunner = (*FileRunner)(nil)

// FileRunner executes task files with the interpreter matching their extension.
type FileRunner struct {
	executor ports.Executor
}

// NewFileRunner creates a new FileRunner.
func NewFileRunner(executor ports.Executor) *FileRunner {
	return &FileRunner{executor: executor}
}

// CreateFile returns an emitter runnable executing path in the working directory.
func (f *FileRunner) CreateFile(path string, _ *domain.Task, trigger *domain.Trigger) domain.Runnable {
	dir := workDir(trigger)

	return domain.EmitterFunc(func(ctx context.Context, opts domain.Options) (<-chan domain.Event, error) {
		prefix, ok := domain.InterpreterFor(path)
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrFileTypeNotSupported, "no interpreter"), "path", path)
		}

		cmd := ports.Command{Name: path, Dir: dir, Env: optionEnv(opts)}
		if len(prefix) > 0 {
			cmd.Name = prefix[0]
			cmd.Args = append(prefix[1:], path)
		}

		return emitProcess(ctx, f.executor, cmd)
	})
}
