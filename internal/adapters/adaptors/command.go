package adaptors

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports"
)

// CommandAdaptor runs the task command with sh -c and streams its output.
type CommandAdaptor struct {
	executor ports.Executor
	// nodeBin prepends <cwd>/node_modules/.bin to PATH.
	nodeBin bool
}

// Validate reports whether the task carries a command.
func (a *CommandAdaptor) Validate(task *domain.Task, _ *domain.Trigger) bool {
	return task.Adaptor != nil && strings.TrimSpace(task.Adaptor.Command) != ""
}

// Create returns an emitter runnable executing the command in the working directory.
func (a *CommandAdaptor) Create(task *domain.Task, trigger *domain.Trigger) domain.Runnable {
	dir := workDir(trigger)
	var extra []string
	if a.nodeBin {
		extra = append(extra, "PATH="+filepath.Join(dir, domain.NodeBinDir))
	}

	return domain.EmitterFunc(func(ctx context.Context, opts domain.Options) (<-chan domain.Event, error) {
		return emitProcess(ctx, a.executor, ports.Command{
			Name: "sh",
			Args: []string{"-c", task.Adaptor.Command},
			Dir:  dir,
			Env:  append(optionEnv(opts), extra...),
		})
	})
}

// BackgroundAdaptor starts the task command and completes as soon as it is running.
// The process is left to the executor, which terminates it when the run ends.
type BackgroundAdaptor struct {
	executor ports.Executor
}

// Validate reports whether the task carries a command.
func (a *BackgroundAdaptor) Validate(task *domain.Task, _ *domain.Trigger) bool {
	return task.Adaptor != nil && strings.TrimSpace(task.Adaptor.Command) != ""
}

// Create returns a future runnable that resolves once the process has started.
func (a *BackgroundAdaptor) Create(task *domain.Task, trigger *domain.Trigger) domain.Runnable {
	dir := workDir(trigger)

	return domain.FutureFunc(func(ctx context.Context, opts domain.Options) <-chan error {
		result := make(chan error, 1)
		_, err := a.executor.Start(ctx, ports.Command{
			Name: "sh",
			Args: []string{"-c", task.Adaptor.Command},
			Dir:  dir,
			Env:  optionEnv(opts),
		}, nil, nil)
		result <- err
		close(result)
		return result
	})
}

func workDir(trigger *domain.Trigger) string {
	if trigger == nil {
		return ""
	}
	if trigger.Cwd != "" {
		return trigger.Cwd
	}
	if trigger.Config != nil {
		return trigger.Config.Root
	}
	return ""
}
