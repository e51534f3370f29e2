package ports

import (
	"context"
	"io"
)

// Command describes a process to spawn.
type Command struct {
	// Name is the program to run. It is looked up in the PATH of Env.
	Name string
	Args []string
	Dir  string
	// Env holds KEY=VALUE pairs applied over the inherited environment.
	// A PATH entry is prepended to the inherited PATH.
	Env []string
}

// Process is a running command.
type Process interface {
	// Wait blocks until the process exits. A non-zero exit is reported as a
	// *domain.ExitError.
	Wait() error
	// Pid returns the operating system process id.
	Pid() int
}

// Executor spawns processes and tracks the ones still running.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Start launches cmd with its output copied to stdout and stderr.
	Start(ctx context.Context, cmd Command, stdout, stderr io.Writer) (Process, error)
	// Execute runs cmd to completion.
	Execute(ctx context.Context, cmd Command, stdout, stderr io.Writer) error
	// TerminateAll signals every process that is still running and waits for it to exit.
	TerminateAll()
}
