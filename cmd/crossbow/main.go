// Package main is the entry point for the crossbow task runner.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/crossbow/cmd/crossbow/commands"
	"go.trai.ch/crossbow/internal/app"
	"go.trai.ch/crossbow/internal/core/domain"
	_ "go.trai.ch/crossbow/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	// 2. Interface - CLI
	settings, _ := components.Logger.(commands.LogSettings)
	cli := commands.New(components.App, settings)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		return exitCode(err, components)
	}
	return 0
}

// exitCode maps a command error to the process exit status. Failures the
// reporter already presented are not logged again.
func exitCode(err error, components *app.Components) int {
	switch {
	case errors.Is(err, domain.ErrBuildExecutionFailed):
		if code, ok := domain.ExitCodeOf(err); ok && code != 0 {
			return code
		}
		return 1
	case errors.Is(err, domain.ErrResolutionFailed):
		return 1
	default:
		components.Logger.Error(err)
		return 1
	}
}
