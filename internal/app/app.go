// Package app implements the application layer for crossbow.
package app

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/crossbow/internal/adapters/telemetry"
	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports"
	"go.trai.ch/crossbow/internal/engine/changes"
	"go.trai.ch/crossbow/internal/engine/resolver"
	"go.trai.ch/crossbow/internal/engine/runner"
	"go.trai.ch/crossbow/internal/engine/sequence"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	registry     ports.AdaptorRegistry
	locator      ports.TaskLocator
	builder      *sequence.Builder
	tracker      *changes.Tracker
	runner       *runner.Runner
	reporter     ports.Reporter
	executor     ports.Executor
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	registry ports.AdaptorRegistry,
	locator ports.TaskLocator,
	builder *sequence.Builder,
	tracker *changes.Tracker,
	run *runner.Runner,
	reporter ports.Reporter,
	executor ports.Executor,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		registry:     registry,
		locator:      locator,
		builder:      builder,
		tracker:      tracker,
		runner:       run,
		reporter:     reporter,
		executor:     executor,
		logger:       log,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Cwd is the directory tasks are resolved from. Empty means the process working directory.
	Cwd string
	// ConfigPath selects an explicit configuration file.
	ConfigPath string
	Parallel   bool
	Force      bool
	// FailOnError overrides the configured setting when not nil.
	FailOnError *bool
}

// Run resolves, plans and executes the named tasks.
//
// Resolution failures are reported together and nothing runs; the returned
// error is ErrResolutionFailed. When a task fails and fail-on-error is in
// effect, the returned error wraps ErrBuildExecutionFailed and carries the
// process exit code.
//
//nolint:cyclop // orchestration function
func (a *App) Run(ctx context.Context, names []string, opts RunOptions) error {
	if len(names) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	cwd, err := workingDir(opts.Cwd)
	if err != nil {
		return err
	}

	// 1. Load the configuration
	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	failOnError := cfg.Settings.FailOnError
	if opts.FailOnError != nil {
		failOnError = *opts.FailOnError
	}

	trigger := &domain.Trigger{
		Input: domain.Input{
			Names:       names,
			Parallel:    opts.Parallel || cfg.Settings.Parallel,
			Force:       opts.Force,
			FailOnError: failOnError,
		},
		Config: cfg,
		Cwd:    cwd,
	}

	// 2. Resolve every name before anything runs
	resolution := resolver.New(a.registry, a.locator).Resolve(names, trigger)
	if len(resolution.Invalid) > 0 {
		a.reporter.OnResolution(domain.Failures(resolution.Invalid))
		return zerr.With(zerr.Wrap(domain.ErrResolutionFailed, "unresolved tasks"), "invalid", len(resolution.Invalid))
	}

	// 3. Build the plan
	plan, err := a.builder.Build(resolution.Valid, trigger)
	if err != nil {
		return zerr.Wrap(err, "failed to build execution plan")
	}

	// 4. Skip tasks whose watched inputs are unchanged
	var records []domain.HashRecord
	if paths := changes.CollectPaths(plan); len(paths) > 0 {
		records, err = a.tracker.Evaluate(paths, cfg.Root)
		if err != nil {
			return zerr.Wrap(err, "failed to evaluate watched paths")
		}
		plan = changes.Annotate(plan, records, cfg.Root, opts.Force)
	}

	// 5. Execute
	tp := setupOTel(telemetry.NewBridge(a.logger))
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()
	defer a.executor.TerminateAll()

	summary, err := a.runner.Run(ctx, plan, trigger.Mode(), a.reporter.OnReport)
	if err != nil {
		return err
	}
	a.reporter.OnSummary(summary)

	// 6. Record the inputs of tasks that settled
	if err := a.tracker.Persist(changes.Settled(summary.Plan, records, cfg.Root), cfg.Root); err != nil {
		a.logger.Warn("failed to update change history: " + err.Error())
	}

	if code := summary.ExitCode(failOnError); code != 0 {
		return &domain.ExitError{
			Code: code,
			Err:  zerr.With(zerr.Wrap(domain.ErrBuildExecutionFailed, "tasks failed"), "failed", len(summary.Errors)),
		}
	}
	return nil
}

// TaskInfo describes a configured task.
type TaskInfo struct {
	Name        string
	Description string
}

// Tasks lists the configured tasks in configuration order.
func (a *App) Tasks(cwd, configPath string) ([]TaskInfo, error) {
	dir, err := workingDir(cwd)
	if err != nil {
		return nil, err
	}

	cfg, err := a.configLoader.Load(dir, configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	keys := cfg.Tasks.Keys()
	out := make([]TaskInfo, 0, len(keys))
	for _, k := range keys {
		v, _ := cfg.Tasks.Get(k)
		out = append(out, TaskInfo{Name: k, Description: describe(v)})
	}
	return out, nil
}

func describe(v domain.TaskValue) string {
	switch v.Kind {
	case domain.GroupLiteral:
		return v.Group.Description
	case domain.StringRef:
		return v.Ref
	default:
		return ""
	}
}

func workingDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to determine working directory")
	}
	return wd, nil
}

// setupOTel configures the OpenTelemetry SDK with the logging bridge.
func setupOTel(bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp
}
