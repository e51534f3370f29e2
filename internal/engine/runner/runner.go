// Package runner executes sequence plans and reports the lifecycle of every leaf.
package runner

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// OutputFactory returns the writer receiving the output of the leaf with the given label.
type OutputFactory func(label string) io.WriteCloser

// Runner interprets sequence plans.
type Runner struct {
	tracer ports.Tracer
	output OutputFactory
}

// New creates a new Runner. A nil output factory discards task output.
func New(tracer ports.Tracer, output OutputFactory) *Runner {
	if output == nil {
		output = discard
	}
	return &Runner{tracer: tracer, output: output}
}

// Run executes plan with mode applied to its top-level items and blocks until
// every started leaf reached a terminal state. sink is called once per report,
// never concurrently. Task failures are part of the summary; the returned
// error is set only for plans violating the structural contract.
func (r *Runner) Run(
	ctx context.Context,
	plan []domain.SequenceItem,
	mode domain.RunMode,
	sink func(domain.Report),
) (*domain.Summary, error) {
	if err := Validate(plan); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx, span := r.tracer.Start(ctx, "run", ports.WithAttribute("crossbow.run_id", runID))
	defer span.End()

	leaves := domain.Leaves(plan)
	labels := make([]string, len(leaves))
	for i, l := range leaves {
		labels[i] = l.Label
	}
	r.tracer.EmitPlan(ctx, labels)

	x := &execution{runner: r, sink: sink}
	root := &domain.SequenceItem{Kind: domain.KindFor(mode), Items: plan}

	started := time.Now()
	if err := x.begin(ctx, root)(); err != nil {
		span.RecordError(err)
	}

	return &domain.Summary{
		RunID:   runID,
		Reports: x.reports,
		Errors:  x.errors,
		Runtime: time.Since(started),
		Plan:    DecoratePlan(plan, x.reports),
	}, nil
}

// Execution is a run in progress.
type Execution struct {
	reports chan domain.Report
	done    chan struct{}
	summary *domain.Summary
	err     error
}

// Stream starts plan in the background. Reports are buffered so the run never
// waits for the consumer.
func (r *Runner) Stream(ctx context.Context, plan []domain.SequenceItem, mode domain.RunMode) *Execution {
	e := &Execution{
		reports: make(chan domain.Report, 2*len(domain.Leaves(plan))),
		done:    make(chan struct{}),
	}

	go func() {
		defer close(e.done)
		defer close(e.reports)
		e.summary, e.err = r.Run(ctx, plan, mode, func(rep domain.Report) {
			e.reports <- rep
		})
	}()

	return e
}

// Reports returns the report stream in emission order. It is closed when the run ends.
func (e *Execution) Reports() <-chan domain.Report {
	return e.reports
}

// Wait blocks until the run ends and returns its summary.
func (e *Execution) Wait() (*domain.Summary, error) {
	<-e.done
	return e.summary, e.err
}

// execution is the state of a single Run call.
type execution struct {
	runner *Runner
	sink   func(domain.Report)

	mu      sync.Mutex
	reports []domain.Report
	errors  []domain.Report
}

func (x *execution) emit(rep domain.Report) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.reports = append(x.reports, rep)
	if rep.Kind == domain.ReportError {
		x.errors = append(x.errors, rep)
	}
	if x.sink != nil {
		x.sink(rep)
	}
}

// begin emits the start report of every leaf that becomes eligible when it
// starts and returns the function driving it to a terminal state.
func (x *execution) begin(ctx context.Context, it *domain.SequenceItem) func() error {
	switch it.Kind {
	case domain.SequenceSeries:
		return x.series(ctx, it)
	case domain.SequenceParallel:
		return x.parallel(ctx, it)
	default:
		return x.leaf(ctx, it)
	}
}

func (x *execution) series(ctx context.Context, it *domain.SequenceItem) func() error {
	if len(it.Items) == 0 {
		return func() error { return nil }
	}

	first := x.begin(ctx, &it.Items[0])
	return func() error {
		if err := first(); err != nil {
			return err
		}
		for i := 1; i < len(it.Items); i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := x.begin(ctx, &it.Items[i])(); err != nil {
				return err
			}
		}
		return nil
	}
}

func (x *execution) parallel(ctx context.Context, it *domain.SequenceItem) func() error {
	pending := make([]func() error, len(it.Items))
	for i := range it.Items {
		pending[i] = x.begin(ctx, &it.Items[i])
	}

	return func() error {
		errs := make([]error, len(pending))
		var g errgroup.Group
		for i, fn := range pending {
			g.Go(func() error {
				errs[i] = fn()
				return nil
			})
		}
		_ = g.Wait()
		return errors.Join(errs...)
	}
}

func (x *execution) leaf(ctx context.Context, it *domain.SequenceItem) func() error {
	started := time.Now()
	x.emit(domain.Report{
		Kind:      domain.ReportStart,
		ItemID:    it.ID,
		Label:     it.Label,
		Timestamp: started,
		Stats:     &domain.Stats{Started: started},
	})

	return func() error {
		if it.Skip {
			x.finish(it, &domain.Stats{Started: started, Skipped: true})
			return nil
		}

		err := x.invoke(ctx, it)
		x.finish(it, &domain.Stats{Started: started, Err: err})
		return err
	}
}

func (x *execution) invoke(ctx context.Context, it *domain.SequenceItem) error {
	opts := []ports.SpanOption{ports.WithAttribute("crossbow.item_id", it.ID)}
	if it.Task != nil {
		opts = append(opts, ports.WithAttribute("crossbow.task_type", string(it.Task.Type)))
	}
	if it.SubTask != "" {
		opts = append(opts, ports.WithAttribute("crossbow.sub_task", it.SubTask))
	}

	ctx, span := x.runner.tracer.Start(ctx, it.Label, opts...)
	defer span.End()

	out := x.runner.output(it.Label)
	err := Invoke(ctx, it.Runnable, it.Options, io.MultiWriter(out, span))
	_ = out.Close()

	if err != nil {
		span.RecordError(err)
	}
	return err
}

// finish emits the terminal report of a leaf.
func (x *execution) finish(it *domain.SequenceItem, stats *domain.Stats) {
	stats.Ended = time.Now()
	stats.Duration = stats.Ended.Sub(stats.Started)

	rep := domain.Report{
		Kind:      domain.ReportEnd,
		ItemID:    it.ID,
		Label:     it.Label,
		Timestamp: stats.Ended,
		Stats:     stats,
	}
	if stats.Err != nil {
		rep.Kind = domain.ReportError
		if code, ok := domain.ExitCodeOf(stats.Err); ok {
			stats.ExitCode = &code
		}
	}
	x.emit(rep)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func discard(string) io.WriteCloser {
	return nopWriteCloser{io.Discard}
}
