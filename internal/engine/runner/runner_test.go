package runner_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crossbow/internal/adapters/telemetry"
	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports/mocks"
	"go.trai.ch/crossbow/internal/engine/runner"
	"go.uber.org/mock/gomock"
)

func TestRun_SeriesReportOrder(t *testing.T) {
	t.Parallel()

	plan := []domain.SequenceItem{series(1, leaf(2, "js", ok()), leaf(3, "css", ok()))}
	rec := &recorder{}

	summary, err := newRunner().Run(context.Background(), plan, domain.RunSeries, rec.sink)
	require.NoError(t, err)

	assert.Equal(t, []string{"start js", "end js", "start css", "end css"}, rec.events())
	assert.Len(t, summary.Reports, 4)
	assert.Empty(t, summary.Errors)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 0, summary.ExitCode(true))
}

func TestRun_ParallelStartsBeforeAnyEnd(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		release := make(chan struct{})
		var invoked atomic.Int32
		wait := domain.Func(func(context.Context, domain.Options) error {
			invoked.Add(1)
			<-release
			return nil
		})

		plan := []domain.SequenceItem{parallel(1, leaf(2, "js", wait), leaf(3, "css", wait))}
		rec := &recorder{}

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, err := newRunner().Run(t.Context(), plan, domain.RunSeries, rec.sink)
			assert.NoError(t, err)
		}()

		synctest.Wait()
		assert.Equal(t, []string{"start js", "start css"}, rec.events())
		assert.Equal(t, int32(2), invoked.Load())

		close(release)
		<-done

		events := rec.events()
		require.Len(t, events, 4)
		assert.ElementsMatch(t, []string{"end js", "end css"}, events[2:])
	})
}

func TestRun_SeriesStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var bInvoked atomic.Bool
	b := domain.Func(func(context.Context, domain.Options) error {
		bInvoked.Store(true)
		return nil
	})

	plan := []domain.SequenceItem{series(1, leaf(2, "A", fail(boom)), leaf(3, "B", b))}
	rec := &recorder{}

	summary, err := newRunner().Run(context.Background(), plan, domain.RunSeries, rec.sink)
	require.NoError(t, err)

	assert.Equal(t, []string{"start A", "error A"}, rec.events())
	assert.False(t, bInvoked.Load())
	require.Len(t, summary.Errors, 1)
	assert.ErrorIs(t, summary.Errors[0].Stats.Err, boom)
	assert.Equal(t, 1, summary.ExitCode(true))
	assert.Equal(t, 0, summary.ExitCode(false))
}

func TestRun_ParallelIsolatesFailures(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		boom := errors.New("boom")
		var bFinished atomic.Bool

		a := domain.Func(func(context.Context, domain.Options) error {
			time.Sleep(time.Second)
			return boom
		})
		b := domain.Func(func(context.Context, domain.Options) error {
			time.Sleep(2 * time.Second)
			bFinished.Store(true)
			return nil
		})

		plan := []domain.SequenceItem{parallel(1, leaf(2, "A", a), leaf(3, "B", b))}
		rec := &recorder{}

		summary, err := newRunner().Run(t.Context(), plan, domain.RunSeries, rec.sink)
		require.NoError(t, err)

		events := rec.events()
		require.Len(t, events, 4)
		assert.Equal(t, []string{"start A", "start B"}, events[:2])
		assert.ElementsMatch(t, []string{"error A", "end B"}, events[2:])
		assert.True(t, bFinished.Load())
		require.Len(t, summary.Errors, 1)
		assert.Equal(t, "A", summary.Errors[0].Label)
		assert.Equal(t, 2*time.Second, summary.Runtime)
	})
}

func TestRun_FailedParallelGroupStopsEnclosingSeries(t *testing.T) {
	t.Parallel()

	var cInvoked atomic.Bool
	c := domain.Func(func(context.Context, domain.Options) error {
		cInvoked.Store(true)
		return nil
	})

	plan := []domain.SequenceItem{
		series(1,
			parallel(2, leaf(3, "a", fail(errors.New("a failed"))), leaf(4, "b", ok())),
			leaf(5, "c", c),
		),
	}
	rec := &recorder{}

	_, err := newRunner().Run(context.Background(), plan, domain.RunSeries, rec.sink)
	require.NoError(t, err)

	events := rec.events()
	require.Len(t, events, 4)
	assert.Equal(t, []string{"start a", "start b"}, events[:2])
	assert.ElementsMatch(t, []string{"error a", "end b"}, events[2:])
	assert.False(t, cInvoked.Load())
}

func TestRun_NestedSeriesInsideParallelStartsOnlyFirstChild(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		release := make(chan struct{})
		wait := domain.Func(func(context.Context, domain.Options) error {
			<-release
			return nil
		})

		plan := []domain.SequenceItem{
			parallel(1,
				series(2, leaf(3, "a1", wait), leaf(4, "a2", ok())),
				leaf(5, "b", wait),
			),
		}
		rec := &recorder{}

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = newRunner().Run(t.Context(), plan, domain.RunSeries, rec.sink)
		}()

		synctest.Wait()
		assert.Equal(t, []string{"start a1", "start b"}, rec.events())

		close(release)
		<-done

		events := rec.events()
		require.Len(t, events, 6)
		assert.Less(t, indexOf(events, "end a1"), indexOf(events, "start a2"))
	})
}

func indexOf(events []string, want string) int {
	for i, e := range events {
		if e == want {
			return i
		}
	}
	return -1
}

func TestRun_TopLevelMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    domain.RunMode
		runtime time.Duration
	}{
		{name: "series", mode: domain.RunSeries, runtime: 2 * time.Second},
		{name: "parallel", mode: domain.RunParallel, runtime: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				sleep := domain.Func(func(context.Context, domain.Options) error {
					time.Sleep(time.Second)
					return nil
				})
				plan := []domain.SequenceItem{leaf(1, "a", sleep), leaf(2, "b", sleep)}

				summary, err := newRunner().Run(t.Context(), plan, tt.mode, nil)
				require.NoError(t, err)
				assert.Equal(t, tt.runtime, summary.Runtime)
				assert.Len(t, summary.Reports, 4)
			})
		})
	}
}

func TestRun_SkippedLeafIsNotInvoked(t *testing.T) {
	t.Parallel()

	item := leaf(1, "css", domain.Func(func(context.Context, domain.Options) error {
		t.Error("skipped task was invoked")
		return nil
	}))
	item.Skip = true
	rec := &recorder{}

	summary, err := newRunner().Run(context.Background(), []domain.SequenceItem{item}, domain.RunSeries, rec.sink)
	require.NoError(t, err)

	assert.Equal(t, []string{"start css", "end css"}, rec.events())
	assert.True(t, summary.Reports[1].Stats.Skipped)
	assert.Empty(t, summary.Errors)
}

func TestRun_ExitCodeFromEmitter(t *testing.T) {
	t.Parallel()

	emitter := domain.EmitterFunc(func(context.Context, domain.Options) (<-chan domain.Event, error) {
		ch := make(chan domain.Event, 2)
		ch <- domain.Event{Kind: domain.EventData, Data: []byte("compiling\n")}
		ch <- domain.Event{Kind: domain.EventClose, ExitCode: 3}
		close(ch)
		return ch, nil
	})

	outs := newOutputs()
	r := runner.New(telemetry.NewNoOpTracer(), outs.factory)

	summary, err := r.Run(context.Background(), []domain.SequenceItem{leaf(1, "@sh make", emitter)}, domain.RunSeries, nil)
	require.NoError(t, err)

	require.Len(t, summary.Errors, 1)
	stats := summary.Errors[0].Stats
	require.NotNil(t, stats.ExitCode)
	assert.Equal(t, 3, *stats.ExitCode)
	assert.Equal(t, 3, summary.ExitCode(true))
	assert.Equal(t, "compiling\n", outs.text("@sh make"))
	assert.Equal(t, 1, outs.closed["@sh make"])
}

func TestRun_CancelledContextFailsPendingLeaf(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())

		never := domain.CallbackFunc(func(context.Context, domain.Options, func(error)) {})
		var nextInvoked atomic.Bool
		next := domain.Func(func(context.Context, domain.Options) error {
			nextInvoked.Store(true)
			return nil
		})

		go func() {
			time.Sleep(time.Second)
			cancel()
		}()

		plan := []domain.SequenceItem{leaf(1, "hang", never), leaf(2, "next", next)}
		summary, err := newRunner().Run(ctx, plan, domain.RunSeries, nil)
		require.NoError(t, err)

		require.Len(t, summary.Errors, 1)
		assert.ErrorIs(t, summary.Errors[0].Stats.Err, context.Canceled)
		assert.False(t, nextInvoked.Load())
	})
}

func TestRun_MalformedPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		plan []domain.SequenceItem
	}{
		{name: "empty", plan: nil},
		{name: "leaf without runnable", plan: []domain.SequenceItem{leaf(1, "a", nil)}},
		{name: "duplicate id", plan: []domain.SequenceItem{series(1, leaf(1, "a", ok()))}},
		{name: "unknown kind", plan: []domain.SequenceItem{{ID: 1, Kind: 42}}},
		{
			name: "leaf with children",
			plan: []domain.SequenceItem{{ID: 1, Kind: domain.SequenceTask, Runnable: ok(), Items: []domain.SequenceItem{leaf(2, "b", ok())}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			called := false
			summary, err := newRunner().Run(context.Background(), tt.plan, domain.RunSeries, func(domain.Report) { called = true })
			require.ErrorIs(t, err, domain.ErrMalformedPlan)
			assert.Nil(t, summary)
			assert.False(t, called)
		})
	}
}

func TestRun_SummaryPlanIsDecoratedCopy(t *testing.T) {
	t.Parallel()

	plan := []domain.SequenceItem{series(1, leaf(2, "a", ok()), leaf(3, "b", fail(errors.New("nope"))))}

	summary, err := newRunner().Run(context.Background(), plan, domain.RunSeries, nil)
	require.NoError(t, err)

	assert.Nil(t, plan[0].Items[0].Stats)
	assert.Nil(t, plan[0].Items[1].Stats)

	leaves := domain.Leaves(summary.Plan)
	require.Len(t, leaves, 2)
	require.NotNil(t, leaves[0].Stats)
	assert.NoError(t, leaves[0].Stats.Err)
	require.NotNil(t, leaves[1].Stats)
	assert.EqualError(t, leaves[1].Stats.Err, "nope")
}

func TestRun_SpansPerLeaf(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	runSpan := mocks.NewMockSpan(ctrl)
	leafSpan := mocks.NewMockSpan(ctrl)

	boom := errors.New("boom")
	stream := domain.StreamFunc(func(context.Context, domain.Options) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("line")), nil
	})
	plan := []domain.SequenceItem{series(1, leaf(2, "lint", stream), leaf(3, "test", fail(boom)))}

	failSpan := mocks.NewMockSpan(ctrl)

	tracer.EXPECT().Start(gomock.Any(), "run", gomock.Any()).Return(context.Background(), runSpan)
	tracer.EXPECT().EmitPlan(gomock.Any(), []string{"lint", "test"})
	tracer.EXPECT().Start(gomock.Any(), "lint", gomock.Any()).Return(context.Background(), leafSpan)
	tracer.EXPECT().Start(gomock.Any(), "test", gomock.Any()).Return(context.Background(), failSpan)

	leafSpan.EXPECT().Write([]byte("line")).Return(4, nil)
	leafSpan.EXPECT().End()
	failSpan.EXPECT().RecordError(boom)
	failSpan.EXPECT().End()
	runSpan.EXPECT().RecordError(gomock.Any())
	runSpan.EXPECT().End()

	_, err := runner.New(tracer, nil).Run(context.Background(), plan, domain.RunSeries, nil)
	require.NoError(t, err)
}

func TestStream(t *testing.T) {
	t.Parallel()

	plan := []domain.SequenceItem{parallel(1, leaf(2, "a", ok()), leaf(3, "b", ok()))}
	exec := newRunner().Stream(context.Background(), plan, domain.RunSeries)

	var kinds []domain.ReportKind
	for rep := range exec.Reports() {
		kinds = append(kinds, rep.Kind)
	}

	summary, err := exec.Wait()
	require.NoError(t, err)
	assert.Len(t, summary.Reports, 4)
	assert.Equal(t, []domain.ReportKind{domain.ReportStart, domain.ReportStart}, kinds[:2])
	assert.ElementsMatch(t, []domain.ReportKind{domain.ReportEnd, domain.ReportEnd}, kinds[2:])
}

func TestStream_MalformedPlan(t *testing.T) {
	t.Parallel()

	exec := newRunner().Stream(context.Background(), nil, domain.RunSeries)
	for range exec.Reports() {
		t.Error("unexpected report")
	}

	summary, err := exec.Wait()
	require.ErrorIs(t, err, domain.ErrMalformedPlan)
	assert.Nil(t, summary)
}
