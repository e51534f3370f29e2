package runner

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/zerr"
)

// Invoke runs r to completion according to its declared convention and
// returns its failure, if any. Output produced by stream and emitter
// runnables is written to out. A panic during invocation is returned as
// ErrTaskPanicked.
func Invoke(ctx context.Context, r domain.Runnable, opts domain.Options, out io.Writer) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = zerr.With(zerr.Wrap(domain.ErrTaskPanicked, "recovered"), "panic", fmt.Sprint(p))
		}
	}()

	if r == nil {
		return zerr.Wrap(domain.ErrRunnableContract, "nil runnable")
	}

	switch r.Convention() {
	case domain.ConventionCallback:
		if cb, ok := r.(domain.CallbackRunnable); ok {
			return awaitCallback(ctx, cb, opts)
		}
	case domain.ConventionFuture:
		if f, ok := r.(domain.FutureRunnable); ok {
			return awaitFuture(ctx, f, opts)
		}
	case domain.ConventionStream:
		if s, ok := r.(domain.StreamRunnable); ok {
			return drainStream(ctx, s, opts, out)
		}
	case domain.ConventionEmitter:
		if e, ok := r.(domain.EmitterRunnable); ok {
			return awaitEmitter(ctx, e, opts, out)
		}
	}

	return zerr.With(zerr.Wrap(domain.ErrRunnableContract, "convention not implemented"), "convention", r.Convention().String())
}

func awaitCallback(ctx context.Context, r domain.CallbackRunnable, opts domain.Options) error {
	result := make(chan error, 1)
	var once sync.Once
	r.Invoke(ctx, opts, func(err error) {
		once.Do(func() { result <- err })
	})

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func awaitFuture(ctx context.Context, r domain.FutureRunnable, opts domain.Options) error {
	ch := r.Start(ctx, opts)
	if ch == nil {
		return zerr.Wrap(domain.ErrRunnableContract, "future returned no channel")
	}

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func drainStream(ctx context.Context, r domain.StreamRunnable, opts domain.Options, out io.Writer) error {
	rc, err := r.Open(ctx, opts)
	if err != nil {
		return err
	}
	if rc == nil {
		return zerr.Wrap(domain.ErrRunnableContract, "stream returned no reader")
	}
	defer func() { _ = rc.Close() }()

	_, err = io.Copy(out, rc)
	return err
}

func awaitEmitter(ctx context.Context, r domain.EmitterRunnable, opts domain.Options, out io.Writer) error {
	events, err := r.Emit(ctx, opts)
	if err != nil {
		return err
	}
	if events == nil {
		return zerr.Wrap(domain.ErrRunnableContract, "emitter returned no event channel")
	}

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Kind {
			case domain.EventData:
				_, _ = out.Write(ev.Data)
			case domain.EventClose:
				return closeError(ev)
			case domain.EventError:
				if ev.Err == nil {
					return domain.ErrTaskFailed
				}
				return ev.Err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// closeError interprets a close event. A non-zero exit code is a failure.
func closeError(ev domain.Event) error {
	if ev.ExitCode == 0 {
		return ev.Err
	}
	if _, ok := domain.ExitCodeOf(ev.Err); ok {
		return ev.Err
	}
	return &domain.ExitError{Code: ev.ExitCode, Err: ev.Err}
}
