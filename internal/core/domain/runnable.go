package domain

import (
	"context"
	"io"
)

// Convention identifies how a Runnable signals completion.
type Convention uint8

const (
	// ConventionCallback runnables receive a completion function.
	ConventionCallback Convention = iota + 1
	// ConventionFuture runnables return a channel that yields a single result.
	ConventionFuture
	// ConventionStream runnables return a reader that is drained to EOF.
	ConventionStream
	// ConventionEmitter runnables return an event source ending in a close or error event.
	ConventionEmitter
)

// String returns the convention name.
func (c Convention) String() string {
	switch c {
	case ConventionCallback:
		return "callback"
	case ConventionFuture:
		return "future"
	case ConventionStream:
		return "stream"
	case ConventionEmitter:
		return "emitter"
	default:
		return "unknown"
	}
}

// Runnable is an executable unit of work. It declares its completion
// convention explicitly and must implement the matching interface below.
type Runnable interface {
	Convention() Convention
}

// CallbackRunnable completes by calling done exactly once.
type CallbackRunnable interface {
	Runnable
	Invoke(ctx context.Context, opts Options, done func(error))
}

// FutureRunnable completes when the returned channel yields a value or is closed.
type FutureRunnable interface {
	Runnable
	Start(ctx context.Context, opts Options) <-chan error
}

// StreamRunnable completes when the returned reader reaches EOF.
type StreamRunnable interface {
	Runnable
	Open(ctx context.Context, opts Options) (io.ReadCloser, error)
}

// EmitterRunnable completes on the first EventClose or EventError.
type EmitterRunnable interface {
	Runnable
	Emit(ctx context.Context, opts Options) (<-chan Event, error)
}

// EventKind classifies emitter events.
type EventKind uint8

const (
	// EventData carries output bytes.
	EventData EventKind = iota + 1
	// EventClose ends the stream with an exit code.
	EventClose
	// EventError ends the stream with an error.
	EventError
)

// Event is a single emitter notification.
type Event struct {
	Kind     EventKind
	Data     []byte
	Err      error
	ExitCode int
}

// CallbackFunc adapts a function to CallbackRunnable.
type CallbackFunc func(ctx context.Context, opts Options, done func(error))

// Convention implements Runnable.
func (CallbackFunc) Convention() Convention { return ConventionCallback }

// Invoke calls f.
func (f CallbackFunc) Invoke(ctx context.Context, opts Options, done func(error)) { f(ctx, opts, done) }

// FutureFunc adapts a function to FutureRunnable.
type FutureFunc func(ctx context.Context, opts Options) <-chan error

// Convention implements Runnable.
func (FutureFunc) Convention() Convention { return ConventionFuture }

// Start calls f.
func (f FutureFunc) Start(ctx context.Context, opts Options) <-chan error { return f(ctx, opts) }

// StreamFunc adapts a function to StreamRunnable.
type StreamFunc func(ctx context.Context, opts Options) (io.ReadCloser, error)

// Convention implements Runnable.
func (StreamFunc) Convention() Convention { return ConventionStream }

// Open calls f.
func (f StreamFunc) Open(ctx context.Context, opts Options) (io.ReadCloser, error) { return f(ctx, opts) }

// EmitterFunc adapts a function to EmitterRunnable.
type EmitterFunc func(ctx context.Context, opts Options) (<-chan Event, error)

// Convention implements Runnable.
func (EmitterFunc) Convention() Convention { return ConventionEmitter }

// Emit calls f.
func (f EmitterFunc) Emit(ctx context.Context, opts Options) (<-chan Event, error) { return f(ctx, opts) }

// Func wraps a plain function as a callback runnable.
func Func(fn func(ctx context.Context, opts Options) error) Runnable {
	return CallbackFunc(func(ctx context.Context, opts Options, done func(error)) {
		done(fn(ctx, opts))
	})
}
