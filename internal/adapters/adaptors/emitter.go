package adaptors

import (
	"context"

	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports"
)

// eventBuffer bounds the output queued ahead of the consumer.
const eventBuffer = 64

// emitProcess starts cmd and converts its output and exit status into events.
// The channel is closed after the terminal event.
func emitProcess(ctx context.Context, executor ports.Executor, cmd ports.Command) (<-chan domain.Event, error) {
	events := make(chan domain.Event, eventBuffer)
	w := &eventWriter{ctx: ctx, events: events}

	proc, err := executor.Start(ctx, cmd, w, w)
	if err != nil {
		return nil, err
	}

	go func() {
		defer close(events)

		err := proc.Wait()
		terminal := domain.Event{Kind: domain.EventClose}
		if err != nil {
			if code, ok := domain.ExitCodeOf(err); ok {
				terminal.ExitCode = code
				terminal.Err = err
			} else {
				terminal = domain.Event{Kind: domain.EventError, Err: err}
			}
		}

		select {
		case events <- terminal:
		case <-ctx.Done():
		}
	}()

	return events, nil
}

// eventWriter forwards writes as data events. Writes after ctx is done are dropped.
type eventWriter struct {
	ctx    context.Context //nolint:containedctx // bound to a single process lifetime
	events chan<- domain.Event
}

func (w *eventWriter) Write(p []byte) (int, error) {
	data := make([]byte, len(p))
	copy(data, p)

	select {
	case w.events <- domain.Event{Kind: domain.EventData, Data: data}:
	case <-w.ctx.Done():
	}
	return len(p), nil
}
