package runner_test

import (
	"bytes"
	"context"
	"io"
	"sync"

	"go.trai.ch/crossbow/internal/adapters/telemetry"
	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/engine/runner"
)

type recorder struct {
	mu      sync.Mutex
	reports []domain.Report
}

func (r *recorder) sink(rep domain.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, rep)
}

func (r *recorder) events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.reports))
	for i, rep := range r.reports {
		out[i] = string(rep.Kind) + " " + rep.Label
	}
	return out
}

func leaf(id int, label string, r domain.Runnable) domain.SequenceItem {
	return domain.SequenceItem{ID: id, Kind: domain.SequenceTask, Label: label, Runnable: r}
}

func series(id int, items ...domain.SequenceItem) domain.SequenceItem {
	return domain.SequenceItem{ID: id, Kind: domain.SequenceSeries, Items: items}
}

func parallel(id int, items ...domain.SequenceItem) domain.SequenceItem {
	return domain.SequenceItem{ID: id, Kind: domain.SequenceParallel, Items: items}
}

func ok() domain.Runnable {
	return domain.Func(func(context.Context, domain.Options) error { return nil })
}

func fail(err error) domain.Runnable {
	return domain.Func(func(context.Context, domain.Options) error { return err })
}

type outputs struct {
	mu      sync.Mutex
	buffers map[string]*bytes.Buffer
	closed  map[string]int
}

func newOutputs() *outputs {
	return &outputs{buffers: map[string]*bytes.Buffer{}, closed: map[string]int{}}
}

func (o *outputs) factory(label string) io.WriteCloser {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.buffers[label] == nil {
		o.buffers[label] = &bytes.Buffer{}
	}
	return &capture{o: o, label: label}
}

func (o *outputs) text(label string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if b := o.buffers[label]; b != nil {
		return b.String()
	}
	return ""
}

type capture struct {
	o     *outputs
	label string
}

func (c *capture) Write(p []byte) (int, error) {
	c.o.mu.Lock()
	defer c.o.mu.Unlock()
	return c.o.buffers[c.label].Write(p)
}

func (c *capture) Close() error {
	c.o.mu.Lock()
	defer c.o.mu.Unlock()
	c.o.closed[c.label]++
	return nil
}

func newRunner() *runner.Runner {
	return runner.New(telemetry.NewNoOpTracer(), nil)
}
