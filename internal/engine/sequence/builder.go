// Package sequence flattens resolved task trees into execution plans.
package sequence

import (
	"path/filepath"

	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder turns valid task trees into sequence items.
type Builder struct {
	registry ports.AdaptorRegistry
	files    ports.FileRunner
}

// NewBuilder creates a new Builder.
func NewBuilder(registry ports.AdaptorRegistry, files ports.FileRunner) *Builder {
	return &Builder{registry: registry, files: files}
}

// Build flattens tasks depth first, left to right. Item IDs are assigned in
// pre-order starting at 1. Invalid tasks are refused with ErrInvalidTask.
func (b *Builder) Build(tasks []*domain.Task, trigger *domain.Trigger) ([]domain.SequenceItem, error) {
	p := &pass{builder: b, trigger: trigger}

	plan := make([]domain.SequenceItem, 0, len(tasks))
	for _, t := range tasks {
		items, err := p.flatten(t)
		if err != nil {
			return nil, err
		}
		plan = append(plan, items...)
	}
	return plan, nil
}

// pass holds the state of a single Build call.
type pass struct {
	builder *Builder
	trigger *domain.Trigger
	nextID  int
}

func (p *pass) id() int {
	p.nextID++
	return p.nextID
}

func (p *pass) flatten(t *domain.Task) ([]domain.SequenceItem, error) {
	if t == nil {
		return nil, zerr.Wrap(domain.ErrInvalidTask, "nil task")
	}
	if !t.Valid {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidTask, "task has resolution errors"), "task", t.Label())
	}

	if t.Type == domain.TaskGroup {
		return p.group(t)
	}
	return p.leaves(t)
}

func (p *pass) group(t *domain.Task) ([]domain.SequenceItem, error) {
	item := domain.SequenceItem{
		ID:    p.id(),
		Kind:  domain.KindFor(t.RunMode),
		Task:  t,
		Label: t.Label(),
	}

	for _, child := range selectChildren(t) {
		items, err := p.flatten(child)
		if err != nil {
			return nil, err
		}
		item.Items = append(item.Items, items...)
	}

	return []domain.SequenceItem{item}, nil
}

// selectChildren narrows a group to the children named by its sub-tasks, in
// sub-task order. Sub-tasks naming no child leave the group unfiltered.
func selectChildren(t *domain.Task) []*domain.Task {
	if len(t.SubTasks) == 0 {
		return t.Tasks
	}

	var selected []*domain.Task
	for _, sub := range t.SubTasks {
		for _, c := range t.Tasks {
			if c.BaseTaskName == sub {
				selected = append(selected, c)
				break
			}
		}
	}
	if len(selected) == 0 {
		return t.Tasks
	}
	return selected
}

type unit struct {
	runnable domain.Runnable
	name     string
}

func (p *pass) leaves(t *domain.Task) ([]domain.SequenceItem, error) {
	units, err := p.units(t)
	if err != nil {
		return nil, err
	}

	var items []domain.SequenceItem
	for _, sub := range ExpandSubTasks(t) {
		opts := ResolveOptions(t.Options, sub, t.Query)
		for _, u := range units {
			items = append(items, domain.SequenceItem{
				ID:       p.id(),
				Kind:     domain.SequenceTask,
				Task:     t,
				Runnable: u.runnable,
				Options:  opts,
				SubTask:  sub,
				Label:    leafLabel(t, sub, u.name, len(units)),
			})
		}
	}
	return items, nil
}

func (p *pass) units(t *domain.Task) ([]unit, error) {
	switch t.Type {
	case domain.AdaptorTask:
		adaptor, ok := p.builder.registry.Lookup(t.Adaptor.Name)
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrAdaptorNotFound, "adaptor disappeared after resolution"), "adaptor", t.Adaptor.Name)
		}
		return []unit{{runnable: adaptor.Create(t, p.trigger)}}, nil

	case domain.InlineFunctionTask:
		return []unit{{runnable: t.Function}}, nil

	case domain.ExternalTask:
		out := make([]unit, 0, len(t.External.Units))
		for _, path := range t.External.Units {
			out = append(out, unit{
				runnable: p.builder.files.CreateFile(path, t, p.trigger),
				name:     filepath.Base(path),
			})
		}
		return out, nil

	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidTask, "unknown task type"), "task", t.Label())
	}
}

func leafLabel(t *domain.Task, sub, unitName string, units int) string {
	label := t.BaseTaskName
	if t.Type != domain.AdaptorTask && sub != "" {
		label += ":" + sub
	}
	if units > 1 {
		label += " (" + unitName + ")"
	}
	return label
}
