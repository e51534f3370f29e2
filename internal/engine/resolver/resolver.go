// Package resolver turns requested task names into validated task trees.
package resolver

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver resolves task names against a configuration. Results are memoized
// per instance, keyed by the exact ordered list of requested names.
type Resolver struct {
	registry ports.AdaptorRegistry
	locator  ports.TaskLocator

	memo map[string]*domain.Resolution
}

// New creates a new Resolver.
func New(registry ports.AdaptorRegistry, locator ports.TaskLocator) *Resolver {
	return &Resolver{
		registry: registry,
		locator:  locator,
		memo:     make(map[string]*domain.Resolution),
	}
}

// Resolve resolves every name. It never fails: problems are attached to the
// affected task as errors so that siblings keep resolving.
func (r *Resolver) Resolve(names []string, trigger *domain.Trigger) *domain.Resolution {
	key := strings.Join(names, "\x00")
	if res, ok := r.memo[key]; ok {
		return res
	}

	if trigger.Config == nil {
		scoped := *trigger
		scoped.Config = domain.NewConfig(trigger.Cwd)
		trigger = &scoped
	}

	res := &domain.Resolution{}
	for _, name := range names {
		t := r.resolveName(name, nil, nil, trigger)
		res.All = append(res.All, t)
		if t.Valid {
			res.Valid = append(res.Valid, t)
		} else {
			res.Invalid = append(res.Invalid, t)
		}
	}

	r.memo[key] = res
	return res
}

func (r *Resolver) resolveName(raw string, parents, ifChanged []domain.InternedString, trigger *domain.Trigger) *domain.Task {
	t := &domain.Task{
		RawInput:  raw,
		Parents:   parents,
		IfChanged: ifChanged,
		RunMode:   domain.RunSeries,
	}

	if isAdaptorString(raw) {
		r.resolveAdaptor(t, raw, trigger)
		return finalize(t)
	}

	p := parseName(raw)
	t.BaseTaskName = p.base
	t.SubTasks = p.subTasks
	t.Flags = p.flags
	t.Query = p.query
	if p.hasFlags {
		switch {
		case p.flags == "":
			t.AddError(domain.CBFlagNotProvided, zerr.With(zerr.Wrap(domain.ErrFlagNotProvided, "empty flags after @"), "task", raw))
		case p.badFlags:
			t.AddError(domain.CBFlagInvalid, zerr.With(
				zerr.With(zerr.Wrap(domain.ErrInvalidFlags, "flags must be letters"), "task", raw), "flags", p.flags))
		}
		t.RunMode = modeFromFlags(p.flags)
	}

	if containsName(parents, t.BaseTaskName) {
		t.AddError(domain.CircularReference, zerr.With(
			zerr.Wrap(domain.ErrCircularReference, "task includes itself"),
			"chain", strings.Join(append(domain.Strings(parents), t.BaseTaskName), " → "),
		))
		return finalize(t)
	}

	t.Options, t.HasOptions = trigger.Config.OptionsFor(t.BaseTaskName)

	if value, keyFlags, ok := trigger.Config.Tasks.Lookup(t.BaseTaskName); ok {
		if keyFlags != "" && !p.hasFlags {
			t.Flags = keyFlags
			t.RunMode = modeFromFlags(keyFlags)
		}
		r.resolveValue(t, value, childParents(t), trigger)
	} else {
		r.resolveFile(t, trigger)
	}

	validateSubTasks(t)
	return finalize(t)
}

func (r *Resolver) resolveAdaptor(t *domain.Task, raw string, trigger *domain.Trigger) {
	name, command := splitAdaptor(raw)
	t.BaseTaskName = raw
	t.Type = domain.AdaptorTask
	t.Adaptor = &domain.AdaptorPayload{Name: name, Command: command}

	adaptor, ok := r.registry.Lookup(name)
	if !ok {
		t.AddError(domain.AdaptorNotFound, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrAdaptorNotFound, "unknown adaptor"), "adaptor", name),
			"available", strings.Join(r.registry.Names(), ", "),
		))
		return
	}
	if !adaptor.Validate(t, trigger) {
		t.AddError(domain.AdaptorValidationFailed, zerr.With(
			zerr.Wrap(domain.ErrAdaptorValidationFailed, "adaptor rejected the task"), "adaptor", name))
	}
}

func (r *Resolver) resolveFile(t *domain.Task, trigger *domain.Trigger) {
	payload, ok := r.locator.Locate(t.BaseTaskName, workDir(trigger))
	if !ok {
		t.AddError(domain.TaskNotFound, zerr.With(zerr.Wrap(domain.ErrTaskNotFound, "no task, function or file"), "task", t.BaseTaskName))
		return
	}

	t.Type = domain.ExternalTask
	t.External = payload

	if len(payload.Units) == 0 {
		t.AddError(domain.FileTypeNotSupported, zerr.With(
			zerr.Wrap(domain.ErrFileTypeNotSupported, "directory holds no supported task files"), "path", payload.Path))
		return
	}
	for _, unit := range payload.Units {
		if !r.locator.Supported(unit) {
			t.AddError(domain.FileTypeNotSupported, zerr.With(
				zerr.Wrap(domain.ErrFileTypeNotSupported, "no interpreter for file"), "path", unit))
			return
		}
	}
}

// resolveValue dispatches on the configured value. parents is the ancestor
// chain handed to children.
func (r *Resolver) resolveValue(t *domain.Task, v domain.TaskValue, parents []domain.InternedString, trigger *domain.Trigger) {
	switch v.Kind {
	case domain.InlineFunction:
		t.Type = domain.InlineFunctionTask
		t.Function = v.Func

	case domain.StringRef:
		t.Type = domain.TaskGroup
		t.Tasks = []*domain.Task{r.resolveName(v.Ref, parents, t.IfChanged, trigger)}

	case domain.ArrayOfTasks:
		t.Type = domain.TaskGroup
		t.Tasks = r.resolveItems(t, v.Items, parents, trigger)

	case domain.GroupLiteral:
		t.Type = domain.TaskGroup
		def := v.Group
		if def == nil {
			return
		}
		if def.Description != "" {
			t.Description = def.Description
		}
		if def.RunMode != "" && !strings.ContainsRune(t.Flags, FlagParallel) {
			t.RunMode = def.RunMode
		}
		if len(def.IfChanged) > 0 {
			t.IfChanged = append(slices.Clone(t.IfChanged), domain.NewInternedStrings(def.IfChanged)...)
		}

		t.Tasks = r.resolveItems(t, def.Tasks, parents, trigger)
		for _, named := range def.Named {
			variant := &domain.Task{
				BaseTaskName: named.Name,
				RawInput:     t.BaseTaskName + ":" + named.Name,
				Parents:      parents,
				IfChanged:    t.IfChanged,
				RunMode:      domain.RunSeries,
			}
			// Variant names are structural and stay out of the ancestor chain.
			r.resolveValue(variant, named.Value, parents, trigger)
			t.Tasks = append(t.Tasks, finalize(variant))
		}
		t.Named = len(def.Named) > 0
	}
}

func (r *Resolver) resolveItems(t *domain.Task, items []domain.TaskValue, parents []domain.InternedString, trigger *domain.Trigger) []*domain.Task {
	children := make([]*domain.Task, 0, len(items))
	for i, item := range items {
		if item.Kind == domain.StringRef {
			children = append(children, r.resolveName(item.Ref, parents, t.IfChanged, trigger))
			continue
		}

		name := fmt.Sprintf("%s[%d]", t.BaseTaskName, i)
		anon := &domain.Task{
			BaseTaskName: name,
			RawInput:     name,
			Parents:      parents,
			IfChanged:    t.IfChanged,
			RunMode:      domain.RunSeries,
		}
		r.resolveValue(anon, item, parents, trigger)
		children = append(children, finalize(anon))
	}
	return children
}

// validateSubTasks checks each sub-task against the task's children and options.
func validateSubTasks(t *domain.Task) {
	for _, sub := range t.SubTasks {
		switch {
		case sub == "":
			t.AddError(domain.SubtaskNotProvided, zerr.With(zerr.Wrap(domain.ErrSubtaskNotProvided, "empty sub-task"), "task", t.RawInput))

		case sub == domain.WildcardSubTask:
			if !t.HasOptions || len(t.Options.PublicKeys()) == 0 {
				t.AddError(domain.SubtaskWildcardNotAvailable, zerr.With(
					zerr.Wrap(domain.ErrSubtaskWildcardNotAvailable, "no option keys to expand"), "task", t.BaseTaskName))
			}

		case hasChild(t, sub) || (t.HasOptions && t.Options.Has(sub)):

		case !t.HasOptions && !t.Named:
			t.AddError(domain.SubtasksNotInConfig, zerr.With(
				zerr.With(zerr.Wrap(domain.ErrSubtasksNotInConfig, "no options or variants configured"), "task", t.BaseTaskName),
				"sub_task", sub))

		default:
			t.AddError(domain.SubtaskNotFound, zerr.With(
				zerr.With(zerr.Wrap(domain.ErrSubtaskNotFound, "unknown sub-task"), "task", t.BaseTaskName),
				"sub_task", sub))
		}
	}
}

// finalize computes validity bottom-up. Children are already final.
func finalize(t *domain.Task) *domain.Task {
	t.Valid = len(t.Errors) == 0
	for _, c := range t.Tasks {
		if !c.Valid {
			t.Valid = false
		}
	}
	return t
}

func childParents(t *domain.Task) []domain.InternedString {
	out := make([]domain.InternedString, len(t.Parents), len(t.Parents)+1)
	copy(out, t.Parents)
	return append(out, domain.NewInternedString(t.BaseTaskName))
}

func containsName(parents []domain.InternedString, name string) bool {
	target := domain.NewInternedString(name)
	return slices.Contains(parents, target)
}

func hasChild(t *domain.Task, name string) bool {
	for _, c := range t.Tasks {
		if c.BaseTaskName == name {
			return true
		}
	}
	return false
}

func workDir(trigger *domain.Trigger) string {
	if trigger.Cwd != "" {
		return trigger.Cwd
	}
	if trigger.Config != nil {
		return trigger.Config.Root
	}
	return ""
}
