package domain

// SequenceKind classifies a sequence item.
type SequenceKind uint8

const (
	// SequenceTask is an executable leaf.
	SequenceTask SequenceKind = iota + 1
	// SequenceSeries runs its items one after another.
	SequenceSeries
	// SequenceParallel runs its items concurrently.
	SequenceParallel
)

// String returns a short name for the kind.
func (k SequenceKind) String() string {
	switch k {
	case SequenceTask:
		return "task"
	case SequenceSeries:
		return "series"
	case SequenceParallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// KindFor maps a run mode to its group kind.
func KindFor(mode RunMode) SequenceKind {
	if mode == RunParallel {
		return SequenceParallel
	}
	return SequenceSeries
}

// SequenceItem is a node of the execution plan.
type SequenceItem struct {
	ID    int
	Kind  SequenceKind
	Items []SequenceItem

	Task     *Task
	Runnable Runnable
	Options  Options
	SubTask  string
	Label    string
	Skip     bool

	// Stats is set only on decorated copies produced after a run.
	Stats *Stats
}

// IsGroup reports whether the item is a series or parallel group.
func (i *SequenceItem) IsGroup() bool {
	return i.Kind == SequenceSeries || i.Kind == SequenceParallel
}

// Walk visits i and its descendants depth first.
func (i *SequenceItem) Walk(fn func(*SequenceItem)) {
	fn(i)
	for idx := range i.Items {
		i.Items[idx].Walk(fn)
	}
}

// Leaves returns the task items of a plan in execution order.
func Leaves(plan []SequenceItem) []*SequenceItem {
	var out []*SequenceItem
	for idx := range plan {
		plan[idx].Walk(func(it *SequenceItem) {
			if it.Kind == SequenceTask {
				out = append(out, it)
			}
		})
	}
	return out
}

// ClonePlan deep-copies the item structure. Tasks, runnables and options are shared.
func ClonePlan(plan []SequenceItem) []SequenceItem {
	if plan == nil {
		return nil
	}
	out := make([]SequenceItem, len(plan))
	for idx, it := range plan {
		out[idx] = it
		out[idx].Items = ClonePlan(it.Items)
		if it.Stats != nil {
			s := *it.Stats
			out[idx].Stats = &s
		}
	}
	return out
}
