package changes

import "go.trai.ch/crossbow/internal/core/domain"

// CollectPaths returns the watched paths of every leaf in plan, in first-seen order.
func CollectPaths(plan []domain.SequenceItem) []string {
	seen := make(map[string]bool)
	var out []string
	for _, leaf := range domain.Leaves(plan) {
		if leaf.Task == nil {
			continue
		}
		for _, p := range leaf.Task.IfChanged {
			s := p.String()
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// Annotate returns a copy of plan in which a leaf is marked Skip when it
// watches at least one path and every watched path is unchanged. With force
// nothing is skipped.
func Annotate(plan []domain.SequenceItem, records []domain.HashRecord, cwd string, force bool) []domain.SequenceItem {
	out := domain.ClonePlan(plan)
	if force {
		return out
	}

	byPath := make(map[string]domain.HashRecord, len(records))
	for _, r := range records {
		byPath[r.Resolved] = r
	}

	for _, leaf := range domain.Leaves(out) {
		leaf.Skip = unchanged(leaf, byPath, cwd)
	}
	return out
}

func unchanged(leaf *domain.SequenceItem, records map[string]domain.HashRecord, cwd string) bool {
	if leaf.Task == nil || len(leaf.Task.IfChanged) == 0 {
		return false
	}
	for _, p := range leaf.Task.IfChanged {
		rec, ok := records[Resolve(p.String(), cwd)]
		if !ok || rec.Changed {
			return false
		}
	}
	return true
}

// Settled drops the records of paths watched by a leaf that failed or never
// finished in a decorated plan, so the next run re-evaluates them.
func Settled(decorated []domain.SequenceItem, records []domain.HashRecord, cwd string) []domain.HashRecord {
	unsettled := make(map[string]bool)
	for _, leaf := range domain.Leaves(decorated) {
		if leaf.Task == nil || (leaf.Stats != nil && leaf.Stats.Err == nil) {
			continue
		}
		for _, p := range leaf.Task.IfChanged {
			unsettled[Resolve(p.String(), cwd)] = true
		}
	}

	out := make([]domain.HashRecord, 0, len(records))
	for _, r := range records {
		if !unsettled[r.Resolved] {
			out = append(out, r)
		}
	}
	return out
}
