package runner

import (
	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/zerr"
)

// Validate checks the structural contract of a plan: it is not empty, every
// item has a known kind and a unique ID, leaves carry a runnable and no
// children.
func Validate(plan []domain.SequenceItem) error {
	if len(plan) == 0 {
		return zerr.Wrap(domain.ErrMalformedPlan, "empty plan")
	}

	seen := make(map[int]bool)
	var err error
	for i := range plan {
		plan[i].Walk(func(it *domain.SequenceItem) {
			if err != nil {
				return
			}
			err = validateItem(it, seen)
		})
	}
	return err
}

func validateItem(it *domain.SequenceItem, seen map[int]bool) error {
	if seen[it.ID] {
		return zerr.With(zerr.Wrap(domain.ErrMalformedPlan, "duplicate item id"), "id", it.ID)
	}
	seen[it.ID] = true

	switch it.Kind {
	case domain.SequenceSeries, domain.SequenceParallel:
		return nil
	case domain.SequenceTask:
		if it.Runnable == nil {
			return zerr.With(zerr.Wrap(domain.ErrMalformedPlan, "leaf without runnable"), "label", it.Label)
		}
		if len(it.Items) > 0 {
			return zerr.With(zerr.Wrap(domain.ErrMalformedPlan, "leaf with children"), "label", it.Label)
		}
		return nil
	default:
		return zerr.With(zerr.Wrap(domain.ErrMalformedPlan, "unknown item kind"), "id", it.ID)
	}
}

// DecoratePlan returns a copy of plan with the stats of each leaf's terminal
// report attached. plan itself is not modified.
func DecoratePlan(plan []domain.SequenceItem, reports []domain.Report) []domain.SequenceItem {
	terminal := make(map[int]*domain.Stats, len(reports))
	for _, rep := range reports {
		if rep.IsTerminal() && rep.Stats != nil {
			terminal[rep.ItemID] = rep.Stats
		}
	}

	out := domain.ClonePlan(plan)
	for _, leaf := range domain.Leaves(out) {
		if stats, ok := terminal[leaf.ID]; ok {
			s := *stats
			leaf.Stats = &s
		}
	}
	return out
}
