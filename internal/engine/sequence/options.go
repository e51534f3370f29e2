package sequence

import "go.trai.ch/crossbow/internal/core/domain"

// ResolveOptions computes the options handed to a leaf runnable.
//
// Later layers win, key by key:
//  1. the _shared block,
//  2. the sub-task block, or without a sub-task the _default block
//     (falling back to the block's own public keys when there is no _default),
//  3. inline query options from the invocation.
func ResolveOptions(block domain.Options, subTask string, inline domain.Options) domain.Options {
	out := domain.NewOptions()

	if shared, ok := block.Block(domain.SharedOptionsKey); ok {
		out = out.Overlay(shared)
	}

	if subTask == "" {
		if def, ok := block.Block(domain.DefaultOptionsKey); ok {
			out = out.Overlay(def)
		} else {
			out = out.Overlay(block.Public())
		}
	} else if sub, ok := block.Block(subTask); ok {
		out = out.Overlay(sub)
	}

	return out.Overlay(inline)
}

// ExpandSubTasks returns the sub-tasks a leaf runs for. The wildcard expands
// to every public option key. No sub-task yields a single empty entry.
func ExpandSubTasks(t *domain.Task) []string {
	if len(t.SubTasks) == 0 {
		return []string{""}
	}

	var out []string
	for _, sub := range t.SubTasks {
		if sub == domain.WildcardSubTask {
			out = append(out, t.Options.PublicKeys()...)
			continue
		}
		out = append(out, sub)
	}
	return out
}
