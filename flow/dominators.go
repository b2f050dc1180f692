package flow

import "sort"

// Dominators computes, for every block, the set of blocks that
// dominate it: a block X dominates Y if every path from entry to Y
// passes through X. Used by downstream checkers that need "does this
// always happen before that" reasoning (sanitizer-before-sink,
// allocation-before-free).
type Dominators struct {
	entry string
	sets  map[string]map[string]bool
}

// ComputeDominators runs the standard iterative dataflow fixpoint over
// a ControlFlowGraph's edges.
func ComputeDominators(cfg *ControlFlowGraph, blockIDs []string) *Dominators {
	all := make(map[string]bool, len(blockIDs))
	for _, id := range blockIDs {
		all[id] = true
	}

	preds := make(map[string][]string)
	for _, e := range cfg.Edges {
		preds[e.TargetBlockID] = append(preds[e.TargetBlockID], e.SourceBlockID)
	}

	sets := make(map[string]map[string]bool, len(blockIDs))
	sets[cfg.EntryBlockID] = map[string]bool{cfg.EntryBlockID: true}
	for _, id := range blockIDs {
		if id == cfg.EntryBlockID {
			continue
		}
		full := make(map[string]bool, len(all))
		for k := range all {
			full[k] = true
		}
		sets[id] = full
	}

	changed := true
	for changed {
		changed = false
		for _, id := range blockIDs {
			if id == cfg.EntryBlockID {
				continue
			}
			ps := preds[id]
			var merged map[string]bool
			for i, p := range ps {
				if i == 0 {
					merged = cloneSet(sets[p])
					continue
				}
				merged = intersectSets(merged, sets[p])
			}
			if merged == nil {
				merged = make(map[string]bool)
			}
			merged[id] = true
			if !setsEqual(merged, sets[id]) {
				sets[id] = merged
				changed = true
			}
		}
	}

	return &Dominators{entry: cfg.EntryBlockID, sets: sets}
}

// IsDominator reports whether `dominator` dominates `dominated`.
func (d *Dominators) IsDominator(dominator, dominated string) bool {
	set, ok := d.sets[dominated]
	if !ok {
		return false
	}
	return set[dominator]
}

// Of returns the sorted dominator set for a block, for deterministic
// serialization.
func (d *Dominators) Of(block string) []string {
	set := d.sets[block]
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func cloneSet(s map[string]bool) map[string]bool {
	out := make(map[string]bool, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

func intersectSets(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
