package pointsto

import "sort"

// Tarjan computes the strongly connected components of a directed graph
// given as an adjacency map, used to collapse cycles in Andersen's copy
// subgraph (variables in a cycle necessarily share a points-to set).
type tarjanState struct {
	adj     map[uint32][]uint32
	index   map[uint32]int
	lowlink map[uint32]int
	onStack map[uint32]bool
	stack   []uint32
	counter int
	sccs    [][]uint32
}

// TarjanSCC returns the strongly connected components of adj. Each
// component is returned in discovery order; within a component every
// pair of nodes is mutually reachable, and no cycle exists between
// components.
func TarjanSCC(adj map[uint32][]uint32) [][]uint32 {
	ts := &tarjanState{
		adj:     adj,
		index:   make(map[uint32]int),
		lowlink: make(map[uint32]int),
		onStack: make(map[uint32]bool),
	}

	nodes := make(map[uint32]bool)
	for n, succs := range adj {
		nodes[n] = true
		for _, s := range succs {
			nodes[s] = true
		}
	}

	// Deterministic iteration order: sort node IDs before visiting so
	// repeated runs over the same graph always produce the same SCC
	// ordering.
	ordered := sortedKeys(nodes)
	for _, n := range ordered {
		if _, seen := ts.index[n]; !seen {
			ts.strongConnect(n)
		}
	}
	return ts.sccs
}

func (ts *tarjanState) strongConnect(v uint32) {
	ts.index[v] = ts.counter
	ts.lowlink[v] = ts.counter
	ts.counter++
	ts.stack = append(ts.stack, v)
	ts.onStack[v] = true

	for _, w := range ts.adj[v] {
		if _, seen := ts.index[w]; !seen {
			ts.strongConnect(w)
			if ts.lowlink[w] < ts.lowlink[v] {
				ts.lowlink[v] = ts.lowlink[w]
			}
		} else if ts.onStack[w] {
			if ts.index[w] < ts.lowlink[v] {
				ts.lowlink[v] = ts.index[w]
			}
		}
	}

	if ts.lowlink[v] == ts.index[v] {
		var component []uint32
		for {
			n := len(ts.stack) - 1
			w := ts.stack[n]
			ts.stack = ts.stack[:n]
			ts.onStack[w] = false
			component = append(component, w)
			if w == v {
				break
			}
		}
		ts.sccs = append(ts.sccs, component)
	}
}

func sortedKeys(m map[uint32]bool) []uint32 {
	out := make([]uint32, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
