package pointsto

// Andersen solves a constraint set with an inclusion-based worklist:
// more precise than Steensgaard because a load/store only grows the
// points-to sets actually reachable through it, rather than unifying
// whole classes. Every sccInterval iterations the copy subgraph is
// checked for cycles via Tarjan's algorithm and any cycle found is
// collapsed to one representative, since variables mutually reachable
// through copy edges necessarily end up with identical points-to sets.
const sccInterval = 64

// Andersen runs the inclusion solver to a fixpoint and returns the
// solved points-to graph.
func Andersen(constraints []Constraint) *PointsToGraph {
	g := newPointsToGraph("andersen")

	copyEdges := make(map[VarID][]VarID) // v -> w for each `v = w`
	loads := make(map[VarID][]VarID)     // v -> w for each `v = *w`
	stores := make(map[VarID][]VarID)    // v -> w for each `*v = w`

	dirty := make(map[VarID]bool)
	var worklist []VarID

	enqueue := func(v VarID) {
		if !dirty[v] {
			dirty[v] = true
			worklist = append(worklist, v)
		}
	}

	for _, c := range constraints {
		switch c.Kind {
		case ConstraintAlloc:
			if g.addPointsTo(c.V, c.L) {
				enqueue(c.V)
			}
		case ConstraintCopy:
			copyEdges[c.V] = append(copyEdges[c.V], c.W)
		case ConstraintLoad:
			loads[c.V] = append(loads[c.V], c.W)
		case ConstraintStore:
			stores[c.V] = append(stores[c.V], c.W)
		}
	}

	for v := range copyEdges {
		enqueue(v)
	}
	for v := range loads {
		enqueue(v)
	}
	for v := range stores {
		enqueue(v)
	}

	iterations := 0
	for len(worklist) > 0 {
		v := worklist[0]
		worklist = worklist[1:]
		dirty[v] = false

		changed := false

		for _, w := range copyEdges[v] {
			for l := range g.PointsTo[g.repOf(w)] {
				if g.addPointsTo(v, l) {
					changed = true
				}
			}
		}

		// v = *w: for every abstract object o that w may point to, v's
		// points-to set gains whatever o itself points to (the value
		// last stored through any pointer aliasing o).
		for _, w := range loads[v] {
			for o := range g.PointsTo[g.repOf(w)] {
				for target := range g.LocPointsTo[o] {
					if g.addPointsTo(v, target) {
						changed = true
					}
				}
			}
		}

		// *v = w: for every abstract object o that v may point to, o's
		// own points-to set gains w's points-to set.
		for _, w := range stores[v] {
			for o := range g.PointsTo[g.repOf(v)] {
				for target := range g.PointsTo[g.repOf(w)] {
					if g.addLocPointsTo(o, target) {
						changed = true
					}
				}
			}
		}

		if changed {
			// A growth of v's set (or of an object's contents through a
			// store) can feed any copy, load or store constraint, so every
			// constrained variable is revisited until nothing changes.
			for u := range copyEdges {
				enqueue(u)
			}
			for u := range loads {
				enqueue(u)
			}
			for u := range stores {
				enqueue(u)
			}
		}

		iterations++
		if iterations%sccInterval == 0 {
			collapseSCCs(g, copyEdges)
		}
	}

	collapseSCCs(g, copyEdges)
	return g
}

// collapseSCCs finds cycles in the copy subgraph and merges every
// variable in a cycle onto one representative, since mutual reachability
// through copy edges means they must carry identical points-to sets.
func collapseSCCs(g *PointsToGraph, copyEdges map[VarID][]VarID) {
	adj := make(map[uint32][]uint32, len(copyEdges))
	for v, succs := range copyEdges {
		ids := make([]uint32, len(succs))
		for i, s := range succs {
			ids[i] = uint32(s)
		}
		adj[uint32(v)] = ids
	}

	for _, scc := range TarjanSCC(adj) {
		if len(scc) < 2 {
			continue
		}
		rep := VarID(scc[0])
		merged := make(map[LocationID]bool)
		for _, m := range scc {
			for l := range g.PointsTo[g.repOf(VarID(m))] {
				merged[l] = true
			}
		}
		for _, m := range scc {
			g.Representative[VarID(m)] = rep
		}
		g.PointsTo[rep] = merged
	}
}
