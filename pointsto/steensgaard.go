package pointsto

// Steensgaard solves a constraint set in near-linear time by equating
// (rather than including) the points-to sets of variables connected by
// copy/load/store constraints. This trades precision for speed: two
// variables in the same class share one merged points-to set, even if
// only one of several possible aliasing paths actually occurs at
// runtime.
func Steensgaard(constraints []Constraint) *PointsToGraph {
	maxVar := uint32(0)
	for _, c := range constraints {
		if uint32(c.V) > maxVar {
			maxVar = uint32(c.V)
		}
		if uint32(c.W) > maxVar {
			maxVar = uint32(c.W)
		}
	}
	uf := NewUnionFind(int(maxVar) + 1)

	g := newPointsToGraph("steensgaard")

	for _, c := range constraints {
		switch c.Kind {
		case ConstraintAlloc:
			g.addPointsTo(c.V, c.L)
		case ConstraintCopy:
			uf.Union(uint32(c.V), uint32(c.W))
		case ConstraintLoad, ConstraintStore:
			// v = *w or *v = w: the dereferenced variable's class is
			// equated with the other operand's class, collapsing
			// pointer-to-pointer distinctions the way Steensgaard's
			// one-pass unification always does.
			uf.Union(uint32(c.V), uint32(c.W))
		}
	}

	for v := VarID(0); v <= VarID(maxVar); v++ {
		rep := VarID(uf.Find(uint32(v)))
		if rep != v {
			g.Representative[v] = rep
		}
	}

	// Re-home every points-to fact onto its final class representative,
	// since alloc constraints may have been recorded before the union
	// that merged their variable into a larger class.
	merged := make(map[VarID]map[LocationID]bool)
	for v, set := range g.PointsTo {
		rep := g.repOf(v)
		dst, ok := merged[rep]
		if !ok {
			dst = make(map[LocationID]bool)
			merged[rep] = dst
		}
		for l := range set {
			dst[l] = true
		}
	}
	g.PointsTo = merged

	return g
}
