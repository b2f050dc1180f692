package pointsto

// PointsToGraph is the solved result of either solver: for every
// variable (or, after Andersen's SCC collapse, every representative), the
// set of abstract allocation sites it may point to.
type PointsToGraph struct {
	Strategy string // "steensgaard" or "andersen"
	PointsTo map[VarID]map[LocationID]bool
	// LocPointsTo tracks what an abstract object itself points to, for
	// pointer-typed fields: *v = w (store) grows LocPointsTo[o] for
	// every o in PointsTo[v], and v = *w (load) reads it back out.
	LocPointsTo map[LocationID]map[LocationID]bool
	// Representative maps a variable to the representative of its
	// equivalence class (Steensgaard classes, or Andersen SCC
	// representatives). A variable with no entry is its own
	// representative.
	Representative map[VarID]VarID
}

func newPointsToGraph(strategy string) *PointsToGraph {
	return &PointsToGraph{
		Strategy:       strategy,
		PointsTo:       make(map[VarID]map[LocationID]bool),
		LocPointsTo:    make(map[LocationID]map[LocationID]bool),
		Representative: make(map[VarID]VarID),
	}
}

func (g *PointsToGraph) addLocPointsTo(o, target LocationID) bool {
	set, ok := g.LocPointsTo[o]
	if !ok {
		set = make(map[LocationID]bool)
		g.LocPointsTo[o] = set
	}
	if set[target] {
		return false
	}
	set[target] = true
	return true
}

func (g *PointsToGraph) repOf(v VarID) VarID {
	if r, ok := g.Representative[v]; ok {
		return r
	}
	return v
}

func (g *PointsToGraph) addPointsTo(v VarID, l LocationID) bool {
	r := g.repOf(v)
	set, ok := g.PointsTo[r]
	if !ok {
		set = make(map[LocationID]bool)
		g.PointsTo[r] = set
	}
	if set[l] {
		return false
	}
	set[l] = true
	return true
}

// PointsToSize returns the number of abstract locations v may point to.
func (g *PointsToGraph) PointsToSize(v VarID) int {
	return len(g.PointsTo[g.repOf(v)])
}

// MayAlias reports whether a and b's points-to sets share at least one
// abstract location (or belong to the same equivalence class, for
// Steensgaard, where aliasing is exact identity of class).
func (g *PointsToGraph) MayAlias(a, b VarID) bool {
	if g.repOf(a) == g.repOf(b) {
		return true
	}
	sa, sb := g.PointsTo[g.repOf(a)], g.PointsTo[g.repOf(b)]
	if len(sa) == 0 || len(sb) == 0 {
		return false
	}
	for l := range sa {
		if sb[l] {
			return true
		}
	}
	return false
}
