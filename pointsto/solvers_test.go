package pointsto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Scenario: a = alloc(L1); b = a; c = alloc(L2); d = c. Steensgaard
// should equate a and b (and separately c and d) via the copy
// constraint, so MayAlias(a, b) holds but MayAlias(a, c) does not.
func TestSteensgaard_CopyUnifiesClasses(t *testing.T) {
	const (
		a VarID = iota
		b
		c
		d
	)
	const (
		l1 LocationID = iota
		l2
	)

	g := Steensgaard([]Constraint{
		{Kind: ConstraintAlloc, V: a, L: l1},
		{Kind: ConstraintCopy, V: b, W: a},
		{Kind: ConstraintAlloc, V: c, L: l2},
		{Kind: ConstraintCopy, V: d, W: c},
	})

	assert.True(t, g.MayAlias(a, b))
	assert.True(t, g.MayAlias(c, d))
	assert.False(t, g.MayAlias(a, c))
	assert.Equal(t, 1, g.PointsToSize(b))
}

// Scenario: a = alloc(L1); b = alloc(L2); p = a; p = b (two copy
// constraints into the same variable) — Andersen must end up with p
// pointing to BOTH L1 and L2, which a unification-based solver would
// also get right only by accident; this is the inclusion-vs-equality
// distinguishing case.
func TestAndersen_InclusionMergesMultipleSources(t *testing.T) {
	const (
		a VarID = iota
		b
		p
	)
	const (
		l1 LocationID = iota
		l2
	)

	g := Andersen([]Constraint{
		{Kind: ConstraintAlloc, V: a, L: l1},
		{Kind: ConstraintAlloc, V: b, L: l2},
		{Kind: ConstraintCopy, V: p, W: a},
		{Kind: ConstraintCopy, V: p, W: b},
	})

	assert.Equal(t, 2, g.PointsToSize(p))
	assert.True(t, g.MayAlias(p, a))
	assert.True(t, g.MayAlias(p, b))
}

// TestAndersen_LoadStorePropagatesThroughPointer: p points to object O,
// y points to object Ly. After *p = y (store) and z = *p (load), z must
// end up pointing to the same object y does — the value written through
// p must be visible to a later read through p.
func TestAndersen_LoadStorePropagatesThroughPointer(t *testing.T) {
	const (
		p VarID = iota // pointer written and then read through
		y              // value stored through p
		z              // value loaded through p
	)
	const (
		lo LocationID = iota // the object p points to
		ly                   // the object y points to
	)

	g := Andersen([]Constraint{
		{Kind: ConstraintAlloc, V: p, L: lo},
		{Kind: ConstraintAlloc, V: y, L: ly},
		{Kind: ConstraintStore, V: p, W: y},
		{Kind: ConstraintLoad, V: z, W: p},
	})

	assert.True(t, g.MayAlias(z, y), "value stored through p must reach the load result")
}
