package ssa

import (
	"testing"

	"github.com/shivasurya/code-pathfinder/engine/flow"
	"github.com/stretchr/testify/assert"
)

func versions(g *Graph) []*Version {
	var out []*Version
	for _, v := range g.Values {
		if ver, ok := v.(*Version); ok {
			out = append(out, ver)
		}
	}
	return out
}

func phis(g *Graph) []*Phi {
	var out []*Phi
	for _, v := range g.Values {
		if p, ok := v.(*Phi); ok {
			out = append(out, p)
		}
	}
	return out
}

// TestRename_DiamondRealPhi builds `if c: x = 1 else: x = 2; use(x)`,
// writing the same textual variable on both branches, then reads it
// after the merge. Since x has two definitions it is sparse-tracked,
// and since both incoming values are distinct the merge phi must NOT
// be pruned as trivial.
func TestRename_DiamondRealPhi(t *testing.T) {
	stmts := []*flow.Statement{
		{
			Type: flow.StatementIf,
			Uses: []string{"c"},
			Nested: []*flow.Statement{
				{Type: flow.StatementAssignment, Line: 1, Def: "x"},
			},
			ElseBranch: []*flow.Statement{
				{Type: flow.StatementAssignment, Line: 2, Def: "x"},
			},
		},
		{Type: flow.StatementExpression, Line: 3, CallTarget: "use", Uses: []string{"x"}},
	}

	bfg, cfg := flow.Build("f", stmts)
	dfg := flow.BuildDFG("f", stmts)
	g := Rename("f", bfg, cfg, dfg)

	assert.Len(t, versions(g), 2, "both assignments to x should be renamed since x has >1 definition")

	merged := phis(g)
	assert.NotEmpty(t, merged, "the post-merge read of x should force a phi at the merge block")
	for _, p := range merged {
		assert.False(t, p.removed, "a phi with two distinct incoming versions is not trivial")
	}
}

// TestRename_TrivialPhiPruned shares one assignment above an if/else
// whose branches don't redefine x, so both edges into the merge block
// resolve to the identical upstream version and the phi must be
// pruned.
func TestRename_TrivialPhiPruned(t *testing.T) {
	stmts := []*flow.Statement{
		{Type: flow.StatementAssignment, Line: 1, Def: "x"},
		{Type: flow.StatementAssignment, Line: 2, Def: "x"}, // second def makes x sparse
		{
			Type: flow.StatementIf,
			Uses: []string{"c"},
			Nested: []*flow.Statement{
				{Type: flow.StatementExpression, Line: 3, CallTarget: "noop"},
			},
			ElseBranch: []*flow.Statement{
				{Type: flow.StatementExpression, Line: 4, CallTarget: "noop"},
			},
		},
		{Type: flow.StatementExpression, Line: 5, CallTarget: "use", Uses: []string{"x"}},
	}

	bfg, cfg := flow.Build("f", stmts)
	dfg := flow.BuildDFG("f", stmts)
	g := Rename("f", bfg, cfg, dfg)

	found := phis(g)
	for _, p := range found {
		assert.True(t, p.removed, "both branches reach the merge with the same upstream version, phi must be pruned")
	}
}

// TestRename_SparseFilterSkipsSingleDef verifies a variable with exactly
// one definition never gets a Version: it is left untouched by the
// renamer entirely.
func TestRename_SparseFilterSkipsSingleDef(t *testing.T) {
	stmts := []*flow.Statement{
		{Type: flow.StatementAssignment, Line: 1, Def: "x"},
		{Type: flow.StatementExpression, Line: 2, CallTarget: "use", Uses: []string{"x"}},
	}

	bfg, cfg := flow.Build("f", stmts)
	dfg := flow.BuildDFG("f", stmts)
	g := Rename("f", bfg, cfg, dfg)

	assert.Empty(t, g.Values, "single-definition variables are not sparse and must be skipped entirely")
	assert.False(t, g.Sparse("x"))
}
