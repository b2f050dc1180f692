package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDFG_LinksDefToUse(t *testing.T) {
	stmts := []*Statement{
		{Type: StatementAssignment, Line: 1, Def: "x"},
		{Type: StatementAssignment, Line: 2, Def: "y", Uses: []string{"x"}},
		{Type: StatementExpression, Line: 3, CallTarget: "eval", Uses: []string{"y"}},
	}

	dfg := BuildDFG("f", stmts)

	assert.Len(t, dfg.Defs["x"], 1)
	assert.Len(t, dfg.Uses["x"], 1)
	assert.Len(t, dfg.Edges, 2)
}

func TestDataFlowGraph_ReachingDefs(t *testing.T) {
	stmts := []*Statement{
		{Type: StatementAssignment, Line: 1, Def: "x"},
		{Type: StatementAssignment, Line: 2, Def: "x"},
		{Type: StatementExpression, Line: 3, Uses: []string{"x"}},
	}

	dfg := BuildDFG("f", stmts)
	defs := dfg.ReachingDefs("x")
	assert.Len(t, defs, 1)
	assert.Equal(t, uint32(2), defs[0].Line)
}
