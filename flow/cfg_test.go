package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBuild_IfElseReturn mirrors spec scenario 5: `if c: a else: b; return`
// should produce blocks [Entry, Condition, a, b, Return, Exit] with
// Condition --True--> a, Condition --False--> b, and Return --> Exit.
func TestBuild_IfElseReturn(t *testing.T) {
	stmts := []*Statement{
		{
			Type: StatementIf,
			Uses: []string{"c"},
			Nested: []*Statement{
				{Type: StatementExpression, CallTarget: "a"},
			},
			ElseBranch: []*Statement{
				{Type: StatementExpression, CallTarget: "b"},
			},
		},
		{Type: StatementReturn},
	}

	bfg, cfg := Build("f", stmts)

	var kinds []BlockKind
	for _, b := range bfg.Blocks {
		kinds = append(kinds, b.Kind)
	}
	// Exactly six blocks, no extra merge block between the branches and
	// the return: [Entry, Condition, a, b, Return, Exit].
	assert.Equal(t, []BlockKind{
		BlockEntry, BlockCondition, BlockStatement, BlockStatement, BlockReturn, BlockExit,
	}, kinds)

	var hasTrue, hasFalse, retToExit bool
	for _, e := range cfg.Edges {
		if e.Kind == CFGTrue {
			hasTrue = true
		}
		if e.Kind == CFGFalse {
			hasFalse = true
		}
		if e.TargetBlockID == cfg.ExitBlockID {
			retToExit = true
		}
	}
	assert.True(t, hasTrue)
	assert.True(t, hasFalse)
	assert.True(t, retToExit)
	// entry->cond, cond->a, cond->b, a->return, b->return, return->exit —
	// no vacuous edge through an unused merge block.
	assert.Len(t, cfg.Edges, 6)
}

func TestBuild_LoopBackAndExit(t *testing.T) {
	stmts := []*Statement{
		{
			Type: StatementWhile,
			Uses: []string{"cond"},
			Nested: []*Statement{
				{Type: StatementExpression, CallTarget: "body"},
			},
		},
	}

	_, cfg := Build("f", stmts)

	var hasLoopBack, hasLoopExit bool
	for _, e := range cfg.Edges {
		if e.Kind == CFGLoopBack {
			hasLoopBack = true
		}
		if e.Kind == CFGLoopExit {
			hasLoopExit = true
		}
	}
	assert.True(t, hasLoopBack)
	assert.True(t, hasLoopExit)
}

func TestBuild_BreakExitsToLoopExit(t *testing.T) {
	stmts := []*Statement{
		{
			Type: StatementFor,
			Uses: []string{"it"},
			Nested: []*Statement{
				{Type: StatementBreak},
			},
		},
	}

	_, cfg := Build("f", stmts)

	var breakEdge bool
	for _, e := range cfg.Edges {
		if e.Kind == CFGLoopExit {
			breakEdge = true
		}
	}
	assert.True(t, breakEdge)
}
