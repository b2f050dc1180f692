package heap

import (
	"testing"

	"github.com/shivasurya/code-pathfinder/engine/flow"
	"github.com/stretchr/testify/assert"
)

// buildLinear constructs a straight-line BFG/CFG (no branches) from a
// flat statement list, avoiding merge blocks so dominance is trivial:
// every earlier block dominates every later one.
func buildLinear(t *testing.T, stmts []*flow.Statement) (*flow.BasicFlowGraph, *flow.ControlFlowGraph) {
	t.Helper()
	bfg, cfg := flow.Build("f", stmts)
	return bfg, cfg
}

func TestCheckMemorySafety_DoubleFree(t *testing.T) {
	stmts := []*flow.Statement{
		{Type: flow.StatementCall, CallTarget: "free", CallArgs: []string{"p"}},
		{Type: flow.StatementCall, CallTarget: "free", CallArgs: []string{"p"}},
	}
	bfg, cfg := buildLinear(t, stmts)

	issues := Run(DefaultConfig(), bfg, cfg)

	var found bool
	for _, i := range issues {
		if i.Kind == IssueDoubleFree && i.Variable == "p" {
			found = true
		}
	}
	assert.True(t, found, "expected a double-free issue on p")
}

func TestCheckMemorySafety_UseAfterFree(t *testing.T) {
	stmts := []*flow.Statement{
		{Type: flow.StatementCall, CallTarget: "free", CallArgs: []string{"p"}},
		{Type: flow.StatementCall, CallTarget: "use", CallArgs: []string{"p"}},
	}
	bfg, cfg := buildLinear(t, stmts)

	issues := Run(DefaultConfig(), bfg, cfg)

	var found bool
	for _, i := range issues {
		if i.Kind == IssueUseAfterFree && i.Variable == "p" {
			found = true
		}
	}
	assert.True(t, found, "expected a use-after-free issue on p")
}

func TestCheckEscape_ReturnedAllocation(t *testing.T) {
	stmts := []*flow.Statement{
		{Type: flow.StatementAssignment, Def: "x", CallTarget: "malloc"},
		{Type: flow.StatementReturn, Uses: []string{"x"}},
	}
	bfg, cfg := buildLinear(t, stmts)

	issues := Run(DefaultConfig(), bfg, cfg)

	var found bool
	for _, i := range issues {
		if i.Kind == IssueEscape && i.Variable == "x" {
			found = true
		}
	}
	assert.True(t, found, "expected an escape issue on x")
}

func TestCheckOwnership_UseAfterMove(t *testing.T) {
	stmts := []*flow.Statement{
		{Type: flow.StatementCall, CallTarget: "std::move", CallArgs: []string{"v"}},
		{Type: flow.StatementCall, CallTarget: "use", CallArgs: []string{"v"}},
	}
	bfg, cfg := buildLinear(t, stmts)

	issues := Run(DefaultConfig(), bfg, cfg)

	var found bool
	for _, i := range issues {
		if i.Kind == IssueOwnershipMove && i.Variable == "v" {
			found = true
		}
	}
	assert.True(t, found, "expected an ownership move-after-use issue on v")
}

func TestCheckTypestate_InvalidTransition(t *testing.T) {
	stmts := []*flow.Statement{
		{Type: flow.StatementCall, CallTarget: "Close", Def: "f"},
		{Type: flow.StatementCall, CallTarget: "Read", CallArgs: []string{"f"}},
	}
	bfg, cfg := buildLinear(t, stmts)
	fi := newFuncInput(bfg, cfg)

	proto := NewProtocol("file", "closed", "open")
	proto.AddTransition("closed", "Close", "closed")
	proto.AddTransition("open", "Read", "open")

	issues := CheckTypestate(fi, proto, "f", bfg.Blocks)

	var found bool
	for _, i := range issues {
		if i.Kind == IssueTypestate {
			found = true
		}
	}
	assert.True(t, found, "expected a typestate violation reading a closed handle")
}
