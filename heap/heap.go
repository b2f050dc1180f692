// Package heap implements the heap-safety and typestate checkers: three
// independently toggleable analyses (memory safety, escape analysis,
// ownership) plus a finite-state protocol checker, all consuming a
// function's basic flow graph, its CFG and its dominator tree.
package heap

import "github.com/shivasurya/code-pathfinder/engine/flow"

// Severity ranks an issue for triage and report ordering.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// IssueKind classifies what a heap or typestate issue found.
type IssueKind string

const (
	IssueNullDeref       IssueKind = "null-deref"
	IssueUseAfterFree    IssueKind = "use-after-free"
	IssueDoubleFree      IssueKind = "double-free"
	IssueBufferOverflow  IssueKind = "buffer-overflow"
	IssueEscape          IssueKind = "escape"
	IssueOwnershipMove   IssueKind = "ownership-move-after-use"
	IssueOwnershipBorrow IssueKind = "ownership-borrow-conflict"
	IssueTypestate       IssueKind = "typestate-violation"
)

// Issue is one finding emitted by a heap or typestate checker.
type Issue struct {
	Kind       IssueKind
	Severity   Severity
	FunctionID string
	BlockID    string
	Variable   string
	Reason     string
}

// Config toggles each of the three heap checkers independently; all
// default on. Typestate is governed separately by whether protocols are
// registered.
type Config struct {
	MemorySafety bool
	Escape       bool
	Ownership    bool
}

// DefaultConfig enables every checker.
func DefaultConfig() Config {
	return Config{MemorySafety: true, Escape: true, Ownership: true}
}

// funcInput bundles the per-function artifacts every heap checker reads:
// the CFG (for dominance), the BFG (for block bodies) and dominator sets
// computed once and shared across checkers.
type funcInput struct {
	cfg  *flow.ControlFlowGraph
	bfg  *flow.BasicFlowGraph
	dom  *flow.Dominators
	byID map[string]*flow.Block
}

func newFuncInput(bfg *flow.BasicFlowGraph, cfg *flow.ControlFlowGraph) *funcInput {
	ids := make([]string, 0, len(bfg.Blocks))
	byID := make(map[string]*flow.Block, len(bfg.Blocks))
	for _, b := range bfg.Blocks {
		ids = append(ids, b.ID)
		byID[b.ID] = b
	}
	return &funcInput{
		cfg:  cfg,
		bfg:  bfg,
		dom:  flow.ComputeDominators(cfg, ids),
		byID: byID,
	}
}

// Run executes every enabled checker over one function's flow graphs and
// returns the combined, deterministically ordered issue list.
func Run(cfg Config, bfg *flow.BasicFlowGraph, cfgGraph *flow.ControlFlowGraph) []Issue {
	fi := newFuncInput(bfg, cfgGraph)

	var issues []Issue
	if cfg.MemorySafety {
		issues = append(issues, checkMemorySafety(fi)...)
	}
	if cfg.Escape {
		issues = append(issues, checkEscape(fi)...)
	}
	if cfg.Ownership {
		issues = append(issues, checkOwnership(fi)...)
	}
	return issues
}
