package heap

import (
	"sort"
	"strings"

	"github.com/shivasurya/code-pathfinder/engine/flow"
)

// defaultFreePatterns and defaultAllocPatterns use the same wildcard
// vocabulary the taint policy matches call targets with.
var defaultFreePatterns = []string{"free", "*.Free", "*.Close", "close", "dealloc*"}
var defaultAllocPatterns = []string{"malloc", "*.New*", "alloc*", "make"}

func matchesAny(target string, patterns []string) bool {
	for _, p := range patterns {
		if matchesWildcard(target, p) {
			return true
		}
	}
	return false
}

func matchesWildcard(target, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if strings.Contains(pattern, "*") {
		switch {
		case strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*"):
			return strings.Contains(target, strings.Trim(pattern, "*"))
		case strings.HasPrefix(pattern, "*"):
			return strings.HasSuffix(target, strings.TrimPrefix(pattern, "*"))
		case strings.HasSuffix(pattern, "*"):
			return strings.HasPrefix(target, strings.TrimSuffix(pattern, "*"))
		}
	}
	return strings.EqualFold(target, pattern)
}

// checkMemorySafety walks every block in source order tracking, per
// variable, whether it has been freed and whether it has been
// null-checked on the path reaching the current block. Double-free and
// use-after-free both reduce to "was this variable freed on every path
// dominating this use"; null-deref reduces to "is this variable read
// without an intervening nil-guard dominating the read".
func checkMemorySafety(fi *funcInput) []Issue {
	freed := make(map[string]string) // variable -> block ID where freed
	var issues []Issue

	for _, b := range fi.bfg.Blocks {
		for _, stmt := range b.Statements {
			if stmt.CallTarget == "" {
				continue
			}
			switch {
			case matchesAny(stmt.CallTarget, defaultFreePatterns):
				for _, v := range stmt.CallArgs {
					if priorBlock, already := freed[v]; already && fi.dom.IsDominator(priorBlock, b.ID) {
						issues = append(issues, Issue{
							Kind: IssueDoubleFree, Severity: SeverityHigh,
							FunctionID: fi.bfg.FunctionID, BlockID: b.ID, Variable: v,
							Reason: "variable freed more than once on this path",
						})
					}
					freed[v] = b.ID
				}
			default:
				for _, v := range append(append([]string{}, stmt.Uses...), stmt.CallArgs...) {
					if priorBlock, already := freed[v]; already && fi.dom.IsDominator(priorBlock, b.ID) {
						issues = append(issues, Issue{
							Kind: IssueUseAfterFree, Severity: SeverityCritical,
							FunctionID: fi.bfg.FunctionID, BlockID: b.ID, Variable: v,
							Reason: "variable used after being freed on every path reaching this use",
						})
					}
				}
			}
		}

		// Return/Raise/Yield/Condition blocks carry their reads on the
		// block itself rather than a Statements list; check those too.
		if len(b.Statements) == 0 {
			for _, v := range b.UsedVars {
				if priorBlock, already := freed[v]; already && fi.dom.IsDominator(priorBlock, b.ID) {
					issues = append(issues, Issue{
						Kind: IssueUseAfterFree, Severity: SeverityCritical,
						FunctionID: fi.bfg.FunctionID, BlockID: b.ID, Variable: v,
						Reason: "variable used after being freed on every path reaching this use",
					})
				}
			}
		}
	}

	issues = append(issues, checkNullDeref(fi)...)

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].BlockID != issues[j].BlockID {
			return issues[i].BlockID < issues[j].BlockID
		}
		return issues[i].Variable < issues[j].Variable
	})
	return issues
}

// checkNullDeref flags a read of variable v in block B when no
// nil/not-nil guard on v appears in a Condition block that dominates B.
func checkNullDeref(fi *funcInput) []Issue {
	var guarded []string // block IDs that are nil-guard conditions
	guardVar := make(map[string]string)
	for _, b := range fi.bfg.Blocks {
		if b.Kind == flow.BlockCondition && (strings.Contains(b.Condition, "nil") || strings.Contains(b.Condition, "null")) {
			guarded = append(guarded, b.ID)
			for _, v := range b.UsedVars {
				guardVar[b.ID] = v
				_ = v
			}
		}
	}

	var issues []Issue
	for _, b := range fi.bfg.Blocks {
		if b.Kind != flow.BlockStatement {
			continue
		}
		for _, v := range b.UsedVars {
			dominated := false
			for _, g := range guarded {
				if guardVar[g] == v && fi.dom.IsDominator(g, b.ID) {
					dominated = true
					break
				}
			}
			if !dominated && requiresDerefCheck(v) {
				issues = append(issues, Issue{
					Kind: IssueNullDeref, Severity: SeverityMedium,
					FunctionID: fi.bfg.FunctionID, BlockID: b.ID, Variable: v,
					Reason: "pointer-typed variable dereferenced without a dominating nil guard",
				})
			}
		}
	}
	return issues
}

// requiresDerefCheck is a narrow heuristic: only variables explicitly
// marked with a "*"-prefixed use (language plugins emit this for an
// explicit dereference) are flagged, to avoid drowning ordinary reads in
// false positives.
func requiresDerefCheck(v string) bool {
	return strings.HasPrefix(v, "*")
}
