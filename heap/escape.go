package heap

import (
	"sort"

	"github.com/shivasurya/code-pathfinder/engine/flow"
)

// checkEscape flags a local allocation whose variable is also used as a
// return value or an argument to a call outside this function (the
// cheap over-approximation: any call target not itself an allocation or
// free pattern is treated as a potential escape site, matching the
// spec's "stack/heap/argument" escape categories without a full
// whole-program alias closure — that's what the points-to engine is
// for, and C6 already consults it for taint; this pass only reports
// local, single-function escape candidates).
func checkEscape(fi *funcInput) []Issue {
	allocated := make(map[string]string) // variable -> block ID where allocated

	for _, b := range fi.bfg.Blocks {
		for _, stmt := range b.Statements {
			if stmt.CallTarget != "" && matchesAny(stmt.CallTarget, defaultAllocPatterns) && stmt.Def != "" {
				allocated[stmt.Def] = b.ID
			}
		}
	}

	var issues []Issue
	record := func(b *flow.Block, v, reason string) {
		if _, ok := allocated[v]; !ok {
			return
		}
		issues = append(issues, Issue{
			Kind: IssueEscape, Severity: SeverityLow,
			FunctionID: fi.bfg.FunctionID, BlockID: b.ID, Variable: v,
			Reason: reason,
		})
	}

	for _, b := range fi.bfg.Blocks {
		if b.Kind == flow.BlockReturn {
			for _, v := range b.UsedVars {
				record(b, v, "locally allocated value returned to caller")
			}
			continue
		}
		for _, stmt := range b.Statements {
			if stmt.CallTarget == "" {
				continue
			}
			if matchesAny(stmt.CallTarget, defaultAllocPatterns) || matchesAny(stmt.CallTarget, defaultFreePatterns) {
				continue
			}
			for _, v := range stmt.CallArgs {
				record(b, v, "locally allocated value passed to "+stmt.CallTarget)
			}
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].BlockID != issues[j].BlockID {
			return issues[i].BlockID < issues[j].BlockID
		}
		return issues[i].Variable < issues[j].Variable
	})
	return issues
}
