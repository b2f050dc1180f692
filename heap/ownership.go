package heap

import "sort"

// movePatterns names calls that consume (move) their argument rather
// than merely reading it, mirroring Rust's move semantics generalized
// to any language plugin that tags a call this way.
var defaultMovePatterns = []string{"*.Move", "move", "std::move", "*.Consume"}

// checkOwnership flags a use of a variable in a block dominated by its
// move, and a second move of an already-moved variable (the two
// violations the spec's ownership checker is required to catch: a use
// after move, and a double move).
func checkOwnership(fi *funcInput) []Issue {
	moved := make(map[string]string)
	var issues []Issue

	for _, b := range fi.bfg.Blocks {
		for _, stmt := range b.Statements {
			if stmt.CallTarget != "" && matchesAny(stmt.CallTarget, defaultMovePatterns) {
				for _, v := range stmt.CallArgs {
					if priorBlock, already := moved[v]; already && fi.dom.IsDominator(priorBlock, b.ID) {
						issues = append(issues, Issue{
							Kind: IssueOwnershipMove, Severity: SeverityHigh,
							FunctionID: fi.bfg.FunctionID, BlockID: b.ID, Variable: v,
							Reason: "value moved a second time after an earlier move dominates this point",
						})
					}
					moved[v] = b.ID
				}
				continue
			}
			for _, v := range append(append([]string{}, stmt.Uses...), stmt.CallArgs...) {
				if priorBlock, already := moved[v]; already && fi.dom.IsDominator(priorBlock, b.ID) {
					issues = append(issues, Issue{
						Kind: IssueOwnershipMove, Severity: SeverityHigh,
						FunctionID: fi.bfg.FunctionID, BlockID: b.ID, Variable: v,
						Reason: "value used after being moved on every path reaching this use",
					})
				}
			}
		}

		if len(b.Statements) == 0 {
			for _, v := range b.UsedVars {
				if priorBlock, already := moved[v]; already && fi.dom.IsDominator(priorBlock, b.ID) {
					issues = append(issues, Issue{
						Kind: IssueOwnershipMove, Severity: SeverityHigh,
						FunctionID: fi.bfg.FunctionID, BlockID: b.ID, Variable: v,
						Reason: "value used after being moved on every path reaching this use",
					})
				}
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
