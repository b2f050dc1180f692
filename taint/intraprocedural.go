package taint

import (
	"strconv"

	"github.com/shivasurya/code-pathfinder/engine/flow"
)

// AnalyzeFunction runs a forward intraprocedural taint pass over one
// function's normalized statements: sources mark their assigned
// variable tainted, assignments and calls propagate (with decay on
// calls, since conservative treatment of stdlib/third-party calls is
// the right default), sanitizers clear, and sinks are checked against
// every still-tainted argument.
//
// params maps a parameter's textual name to its index. seeds marks
// which of those parameters are themselves taint sources for this
// analysis run — either because the policy names them directly (e.g. a
// top-level entry point whose argument is untrusted input), or because
// the interprocedural driver is re-running this function with a
// caller's actual argument found tainted.
func AnalyzeFunction(functionFQN string, statements []*flow.Statement, policy *Policy, params map[string]int, seeds map[string]Kind) (*FunctionSummary, []TaintPath, []OutgoingCall) {
	state := NewTaintState()
	summary := newSummary(functionFQN)
	var paths []TaintPath
	var outgoing []OutgoingCall

	for name, kind := range seeds {
		state.SetTainted(name, &variableTaintInfo{
			Source:     name,
			Kind:       kind,
			Confidence: 1.0,
			Chain:      []string{name},
		})
	}

	for _, stmt := range statements {
		if stmt.CallTarget != "" {
			if rule, ok := policy.matchSource(stmt.CallTarget); ok && stmt.Def != "" {
				state.SetTainted(stmt.Def, &variableTaintInfo{
					Source:     stmt.CallTarget,
					Kind:       rule.Kind,
					Confidence: 1.0,
					SourceLine: stmt.Line,
					Chain:      []string{stmt.Def},
				})
				continue
			}
			if _, ok := policy.matchSanitizer(stmt.CallTarget); ok {
				if stmt.Def != "" {
					state.SetUntainted(stmt.Def)
				}
				for _, arg := range stmt.Uses {
					state.SetUntainted(arg)
				}
				continue
			}
		}

		if stmt.Type == flow.StatementAssignment && stmt.Def != "" {
			propagateAssignment(stmt, state)
		} else if stmt.CallTarget != "" {
			propagateCall(stmt, state)
		}

		if stmt.Type == flow.StatementReturn {
			recordReturnTaint(stmt, state, params, summary)
		}

		if stmt.CallTarget != "" {
			if rule, ok := policy.matchSink(stmt.CallTarget); ok {
				recordSinkHits(stmt, rule, state, params, functionFQN, summary, &paths)
			}
			if oc := taintedCallArgs(stmt, state); oc != nil {
				outgoing = append(outgoing, *oc)
			}
		}
	}

	return summary, paths, outgoing
}

// OutgoingCall records a call site where at least one positional
// argument was tainted in the caller, for the interprocedural driver to
// follow into the callee with that argument bound to its parameter.
type OutgoingCall struct {
	CallTarget string
	Line       uint32
	// ArgTaint maps a positional argument index to the taint info
	// carried by the actual argument at that position.
	ArgTaint map[int]*variableTaintInfo
}

func taintedCallArgs(stmt *flow.Statement, state *TaintState) *OutgoingCall {
	var tainted map[int]*variableTaintInfo
	for i, arg := range stmt.CallArgs {
		if info := state.Get(arg); info != nil {
			if tainted == nil {
				tainted = make(map[int]*variableTaintInfo)
			}
			tainted[i] = info
		}
	}
	if tainted == nil {
		return nil
	}
	return &OutgoingCall{CallTarget: stmt.CallTarget, Line: stmt.Line, ArgTaint: tainted}
}

func recordReturnTaint(stmt *flow.Statement, state *TaintState, params map[string]int, summary *FunctionSummary) {
	for _, used := range stmt.Uses {
		info := state.Get(used)
		if info == nil || len(info.Chain) == 0 {
			continue
		}
		if pi, isParam := params[info.Chain[0]]; isParam {
			summary.ParamToReturn[pi] = info.Confidence
		}
	}
}

func recordSinkHits(stmt *flow.Statement, rule Rule, state *TaintState, params map[string]int, functionFQN string, summary *FunctionSummary, paths *[]TaintPath) {
	for i, arg := range stmt.Uses {
		if !sinkTakesArg(rule, i) {
			continue
		}
		info := state.Get(arg)
		if info == nil {
			continue
		}
		path := TaintPath{
			Kind:       rule.Kind,
			Steps:      append(append([]string{}, info.Chain...), stmt.CallTarget+"(arg"+strconv.Itoa(i)+")"),
			SourceFunc: functionFQN,
			SourceLine: info.SourceLine,
			SinkFunc:   functionFQN,
			SinkLine:   stmt.Line,
			SinkArg:    strconv.Itoa(i),
			Confidence: info.Confidence,
			Sanitized:  false,
		}
		*paths = append(*paths, path)
		summary.InternalSinks = append(summary.InternalSinks, path)

		if len(info.Chain) > 0 {
			if pi, isParam := params[info.Chain[0]]; isParam {
				summary.ParamToInternalSink[pi] = append(summary.ParamToInternalSink[pi], path)
			}
		}
	}
}

func sinkTakesArg(rule Rule, argIndex int) bool {
	if len(rule.Args) == 0 {
		return true
	}
	for _, a := range rule.Args {
		if a == argIndex {
			return true
		}
	}
	return false
}

func propagateAssignment(stmt *flow.Statement, state *TaintState) {
	for _, used := range stmt.Uses {
		if info := state.Get(used); info != nil {
			state.SetTainted(stmt.Def, &variableTaintInfo{
				Source:     info.Source,
				Kind:       info.Kind,
				Confidence: info.Confidence,
				SourceLine: info.SourceLine,
				Chain:      append(append([]string{}, info.Chain...), stmt.Def),
			})
			return
		}
	}
}

func propagateCall(stmt *flow.Statement, state *TaintState) {
	if stmt.Def == "" {
		return
	}
	for _, used := range stmt.Uses {
		info := state.Get(used)
		if info == nil {
			continue
		}
		state.SetTainted(stmt.Def, &variableTaintInfo{
			Source:     info.Source,
			Kind:       info.Kind,
			Confidence: decay(info.Confidence),
			SourceLine: info.SourceLine,
			Chain:      append(append([]string{}, info.Chain...), stmt.Def),
		})
		return
	}
}
