package taint

import "sort"

// Analyzer runs bottom-up summary construction followed by a top-down
// walk across a call graph, grounded in the same source/sink/sanitizer
// checking the intraprocedural pass uses, with a bounded call string.
// Argument binding is by position only: a tainted actual argument
// carries taint into the callee's matching parameter, and aliases of it
// do not.
type Analyzer struct {
	CG       *CallGraph
	Policy   *Policy
	MaxDepth int

	// MayAlias is an optional alias oracle (caller, a, b) for call
	// sites. Analyze does not consult it: setting it does not change
	// which variables carry taint across a call.
	MayAlias func(caller, a, b string) bool

	summaries map[string]*FunctionSummary
}

// NewAnalyzer builds a driver over cg with the given policy and a
// default call-string bound of 8 hops.
func NewAnalyzer(cg *CallGraph, policy *Policy) *Analyzer {
	return &Analyzer{CG: cg, Policy: policy, MaxDepth: 8, summaries: make(map[string]*FunctionSummary)}
}

// Bottom-up pass: summarize every function once with no external seeds.
// Analyze stores these summaries but does not read them back: a callee
// reached with tainted arguments is re-walked with those arguments as
// seeds.
func (a *Analyzer) summarize() {
	for fqn, stmts := range a.CG.Statements {
		summary, _, _ := AnalyzeFunction(fqn, stmts, a.Policy, a.CG.Params[fqn], nil)
		a.summaries[fqn] = summary
	}
}

// Analyze runs the full interprocedural pass starting from the
// functions that entrySeeds names (functionFQN -> {paramName: Kind}),
// and follows tainted actual arguments into user-defined callees up to
// MaxDepth call hops. A function that entrySeeds does not name is
// analyzed only when it is reached as such a callee.
func (a *Analyzer) Analyze(entrySeeds map[string]map[string]Kind) []TaintPath {
	a.summarize()

	var out []TaintPath
	visited := make(map[string]bool)

	var walk func(fqn string, seeds map[string]Kind, ctx CallContext)
	walk = func(fqn string, seeds map[string]Kind, ctx CallContext) {
		stmts, ok := a.CG.Statements[fqn]
		if !ok {
			return
		}

		visitKey := fqn + "|" + seedKey(seeds)
		if visited[visitKey] {
			return
		}
		visited[visitKey] = true

		_, paths, outgoing := AnalyzeFunction(fqn, stmts, a.Policy, a.CG.Params[fqn], seeds)
		for _, p := range paths {
			p.CallContext = ctx.Path()
			out = append(out, p)
		}

		next, withinBound := ctx.Push(fqn)
		if !withinBound || ctx.Contains(fqn) {
			return
		}

		for _, call := range outgoing {
			if !a.CG.defines(call.CallTarget) {
				continue
			}
			calleeParams := a.CG.Params[call.CallTarget]
			calleeSeeds := make(map[string]Kind)
			for argIdx, info := range call.ArgTaint {
				for name, idx := range calleeParams {
					if idx == argIdx {
						calleeSeeds[name] = info.Kind
					}
				}
			}
			if len(calleeSeeds) == 0 {
				continue
			}
			walk(call.CallTarget, calleeSeeds, next)
		}
	}

	entryFQNs := make([]string, 0, len(entrySeeds))
	for fqn := range entrySeeds {
		entryFQNs = append(entryFQNs, fqn)
	}
	sort.Strings(entryFQNs)
	for _, fqn := range entryFQNs {
		walk(fqn, entrySeeds[fqn], NewCallContext(a.MaxDepth))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SourceFunc != out[j].SourceFunc {
			return out[i].SourceFunc < out[j].SourceFunc
		}
		if out[i].SourceLine != out[j].SourceLine {
			return out[i].SourceLine < out[j].SourceLine
		}
		return out[i].SinkLine < out[j].SinkLine
	})
	return out
}

// seedKey renders a seed set as a sorted, deterministic string so the
// visited set doesn't depend on Go's randomized map iteration order.
func seedKey(seeds map[string]Kind) string {
	names := make([]string, 0, len(seeds))
	for p := range seeds {
		names = append(names, p)
	}
	sort.Strings(names)
	key := ""
	for _, n := range names {
		key += n + "=" + string(seeds[n]) + ";"
	}
	return key
}
