package taint

// FunctionSummary is the bottom-up propagation unit: which parameters
// taint the return value or taint a sink directly inside the function,
// and at what confidence. Analyzer.Analyze builds one per function but
// does not consult it at call sites; it re-analyzes the callee's body
// with the tainted arguments as seeds.
type FunctionSummary struct {
	FunctionFQN string

	// ParamToReturn records, for each parameter index that influences
	// the return value, the confidence of that influence.
	ParamToReturn map[int]float64

	// InternalSinks holds taint paths fully contained within this
	// function (no caller context needed to report them).
	InternalSinks []TaintPath

	// ParamToInternalSink records parameter indices that reach a sink
	// inside this function directly.
	ParamToInternalSink map[int][]TaintPath
}

func newSummary(fqn string) *FunctionSummary {
	return &FunctionSummary{
		FunctionFQN:         fqn,
		ParamToReturn:       make(map[int]float64),
		ParamToInternalSink: make(map[int][]TaintPath),
	}
}
