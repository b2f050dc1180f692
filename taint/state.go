package taint

// variableTaintInfo tracks one variable's taint provenance: where it
// came from, how confident the engine still is after however many
// propagation hops, and the chain of variable names that carried it.
type variableTaintInfo struct {
	Source     string
	Kind       Kind
	Confidence float64
	SourceLine uint32
	Chain      []string // the def/use chain from the source var to this one
}

// TaintState tracks taint info for every variable live in one function
// during a forward intraprocedural pass.
type TaintState struct {
	Variables map[string]*variableTaintInfo
}

func NewTaintState() *TaintState {
	return &TaintState{Variables: make(map[string]*variableTaintInfo)}
}

func (ts *TaintState) SetTainted(v string, info *variableTaintInfo) {
	ts.Variables[v] = info
}

// SetUntainted removes a variable's taint, modeling sanitization.
// Applying it twice is a no-op, satisfying sanitizer idempotence.
func (ts *TaintState) SetUntainted(v string) {
	delete(ts.Variables, v)
}

func (ts *TaintState) Get(v string) *variableTaintInfo { return ts.Variables[v] }

func (ts *TaintState) IsTainted(v string) bool { return ts.Variables[v] != nil }

// decayStep is the confidence multiplier applied each time taint flows
// from a call's arguments into the variable its result is assigned to;
// confidence never drops below the floor.
const (
	decayStep  = 0.9
	decayFloor = 0.1
)

func decay(confidence float64) float64 {
	c := confidence * decayStep
	if c < decayFloor {
		return decayFloor
	}
	return c
}
