package heap

import (
	"sort"

	"github.com/shivasurya/code-pathfinder/engine/flow"
)

// State is one node of a typestate protocol's finite-state automaton.
type State string

// Protocol is a finite-state automaton describing the legal call-order
// for a typed object, e.g. a file handle that must be Open()'d before
// Read() and never used again after Close(). Transitions absent from
// the table are violations.
type Protocol struct {
	Name        string
	Initial     State
	Finals      map[State]bool
	Transitions map[State]map[string]State // state -> action -> next state
}

// NewProtocol builds an empty protocol ready for transitions to be
// registered via AddTransition.
func NewProtocol(name string, initial State, finals ...State) *Protocol {
	f := make(map[State]bool, len(finals))
	for _, s := range finals {
		f[s] = true
	}
	return &Protocol{Name: name, Initial: initial, Finals: f, Transitions: make(map[State]map[string]State)}
}

// AddTransition registers that, from `from`, calling `action` moves the
// object to state `to`.
func (p *Protocol) AddTransition(from State, action string, to State) {
	m, ok := p.Transitions[from]
	if !ok {
		m = make(map[string]State)
		p.Transitions[from] = m
	}
	m[action] = to
}

func (p *Protocol) step(state State, action string) (State, bool) {
	m, ok := p.Transitions[state]
	if !ok {
		return "", false
	}
	to, ok := m[action]
	return to, ok
}

// CheckTypestate simulates one variable of a protocol's type over the
// blocks in the given order, keeping a single protocol state. Branches
// are not tracked separately: a transition on one arm carries into every
// later block in the order. A call that is not a valid transition from
// the current state is reported and leaves the state unchanged.
func CheckTypestate(fi *funcInput, proto *Protocol, variable string, order []*flow.Block) []Issue {
	state := proto.Initial
	var issues []Issue

	for _, b := range order {
		for _, stmt := range b.Statements {
			if stmt.CallTarget == "" {
				continue
			}
			targetsVar := false
			for _, a := range stmt.CallArgs {
				if a == variable {
					targetsVar = true
					break
				}
			}
			if stmt.Def == variable {
				targetsVar = true
			}
			if !targetsVar {
				continue
			}
			next, ok := proto.step(state, stmt.CallTarget)
			if !ok {
				issues = append(issues, Issue{
					Kind: IssueTypestate, Severity: SeverityHigh,
					FunctionID: fi.bfg.FunctionID, BlockID: b.ID, Variable: variable,
					Reason: "call " + stmt.CallTarget + " is not a valid transition from state " + string(state) + " in protocol " + proto.Name,
				})
				continue
			}
			state = next
		}
	}

	sort.Slice(issues, func(i, j int) bool { return issues[i].BlockID < issues[j].BlockID })
	return issues
}
