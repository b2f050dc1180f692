package taint

import "github.com/shivasurya/code-pathfinder/engine/flow"

// CallGraph is the minimal view of the program the interprocedural
// driver needs: a function's statement list and its parameter index,
// keyed by fully-qualified function name — intentionally independent of
// ir.Graph so the driver can run on any frontend that can hand it
// normalized flow.Statement lists.
type CallGraph struct {
	Statements map[string][]*flow.Statement
	Params     map[string]map[string]int // function FQN -> param name -> index
}

func (cg *CallGraph) defines(fqn string) bool {
	_, ok := cg.Statements[fqn]
	return ok
}
