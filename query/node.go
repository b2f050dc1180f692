// Package query implements the typed fluent query builders over a built
// ir.Graph: node/edge/path/aggregation/taint queries, evaluated with
// expr-lang/expr for metadata predicates the same way the engine's
// query layer already does.
package query

import (
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/shivasurya/code-pathfinder/engine/ir"
)

// NodeEnv is the expr evaluation environment for a node predicate: field
// access reads straight through to the underlying ir.Node.
type NodeEnv struct {
	Node *ir.Node
}

// NodeQueryBuilder filters nodes by kind and an optional metadata
// predicate expression, with offset/limit pagination.
type NodeQueryBuilder struct {
	graph      *ir.Graph
	kinds      map[ir.Kind]bool
	predicate  string
	offset     int
	limit      int
}

// NewNodeQuery starts a fluent node query over a graph.
func NewNodeQuery(g *ir.Graph) *NodeQueryBuilder {
	return &NodeQueryBuilder{graph: g, kinds: make(map[ir.Kind]bool), limit: -1}
}

// Kind restricts results to one of the given node kinds.
func (b *NodeQueryBuilder) Kind(kinds ...ir.Kind) *NodeQueryBuilder {
	for _, k := range kinds {
		b.kinds[k] = true
	}
	return b
}

// Where sets an expr-lang predicate evaluated against NodeEnv; only
// nodes for which it evaluates truthy are returned.
func (b *NodeQueryBuilder) Where(predicate string) *NodeQueryBuilder {
	b.predicate = predicate
	return b
}

// Paginate sets the offset/limit window applied after filtering, in
// deterministic (sorted-by-ID) order. limit < 0 means unbounded.
func (b *NodeQueryBuilder) Paginate(offset, limit int) *NodeQueryBuilder {
	b.offset = offset
	b.limit = limit
	return b
}

// Run executes the query, returning nodes sorted by ID for determinism.
func (b *NodeQueryBuilder) Run() ([]*ir.Node, error) {
	var program *vmProgram
	if b.predicate != "" {
		p, err := compileNodePredicate(b.predicate)
		if err != nil {
			return nil, err
		}
		program = p
	}

	var matched []*ir.Node
	for _, n := range b.graph.Nodes {
		if len(b.kinds) > 0 && !b.kinds[n.Kind] {
			continue
		}
		if program != nil {
			ok, err := program.eval(n)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		matched = append(matched, n)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if b.offset >= len(matched) {
		return nil, nil
	}
	matched = matched[b.offset:]
	if b.limit >= 0 && b.limit < len(matched) {
		matched = matched[:b.limit]
	}
	return matched, nil
}

// vmProgram wraps a compiled expr program bound to NodeEnv.
type vmProgram struct {
	compiled *vm.Program
}

func compileNodePredicate(predicate string) (*vmProgram, error) {
	program, err := expr.Compile(predicate, expr.Env(NodeEnv{}))
	if err != nil {
		return nil, err
	}
	return &vmProgram{compiled: program}, nil
}

func (p *vmProgram) eval(n *ir.Node) (bool, error) {
	out, err := expr.Run(p.compiled, NodeEnv{Node: n})
	if err != nil {
		return false, err
	}
	truthy, _ := out.(bool)
	return truthy, nil
}
