package query

import (
	"sort"

	"github.com/shivasurya/code-pathfinder/engine/ir"
)

// EdgeQueryBuilder filters edges by kind and endpoint, with convenience
// constructors for the common call-graph/dataflow shapes.
type EdgeQueryBuilder struct {
	graph  *ir.Graph
	kinds  map[ir.EdgeKind]bool
	source ir.NodeID
	target ir.NodeID
}

// NewEdgeQuery starts a fluent edge query over a graph.
func NewEdgeQuery(g *ir.Graph) *EdgeQueryBuilder {
	return &EdgeQueryBuilder{graph: g, kinds: make(map[ir.EdgeKind]bool)}
}

// Kind restricts results to one of the given edge kinds.
func (b *EdgeQueryBuilder) Kind(kinds ...ir.EdgeKind) *EdgeQueryBuilder {
	for _, k := range kinds {
		b.kinds[k] = true
	}
	return b
}

// FromNode restricts results to edges leaving a specific node.
func (b *EdgeQueryBuilder) FromNode(id ir.NodeID) *EdgeQueryBuilder {
	b.source = id
	return b
}

// ToNode restricts results to edges entering a specific node.
func (b *EdgeQueryBuilder) ToNode(id ir.NodeID) *EdgeQueryBuilder {
	b.target = id
	return b
}

// Run executes the query, returning edges sorted by (source, target,
// kind) for determinism.
func (b *EdgeQueryBuilder) Run() []*ir.Edge {
	var matched []*ir.Edge
	for _, e := range b.graph.Edges {
		if len(b.kinds) > 0 && !b.kinds[e.Kind] {
			continue
		}
		if b.source != "" && e.SourceID != b.source {
			continue
		}
		if b.target != "" && e.TargetID != b.target {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].SourceID != matched[j].SourceID {
			return matched[i].SourceID < matched[j].SourceID
		}
		if matched[i].TargetID != matched[j].TargetID {
			return matched[i].TargetID < matched[j].TargetID
		}
		return matched[i].Kind < matched[j].Kind
	})
	return matched
}

// CallersOf returns every node with a Calls/Invokes edge into fn.
func CallersOf(g *ir.Graph, fn ir.NodeID) []*ir.Edge {
	return NewEdgeQuery(g).Kind(ir.EdgeCalls, ir.EdgeInvokes).ToNode(fn).Run()
}

// CalleesOf returns every node fn has a Calls/Invokes edge to.
func CalleesOf(g *ir.Graph, fn ir.NodeID) []*ir.Edge {
	return NewEdgeQuery(g).Kind(ir.EdgeCalls, ir.EdgeInvokes).FromNode(fn).Run()
}

// ReferencesTo returns every References/ReferencesSymbol/ReferencesType
// edge into a node.
func ReferencesTo(g *ir.Graph, target ir.NodeID) []*ir.Edge {
	return NewEdgeQuery(g).Kind(ir.EdgeReferences, ir.EdgeReferencesSymbol, ir.EdgeReferencesType).ToNode(target).Run()
}

// DataflowFrom returns every DataFlow edge leaving a node.
func DataflowFrom(g *ir.Graph, source ir.NodeID) []*ir.Edge {
	return NewEdgeQuery(g).Kind(ir.EdgeDataFlow).FromNode(source).Run()
}

// DataflowTo returns every DataFlow edge entering a node.
func DataflowTo(g *ir.Graph, target ir.NodeID) []*ir.Edge {
	return NewEdgeQuery(g).Kind(ir.EdgeDataFlow).ToNode(target).Run()
}
