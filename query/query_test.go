package query

import (
	"testing"

	"github.com/shivasurya/code-pathfinder/engine/ir"
	"github.com/shivasurya/code-pathfinder/engine/taint"
	"github.com/stretchr/testify/assert"
)

func buildQueryGraph() *ir.Graph {
	g := ir.NewGraph()
	g.AddNode(&ir.Node{ID: "a", Kind: ir.KindFunction, FQN: "pkg.a"})
	g.AddNode(&ir.Node{ID: "b", Kind: ir.KindFunction, FQN: "pkg.b"})
	g.AddNode(&ir.Node{ID: "c", Kind: ir.KindVariable, FQN: "pkg.c"})
	g.AddEdge(&ir.Edge{SourceID: "a", TargetID: "b", Kind: ir.EdgeCalls})
	g.AddEdge(&ir.Edge{SourceID: "b", TargetID: "c", Kind: ir.EdgeReads})
	return g
}

func TestNodeQueryBuilder_KindAndPredicate(t *testing.T) {
	g := buildQueryGraph()

	nodes, err := NewNodeQuery(g).Kind(ir.KindFunction).Where(`Node.FQN == "pkg.b"`).Run()
	assert.NoError(t, err)
	if assert.Len(t, nodes, 1) {
		assert.Equal(t, ir.NodeID("b"), nodes[0].ID)
	}
}

func TestNodeQueryBuilder_Pagination(t *testing.T) {
	g := buildQueryGraph()
	nodes, err := NewNodeQuery(g).Paginate(1, 1).Run()
	assert.NoError(t, err)
	assert.Len(t, nodes, 1)
}

func TestEdgeQueryBuilder_CallersAndCallees(t *testing.T) {
	g := buildQueryGraph()

	callers := CallersOf(g, "b")
	if assert.Len(t, callers, 1) {
		assert.Equal(t, ir.NodeID("a"), callers[0].SourceID)
	}

	callees := CalleesOf(g, "a")
	if assert.Len(t, callees, 1) {
		assert.Equal(t, ir.NodeID("b"), callees[0].TargetID)
	}
}

func TestPathQueryBuilder_FindsPath(t *testing.T) {
	g := buildQueryGraph()

	paths := NewPathQuery(g).SourceSelector("a").TargetSelector("c").Run()
	if assert.Len(t, paths, 1) {
		assert.Equal(t, []ir.NodeID{"a", "b", "c"}, paths[0])
	}
}

func TestPathQueryBuilder_RespectsMaxPaths(t *testing.T) {
	g := buildQueryGraph()
	limits := DefaultPathLimits()
	limits.MaxPaths = 0

	paths := NewPathQuery(g).SourceSelector("a").TargetSelector("c").WithLimits(limits).Run()
	assert.Len(t, paths, 0)
}

func TestAggregationBuilder_CountAndAvg(t *testing.T) {
	g := buildQueryGraph()
	nodes, _ := NewNodeQuery(g).Run()

	count := NewAggregation(nodes, nil).Compute(AggCount)
	assert.Equal(t, float64(3), count)

	extractor := func(n *ir.Node) (float64, bool) {
		if n.Kind == ir.KindFunction {
			return 1, true
		}
		return 0, false
	}
	avg := NewAggregation(nodes, extractor).Compute(AggAvg)
	assert.Equal(t, 1.0, avg)
}

func TestTaintQueryBuilder_FiltersBySeverityAndCWE(t *testing.T) {
	paths := []taint.TaintPath{
		{Kind: taint.KindCodeInjection, Confidence: 0.9, SourceFunc: "f", SinkFunc: "eval"},
		{Kind: taint.KindSQLInjection, Confidence: 0.3, SourceFunc: "g", SinkFunc: "query"},
	}

	result := NewTaintQuery(paths).CWE("CWE-94").Run()
	if assert.Len(t, result, 1) {
		assert.Equal(t, taint.KindCodeInjection, result[0].Kind)
	}

	bySeverity := NewTaintQuery(paths).Severity("critical").Run()
	assert.Len(t, bySeverity, 1)

	byConfidence := NewTaintQuery(paths).MinConfidence(0.5).Run()
	assert.Len(t, byConfidence, 1)
}
