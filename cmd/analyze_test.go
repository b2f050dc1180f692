package cmd

import (
	"testing"

	"github.com/shivasurya/code-pathfinder/engine/config"
	"github.com/shivasurya/code-pathfinder/engine/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvenanceSummary_IncludesKnownFields(t *testing.T) {
	cfg := config.Default()
	summary := provenanceSummary(cfg)
	assert.Contains(t, summary, "preset")
	assert.Contains(t, summary["preset"], "preset(")
}

func TestTopRanked_SortsDescendingAndTruncates(t *testing.T) {
	g := ir.NewGraph()
	a := &ir.Node{ID: "a", FQN: "pkg.A", Kind: ir.KindFunction}
	b := &ir.Node{ID: "b", FQN: "pkg.B", Kind: ir.KindFunction}
	c := &ir.Node{ID: "c", FQN: "pkg.C", Kind: ir.KindFunction}
	g.AddNode(a)
	g.AddNode(b)
	g.AddNode(c)

	scores := map[ir.NodeID]float64{"a": 0.1, "b": 0.9, "c": 0.5}
	ranked := topRanked(g, scores, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "pkg.B", ranked[0].FQN)
	assert.Equal(t, "pkg.C", ranked[1].FQN)
}

func TestTopRanked_WrongTypeReturnsNil(t *testing.T) {
	g := ir.NewGraph()
	assert.Nil(t, topRanked(g, "not-a-score-map", 5))
}

func TestGraphFingerprint_StableAcrossNodeOrder(t *testing.T) {
	g1 := ir.NewGraph()
	g1.AddNode(&ir.Node{ID: "a", FQN: "pkg.A", Kind: ir.KindFunction})
	g1.AddNode(&ir.Node{ID: "b", FQN: "pkg.B", Kind: ir.KindFunction})

	g2 := ir.NewGraph()
	g2.AddNode(&ir.Node{ID: "b", FQN: "pkg.B", Kind: ir.KindFunction})
	g2.AddNode(&ir.Node{ID: "a", FQN: "pkg.A", Kind: ir.KindFunction})

	assert.Equal(t, graphFingerprint(g1), graphFingerprint(g2))
}

func TestGraphFingerprint_ChangesWithContent(t *testing.T) {
	g1 := ir.NewGraph()
	g1.AddNode(&ir.Node{ID: "a", FQN: "pkg.A", Kind: ir.KindFunction})

	g2 := ir.NewGraph()
	g2.AddNode(&ir.Node{ID: "a-renamed", FQN: "pkg.A", Kind: ir.KindFunction})

	assert.NotEqual(t, graphFingerprint(g1), graphFingerprint(g2))
}
