package repomap

import (
	"testing"

	"github.com/shivasurya/code-pathfinder/engine/ir"
	"github.com/stretchr/testify/assert"
)

func buildGraph() *ir.Graph {
	g := ir.NewGraph()
	g.AddNode(&ir.Node{ID: "a", Kind: ir.KindFunction})
	g.AddNode(&ir.Node{ID: "b", Kind: ir.KindFunction})
	g.AddNode(&ir.Node{ID: "c", Kind: ir.KindFunction})
	g.AddEdge(&ir.Edge{SourceID: "a", TargetID: "b", Kind: ir.EdgeCalls})
	g.AddEdge(&ir.Edge{SourceID: "a", TargetID: "c", Kind: ir.EdgeCalls})
	g.AddEdge(&ir.Edge{SourceID: "b", TargetID: "c", Kind: ir.EdgeCalls})
	return g
}

func TestPageRank_SumsToOne(t *testing.T) {
	g := buildGraph()
	scores := PageRank(g, DefaultPageRankConfig())

	total := 0.0
	for _, s := range scores {
		total += s
	}
	assert.InDelta(t, 1.0, total, 1e-3)
	assert.Greater(t, scores[ir.NodeID("c")], scores[ir.NodeID("a")], "c receives the most inbound links")
}

func TestPersonalizedPageRank_FavorsWeightedNode(t *testing.T) {
	g := buildGraph()
	weights := []CategoryWeight{{NodeID: "a", Category: "ide-selection", Weight: 1.0}}

	scores := PersonalizedPageRank(g, DefaultPageRankConfig(), weights)
	plain := PageRank(g, DefaultPageRankConfig())

	assert.Greater(t, scores[ir.NodeID("a")], plain[ir.NodeID("a")])
}

func TestHITS_AuthorityExceedsForSink(t *testing.T) {
	g := buildGraph()
	scores := HITS(g, DefaultHITSConfig())

	assert.Greater(t, scores.Authority[ir.NodeID("c")], scores.Authority[ir.NodeID("a")])
	assert.Greater(t, scores.Hub[ir.NodeID("a")], scores.Hub[ir.NodeID("c")])
}

func TestDetectMode_Defaults(t *testing.T) {
	assert.Equal(t, ModeFast, DetectMode(IntentQuickLookup))
	assert.Equal(t, ModeAI, DetectMode(IntentCodeCompletion))
	assert.Equal(t, ModeArchitecture, DetectMode(IntentArchReview))
	assert.Equal(t, ModeFull, DetectMode(IntentDeepAudit))
	assert.Equal(t, ModeFast, DetectMode(Intent("unknown")))
}
