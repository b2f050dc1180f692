package clone

import (
	"testing"

	"github.com/shivasurya/code-pathfinder/engine/ir"
	"github.com/stretchr/testify/assert"
)

func TestDetectType1_ExactDuplicate(t *testing.T) {
	frags := []Fragment{
		{NodeID: "a", Tokens: []string{"if", "x", ">", "0", "return", "x"}},
		{NodeID: "b", Tokens: []string{"if", "x", ">", "0", "return", "x"}},
		{NodeID: "c", Tokens: []string{"print", "hello"}},
	}

	pairs := DetectType1(frags)

	if assert.Len(t, pairs, 1) {
		assert.Equal(t, Type1, pairs[0].Kind)
		assert.Equal(t, 1.0, pairs[0].Similarity)
		assert.ElementsMatch(t, []ir.NodeID{"a", "b"}, []ir.NodeID{pairs[0].A, pairs[0].B})
	}
}

func TestDetectType3_NearMiss(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SimilarityFloor = 0.5
	frags := []Fragment{
		{NodeID: "a", Tokens: []string{"for", "i", "in", "range", "n", "sum", "+=", "i", "return", "sum"}},
		{NodeID: "b", Tokens: []string{"for", "i", "in", "range", "n", "sum", "+=", "i", "return", "total"}},
		{NodeID: "c", Tokens: []string{"return", "nil"}},
	}

	pairs := DetectType3(frags, cfg)

	var found bool
	for _, p := range pairs {
		if p.Kind == Type3 {
			found = true
		}
	}
	assert.True(t, found, "expected at least one near-miss pair between a and b")
}

func TestDetectType4_SemanticClone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SimilarityFloor = 0.9

	pdgA := &PDGraph{
		Nodes: []PDGNode{{ID: "n1", Label: "Condition"}, {ID: "n2", Label: "Return"}},
		Edges: []PDGEdge{{From: "n1", To: "n2"}},
	}
	pdgB := &PDGraph{
		Nodes: []PDGNode{{ID: "m1", Label: "Condition"}, {ID: "m2", Label: "Return"}},
		Edges: []PDGEdge{{From: "m1", To: "m2"}},
	}

	frags := []Fragment{
		{NodeID: "a", PDG: pdgA},
		{NodeID: "b", PDG: pdgB},
	}

	pairs := DetectType4(frags, cfg)

	if assert.Len(t, pairs, 1) {
		assert.Equal(t, Type4, pairs[0].Kind)
		assert.Equal(t, 1.0, pairs[0].Similarity)
	}
}
