package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStableID_DeterministicAcrossReruns(t *testing.T) {
	id1 := NewStableID("repo1", "a.py", "a.f", KindFunction, []byte("def f(): pass"))
	id2 := NewStableID("repo1", "a.py", "a.f", KindFunction, []byte("def f(): pass"))
	assert.Equal(t, id1, id2)
}

func TestNewStableID_DiffersOnContent(t *testing.T) {
	id1 := NewStableID("repo1", "a.py", "a.f", KindFunction, []byte("def f(): pass"))
	id2 := NewStableID("repo1", "a.py", "a.f", KindFunction, []byte("def f(): return 1"))
	assert.NotEqual(t, id1, id2)
}

func TestGraph_AddNodeAndEdge(t *testing.T) {
	g := NewGraph()
	a := &Node{ID: "a", Kind: KindFunction}
	b := &Node{ID: "b", Kind: KindVariable}
	g.AddNode(a)
	g.AddNode(b)
	g.AddEdge(&Edge{SourceID: "a", TargetID: "b", Kind: EdgeCalls})

	assert.Len(t, g.Outgoing("a"), 1)
	assert.Len(t, g.Incoming("b"), 1)
	assert.NoError(t, g.WellFormed())
}

func TestGraph_WellFormed_MissingEndpoint(t *testing.T) {
	g := NewGraph()
	g.AddNode(&Node{ID: "a", Kind: KindFunction})
	g.AddEdge(&Edge{SourceID: "a", TargetID: "ghost", Kind: EdgeCalls})

	assert.Error(t, g.WellFormed())
}

func TestGraph_ByKind(t *testing.T) {
	g := NewGraph()
	g.AddNode(&Node{ID: "a", Kind: KindFunction})
	g.AddNode(&Node{ID: "b", Kind: KindFunction})
	g.AddNode(&Node{ID: "c", Kind: KindVariable})

	assert.Len(t, g.ByKind(KindFunction), 2)
	assert.Len(t, g.ByKind(KindVariable), 1)
}
