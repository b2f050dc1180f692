package pointsto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestUnionFind_ChainedUnion mirrors the scenario: insert 100 elements,
// union(i, i+1) for i in [0,99) -> after find(0), all 100 elements share
// one root and count() == 1.
func TestUnionFind_ChainedUnion(t *testing.T) {
	uf := NewUnionFind(100)
	for i := uint32(0); i < 99; i++ {
		uf.Union(i, i+1)
	}

	root := uf.Find(0)
	for i := uint32(0); i < 100; i++ {
		assert.Equal(t, root, uf.Find(i))
	}
	assert.Equal(t, 1, uf.Count())
}

func TestUnionFind_ConnectedIsEquivalence(t *testing.T) {
	uf := NewUnionFind(5)
	assert.False(t, uf.Connected(0, 1))

	uf.Union(0, 1)
	uf.Union(1, 2)
	assert.True(t, uf.Connected(0, 2), "union is transitive")
	assert.False(t, uf.Connected(0, 3))

	assert.Equal(t, 3, uf.Count())
}
