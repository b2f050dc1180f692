package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTree_SingleRoot(t *testing.T) {
	root := &Chunk{ID: "repo", Kind: ChunkRepo, ChildrenIDs: []NodeID{"file1"}}
	file1 := &Chunk{ID: "file1", Kind: ChunkFile, ParentID: "repo", LocalSeq: 1}

	tree, err := NewTree([]*Chunk{root, file1})
	assert.NoError(t, err)
	assert.Equal(t, NodeID("repo"), tree.Root)
	assert.Len(t, tree.Children("repo"), 1)
}

func TestNewTree_RejectsMultipleRoots(t *testing.T) {
	root1 := &Chunk{ID: "repo1", Kind: ChunkRepo}
	root2 := &Chunk{ID: "repo2", Kind: ChunkRepo}

	_, err := NewTree([]*Chunk{root1, root2})
	assert.Error(t, err)
}

func TestNewTree_RejectsCycle(t *testing.T) {
	a := &Chunk{ID: "a", ParentID: "b"}
	b := &Chunk{ID: "b", ParentID: "a"}

	_, err := NewTree([]*Chunk{a, b})
	assert.Error(t, err)
}

func TestTree_ChildrenOrderedByLocalSeq(t *testing.T) {
	root := &Chunk{ID: "repo", ChildrenIDs: []NodeID{"b", "a"}}
	a := &Chunk{ID: "a", ParentID: "repo", LocalSeq: 1}
	b := &Chunk{ID: "b", ParentID: "repo", LocalSeq: 2}

	tree, err := NewTree([]*Chunk{root, a, b})
	assert.NoError(t, err)

	children := tree.Children("repo")
	assert.Equal(t, NodeID("a"), children[0].ID)
	assert.Equal(t, NodeID("b"), children[1].ID)
}
