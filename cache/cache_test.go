package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey_Format(t *testing.T) {
	fp := NewFingerprint([]byte("hello"))
	key := NewKey("taint", 2, fp)
	assert.Equal(t, Key("taint:2:"+string(fp)), key)
}

func TestBloomFilter_NoFalseNegatives(t *testing.T) {
	f := newBloomFilter(2048, 4)
	keys := []string{"a:1:abc", "b:1:def", "c:1:ghi"}
	for _, k := range keys {
		f.add(k)
	}
	for _, k := range keys {
		assert.True(t, f.mayContain(k))
	}
	assert.False(t, f.mayContain("never-added"))
}

func TestTiered_PromotesOnHit(t *testing.T) {
	dir := t.TempDir()
	tc, err := NewTiered(16, 16, time.Minute, dir, false)
	require.NoError(t, err)

	key := NewKey("stage", 1, NewFingerprint([]byte("content")))
	require.NoError(t, tc.Set(key, []byte("payload")))

	v, ok := tc.Get(key)
	assert.True(t, ok)
	assert.Equal(t, []byte("payload"), v)

	tc.L0.Evict(key)
	tc.L1.Evict(key)
	v, ok = tc.Get(key)
	assert.True(t, ok)
	assert.Equal(t, []byte("payload"), v)

	_, ok = tc.L0.Get(key)
	assert.True(t, ok, "L2 hit should promote into L0")
}

func TestTiered_Invalidate(t *testing.T) {
	dir := t.TempDir()
	tc, err := NewTiered(16, 16, time.Minute, dir, true)
	require.NoError(t, err)

	key := NewKey("stage", 1, NewFingerprint([]byte("x")))
	require.NoError(t, tc.Set(key, []byte("y")))
	tc.Invalidate(key)

	_, ok := tc.Get(key)
	assert.False(t, ok)
	_, err = os.Stat(filepath.Join(dir, string(key)+".cache"))
	assert.Error(t, err)
}

func TestStore_RepositoryAndSnapshotLifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, "")
	require.NoError(t, err)
	defer store.Close()

	repo, err := store.UpsertRepository(ctx, "/repo")
	require.NoError(t, err)

	repoAgain, err := store.UpsertRepository(ctx, "/repo")
	require.NoError(t, err)
	assert.Equal(t, repo.ID, repoAgain.ID)

	snap, err := store.CreateSnapshot(ctx, repo.ID, "abc123")
	require.NoError(t, err)
	assert.NotZero(t, snap.ID)

	chunkID, err := store.InsertChunk(ctx, Chunk{SnapshotID: snap.ID, NodeID: "n1", FilePath: "a.go", Fingerprint: "fp1"})
	require.NoError(t, err)
	assert.NotZero(t, chunkID)

	require.NoError(t, store.SoftDeleteChunksForFile(ctx, snap.ID, "a.go"))
}

func TestStore_TransitiveDependents(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, "")
	require.NoError(t, err)
	defer store.Close()

	repo, err := store.UpsertRepository(ctx, "/repo")
	require.NoError(t, err)
	snap, err := store.CreateSnapshot(ctx, repo.ID, "")
	require.NoError(t, err)

	children := map[int64][]int64{1: {2, 3}, 2: {4}}
	rows := BuildClosureRows(children, 1)
	require.NoError(t, store.RecordDependencies(ctx, snap.ID, rows))

	deps, err := store.TransitiveDependents(ctx, snap.ID, 1, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 3, 4}, deps)

	shallow, err := store.TransitiveDependents(ctx, snap.ID, 1, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 3}, shallow)
}
