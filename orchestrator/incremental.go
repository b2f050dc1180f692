package orchestrator

import (
	"context"

	"github.com/shivasurya/code-pathfinder/engine/cache"
)

// AffectedChunks resolves a set of changed file paths to the chunk IDs
// that must be re-analyzed: the chunks rooted at those files plus
// every chunk transitively depending on them, via the persistent
// store's closure-table dependency index. maxDepth bounds how far the
// reverse-dependency walk goes; 0 means unbounded.
func AffectedChunks(ctx context.Context, store *cache.Store, snapshotID int64, changedFiles []string, maxDepth int) ([]int64, error) {
	seedIDs, err := chunkRootsForFiles(ctx, store, snapshotID, changedFiles)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	var affected []int64
	for _, root := range seedIDs {
		deps, err := store.TransitiveDependents(ctx, snapshotID, root, maxDepth)
		if err != nil {
			return nil, err
		}
		for _, id := range deps {
			if !seen[id] {
				seen[id] = true
				affected = append(affected, id)
			}
		}
	}
	return affected, nil
}

// chunkRootsForFiles looks up every chunk persisted for each changed
// file path in the given snapshot.
func chunkRootsForFiles(ctx context.Context, store *cache.Store, snapshotID int64, files []string) ([]int64, error) {
	var roots []int64
	for _, f := range files {
		ids, err := store.ChunksForFile(ctx, snapshotID, f)
		if err != nil {
			return nil, err
		}
		roots = append(roots, ids...)
	}
	return roots, nil
}
