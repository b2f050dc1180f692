package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the persistent Repository/Snapshot/Chunk/Dependency record
// store backing cross-run incremental analysis. Unlike the Tiered
// result cache it is not content-addressed by stage output; it records
// what was analyzed, when, and how chunks relate to each other so the
// orchestrator can decide what a changed file invalidates.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) the sqlite schema at path and returns a Store.
// An empty path opens an in-memory database, useful for tests and
// single-shot CLI invocations that don't want a file left behind.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS repositories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			root_path TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			repository_id INTEGER NOT NULL REFERENCES repositories(id),
			commit_ref TEXT,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chunks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id),
			node_id TEXT NOT NULL,
			file_path TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			deleted_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS dependencies (
			ancestor_id INTEGER NOT NULL,
			descendant_id INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id),
			PRIMARY KEY (ancestor_id, descendant_id, snapshot_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_file ON chunks(snapshot_id, file_path)`,
		`CREATE INDEX IF NOT EXISTS idx_deps_descendant ON dependencies(snapshot_id, descendant_id, depth)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Repository is a tracked analysis root.
type Repository struct {
	ID       int64
	RootPath string
}

// UpsertRepository returns the existing repository row for rootPath or
// creates one.
func (s *Store) UpsertRepository(ctx context.Context, rootPath string) (Repository, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO repositories (root_path, created_at) VALUES (?, ?)
		 ON CONFLICT(root_path) DO NOTHING`, rootPath, time.Now().UTC())
	if err != nil {
		return Repository{}, err
	}
	var repo Repository
	row := s.db.QueryRowContext(ctx, `SELECT id, root_path FROM repositories WHERE root_path = ?`, rootPath)
	if err := row.Scan(&repo.ID, &repo.RootPath); err != nil {
		return Repository{}, err
	}
	return repo, nil
}

// Snapshot is one analysis run over a repository.
type Snapshot struct {
	ID           int64
	RepositoryID int64
	CommitRef    string
}

// CreateSnapshot records a new analysis run, optionally tagged with a
// VCS commit reference.
func (s *Store) CreateSnapshot(ctx context.Context, repositoryID int64, commitRef string) (Snapshot, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (repository_id, commit_ref, created_at) VALUES (?, ?, ?)`,
		repositoryID, commitRef, time.Now().UTC())
	if err != nil {
		return Snapshot{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{ID: id, RepositoryID: repositoryID, CommitRef: commitRef}, nil
}

// Chunk is a persisted unit of analyzed code (an ir.Chunk projection).
type Chunk struct {
	ID          int64
	SnapshotID  int64
	NodeID      string
	FilePath    string
	Fingerprint string
}

// InsertChunk records a chunk within a snapshot.
func (s *Store) InsertChunk(ctx context.Context, c Chunk) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO chunks (snapshot_id, node_id, file_path, fingerprint) VALUES (?, ?, ?, ?)`,
		c.SnapshotID, c.NodeID, c.FilePath, c.Fingerprint)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ChunksForFile returns the non-deleted chunk IDs rooted at filePath
// within a snapshot, ordered by ID for determinism.
func (s *Store) ChunksForFile(ctx context.Context, snapshotID int64, filePath string) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM chunks WHERE snapshot_id = ? AND file_path = ? AND deleted_at IS NULL ORDER BY id`,
		snapshotID, filePath)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// SoftDeleteChunksForFile marks every chunk belonging to filePath in a
// snapshot as deleted without removing the row, preserving dependency
// history for diffing against the prior snapshot.
func (s *Store) SoftDeleteChunksForFile(ctx context.Context, snapshotID int64, filePath string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE chunks SET deleted_at = ? WHERE snapshot_id = ? AND file_path = ? AND deleted_at IS NULL`,
		time.Now().UTC(), snapshotID, filePath)
	return err
}

// RecordDependencies bulk-inserts ancestor/descendant/depth rows,
// mirroring the closure-table expansion: every transitive pair is
// materialized once per snapshot so descendant lookups never recurse
// at query time.
func (s *Store) RecordDependencies(ctx context.Context, snapshotID int64, rows []DependencyRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO dependencies (ancestor_id, descendant_id, depth, snapshot_id) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.AncestorID, r.DescendantID, r.Depth, snapshotID); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// DependencyRow is one ancestor-descendant relationship at a given depth.
type DependencyRow struct {
	AncestorID   int64
	DescendantID int64
	Depth        int64
}

// TransitiveDependents returns descendant chunk IDs reachable from
// chunkID within maxDepth hops, ordered by depth then ID. maxDepth <= 0
// means unbounded.
func (s *Store) TransitiveDependents(ctx context.Context, snapshotID, chunkID int64, maxDepth int) ([]int64, error) {
	query := `SELECT descendant_id FROM dependencies WHERE snapshot_id = ? AND ancestor_id = ?`
	args := []any{snapshotID, chunkID}
	if maxDepth > 0 {
		query += ` AND depth <= ?`
		args = append(args, maxDepth)
	}
	query += ` ORDER BY depth, descendant_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// BuildClosureRows expands a flat parent-of-child adjacency map into
// full ancestor/descendant/depth rows, the same closure-table
// expansion the chunk hierarchy needs for bounded-depth dependency
// queries without recursive CTEs.
func BuildClosureRows(childrenOf map[int64][]int64, root int64) []DependencyRow {
	var rows []DependencyRow
	var walk func(node int64, ancestors []int64, depth int64)
	walk = func(node int64, ancestors []int64, depth int64) {
		for _, a := range ancestors {
			rows = append(rows, DependencyRow{AncestorID: a, DescendantID: node, Depth: depth})
		}
		rows = append(rows, DependencyRow{AncestorID: node, DescendantID: node, Depth: 0})
		nextAncestors := append(append([]int64{}, ancestors...), node)
		for _, child := range childrenOf[node] {
			walk(child, nextAncestors, depth+1)
		}
	}
	walk(root, nil, 0)
	return rows
}
