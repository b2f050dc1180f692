package ir

import "time"

// Snapshot is an immutable, versioned view of a repository: the complete
// IR plus occurrences and chunk hierarchy at one point in time. All
// derived analysis results are valid only relative to the Snapshot they
// were computed from.
type Snapshot struct {
	RepoID      string
	SnapshotID  string
	Graph       *Graph
	Occurrences []Occurrence
	Tree        *Tree
	Timestamp   time.Time
}
