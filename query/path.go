package query

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shivasurya/code-pathfinder/engine/ir"
)

// Direction constrains which way a path query walks edges.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// PathLimits bounds a path query so an unbounded graph can never turn
// into an unbounded traversal: conservative defaults guard against
// graph-explosion denial of service.
type PathLimits struct {
	MaxPaths      int
	MaxExpansions int
	TimeoutMS     int
	MaxPathLength int
}

// DefaultPathLimits matches the engine's conservative defaults.
func DefaultPathLimits() PathLimits {
	return PathLimits{MaxPaths: 100, MaxExpansions: 10000, TimeoutMS: 2000, MaxPathLength: 32}
}

// PathPredicate filters a candidate path (as a node-ID sequence) during
// traversal; returning false prunes that branch.
type PathPredicate func(path []ir.NodeID) bool

// PathQueryBuilder walks from a set of source nodes to a set of target
// nodes, honoring PathLimits, and returns every discovered path as a
// node-ID sequence.
type PathQueryBuilder struct {
	graph      *ir.Graph
	sources    []ir.NodeID
	targets    map[ir.NodeID]bool
	edgeKinds  map[ir.EdgeKind]bool
	direction  Direction
	limits     PathLimits
	predicates []PathPredicate
}

// NewPathQuery starts a fluent path query over a graph.
func NewPathQuery(g *ir.Graph) *PathQueryBuilder {
	return &PathQueryBuilder{
		graph:     g,
		targets:   make(map[ir.NodeID]bool),
		edgeKinds: make(map[ir.EdgeKind]bool),
		limits:    DefaultPathLimits(),
	}
}

// SourceSelector sets the starting node set.
func (b *PathQueryBuilder) SourceSelector(ids ...ir.NodeID) *PathQueryBuilder {
	b.sources = append(b.sources, ids...)
	return b
}

// TargetSelector sets the node set a path must reach.
func (b *PathQueryBuilder) TargetSelector(ids ...ir.NodeID) *PathQueryBuilder {
	for _, id := range ids {
		b.targets[id] = true
	}
	return b
}

// EdgeSelector restricts which edge kinds a path may cross; no
// restriction means any edge kind is eligible.
func (b *PathQueryBuilder) EdgeSelector(kinds ...ir.EdgeKind) *PathQueryBuilder {
	for _, k := range kinds {
		b.edgeKinds[k] = true
	}
	return b
}

// WithDirection sets traversal direction; default is Forward.
func (b *PathQueryBuilder) WithDirection(d Direction) *PathQueryBuilder {
	b.direction = d
	return b
}

// WithLimits overrides the default PathLimits.
func (b *PathQueryBuilder) WithLimits(l PathLimits) *PathQueryBuilder {
	b.limits = l
	return b
}

// Where adds a path predicate; a path must satisfy every registered
// predicate to be returned.
func (b *PathQueryBuilder) Where(p PathPredicate) *PathQueryBuilder {
	b.predicates = append(b.predicates, p)
	return b
}

func (b *PathQueryBuilder) adjacency() map[ir.NodeID][]ir.NodeID {
	adj := make(map[ir.NodeID][]ir.NodeID)
	for _, e := range b.graph.Edges {
		if len(b.edgeKinds) > 0 && !b.edgeKinds[e.Kind] {
			continue
		}
		from, to := e.SourceID, e.TargetID
		if b.direction == Backward {
			from, to = to, from
		}
		adj[from] = append(adj[from], to)
	}
	return adj
}

func (b *PathQueryBuilder) passes(path []ir.NodeID) bool {
	for _, p := range b.predicates {
		if !p(path) {
			return false
		}
	}
	return true
}

// Run executes a single-threaded BFS from every source, honoring
// MaxPaths/MaxExpansions/MaxPathLength and TimeoutMS.
func (b *PathQueryBuilder) Run() [][]ir.NodeID {
	adj := b.adjacency()
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(b.limits.TimeoutMS)*time.Millisecond)
	defer cancel()

	var results [][]ir.NodeID
	expansions := 0

	sorted := append([]ir.NodeID{}, b.sources...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for _, src := range sorted {
		if len(results) >= b.limits.MaxPaths {
			break
		}
		type frame struct {
			path []ir.NodeID
		}
		queue := []frame{{path: []ir.NodeID{src}}}
		visited := map[ir.NodeID]bool{src: true}

		for len(queue) > 0 {
			select {
			case <-ctx.Done():
				return results
			default:
			}
			if len(results) >= b.limits.MaxPaths || expansions >= b.limits.MaxExpansions {
				break
			}
			cur := queue[0]
			queue = queue[1:]
			expansions++

			last := cur.path[len(cur.path)-1]
			if b.targets[last] && len(cur.path) > 1 {
				if b.passes(cur.path) {
					results = append(results, cur.path)
				}
				if len(results) >= b.limits.MaxPaths {
					break
				}
				continue
			}
			if len(cur.path) >= b.limits.MaxPathLength {
				continue
			}

			next := append([]ir.NodeID{}, adj[last]...)
			sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
			for _, n := range next {
				if visited[n] {
					continue
				}
				visited[n] = true
				np := append(append([]ir.NodeID{}, cur.path...), n)
				queue = append(queue, frame{path: np})
			}
		}
	}

	return results
}

// RunParallel shards the BFS across source nodes, one goroutine per
// source, merging into a shared bounded result buffer guarded by a
// mutex. Equivalent results to Run(), modulo ordering — callers that
// need determinism should sort the output themselves (paths have no
// natural total order across independent source shards).
func (b *PathQueryBuilder) RunParallel() [][]ir.NodeID {
	sorted := append([]ir.NodeID{}, b.sources...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var mu sync.Mutex
	var results [][]ir.NodeID
	var wg sync.WaitGroup

	for _, src := range sorted {
		src := src
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := *b
			sub.sources = []ir.NodeID{src}
			partial := sub.Run()

			mu.Lock()
			defer mu.Unlock()
			for _, p := range partial {
				if len(results) >= b.limits.MaxPaths {
					return
				}
				results = append(results, p)
			}
		}()
	}
	wg.Wait()
	return results
}
