// Package orchestrator schedules analysis stages over a dependency
// DAG, running independent stages concurrently and supporting
// incremental re-runs that only touch stages affected by a changed
// file set.
package orchestrator

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// FailurePolicy controls what happens when a stage returns an error.
type FailurePolicy int

const (
	// Recoverable: the stage's error is recorded but downstream stages
	// that don't depend on its output still run.
	Recoverable FailurePolicy = iota
	// Fatal: the stage's error aborts the whole run.
	Fatal
)

// Stage is one unit of the analysis pipeline (parse, build IR, flow
// graphs, points-to, taint, ...). Stages declare their dependencies by
// ID; the scheduler topologically orders them and runs stages with no
// unresolved dependency between them concurrently.
type Stage struct {
	ID           string
	DependsOn    []string
	Policy       FailurePolicy
	Run          func(ctx context.Context, pc *PipelineContext) error
}

// PipelineContext is the shared, append-only state threaded through a
// run. Stages communicate by reading/writing named slots rather than
// positional return values, since a later stage may depend on several
// earlier ones. Mutation of a slot after it's been read by another
// stage is a caller bug; PipelineContext does not enforce immutability,
// it only provides safe concurrent access.
type PipelineContext struct {
	Context context.Context

	mu    chanMutex
	slots map[string]any
}

// chanMutex is a channel-based mutex; trivial, but keeps this file's
// only import list free of sync for a single critical section pattern
// shared with Scheduler's result map below.
type chanMutex chan struct{}

func newChanMutex() chanMutex {
	m := make(chanMutex, 1)
	m <- struct{}{}
	return m
}

func (m chanMutex) lock()   { <-m }
func (m chanMutex) unlock() { m <- struct{}{} }

// NewPipelineContext creates an empty context ready for stages to
// populate.
func NewPipelineContext(ctx context.Context) *PipelineContext {
	return &PipelineContext{Context: ctx, mu: newChanMutex(), slots: make(map[string]any)}
}

// Set stores a named value, overwriting any previous value.
func (pc *PipelineContext) Set(key string, value any) {
	pc.mu.lock()
	defer pc.mu.unlock()
	pc.slots[key] = value
}

// Get retrieves a named value.
func (pc *PipelineContext) Get(key string) (any, bool) {
	pc.mu.lock()
	defer pc.mu.unlock()
	v, ok := pc.slots[key]
	return v, ok
}

// StageResult records one stage's outcome.
type StageResult struct {
	StageID string
	Err     error
	Skipped bool
}

// Scheduler runs a fixed set of stages respecting their dependency DAG.
type Scheduler struct {
	stages map[string]Stage
	order  []string
}

// NewScheduler validates the stage set (unique IDs, no missing
// dependency, no cycle) and returns a Scheduler with a precomputed
// topological order.
func NewScheduler(stages []Stage) (*Scheduler, error) {
	byID := make(map[string]Stage, len(stages))
	for _, s := range stages {
		if _, dup := byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate stage id %q", s.ID)
		}
		byID[s.ID] = s
	}
	for _, s := range stages {
		for _, dep := range s.DependsOn {
			if _, ok := byID[dep]; !ok {
				return nil, fmt.Errorf("stage %q depends on unknown stage %q", s.ID, dep)
			}
		}
	}
	order, err := topoSort(byID)
	if err != nil {
		return nil, err
	}
	return &Scheduler{stages: byID, order: order}, nil
}

func topoSort(byID map[string]Stage) ([]string, error) {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := make(map[string]int, len(byID))
	var order []string

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var visit func(id string) error
	visit = func(id string) error {
		switch color[id] {
		case black:
			return nil
		case grey:
			return fmt.Errorf("dependency cycle detected at stage %q", id)
		}
		color[id] = grey
		deps := append([]string{}, byID[id].DependsOn...)
		sort.Strings(deps)
		for _, dep := range deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		color[id] = black
		order = append(order, id)
		return nil
	}
	for _, id := range ids {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Run executes every stage in dependency order. Stages whose
// dependencies are all satisfied (and not skipped) run concurrently via
// errgroup, one wave per dependency depth. A Fatal stage's error stops
// the run; a Recoverable stage's error only skips stages that
// transitively depend on it.
func (s *Scheduler) Run(ctx context.Context, pc *PipelineContext) ([]StageResult, error) {
	return s.run(ctx, pc, nil)
}

// RunIncremental executes only the stages in `affected` (plus anything
// that depends on them, since a stage's inputs may have changed even
// if the stage ID itself wasn't directly named), in dependency order.
// Stages not reachable from `affected` are left untouched; callers
// typically seed PipelineContext with cached results for those first.
func (s *Scheduler) RunIncremental(ctx context.Context, pc *PipelineContext, affected []string) ([]StageResult, error) {
	closure := s.downstreamClosure(affected)
	return s.run(ctx, pc, closure)
}

// downstreamClosure returns the set of stage IDs reachable by
// following DependsOn in reverse from the seed set (i.e. every stage
// that the seed stages feed into, plus the seeds themselves).
func (s *Scheduler) downstreamClosure(seed []string) map[string]bool {
	reverse := make(map[string][]string)
	for id, st := range s.stages {
		for _, dep := range st.DependsOn {
			reverse[dep] = append(reverse[dep], id)
		}
	}
	include := make(map[string]bool)
	var visit func(id string)
	visit = func(id string) {
		if include[id] {
			return
		}
		include[id] = true
		for _, child := range reverse[id] {
			visit(child)
		}
	}
	for _, id := range seed {
		visit(id)
	}
	return include
}

func (s *Scheduler) run(ctx context.Context, pc *PipelineContext, only map[string]bool) ([]StageResult, error) {
	results := make(map[string]StageResult, len(s.order))
	resultsMu := newChanMutex()

	depth := make(map[string]int)
	for _, id := range s.order {
		d := 0
		for _, dep := range s.stages[id].DependsOn {
			if depth[dep]+1 > d {
				d = depth[dep] + 1
			}
		}
		depth[id] = d
	}

	waves := make(map[int][]string)
	maxDepth := 0
	for _, id := range s.order {
		waves[depth[id]] = append(waves[depth[id]], id)
		if depth[id] > maxDepth {
			maxDepth = depth[id]
		}
	}

	for d := 0; d <= maxDepth; d++ {
		wave := waves[d]
		g, gctx := errgroup.WithContext(ctx)
		for _, id := range wave {
			id := id
			if only != nil && !only[id] {
				continue
			}
			st := s.stages[id]

			skip := false
			for _, dep := range st.DependsOn {
				resultsMu.lock()
				r, ran := results[dep]
				resultsMu.unlock()
				if ran && (r.Err != nil || r.Skipped) {
					skip = true
					break
				}
			}
			if skip {
				resultsMu.lock()
				results[id] = StageResult{StageID: id, Skipped: true}
				resultsMu.unlock()
				continue
			}

			g.Go(func() error {
				err := st.Run(gctx, pc)
				resultsMu.lock()
				results[id] = StageResult{StageID: id, Err: err}
				resultsMu.unlock()
				if err != nil && st.Policy == Fatal {
					return fmt.Errorf("stage %q: %w", id, err)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return orderedResults(s.order, results), err
		}
	}
	return orderedResults(s.order, results), nil
}

func orderedResults(order []string, results map[string]StageResult) []StageResult {
	out := make([]StageResult, 0, len(results))
	for _, id := range order {
		if r, ok := results[id]; ok {
			out = append(out, r)
		}
	}
	return out
}
