package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingStage(id string, deps []string, order *[]string, mu *sync.Mutex, policy FailurePolicy, fail bool) Stage {
	return Stage{
		ID:        id,
		DependsOn: deps,
		Policy:    policy,
		Run: func(ctx context.Context, pc *PipelineContext) error {
			mu.Lock()
			*order = append(*order, id)
			mu.Unlock()
			if fail {
				return errors.New("boom")
			}
			return nil
		},
	}
}

func TestScheduler_RunsInDependencyOrder(t *testing.T) {
	var order []string
	var mu sync.Mutex

	stages := []Stage{
		recordingStage("parse", nil, &order, &mu, Fatal, false),
		recordingStage("ir", []string{"parse"}, &order, &mu, Fatal, false),
		recordingStage("flow", []string{"ir"}, &order, &mu, Fatal, false),
		recordingStage("taint", []string{"flow"}, &order, &mu, Fatal, false),
	}
	sched, err := NewScheduler(stages)
	require.NoError(t, err)

	pc := NewPipelineContext(context.Background())
	results, err := sched.Run(context.Background(), pc)
	require.NoError(t, err)
	assert.Len(t, results, 4)
	assert.Equal(t, []string{"parse", "ir", "flow", "taint"}, order)
}

func TestScheduler_RecoverableFailureSkipsDownstreamOnly(t *testing.T) {
	var order []string
	var mu sync.Mutex

	stages := []Stage{
		recordingStage("a", nil, &order, &mu, Recoverable, false),
		recordingStage("b", nil, &order, &mu, Recoverable, true),
		recordingStage("c", []string{"b"}, &order, &mu, Recoverable, false),
		recordingStage("d", []string{"a"}, &order, &mu, Recoverable, false),
	}
	sched, err := NewScheduler(stages)
	require.NoError(t, err)

	results, err := sched.Run(context.Background(), NewPipelineContext(context.Background()))
	require.NoError(t, err)

	byID := make(map[string]StageResult)
	for _, r := range results {
		byID[r.StageID] = r
	}
	assert.True(t, byID["c"].Skipped)
	assert.False(t, byID["d"].Skipped)
	assert.Error(t, byID["b"].Err)
}

func TestScheduler_FatalFailureAbortsRun(t *testing.T) {
	var order []string
	var mu sync.Mutex

	stages := []Stage{
		recordingStage("a", nil, &order, &mu, Fatal, true),
		recordingStage("b", []string{"a"}, &order, &mu, Fatal, false),
	}
	sched, err := NewScheduler(stages)
	require.NoError(t, err)

	_, err = sched.Run(context.Background(), NewPipelineContext(context.Background()))
	assert.Error(t, err)
}

func TestNewScheduler_DetectsCycle(t *testing.T) {
	stages := []Stage{
		{ID: "a", DependsOn: []string{"b"}, Run: func(context.Context, *PipelineContext) error { return nil }},
		{ID: "b", DependsOn: []string{"a"}, Run: func(context.Context, *PipelineContext) error { return nil }},
	}
	_, err := NewScheduler(stages)
	assert.Error(t, err)
}

func TestNewScheduler_DetectsUnknownDependency(t *testing.T) {
	stages := []Stage{
		{ID: "a", DependsOn: []string{"ghost"}, Run: func(context.Context, *PipelineContext) error { return nil }},
	}
	_, err := NewScheduler(stages)
	assert.Error(t, err)
}

func TestScheduler_RunIncremental_OnlyTouchesDownstream(t *testing.T) {
	var order []string
	var mu sync.Mutex

	stages := []Stage{
		recordingStage("parse", nil, &order, &mu, Fatal, false),
		recordingStage("ir", []string{"parse"}, &order, &mu, Fatal, false),
		recordingStage("unrelated", nil, &order, &mu, Fatal, false),
	}
	sched, err := NewScheduler(stages)
	require.NoError(t, err)

	_, err = sched.RunIncremental(context.Background(), NewPipelineContext(context.Background()), []string{"parse"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"parse", "ir"}, order)
}

func TestPipelineContext_SetGet(t *testing.T) {
	pc := NewPipelineContext(context.Background())
	pc.Set("graph", 42)
	v, ok := pc.Get("graph")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = pc.Get("missing")
	assert.False(t, ok)
}
