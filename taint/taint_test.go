package taint

import (
	"testing"

	"github.com/shivasurya/code-pathfinder/engine/flow"
	"github.com/stretchr/testify/assert"
)

// TestAnalyzeFunction_EvalInjection mirrors the scenario:
// `def f(x):\n    y=x\n    eval(y)` with source {f: {x}} and sink
// {eval: {arg0}} must produce exactly one taint path x -> y ->
// eval(arg0), kind code-injection, unsanitized.
func TestAnalyzeFunction_EvalInjection(t *testing.T) {
	statements := []*flow.Statement{
		{Type: flow.StatementAssignment, Line: 2, Def: "y", Uses: []string{"x"}},
		{Type: flow.StatementExpression, Line: 3, CallTarget: "eval", Uses: []string{"y"}},
	}

	policy := &Policy{
		Sinks: []Rule{{Pattern: "eval", Kind: KindCodeInjection, Args: []int{0}}},
	}
	params := map[string]int{"x": 0}
	seeds := map[string]Kind{"x": KindCodeInjection}

	_, paths, _ := AnalyzeFunction("f", statements, policy, params, seeds)

	assert.Len(t, paths, 1)
	p := paths[0]
	assert.Equal(t, KindCodeInjection, p.Kind)
	assert.Equal(t, []string{"x", "y", "eval(arg0)"}, p.Steps)
	assert.False(t, p.Sanitized)
}

func TestAnalyzeFunction_SanitizerBlocksFlow(t *testing.T) {
	statements := []*flow.Statement{
		{Type: flow.StatementAssignment, Line: 2, Def: "y", Uses: []string{"x"}},
		{Type: flow.StatementExpression, Line: 3, CallTarget: "escape", Def: "y", Uses: []string{"y"}},
		{Type: flow.StatementExpression, Line: 4, CallTarget: "eval", Uses: []string{"y"}},
	}

	policy := &Policy{
		Sinks:      []Rule{{Pattern: "eval", Kind: KindCodeInjection, Args: []int{0}}},
		Sanitizers: []Rule{{Pattern: "escape"}},
	}

	_, paths, _ := AnalyzeFunction("f", statements, policy, map[string]int{"x": 0}, map[string]Kind{"x": KindCodeInjection})

	assert.Empty(t, paths, "escape() must clear y's taint before it reaches eval")
}

// TestAnalyzer_CrossFunctionPropagation: f(x) calls g(x), and g's body
// passes its parameter straight into eval — the flow must be detected
// even though the source and the sink live in different functions.
func TestAnalyzer_CrossFunctionPropagation(t *testing.T) {
	cg := &CallGraph{
		Statements: map[string][]*flow.Statement{
			"f": {
				{Type: flow.StatementExpression, Line: 1, CallTarget: "g", CallArgs: []string{"x"}},
			},
			"g": {
				{Type: flow.StatementExpression, Line: 10, CallTarget: "eval", Uses: []string{"v"}},
			},
		},
		Params: map[string]map[string]int{
			"f": {"x": 0},
			"g": {"v": 0},
		},
	}

	policy := &Policy{
		Sinks: []Rule{{Pattern: "eval", Kind: KindCodeInjection, Args: []int{0}}},
	}

	analyzer := NewAnalyzer(cg, policy)
	paths := analyzer.Analyze(map[string]map[string]Kind{
		"f": {"x": KindCodeInjection},
	})

	assert.NotEmpty(t, paths, "taint passed from f's parameter into g's eval() call must be reported")
	assert.Equal(t, "g", paths[0].SourceFunc)
}
