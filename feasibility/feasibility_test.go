package feasibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck_ContradictoryInterval(t *testing.T) {
	c := NewChecker(nil)
	r := c.Check([]Constraint{
		{Kind: ConstraintCompare, Var: "x", Op: OpLT, Value: 5},
		{Kind: ConstraintCompare, Var: "x", Op: OpGT, Value: 10},
	})
	assert.Equal(t, Infeasible, r)
}

func TestCheck_ConsistentInterval(t *testing.T) {
	c := NewChecker(nil)
	r := c.Check([]Constraint{
		{Kind: ConstraintCompare, Var: "x", Op: OpGE, Value: 0},
		{Kind: ConstraintCompare, Var: "x", Op: OpLE, Value: 100},
	})
	assert.Equal(t, Feasible, r)
}

func TestCheck_ConflictingNullState(t *testing.T) {
	c := NewChecker(nil)
	r := c.Check([]Constraint{
		{Kind: ConstraintNull, Var: "p", Null: IsNull},
		{Kind: ConstraintNull, Var: "p", Null: IsNotNull},
	})
	assert.Equal(t, Infeasible, r)
}

func TestCheck_ConflictingStringEquals(t *testing.T) {
	c := NewChecker(nil)
	r := c.Check([]Constraint{
		{Kind: ConstraintString, Var: "s", StringOp: StringEquals, StringValue: "a"},
		{Kind: ConstraintString, Var: "s", StringOp: StringEquals, StringValue: "b"},
	})
	assert.Equal(t, Infeasible, r)
}

func TestCheck_UndecidablePrefixIsUnknown(t *testing.T) {
	c := NewChecker(nil)
	r := c.Check([]Constraint{
		{Kind: ConstraintString, Var: "s", StringOp: StringHasPrefix, StringValue: "ab"},
		{Kind: ConstraintString, Var: "s", StringOp: StringHasSuffix, StringValue: "cd"},
	})
	assert.Equal(t, Unknown, r)
}

type stubAdapter struct{ result Result }

func (s stubAdapter) Check(_ []Constraint) Result { return s.result }

func TestCheck_EscalatesUnknownToAdapter(t *testing.T) {
	c := NewChecker(stubAdapter{result: Infeasible})
	r := c.Check([]Constraint{
		{Kind: ConstraintString, Var: "s", StringOp: StringHasPrefix, StringValue: "ab"},
	})
	assert.Equal(t, Infeasible, r)
}
