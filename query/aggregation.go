package query

import "github.com/shivasurya/code-pathfinder/engine/ir"

// AggFunc is the aggregation operator an AggregationBuilder applies.
type AggFunc string

const (
	AggCount AggFunc = "count"
	AggSum   AggFunc = "sum"
	AggAvg   AggFunc = "avg"
	AggMin   AggFunc = "min"
	AggMax   AggFunc = "max"
)

// FieldExtractor pulls a numeric metadata value out of a node; nodes
// for which it returns ok=false are excluded from sum/avg/min/max (but
// still counted by AggCount).
type FieldExtractor func(n *ir.Node) (value float64, ok bool)

// AggregationBuilder computes count/sum/avg/min/max over a node set,
// reusing NodeQueryBuilder's kind/predicate filtering to select that set.
type AggregationBuilder struct {
	nodes []*ir.Node
	field FieldExtractor
}

// NewAggregation builds an aggregation over an already-filtered node
// slice (typically a NodeQueryBuilder.Run() result) and a field
// extractor naming the numeric metadata to aggregate.
func NewAggregation(nodes []*ir.Node, field FieldExtractor) *AggregationBuilder {
	return &AggregationBuilder{nodes: nodes, field: field}
}

// Compute runs the requested aggregation function over the node set.
func (a *AggregationBuilder) Compute(fn AggFunc) float64 {
	if fn == AggCount {
		return float64(len(a.nodes))
	}

	var values []float64
	for _, n := range a.nodes {
		if v, ok := a.field(n); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return 0
	}

	switch fn {
	case AggSum:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum
	case AggAvg:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	case AggMin:
		min := values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
		}
		return min
	case AggMax:
		max := values[0]
		for _, v := range values[1:] {
			if v > max {
				max = v
			}
		}
		return max
	default:
		return 0
	}
}
