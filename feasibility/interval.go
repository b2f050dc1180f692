package feasibility

import "math"

// interval is a closed range [Low, High] over int64, using math.MinInt64
// / math.MaxInt64 as open bounds.
type interval struct {
	Low, High int64
}

func fullInterval() interval { return interval{Low: math.MinInt64, High: math.MaxInt64} }

func (iv interval) empty() bool { return iv.Low > iv.High }

// narrow intersects iv with the range implied by one comparison
// constraint against a constant.
func (iv interval) narrow(op CompareOp, v int64) interval {
	switch op {
	case OpLT:
		if v-1 < iv.High {
			iv.High = v - 1
		}
	case OpLE:
		if v < iv.High {
			iv.High = v
		}
	case OpGT:
		if v+1 > iv.Low {
			iv.Low = v + 1
		}
	case OpGE:
		if v > iv.Low {
			iv.Low = v
		}
	case OpEQ:
		if v > iv.Low {
			iv.Low = v
		}
		if v < iv.High {
			iv.High = v
		}
	case OpNE:
		// A single disequality can't be represented as one closed
		// interval; leave the bound untouched rather than claim
		// something the lattice can't prove. Equality contradictions
		// (x == c1 AND x == c2, c1 != c2) are still caught because both
		// narrow the same interval to a single point each.
	}
	return iv
}
