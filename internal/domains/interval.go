package domains

import "math"

// Interval is `⊥` (Bottom==true) or a closed range `[Lo,Hi]` with
// Lo,Hi ∈ ℤ ∪ {−∞,+∞} (spec.md §3). `⊤ = [−∞,+∞]`.
type Interval struct {
	Bottom bool
	Lo, Hi float64
}

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// IntervalBottom is the empty interval.
func IntervalBottom() Interval { return Interval{Bottom: true} }

// IntervalTop is `[−∞,+∞]`.
func IntervalTop() Interval { return Interval{Lo: negInf, Hi: posInf} }

// IntervalOf builds a finite point/range interval.
func IntervalOf(lo, hi float64) Interval {
	if lo > hi {
		return IntervalBottom()
	}
	return Interval{Lo: lo, Hi: hi}
}

// IntervalPoint builds the single-value interval [v,v].
func IntervalPoint(v float64) Interval { return Interval{Lo: v, Hi: v} }

// IntervalJoin widens both bounds outward to cover either operand.
func IntervalJoin(a, b Interval) Interval {
	if a.Bottom {
		return b
	}
	if b.Bottom {
		return a
	}
	return Interval{Lo: math.Min(a.Lo, b.Lo), Hi: math.Max(a.Hi, b.Hi)}
}

// IntervalMeet narrows both bounds inward; disjoint ranges meet to ⊥.
func IntervalMeet(a, b Interval) Interval {
	if a.Bottom || b.Bottom {
		return IntervalBottom()
	}
	lo, hi := math.Max(a.Lo, b.Lo), math.Min(a.Hi, b.Hi)
	if lo > hi {
		return IntervalBottom()
	}
	return Interval{Lo: lo, Hi: hi}
}

// IntervalLeq reports whether a ⊑ b (a's range is contained in b's).
func IntervalLeq(a, b Interval) bool {
	if a.Bottom {
		return true
	}
	if b.Bottom {
		return false
	}
	return b.Lo <= a.Lo && a.Hi <= b.Hi
}

// IntervalWiden drops bounds that moved between a (previous) and b
// (current) to infinity, per spec.md §4.5: "widen(a,b) drops unstable
// bounds to ±∞".
func IntervalWiden(a, b Interval) Interval {
	if a.Bottom {
		return b
	}
	if b.Bottom {
		return a
	}
	lo, hi := a.Lo, a.Hi
	if b.Lo < a.Lo {
		lo = negInf
	}
	if b.Hi > a.Hi {
		hi = posInf
	}
	return Interval{Lo: lo, Hi: hi}
}

// IntervalNarrow tightens an infinite bound back toward a concrete one seen
// after widening; callers run this for at most two passes after
// stabilization (spec.md §4.5/§4.6).
func IntervalNarrow(a, b Interval) Interval {
	if a.Bottom || b.Bottom {
		return IntervalBottom()
	}
	lo, hi := a.Lo, a.Hi
	if math.IsInf(a.Lo, -1) && !math.IsInf(b.Lo, -1) {
		lo = b.Lo
	}
	if math.IsInf(a.Hi, 1) && !math.IsInf(b.Hi, 1) {
		hi = b.Hi
	}
	return Interval{Lo: lo, Hi: hi}
}

// IntervalOp tags the arithmetic operations IntervalTransfer supports.
type IntervalOp int

const (
	IntervalOpAdd IntervalOp = iota
	IntervalOpSub
	IntervalOpMul
	IntervalOpDiv
)

// IntervalTransfer applies standard interval arithmetic, per spec.md §4.5:
// "division by an interval straddling 0 yields ⊤".
func IntervalTransfer(op IntervalOp, operands []Interval) Interval {
	if len(operands) != 2 {
		return IntervalTop()
	}
	a, b := operands[0], operands[1]
	if a.Bottom || b.Bottom {
		return IntervalBottom()
	}
	switch op {
	case IntervalOpAdd:
		return Interval{Lo: addSat(a.Lo, b.Lo), Hi: addSat(a.Hi, b.Hi)}
	case IntervalOpSub:
		return Interval{Lo: addSat(a.Lo, -b.Hi), Hi: addSat(a.Hi, -b.Lo)}
	case IntervalOpMul:
		return intervalMul(a, b)
	case IntervalOpDiv:
		if straddlesZero(b) {
			return IntervalTop()
		}
		return intervalDiv(a, b)
	default:
		return IntervalTop()
	}
}

func straddlesZero(v Interval) bool { return v.Lo <= 0 && v.Hi >= 0 }

func addSat(a, b float64) float64 {
	r := a + b
	if math.IsNaN(r) {
		// ±∞ + ∓∞: only reachable for degenerate inputs; saturate to 0 so
		// callers never propagate NaN through the lattice.
		return 0
	}
	return r
}

func intervalMul(a, b Interval) Interval {
	candidates := [4]float64{
		mulSat(a.Lo, b.Lo), mulSat(a.Lo, b.Hi),
		mulSat(a.Hi, b.Lo), mulSat(a.Hi, b.Hi),
	}
	lo, hi := candidates[0], candidates[0]
	for _, c := range candidates[1:] {
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}
	return Interval{Lo: lo, Hi: hi}
}

func intervalDiv(a, b Interval) Interval {
	candidates := [4]float64{
		divSat(a.Lo, b.Lo), divSat(a.Lo, b.Hi),
		divSat(a.Hi, b.Lo), divSat(a.Hi, b.Hi),
	}
	lo, hi := candidates[0], candidates[0]
	for _, c := range candidates[1:] {
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}
	return Interval{Lo: lo, Hi: hi}
}

func mulSat(a, b float64) float64 {
	r := a * b
	if math.IsNaN(r) {
		return 0
	}
	return r
}

func divSat(a, b float64) float64 {
	if b == 0 {
		if a > 0 {
			return posInf
		}
		if a < 0 {
			return negInf
		}
		return 0
	}
	r := a / b
	if math.IsNaN(r) {
		return 0
	}
	return r
}
