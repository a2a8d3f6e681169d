package domains

import "strconv"

// State is an abstract value in either domain; a map[symbolID]State is the
// per-program-point abstract state of spec.md §3.
type State interface {
	// String renders the state for diagnostics.
	String() string
}

func (s NullState) String() string { return string(s) }

func (i Interval) String() string {
	if i.Bottom {
		return "⊥"
	}
	return "[" + formatBound(i.Lo) + "," + formatBound(i.Hi) + "]"
}

func formatBound(v float64) string {
	switch {
	case v == negInf:
		return "-inf"
	case v == posInf:
		return "+inf"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}
