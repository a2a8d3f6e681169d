// Package domains implements the Nullability and Interval abstract domains
// of spec.md §4.5: each provides bottom/top/join/meet/leq/widen/narrow and
// a transfer function over a CFG operation's operand states.
package domains

// NullState is the closed five-element Nullability lattice of spec.md §3:
// ⊥ < {NonNull, Null} < Nullable < ⊤.
type NullState string

const (
	NullBottom  NullState = "BOTTOM"
	NonNull     NullState = "NON_NULL"
	Null        NullState = "NULL"
	Nullable    NullState = "NULLABLE"
	NullTop     NullState = "TOP"
)

// NullBottomV / NullTopV return the lattice's bottom and top elements.
func NullBottomV() NullState { return NullBottom }
func NullTopV() NullState    { return NullTop }

// NullJoin is set-union on {NonNull, Null}: joining the two concrete states
// yields Nullable; anything joined with ⊥ is unchanged; anything joined
// with ⊤ is ⊤ (spec.md §4.5).
func NullJoin(a, b NullState) NullState {
	if a == NullBottom {
		return b
	}
	if b == NullBottom {
		return a
	}
	if a == b {
		return a
	}
	if a == NullTop || b == NullTop {
		return NullTop
	}
	// {NonNull, Null} in either order, or either side already Nullable.
	return Nullable
}

// NullMeet is the dual of NullJoin.
func NullMeet(a, b NullState) NullState {
	if a == NullTop {
		return b
	}
	if b == NullTop {
		return a
	}
	if a == b {
		return a
	}
	if a == NullBottom || b == NullBottom {
		return NullBottom
	}
	if a == Nullable {
		return b
	}
	if b == Nullable {
		return a
	}
	// NonNull meet Null: no concrete value is both.
	return NullBottom
}

var nullRank = map[NullState]int{
	NullBottom: 0,
	NonNull:    1,
	Null:       1,
	Nullable:   2,
	NullTop:    3,
}

// NullLeq reports whether a ⊑ b in the lattice order.
func NullLeq(a, b NullState) bool {
	if a == b {
		return true
	}
	if a == NullBottom || b == NullTop {
		return true
	}
	if b == NullBottom || a == NullTop {
		return false
	}
	return nullRank[a] <= nullRank[b] && b == NullJoin(a, b)
}

// Nullability has no unstable numeric bounds, so widen/narrow are join/meet
// (the lattice is already finite-height, per spec.md §4.5 only Interval
// needs real widening).
func NullWiden(a, b NullState) NullState { return NullJoin(a, b) }
func NullNarrow(a, b NullState) NullState { return NullMeet(a, b) }

// NullOp tags the CFG operation kinds NullTransfer distinguishes.
type NullOp int

const (
	NullOpUnknown NullOp = iota
	NullOpAssignNull
	NullOpAssignNew
	NullOpFieldLoad
	NullOpGuardNonNull // "if (x != null)" guard, then-branch refinement
	NullOpCopy         // plain x = y: propagate y's state
)

// NullTransfer implements spec.md §4.5's nullability transfer rules.
func NullTransfer(op NullOp, operands []NullState) NullState {
	switch op {
	case NullOpAssignNull:
		return Null
	case NullOpAssignNew:
		return NonNull
	case NullOpFieldLoad:
		return Nullable
	case NullOpGuardNonNull:
		return NonNull
	case NullOpCopy:
		if len(operands) == 1 {
			return operands[0]
		}
		return NullTop
	default:
		return NullTop
	}
}
