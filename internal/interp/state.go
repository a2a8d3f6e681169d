// Package interp implements the worklist abstract interpreter of spec.md
// §4.6: it drives the Nullability and Interval domains (internal/domains)
// over a CFG to produce NullVerifier and BoundsChecker verdicts.
package interp

import (
	"github.com/viant/anteater/internal/cfg"
	"github.com/viant/anteater/internal/domains"
)

// State is the per-program-point abstract state of spec.md §3: a map from
// symbol id to lattice value, one map per domain, plus a synthetic
// "len(x)" tracking map keyed by the array/receiver symbol it describes.
type State struct {
	Null     map[cfg.SymbolID]domains.NullState
	Interval map[cfg.SymbolID]domains.Interval
	Length   map[cfg.SymbolID]domains.Interval
}

func newState() State {
	return State{
		Null:     map[cfg.SymbolID]domains.NullState{},
		Interval: map[cfg.SymbolID]domains.Interval{},
		Length:   map[cfg.SymbolID]domains.Interval{},
	}
}

func (s State) clone() State {
	out := newState()
	for k, v := range s.Null {
		out.Null[k] = v
	}
	for k, v := range s.Interval {
		out.Interval[k] = v
	}
	for k, v := range s.Length {
		out.Length[k] = v
	}
	return out
}

// null/interval read with a ⊤ default: a symbol this state never recorded
// is simply unanalyzed, which is the "unknown" element, not the lattice's
// ⊥ identity (⊥ stays reserved for join's algebraic identity, below).
func (s State) null(sym cfg.SymbolID) domains.NullState {
	if v, ok := s.Null[sym]; ok {
		return v
	}
	return domains.NullTop
}

func (s State) interval(sym cfg.SymbolID) domains.Interval {
	if v, ok := s.Interval[sym]; ok {
		return v
	}
	return domains.IntervalTop()
}

// equal reports whether two states agree on every symbol either one
// tracks, used to detect fixpoint convergence per block.
func equal(a, b State) bool {
	if len(a.Null) != len(b.Null) || len(a.Interval) != len(b.Interval) || len(a.Length) != len(b.Length) {
		return false
	}
	for k, v := range a.Null {
		if b.Null[k] != v {
			return false
		}
	}
	for k, v := range a.Interval {
		if b.Interval[k] != v {
			return false
		}
	}
	for k, v := range a.Length {
		if b.Length[k] != v {
			return false
		}
	}
	return true
}

// merge joins two states key-wise; a symbol present on only one side uses
// that domain's ⊥ as the other side's implicit value — ⊥ is join's
// identity element, so the result is simply the present side's value.
func merge(a, b State) State {
	out := newState()
	for k, v := range a.Null {
		out.Null[k] = v
	}
	for k, v := range b.Null {
		cur, ok := out.Null[k]
		if !ok {
			cur = domains.NullBottom
		}
		out.Null[k] = domains.NullJoin(cur, v)
	}
	for k, v := range a.Interval {
		out.Interval[k] = v
	}
	for k, v := range b.Interval {
		cur, ok := out.Interval[k]
		if !ok {
			cur = domains.IntervalBottom()
		}
		out.Interval[k] = domains.IntervalJoin(cur, v)
	}
	for k, v := range a.Length {
		out.Length[k] = v
	}
	for k, v := range b.Length {
		cur, ok := out.Length[k]
		if !ok {
			cur = domains.IntervalBottom()
		}
		out.Length[k] = domains.IntervalJoin(cur, v)
	}
	return out
}

func widen(prev, cur State) State {
	out := cur.clone()
	for k, v := range prev.Interval {
		out.Interval[k] = domains.IntervalWiden(v, out.interval(k))
	}
	for k, v := range prev.Length {
		out.Length[k] = domains.IntervalWiden(v, lengthOrTop(out, k))
	}
	for k, v := range prev.Null {
		out.Null[k] = domains.NullWiden(v, out.null(k))
	}
	return out
}

func narrow(prev, cur State) State {
	out := cur.clone()
	for k, v := range prev.Interval {
		out.Interval[k] = domains.IntervalNarrow(v, out.interval(k))
	}
	for k, v := range prev.Null {
		out.Null[k] = domains.NullNarrow(v, out.null(k))
	}
	return out
}

func lengthOrTop(s State, sym cfg.SymbolID) domains.Interval {
	if v, ok := s.Length[sym]; ok {
		return v
	}
	return domains.IntervalTop()
}
