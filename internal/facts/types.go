// Package facts extracts the relational fact tuples of spec.md §3/§4.3 from
// SSA-form CFGs: a single deterministic pass, no inference, output is a
// multiset.
package facts

import (
	"strconv"

	"github.com/minio/highwayhash"
)

// ConstKind tags whether a Const holds an integer or a string constant
// (spec.md §3: "tuple of string/int constants").
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstString
)

// Const is one typed constant inside a Fact's argument tuple.
type Const struct {
	Kind ConstKind
	I    int64
	S    string
}

// Int builds an integer constant (used for symbol ids, instruction/block
// ids, and argument indices).
func Int(v int64) Const { return Const{Kind: ConstInt, I: v} }

// Str builds a string constant (used for field names, type names, literal
// lexemes, operator tokens).
func Str(v string) Const { return Const{Kind: ConstString, S: v} }

func (c Const) String() string {
	if c.Kind == ConstInt {
		return strconv.FormatInt(c.I, 10)
	}
	return c.S
}

// Predicate symbols of spec.md §3. MayAlias/PointsTo/Mutable/Escapes are
// derived by C4, not emitted here.
const (
	PredAssign    = "Assign"
	PredCall      = "Call"
	PredLoad      = "Load"
	PredStore     = "Store"
	PredAlloc     = "Alloc"
	PredEdgeCF    = "EdgeCF"
	PredDominates = "Dominates"
)

// Fact is a predicate symbol plus its argument tuple, with a stable
// content-derived ID (a highwayhash of predicate and arguments). The Datalog
// engine keys its tables on the argument tuple itself and does not read ID.
type Fact struct {
	ID   uint64
	Pred string
	Args []Const
}

// factKey is a fixed, arbitrary 32-byte key (highwayhash.New64 requires
// exactly 32): facts are hashed for a stable identity within a run, not for
// any cryptographic property, so a constant key is sufficient (spec.md
// §4.3: "fact tuple serialization is implementation-defined").
var factKey = []byte("AnteaterFactKey0123456789ABCDEF0")

func newFact(pred string, args ...Const) Fact {
	buf := make([]byte, 0, 32+len(args)*9)
	buf = append(buf, pred...)
	buf = append(buf, 0)
	for _, a := range args {
		buf = append(buf, byte(a.Kind))
		if a.Kind == ConstInt {
			buf = appendInt64(buf, a.I)
		} else {
			buf = append(buf, a.S...)
		}
		buf = append(buf, 0)
	}
	h, err := highwayhash.New64(factKey)
	if err != nil {
		// factKey is a fixed 32-byte constant, so New64 cannot fail.
		panic(err)
	}
	h.Write(buf)
	return Fact{ID: h.Sum64(), Pred: pred, Args: args}
}

func appendInt64(buf []byte, v int64) []byte {
	u := uint64(v)
	for i := 0; i < 8; i++ {
		buf = append(buf, byte(u>>(8*i)))
	}
	return buf
}
