package datalog

// CmpOp names a built-in comparison (spec.md §4.4: "equality, inequality,
// arithmetic comparisons on integer constants").
type CmpOp string

const (
	CmpEq  CmpOp = "eq"
	CmpNeq CmpOp = "neq"
	CmpLt  CmpOp = "lt"
	CmpLte CmpOp = "lte"
	CmpGt  CmpOp = "gt"
	CmpGte CmpOp = "gte"
)

// Literal is one body (or head) atom of a rule. A Literal is exactly one
// of: a predicate atom (Pred set), or a built-in comparison (Cmp set).
type Literal struct {
	Pred    string
	Args    []Term
	Negated bool

	Cmp      CmpOp
	CmpA     Term
	CmpB     Term
}

// Lit builds a positive predicate literal.
func Lit(pred string, args ...Term) Literal {
	return Literal{Pred: pred, Args: args}
}

// NotLit builds a negated predicate literal.
func NotLit(pred string, args ...Term) Literal {
	return Literal{Pred: pred, Args: args, Negated: true}
}

// CmpLit builds a built-in comparison literal.
func CmpLit(op CmpOp, a, b Term) Literal {
	return Literal{Cmp: op, CmpA: a, CmpB: b}
}

func (l Literal) isBuiltin() bool { return l.Cmp != "" }

// Rule is `H(X̄) :- B₁(Ȳ₁), …, Bₙ(Ȳₙ).` (spec.md §4.4).
type Rule struct {
	Head Literal
	Body []Literal
}
