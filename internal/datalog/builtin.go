package datalog

import "github.com/viant/anteater/internal/facts"

// Derived predicate symbols of spec.md §4.4 ("reachability, points-to,
// alias, mutability, escape analysis are expressed as rules, not built
// into the engine").
const (
	PredReaches  = "Reaches"
	PredMayAlias = "MayAlias"
	PredPointsTo = "PointsTo"
	PredMutable  = "Mutable"
	PredEscapes  = "Escapes"
)

// BuiltinRules returns the standard analysis vocabulary layered over the
// raw facts.Extract tuples: control-flow reachability, Andersen-style
// points-to, may-alias, mutability, and escape. Callers AddRule these
// alongside any rules loaded from configuration (spec.md §4.8 rule
// packs may reference these derived predicates).
func BuiltinRules() []Rule {
	a, b, c := Var("a"), Var("b"), Var("c")
	site, typ := Var("site"), Var("type")
	v, callee, i, arg := Var("v"), Var("callee"), Var("i"), Var("arg")

	return []Rule{
		// Reaches(a,b) :- EdgeCF(a,b).
		{Head: Lit(PredReaches, a, b), Body: []Literal{Lit(facts.PredEdgeCF, a, b)}},
		// Reaches(a,c) :- EdgeCF(a,b), Reaches(b,c).
		{Head: Lit(PredReaches, a, c), Body: []Literal{Lit(facts.PredEdgeCF, a, b), Lit(PredReaches, b, c)}},

		// PointsTo(v,site) :- Assign(v,site), Alloc(site,_).
		//
		// internal/facts enriches OpAlloc with an extra Assign(result,site)
		// tuple (spec's Alloc(site,type) carries no link to the symbol that
		// received the allocation), so this reuses the existing Assign
		// predicate rather than inventing a new one.
		{Head: Lit(PredPointsTo, v, site), Body: []Literal{Lit(facts.PredAssign, v, site), Lit(facts.PredAlloc, site, typ)}},

		// MayAlias(x,y) :- PointsTo(x,site), PointsTo(y,site), x != y.
		{Head: Lit(PredMayAlias, Var("x"), Var("y")), Body: []Literal{
			Lit(PredPointsTo, Var("x"), site),
			Lit(PredPointsTo, Var("y"), site),
			CmpLit(CmpNeq, Var("x"), Var("y")),
		}},

		// Mutable(site) :- Store(_,_,_), Alloc(site,_), PointsTo(_,site).
		// Taken verbatim from spec.md §4.4's illustrative example.
		{Head: Lit(PredMutable, site), Body: []Literal{
			Lit(facts.PredStore, Var("_s1"), Var("_s2"), Var("_s3")),
			Lit(facts.PredAlloc, site, typ),
			Lit(PredPointsTo, Var("_p"), site),
		}},

		// Escapes(site) :- PointsTo(v,site), Call(_,callee,i,arg), arg == v, i >= 0.
		//
		// Scoped to "passed as a call argument" only. Spec's fact schema
		// (§3) has no Return predicate, so the "escapes via return value"
		// half of the usual points-to escape analysis has no fact to
		// ground on and is intentionally left unmodeled.
		{Head: Lit(PredEscapes, site), Body: []Literal{
			Lit(PredPointsTo, v, site),
			Lit(facts.PredCall, Var("_cs"), callee, i, arg),
			CmpLit(CmpEq, arg, v),
			CmpLit(CmpGte, i, Const(facts.Int(0))),
		}},
	}
}
