package datalog

import (
	"sort"

	"github.com/viant/anteater/internal/facts"
)

// Engine is a bottom-up, semi-naive Datalog evaluator (spec.md §4.4). Zero
// value is not usable; construct with NewEngine.
type Engine struct {
	tables  map[string]*table
	arities map[string]int
	rules   []Rule
	strata  [][]Rule
}

// NewEngine constructs an empty Engine.
func NewEngine() *Engine {
	return &Engine{tables: map[string]*table{}, arities: map[string]int{}}
}

// AddFacts seeds the EDB with externally extracted tuples (internal/facts).
func (e *Engine) AddFacts(fs []facts.Fact) error {
	for _, f := range fs {
		if err := e.recordArity(f.Pred, len(f.Args)); err != nil {
			return err
		}
		e.tableFor(f.Pred).add(Tuple(f.Args))
	}
	return nil
}

// AddRule validates and registers one rule.
func (e *Engine) AddRule(r Rule) error {
	if r.Head.isBuiltin() || r.Head.Negated {
		return unsafeRuleErr("rule head must be a positive predicate literal")
	}
	if err := e.recordArity(r.Head.Pred, len(r.Head.Args)); err != nil {
		return err
	}

	bound := map[string]bool{}
	for i, lit := range r.Body {
		if lit.isBuiltin() {
			if !termBound(lit.CmpA, bound) || !termBound(lit.CmpB, bound) {
				return unsafeRuleErr("comparison literal %d references an unbound variable", i)
			}
			continue
		}
		if err := e.recordArity(lit.Pred, len(lit.Args)); err != nil {
			return err
		}
		if lit.Negated {
			for _, arg := range lit.Args {
				if arg.isVar && !bound[arg.varName] {
					return unsafeRuleErr("negated literal %q uses variable %q not bound by an earlier positive literal", lit.Pred, arg.varName)
				}
			}
			continue // negation contributes no new bindings
		}
		for _, arg := range lit.Args {
			if arg.isVar {
				bound[arg.varName] = true
			}
		}
	}
	for _, arg := range r.Head.Args {
		if arg.isVar && !bound[arg.varName] {
			return unsafeRuleErr("head variable %q does not appear in any positive body literal", arg.varName)
		}
	}

	e.rules = append(e.rules, r)
	return nil
}

func termBound(t Term, bound map[string]bool) bool {
	return !t.isVar || bound[t.varName]
}

func (e *Engine) recordArity(pred string, arity int) error {
	if cur, ok := e.arities[pred]; ok {
		if cur != arity {
			return arityMismatchErr("predicate %q used with arity %d and %d", pred, cur, arity)
		}
		return nil
	}
	e.arities[pred] = arity
	return nil
}

func (e *Engine) tableFor(pred string) *table {
	t, ok := e.tables[pred]
	if !ok {
		t = newTable(e.arities[pred])
		e.tables[pred] = t
	}
	return t
}

// Run stratifies the rule set and evaluates each stratum to fixpoint.
func (e *Engine) Run() error {
	if err := e.stratify(); err != nil {
		return err
	}
	for _, stratum := range e.strata {
		e.runStratum(stratum)
	}
	return nil
}

// stratify assigns each predicate a non-negative level such that a rule
// depending negatively on a predicate is placed strictly above it; a level
// that would have to grow without bound signals a negation cycle (spec.md
// §4.4 step 1).
func (e *Engine) stratify() error {
	level := map[string]int{}
	preds := map[string]bool{}
	for pred := range e.arities {
		preds[pred] = true
		level[pred] = 0
	}

	maxIter := len(preds) + 2
	for iter := 0; ; iter++ {
		changed := false
		for _, r := range e.rules {
			for _, b := range r.Body {
				if b.isBuiltin() {
					continue
				}
				if b.Negated {
					if level[r.Head.Pred] <= level[b.Pred] {
						level[r.Head.Pred] = level[b.Pred] + 1
						changed = true
					}
				} else if level[r.Head.Pred] < level[b.Pred] {
					level[r.Head.Pred] = level[b.Pred]
					changed = true
				}
			}
		}
		if !changed {
			break
		}
		if iter > maxIter {
			return cyclicNegationErr("negation dependency cycle prevents stratification")
		}
	}

	maxLevel := 0
	for _, l := range level {
		if l > maxLevel {
			maxLevel = l
		}
	}
	strata := make([][]Rule, maxLevel+1)
	for _, r := range e.rules {
		lv := level[r.Head.Pred]
		strata[lv] = append(strata[lv], r)
	}
	e.strata = strata
	return nil
}

// runStratum evaluates one stratum's rules to fixpoint via semi-naive
// iteration (spec.md §4.4 step 2): each round re-fires every rule once per
// positive body literal sourced from that literal's previous-round delta,
// with every other literal sourced from the accumulated table.
func (e *Engine) runStratum(rules []Rule) {
	if len(rules) == 0 {
		return
	}
	headPreds := map[string]bool{}
	for _, r := range rules {
		headPreds[r.Head.Pred] = true
		e.tableFor(r.Head.Pred)
	}

	// Round 0: full naive evaluation, sourcing every literal from `all`
	// (which already holds any lower-stratum / EDB tuples).
	e.evalRound(rules, -1)

	for {
		any := false
		for pred := range headPreds {
			if len(e.tableFor(pred).delta) > 0 {
				any = true
			}
		}
		if !any {
			break
		}
		e.evalRound(rules, 0)
	}
}

// evalRound runs one semi-naive round. deltaMode < 0 means the seeding
// round (everything sourced from `all`); deltaMode == 0 means the regular
// round (each rule is tried once per eligible delta-literal choice).
func (e *Engine) evalRound(rules []Rule, deltaMode int) {
	produced := map[string][]Tuple{}

	for _, r := range rules {
		positiveIdx := make([]int, 0, len(r.Body))
		for i, lit := range r.Body {
			if !lit.isBuiltin() && !lit.Negated {
				positiveIdx = append(positiveIdx, i)
			}
		}

		deltaChoices := []int{-1}
		if deltaMode == 0 {
			deltaChoices = positiveIdx
			if len(deltaChoices) == 0 {
				deltaChoices = []int{-1}
			}
		}

		for _, deltaIdx := range deltaChoices {
			bindings := []map[string]facts.Const{{}}
			ok := true
			for i, lit := range r.Body {
				if !ok {
					break
				}
				if lit.isBuiltin() {
					bindings = filterCmp(bindings, lit)
					if len(bindings) == 0 {
						ok = false
					}
					continue
				}
				if lit.Negated {
					bindings = filterNegated(bindings, lit, e.tableFor(lit.Pred))
					if len(bindings) == 0 {
						ok = false
					}
					continue
				}
				var source []Tuple
				if i == deltaIdx {
					source = e.tableFor(lit.Pred).deltaTuples()
				} else {
					source = e.tableFor(lit.Pred).allTuples()
				}
				bindings = joinLiteral(bindings, lit, source)
				if len(bindings) == 0 {
					ok = false
				}
			}
			if !ok {
				continue
			}
			for _, b := range bindings {
				produced[r.Head.Pred] = append(produced[r.Head.Pred], project(r.Head, b))
			}
		}
	}

	for pred, tuples := range produced {
		t := e.tableFor(pred)
		var fresh []Tuple
		for _, tup := range tuples {
			if !t.has(tup) {
				fresh = append(fresh, tup)
			}
		}
		dedup := map[string]Tuple{}
		for _, tup := range fresh {
			dedup[tupleKey(tup)] = tup
		}
		fresh = fresh[:0]
		for _, tup := range dedup {
			fresh = append(fresh, tup)
			t.add(tup)
		}
		t.setDelta(fresh)
	}
	// predicates that produced nothing this round see their delta cleared.
	for _, r := range rules {
		if _, ok := produced[r.Head.Pred]; !ok {
			e.tableFor(r.Head.Pred).setDelta(nil)
		}
	}
}

// joinLiteral is only ever called for positive predicate literals;
// negated ones are filtered by filterNegated instead.
func joinLiteral(bindings []map[string]facts.Const, lit Literal, source []Tuple) []map[string]facts.Const {
	var out []map[string]facts.Const
	for _, b := range bindings {
		for _, tup := range source {
			if len(tup) != len(lit.Args) {
				continue
			}
			nb, ok := unify(lit, tup, b)
			if !ok {
				continue
			}
			out = append(out, nb)
		}
	}
	return out
}

// filterNegated keeps only the bindings for which lit's fully-ground
// instantiation (every Arg is already bound, per AddRule's safety check)
// is absent from t — negation-as-failure against the current `all` table.
func filterNegated(bindings []map[string]facts.Const, lit Literal, t *table) []map[string]facts.Const {
	var out []map[string]facts.Const
	for _, b := range bindings {
		tup := make(Tuple, len(lit.Args))
		for i, term := range lit.Args {
			tup[i] = resolve(term, b)
		}
		if !t.has(tup) {
			out = append(out, b)
		}
	}
	return out
}

func unify(lit Literal, tup Tuple, b map[string]facts.Const) (map[string]facts.Const, bool) {
	nb := make(map[string]facts.Const, len(b)+len(lit.Args))
	for k, v := range b {
		nb[k] = v
	}
	for i, term := range lit.Args {
		val := tup[i]
		if term.isVar {
			if existing, ok := nb[term.varName]; ok {
				if existing != val {
					return nil, false
				}
				continue
			}
			nb[term.varName] = val
		} else if term.value != val {
			return nil, false
		}
	}
	return nb, true
}

func filterCmp(bindings []map[string]facts.Const, lit Literal) []map[string]facts.Const {
	var out []map[string]facts.Const
	for _, b := range bindings {
		a := resolve(lit.CmpA, b)
		c := resolve(lit.CmpB, b)
		if evalCmp(lit.Cmp, a, c) {
			out = append(out, b)
		}
	}
	return out
}

func resolve(t Term, b map[string]facts.Const) facts.Const {
	if t.isVar {
		return b[t.varName]
	}
	return t.value
}

func evalCmp(op CmpOp, a, b facts.Const) bool {
	switch op {
	case CmpEq:
		return a == b
	case CmpNeq:
		return a != b
	case CmpLt:
		return a.I < b.I
	case CmpLte:
		return a.I <= b.I
	case CmpGt:
		return a.I > b.I
	case CmpGte:
		return a.I >= b.I
	default:
		return false
	}
}

func project(head Literal, b map[string]facts.Const) Tuple {
	out := make(Tuple, len(head.Args))
	for i, term := range head.Args {
		if term.isVar {
			out[i] = b[term.varName]
		} else {
			out[i] = term.value
		}
	}
	return out
}

// Query returns every tuple currently derived for pred, sorted by content
// for deterministic output.
func (e *Engine) Query(pred string) []Tuple {
	t, ok := e.tables[pred]
	if !ok {
		return nil
	}
	out := t.allTuples()
	sort.Slice(out, func(i, j int) bool { return tupleKey(out[i]) < tupleKey(out[j]) })
	return out
}
