package datalog

import (
	"strings"

	"github.com/viant/anteater/internal/facts"
)

// Tuple is one row of a predicate's relation.
type Tuple []facts.Const

func tupleKey(t Tuple) string {
	var b strings.Builder
	for _, c := range t {
		b.WriteByte(byte(c.Kind))
		b.WriteString(c.String())
		b.WriteByte(0)
	}
	return b.String()
}

// table is a predicate's relation, indexed by tuple content for O(1)
// membership/dedup checks (spec.md §4.4: "joins use hash indexes").
type table struct {
	arity int
	all   map[string]Tuple
	delta map[string]Tuple
}

func newTable(arity int) *table {
	return &table{arity: arity, all: map[string]Tuple{}, delta: map[string]Tuple{}}
}

// add inserts t into all if not already present, returning whether it was
// new.
func (t *table) add(tup Tuple) bool {
	k := tupleKey(tup)
	if _, ok := t.all[k]; ok {
		return false
	}
	t.all[k] = tup
	return true
}

func (t *table) has(tup Tuple) bool {
	_, ok := t.all[tupleKey(tup)]
	return ok
}

func (t *table) setDelta(tuples []Tuple) {
	t.delta = make(map[string]Tuple, len(tuples))
	for _, tup := range tuples {
		t.delta[tupleKey(tup)] = tup
	}
}

func (t *table) allTuples() []Tuple {
	out := make([]Tuple, 0, len(t.all))
	for _, tup := range t.all {
		out = append(out, tup)
	}
	return out
}

func (t *table) deltaTuples() []Tuple {
	out := make([]Tuple, 0, len(t.delta))
	for _, tup := range t.delta {
		out = append(out, tup)
	}
	return out
}
