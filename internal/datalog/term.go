// Package datalog implements the bottom-up, semi-naive Datalog evaluator of
// spec.md §4.4 over the tuples internal/facts extracts: stratified
// negation, hash-indexed per-predicate tables, and a small built-in
// comparison vocabulary (equality/inequality/arithmetic comparisons on
// integer constants).
package datalog

import "github.com/viant/anteater/internal/facts"

// Term is either a bound variable (joined across literals sharing its
// name) or a ground constant.
type Term struct {
	isVar   bool
	varName string
	value   facts.Const
}

// Var builds a variable term.
func Var(name string) Term { return Term{isVar: true, varName: name} }

// Const builds a ground constant term.
func Const(c facts.Const) Term { return Term{value: c} }

func (t Term) String() string {
	if t.isVar {
		return t.varName
	}
	return t.value.String()
}
