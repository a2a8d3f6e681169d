package metrics

import (
	"strings"

	"github.com/viant/anteater/internal/ast"
)

// accumulator collects every per-function tally in a single field-aware
// recursive descent, following the same named-field conventions
// internal/cfg.Builder uses (condition/consequence/alternative for if,
// condition/body(+initializer/update) for loops, value|condition + case
// children for switch) rather than a blind Children()-only walk: a front
// end's Children() may or may not also enumerate named-field nodes, so
// every structured kind below recurses explicitly through its fields and
// returns, instead of falling through to a generic child loop that could
// double-count on front ends where Children() already includes them.
type accumulator struct {
	cyclomatic int
	cognitive  int
	fnName     string
	operators  map[string]int
	operands   map[string]int
}

func newAccumulator(fnName string) *accumulator {
	return &accumulator{fnName: fnName, operators: map[string]int{}, operands: map[string]int{}}
}

func walk(n ast.Node, depth int, acc *accumulator) {
	if n == nil {
		return
	}
	kind := n.Kind()
	switch {
	case kind == "if_statement":
		acc.cyclomatic++
		acc.cognitive += 1 + depth
		walk(n.FieldChild("condition"), depth, acc)
		walk(n.FieldChild("consequence"), depth+1, acc)
		walk(n.FieldChild("alternative"), depth+1, acc)
		return

	case kind == "for_statement", kind == "for_in_statement", kind == "foreach_statement",
		kind == "while_statement", kind == "do_statement":
		acc.cyclomatic++
		acc.cognitive += 1 + depth
		walk(n.FieldChild("initializer"), depth, acc)
		walk(n.FieldChild("condition"), depth, acc)
		walk(n.FieldChild("update"), depth, acc)
		walk(n.FieldChild("body"), depth+1, acc)
		return

	case kind == "switch_statement":
		acc.cognitive += 1 + depth
		subject := n.FieldChild("value")
		if subject == nil {
			subject = n.FieldChild("condition")
		}
		walk(subject, depth, acc)
		for _, c := range n.Children() {
			if subject != nil && c.Kind() == subject.Kind() && c.Range() == subject.Range() {
				continue // already walked as the subject
			}
			if strings.Contains(c.Kind(), "case") {
				acc.cyclomatic++
			}
			walk(c, depth+1, acc)
		}
		return

	case strings.Contains(kind, "catch"):
		acc.cyclomatic++
		acc.cognitive += 1 + depth
		if kids := n.Children(); len(kids) > 0 {
			for _, c := range kids {
				walk(c, depth+1, acc)
			}
		} else {
			walk(n.FieldChild("body"), depth+1, acc)
		}
		return

	case kind == "conditional_expression", kind == "ternary_expression":
		acc.cyclomatic++
		acc.operators[kind]++
		walk(n.FieldChild("condition"), depth, acc)
		walk(n.FieldChild("consequence"), depth, acc)
		walk(n.FieldChild("alternative"), depth, acc)
		return

	case kind == "binary_expression":
		op := operatorLexeme(n)
		if isLogicalOperator(op) {
			acc.cyclomatic++
			acc.cognitive++ // one run of same-operator logical chain counts once
			flattenLogical(n, op, depth, acc)
			return
		}
		acc.operators[op]++
		walk(n.FieldChild("left"), depth, acc)
		walk(n.FieldChild("right"), depth, acc)
		return

	case kind == "unary_expression", kind == "not_expression":
		acc.operators[operatorLexeme(n)]++
		walk(n.FieldChild("operand"), depth, acc)
		return

	case kind == "assignment_statement", strings.Contains(kind, "var_declaration"),
		strings.Contains(kind, "variable_declaration"), strings.Contains(kind, "short_var"):
		acc.operators["="]++
		walk(n.FieldChild("left"), depth, acc)
		walk(n.FieldChild("right"), depth, acc)
		if n.FieldChild("left") == nil && n.FieldChild("right") == nil {
			for _, c := range n.Children() {
				walk(c, depth, acc)
			}
		}
		return

	case kind == "call_expression", kind == "method_invocation":
		acc.operators["call"]++
		fn := n.FieldChild("function")
		if fn != nil && acc.fnName != "" && fn.Lexeme() == acc.fnName {
			acc.cognitive++ // recursion
		}
		walk(fn, depth, acc)
		if args := n.FieldChild("arguments"); args != nil {
			for _, a := range args.Children() {
				walk(a, depth, acc)
			}
		}
		return

	case kind == "identifier":
		acc.operands[n.Lexeme()]++
		return

	case strings.HasSuffix(kind, "_literal"), kind == "true", kind == "false", kind == "null", kind == "nil":
		acc.operands[kind+":"+n.Lexeme()]++
		return
	}

	for _, c := range n.Children() {
		walk(c, depth, acc)
	}
}

// flattenLogical walks a run of binary_expression nodes chained by the same
// logical operator without re-incrementing cyclomatic/cognitive, so
// `a && b && c` contributes once rather than once per operator (spec.md
// §4.7: "sequences of same-logical-operator count once").
func flattenLogical(n ast.Node, op string, depth int, acc *accumulator) {
	if n == nil {
		return
	}
	if n.Kind() == "binary_expression" && operatorLexeme(n) == op {
		acc.operators[op]++
		flattenLogical(n.FieldChild("left"), op, depth, acc)
		flattenLogical(n.FieldChild("right"), op, depth, acc)
		return
	}
	walk(n, depth, acc)
}

func isLogicalOperator(op string) bool {
	return op == "&&" || op == "||"
}

// operatorLexeme reads the operator token the same way
// internal/cfg.operatorText does: a named "operator" field if the front end
// exposes one, otherwise the node's own kind string.
func operatorLexeme(n ast.Node) string {
	if op := n.FieldChild("operator"); op != nil {
		return op.Lexeme()
	}
	return n.Kind()
}
