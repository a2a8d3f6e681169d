package rules

import "github.com/viant/anteater/internal/ast"

// literalTypeNames maps a literal node kind to the type names a cast onto
// that kind would be redundant for (spec.md §8 scenario 2: `1 as int`).
var literalTypeNames = map[string][]string{
	"integer_literal": {"int", "int32", "int64", "num", "number"},
	"float_literal":   {"float", "double", "float64", "num", "number"},
	"string_literal":  {"string", "str"},
	"true":            {"bool", "boolean"},
	"false":           {"bool", "boolean"},
}

func isCastKind(kind string) bool {
	return kind == "cast_expression" || kind == "type_cast_expression" || kind == "as_expression"
}

func castOperand(n ast.Node) ast.Node {
	if v := n.FieldChild("value"); v != nil {
		return v
	}
	if v := n.FieldChild("operand"); v != nil {
		return v
	}
	return n.FieldChild("expression")
}

func castTypeName(n ast.Node) string {
	if t := n.FieldChild("type"); t != nil {
		return t.Lexeme()
	}
	return ""
}

// AvoidUnnecessaryCast flags a cast whose operand is already a literal of
// the target type, or a cast nested directly inside another cast to the
// same type (spec.md §4.8, §8 scenario 2).
type AvoidUnnecessaryCast struct{}

func (AvoidUnnecessaryCast) ID() string         { return "avoid-unnecessary-cast" }
func (AvoidUnnecessaryCast) Severity() Severity { return Warning }
func (AvoidUnnecessaryCast) NodeKinds() []string {
	return []string{"cast_expression", "type_cast_expression", "as_expression"}
}

func (AvoidUnnecessaryCast) Check(n ast.Node, _ *Context) []Violation {
	operand := castOperand(n)
	if operand == nil {
		return nil
	}
	targetType := castTypeName(n)

	if names, ok := literalTypeNames[operand.Kind()]; ok && targetType != "" {
		for _, want := range names {
			if want == targetType {
				return []Violation{{
					RuleID:     "avoid-unnecessary-cast",
					Message:    "cast of a " + operand.Kind() + " to its own type is unnecessary",
					Suggestion: "remove the cast",
					Severity:   Warning,
					Range:      n.Range(),
				}}
			}
		}
	}

	if isCastKind(operand.Kind()) && targetType != "" && castTypeName(operand) == targetType {
		return []Violation{{
			RuleID:     "avoid-unnecessary-cast",
			Message:    "redundant nested cast to the same type",
			Suggestion: "remove the inner cast",
			Severity:   Warning,
			Range:      n.Range(),
		}}
	}
	return nil
}

// literalOperandKinds are node kinds treated as constant operands for
// BinaryExpressionOrder's Yoda-condition check.
var literalOperandKinds = map[string]bool{
	"integer_literal": true, "float_literal": true, "string_literal": true,
	"true": true, "false": true, "null": true, "nil": true,
}

// BinaryExpressionOrder flags `==`/`!=` comparisons with a literal on the
// left and a non-literal on the right ("Yoda conditions"), recommending
// the variable-first ordering the rest of the rule set assumes.
type BinaryExpressionOrder struct{}

func (BinaryExpressionOrder) ID() string          { return "binary-expression-order" }
func (BinaryExpressionOrder) Severity() Severity  { return Hint }
func (BinaryExpressionOrder) NodeKinds() []string { return []string{"binary_expression"} }

func (BinaryExpressionOrder) Check(n ast.Node, _ *Context) []Violation {
	op := n.FieldChild("operator")
	if op == nil || (op.Lexeme() != "==" && op.Lexeme() != "!=") {
		return nil
	}
	left, right := n.FieldChild("left"), n.FieldChild("right")
	if left == nil || right == nil {
		return nil
	}
	if literalOperandKinds[left.Kind()] && !literalOperandKinds[right.Kind()] {
		return []Violation{{
			RuleID:     "binary-expression-order",
			Message:    "comparison has the constant on the left",
			Suggestion: "swap operands so the variable comes first",
			Severity:   Hint,
			Range:      n.Range(),
		}}
	}
	return nil
}

// boolReturnLiteral reports the boolean literal a single-statement block
// returns, or "" if blk isn't exactly one `return <bool literal>;`.
func boolReturnLiteral(blk ast.Node) string {
	if blk == nil {
		return ""
	}
	ret := blk
	if blk.Kind() != "return_statement" {
		kids := blk.Children()
		if len(kids) != 1 {
			return ""
		}
		ret = kids[0]
	}
	if ret.Kind() != "return_statement" {
		return ""
	}
	for _, c := range ret.Children() {
		if c.Kind() == "true" || c.Kind() == "false" {
			return c.Kind()
		}
	}
	return ""
}

// NoEqualThenElse flags `if (cond) return true; else return false;` (and
// its negated form), which simplify to `return cond;`.
type NoEqualThenElse struct{}

func (NoEqualThenElse) ID() string          { return "no-equal-then-else" }
func (NoEqualThenElse) Severity() Severity  { return Hint }
func (NoEqualThenElse) NodeKinds() []string { return []string{"if_statement"} }

func (NoEqualThenElse) Check(n ast.Node, _ *Context) []Violation {
	then := boolReturnLiteral(n.FieldChild("consequence"))
	els := boolReturnLiteral(n.FieldChild("alternative"))
	if then == "" || els == "" || then == els {
		return nil
	}
	return []Violation{{
		RuleID:     "no-equal-then-else",
		Message:    "if/else returning true/false can be simplified",
		Suggestion: "return the condition directly",
		Severity:   Hint,
		Range:      n.Range(),
	}}
}

// Default returns the built-in style rules, spec.md §4.8's representative
// set, registered in ID order.
func Default() []Rule {
	return []Rule{
		AvoidUnnecessaryCast{},
		BinaryExpressionOrder{},
		NoEqualThenElse{},
	}
}
