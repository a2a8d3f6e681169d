package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/anteater/internal/ast/asttest"
	"github.com/viant/anteater/internal/rules"
)

func runOn(root *asttest.N) []rules.Violation {
	tree := &asttest.Tree{RootNode: root, Path_: "sample.go"}
	runner := rules.NewRunner(rules.NewRegistry(rules.Default()...))
	return runner.Run(tree)
}

// var a = 1 as int; — spec.md §8 scenario 2.
func TestAvoidUnnecessaryCast_LiteralOwnType(t *testing.T) {
	cast := asttest.Node("cast_expression").
		WithField("value", asttest.Leaf("integer_literal", "1")).
		WithField("type", asttest.Leaf("type_identifier", "int"))
	cast.At(1, 9, 1, 18)
	root := asttest.Node("block", asttest.Node("variable_declaration").
		WithField("left", asttest.Leaf("identifier", "a")).
		WithField("right", cast))

	violations := runOn(root)
	assert := assert.New(t)
	assert.Len(violations, 1)
	assert.Equal("avoid-unnecessary-cast", violations[0].RuleID)
	assert.Equal(rules.Warning, violations[0].Severity)
}

func TestAvoidUnnecessaryCast_NestedSameType(t *testing.T) {
	inner := asttest.Node("cast_expression").
		WithField("value", asttest.Leaf("identifier", "x")).
		WithField("type", asttest.Leaf("type_identifier", "int"))
	outer := asttest.Node("cast_expression").
		WithField("value", inner).
		WithField("type", asttest.Leaf("type_identifier", "int"))
	root := asttest.Node("block", outer)

	violations := runOn(root)
	// one for the outer redundant-nested-cast, the inner cast itself is
	// over a non-literal identifier so it reports no finding on its own.
	assert.Len(t, violations, 1)
}

func TestAvoidUnnecessaryCast_NoFindingOnDifferentType(t *testing.T) {
	cast := asttest.Node("cast_expression").
		WithField("value", asttest.Leaf("integer_literal", "1")).
		WithField("type", asttest.Leaf("type_identifier", "float"))
	root := asttest.Node("block", cast)

	assert.Empty(t, runOn(root))
}

func TestBinaryExpressionOrder_FlagsYodaCondition(t *testing.T) {
	cmp := asttest.Node("binary_expression").
		WithField("operator", asttest.Leaf("==", "==")).
		WithField("left", asttest.Leaf("integer_literal", "5")).
		WithField("right", asttest.Leaf("identifier", "x"))
	root := asttest.Node("block", cmp)

	violations := runOn(root)
	assert.Len(t, violations, 1)
	assert.Equal(t, "binary-expression-order", violations[0].RuleID)
	assert.Equal(t, rules.Hint, violations[0].Severity)
}

func TestBinaryExpressionOrder_NoFindingWhenVariableFirst(t *testing.T) {
	cmp := asttest.Node("binary_expression").
		WithField("operator", asttest.Leaf("==", "==")).
		WithField("left", asttest.Leaf("identifier", "x")).
		WithField("right", asttest.Leaf("integer_literal", "5"))
	root := asttest.Node("block", cmp)

	assert.Empty(t, runOn(root))
}

func TestNoEqualThenElse_FlagsSimplifiableBoolReturn(t *testing.T) {
	ifStmt := asttest.Node("if_statement").
		WithField("condition", asttest.Leaf("identifier", "ok")).
		WithField("consequence", asttest.Node("block", asttest.Node("return_statement", asttest.Leaf("true", "true")))).
		WithField("alternative", asttest.Node("block", asttest.Node("return_statement", asttest.Leaf("false", "false"))))
	root := asttest.Node("block", ifStmt)

	violations := runOn(root)
	assert.Len(t, violations, 1)
	assert.Equal(t, "no-equal-then-else", violations[0].RuleID)
}

func TestNoEqualThenElse_NoFindingWhenBranchesMatch(t *testing.T) {
	ifStmt := asttest.Node("if_statement").
		WithField("condition", asttest.Leaf("identifier", "ok")).
		WithField("consequence", asttest.Node("block", asttest.Node("return_statement", asttest.Leaf("true", "true")))).
		WithField("alternative", asttest.Node("block", asttest.Node("return_statement", asttest.Leaf("true", "true"))))
	root := asttest.Node("block", ifStmt)

	assert.Empty(t, runOn(root))
}

func TestRunner_RespectsExclusionGlob(t *testing.T) {
	cmp := asttest.Node("binary_expression").
		WithField("operator", asttest.Leaf("==", "==")).
		WithField("left", asttest.Leaf("integer_literal", "5")).
		WithField("right", asttest.Leaf("identifier", "x"))
	tree := &asttest.Tree{RootNode: asttest.Node("block", cmp), Path_: "vendor/pkg.go"}
	runner := rules.NewRunner(rules.NewRegistry(rules.Default()...), "vendor/*")

	assert.Empty(t, runner.Run(tree))
}

func TestRegistry_RulesSortedByID(t *testing.T) {
	reg := rules.NewRegistry(rules.Default()...)
	ids := make([]string, 0)
	for _, r := range reg.Rules() {
		ids = append(ids, r.ID())
	}
	assert.True(t, sortedAsc(ids))
}

func sortedAsc(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}
