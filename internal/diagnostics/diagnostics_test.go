package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/anteater/internal/ast"
	"github.com/viant/anteater/internal/diagnostics"
	"github.com/viant/anteater/internal/rules"
)

func TestFromViolation_ConvertsRangeAndSeverity(t *testing.T) {
	v := rules.Violation{
		RuleID:     "no-equal-then-else",
		Message:    "simplify",
		Suggestion: "return the condition directly",
		Severity:   rules.Hint,
		Range:      ast.Range{StartLine: 3, StartCol: 5, EndLine: 3, EndCol: 20},
	}

	d := diagnostics.FromViolation(v)
	assert := assert.New(t)
	assert.Equal(diagnostics.SeverityHint, d.Severity)
	assert.Equal(2, d.Range.Start.Line, "1-based line 3 -> 0-based 2")
	assert.Equal(4, d.Range.Start.Character)
	assert.Equal("anteater", d.Source)
	assert.Equal("no-equal-then-else", d.Code)
	assert.Equal("simplify\nreturn the condition directly", d.Message)
}

func TestFromViolation_NoSuggestionOmitsNewline(t *testing.T) {
	v := rules.Violation{Message: "bad", Severity: rules.Error}
	d := diagnostics.FromViolation(v)
	assert.Equal(t, "bad", d.Message)
	assert.Equal(t, diagnostics.SeverityError, d.Severity)
}

func TestFromViolations_PreservesOrder(t *testing.T) {
	vs := []rules.Violation{
		{RuleID: "a", Severity: rules.Info},
		{RuleID: "b", Severity: rules.Warning},
	}
	ds := diagnostics.FromViolations(vs)
	assert.Equal(t, "a", ds[0].Code)
	assert.Equal(t, "b", ds[1].Code)
	assert.Equal(t, diagnostics.SeverityInformation, ds[0].Severity)
}
