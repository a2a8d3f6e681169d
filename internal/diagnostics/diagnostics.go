// Package diagnostics implements spec.md §4.11: the adapter that maps
// anteater's internal severities and 1-based ranges onto the LSP
// diagnostic shape.
package diagnostics

import (
	"github.com/viant/anteater/internal/ast"
	"github.com/viant/anteater/internal/rules"
)

// Severity is the LSP severity set spec.md §4.11 names.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Position is a 0-based LSP position.
type Position struct {
	Line      int
	Character int
}

// Range is a 0-based LSP range.
type Range struct {
	Start Position
	End   Position
}

// Diagnostic is spec.md §6's diagnostic record: `{message, severity,
// range, source:"anteater", code}`.
type Diagnostic struct {
	Message  string
	Severity Severity
	Range    Range
	Source   string
	Code     string
}

// toLSPSeverity maps internal/rules.Severity onto the LSP severity set.
func toLSPSeverity(s rules.Severity) Severity {
	switch s {
	case rules.Error:
		return SeverityError
	case rules.Warning:
		return SeverityWarning
	case rules.Hint:
		return SeverityHint
	default:
		return SeverityInformation
	}
}

// toLSPRange converts a's 1-based range into LSP's 0-based one.
func toLSPRange(r ast.Range) Range {
	return Range{
		Start: Position{Line: r.StartLine - 1, Character: r.StartCol - 1},
		End:   Position{Line: r.EndLine - 1, Character: r.EndCol - 1},
	}
}

// FromViolation converts a rule violation into a Diagnostic, concatenating
// its suggestion under a newline when present (spec.md §4.11).
func FromViolation(v rules.Violation) Diagnostic {
	message := v.Message
	if v.Suggestion != "" {
		message += "\n" + v.Suggestion
	}
	return Diagnostic{
		Message:  message,
		Severity: toLSPSeverity(v.Severity),
		Range:    toLSPRange(v.Range),
		Source:   "anteater",
		Code:     v.RuleID,
	}
}

// FromViolations converts every violation, preserving order (spec.md §5's
// line-then-column ordering is internal/rules.Runner's responsibility).
func FromViolations(vs []rules.Violation) []Diagnostic {
	out := make([]Diagnostic, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromViolation(v))
	}
	return out
}
