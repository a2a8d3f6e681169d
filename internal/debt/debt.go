// Package debt implements the debt detector and cost calculator of
// spec.md §4.9: lexical comment markers and AST-level patterns each
// produce a DebtItem, costed by type and severity.
package debt

import "github.com/viant/anteater/internal/ast"

// Type is spec.md §3's DebtType domain.
type Type int

const (
	TODO Type = iota
	FIXME
	HACK
	XXX
	AsDynamic
	Deprecated
	IgnorePragma
	EmptyCatch
	GodClass
)

func (t Type) String() string {
	switch t {
	case TODO:
		return "todo"
	case FIXME:
		return "fixme"
	case HACK:
		return "hack"
	case XXX:
		return "xxx"
	case AsDynamic:
		return "asDynamic"
	case Deprecated:
		return "deprecated"
	case IgnorePragma:
		return "ignore"
	case EmptyCatch:
		return "emptyCatch"
	case GodClass:
		return "godClass"
	default:
		return "unknown"
	}
}

// Severity is spec.md §3's DebtSeverity domain.
type Severity int

const (
	Low Severity = iota
	Medium
	High
	Critical
)

func (s Severity) String() string {
	switch s {
	case Critical:
		return "critical"
	case High:
		return "high"
	case Medium:
		return "medium"
	default:
		return "low"
	}
}

// defaultSeverity is the severity a detector assigns a match absent a
// per-rule override (spec.md §4.9: "a default DebtSeverity").
var defaultSeverity = map[Type]Severity{
	TODO:         Low,
	FIXME:        Medium,
	HACK:         Medium,
	XXX:          Medium,
	AsDynamic:    High,
	Deprecated:   Low,
	IgnorePragma: Medium,
	EmptyCatch:   High,
	GodClass:     Critical,
}

// Item is spec.md §3's DebtItem record.
type Item struct {
	Type        Type
	Severity    Severity
	File        string
	Range       ast.Range
	Description string
}
