// Package rules implements the style rule runner of spec.md §4.8: a
// registry of pure AST-pattern rules, each declaring the node kinds it
// cares about, dispatched in a single pass over the tree.
package rules

import "github.com/viant/anteater/internal/ast"

// Severity mirrors spec.md §3's Violation.severity domain.
type Severity int

const (
	Info Severity = iota
	Hint
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Hint:
		return "hint"
	default:
		return "info"
	}
}

// Violation is spec.md §3's Violation record.
type Violation struct {
	RuleID     string
	Message    string
	Suggestion string
	Severity   Severity
	Range      ast.Range
}

// Context carries the read-only, per-file state a rule's check may
// consult. Rules are pure: they read Tree/Source and return violations,
// nothing else.
type Context struct {
	Tree ast.Tree
}

// SourceText returns the full source text of the file under check. Rules
// generally prefer n.Lexeme()/n.Children() over re-slicing this text
// themselves, since range-to-offset mapping is front-end specific.
func (c *Context) SourceText() string {
	if c.Tree == nil {
		return ""
	}
	return c.Tree.SourceText()
}

// Rule is a single style check: spec.md §4.8's `{id, severity, nodeKinds}`
// plus its `check(node, ctx) → Violations` predicate.
type Rule interface {
	ID() string
	Severity() Severity
	NodeKinds() []string
	Check(n ast.Node, ctx *Context) []Violation
}

// overriddenRule wraps a Rule to apply spec.md §6's "per-rule severity
// overrides" without the rule itself needing to know its severity can be
// reconfigured.
type overriddenRule struct {
	Rule
	severity Severity
}

func (o overriddenRule) Severity() Severity { return o.severity }

func (o overriddenRule) Check(n ast.Node, ctx *Context) []Violation {
	vs := o.Rule.Check(n, ctx)
	out := make([]Violation, len(vs))
	for i, v := range vs {
		v.Severity = o.severity
		out[i] = v
	}
	return out
}

// WithSeverity returns r with its reported severity overridden to s,
// leaving its ID, node kinds, and detection predicate unchanged.
func WithSeverity(r Rule, s Severity) Rule {
	return overriddenRule{Rule: r, severity: s}
}
