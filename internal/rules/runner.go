package rules

import (
	"path/filepath"
	"sort"

	"github.com/viant/anteater/internal/ast"
)

// Registry holds an immutable set of rules, indexed by the node kinds they
// declare interest in, so Runner.Run can dispatch to interested rules
// without scanning the whole set at every node (spec.md §4.8: "walks the
// AST once, dispatching per node kind").
type Registry struct {
	byKind map[string][]Rule
	all    []Rule
}

// NewRegistry builds a dispatch index over rs. Registries are built once
// and shared read-only across runs (spec.md §5: "rule registries ... are
// immutable after construction and may be freely shared").
func NewRegistry(rs ...Rule) *Registry {
	reg := &Registry{byKind: map[string][]Rule{}}
	for _, r := range rs {
		reg.all = append(reg.all, r)
		for _, k := range r.NodeKinds() {
			reg.byKind[k] = append(reg.byKind[k], r)
		}
	}
	return reg
}

// Rules returns every registered rule, sorted by ID (spec.md §5's "rule-id
// lexical order" ordering guarantee).
func (reg *Registry) Rules() []Rule {
	out := append([]Rule(nil), reg.all...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Runner walks a tree once per file, filtering files by glob exclusion
// patterns first, then dispatching each visited node to the rules
// registered for its kind.
type Runner struct {
	registry *Registry
	excludes []string
}

// NewRunner builds a Runner over reg, skipping any file path matching one
// of excludes (shell-glob patterns, matched with path/filepath.Match the
// same way the teacher's own GolangFiles/JavaFiles predicates filter by
// extension and directory name).
func NewRunner(reg *Registry, excludes ...string) *Runner {
	return &Runner{registry: reg, excludes: excludes}
}

// Excluded reports whether path matches one of the runner's exclusion
// globs.
func (r *Runner) Excluded(path string) bool {
	for _, pattern := range r.excludes {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}

// Run walks tree once, dispatching each node to the rules registered for
// its kind, and returns every violation found in the file's stable order
// (line then column, spec.md §5).
func (r *Runner) Run(tree ast.Tree) []Violation {
	if tree == nil || r.Excluded(tree.Path()) {
		return nil
	}
	var out []Violation
	ctx := &Context{Tree: tree}
	r.dispatch(tree.Root(), ctx, &out)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Range, out[j].Range
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.StartCol < b.StartCol
	})
	return out
}

// structuralFields lists the statement/expression fields internal/cfg.Builder
// and internal/metrics recurse through; fields such as object, property,
// field and index, which the Builder also reads, are not among them.
// dispatch recurses explicitly through
// these instead of a blind Children() walk: github.com/smacker/go-tree-sitter
// nodes already enumerate field children inside Children(), but
// internal/ast/asttest's hand-built fixtures (by design — see its package
// doc) attach structure only via WithField, never Kids, for these kinds.
// Explicit field recursion is the one traversal shape correct against both.
var structuralFields = []string{
	"condition", "consequence", "alternative", "body", "initializer",
	"update", "left", "right", "value", "type", "operand", "function",
	"arguments", "name", "parameters", "receiver", "key", "expression",
}

// dispatch visits n against the registry, then recurses into its
// descendants. A front end whose Children() already enumerates field
// children (github.com/smacker/go-tree-sitter's binding does) is trusted
// as-is; a front end that leaves structure reachable only via FieldChild
// (internal/ast/asttest's hand-built fixtures, by design) is walked
// through structuralFields instead — Children() being empty is exactly
// the signal that a node's structure lives in its fields, since no real
// tree-sitter interior node has zero children.
func (r *Runner) dispatch(n ast.Node, ctx *Context, out *[]Violation) {
	if n == nil {
		return
	}
	for _, rule := range r.registry.byKind[n.Kind()] {
		*out = append(*out, rule.Check(n, ctx)...)
	}

	if kids := n.Children(); len(kids) > 0 {
		for _, c := range kids {
			r.dispatch(c, ctx, out)
		}
		return
	}
	for _, field := range structuralFields {
		r.dispatch(n.FieldChild(field), ctx, out)
	}
}
