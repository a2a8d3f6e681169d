// Package metrics computes per-function complexity and maintainability
// scores directly from the AST (spec.md §4.7): Cyclomatic, Cognitive, and
// Halstead complexity, and the composite Maintainability Index.
package metrics

import "github.com/viant/anteater/internal/ast"

// FunctionMetrics is the per-function record of spec.md §3.
type FunctionMetrics struct {
	Name                 string
	Cyclomatic           int
	Cognitive            int
	HalsteadVocab        int
	HalsteadLength       int
	HalsteadVolume       float64
	LinesOfCode          int
	Parameters           int
	MaintainabilityIndex float64
}

// Compute derives every metric of spec.md §4.7 for fn, a function AST node
// with "name"/"parameters"/"body" fields (the same convention
// internal/cfg.Build consumes).
func Compute(fn ast.Node) FunctionMetrics {
	name := "<anonymous>"
	if n := fn.FieldChild("name"); n != nil {
		name = n.Lexeme()
	}

	body := fn.FieldChild("body")
	loc := linesOfCode(fn)

	acc := newAccumulator(name)
	walk(body, 0, acc)
	vocab, length, volume := halsteadFrom(acc)

	m := FunctionMetrics{
		Name:           name,
		Cyclomatic:     1 + acc.cyclomatic,
		Cognitive:      acc.cognitive,
		HalsteadVocab:  vocab,
		HalsteadLength: length,
		HalsteadVolume: volume,
		LinesOfCode:    loc,
		Parameters:     parameterCount(fn),
	}
	m.MaintainabilityIndex = maintainabilityIndex(volume, m.Cyclomatic, loc)
	return m
}

func parameterCount(fn ast.Node) int {
	params := fn.FieldChild("parameters")
	if params == nil {
		return 0
	}
	n := 0
	for _, p := range params.Children() {
		if p.FieldChild("name") != nil {
			n++
		}
	}
	return n
}

// linesOfCode is the inclusive span of fn's source range, spec.md §4.7's
// LOC input to the Maintainability Index.
func linesOfCode(fn ast.Node) int {
	r := fn.Range()
	if r.EndLine < r.StartLine {
		return 0
	}
	return r.EndLine - r.StartLine + 1
}
