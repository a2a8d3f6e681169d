package run

import "github.com/viant/anteater/internal/ast"

// collectFunctions finds every function-shaped node in tree, the same
// "function_declaration"/"method_declaration" kinds internal/aggregator and
// cmd/anteater's findFunction dispatch on. If a node exposes children, they're trusted
// completely (a real front end's Children() already folds in field
// children); otherwise its structure lives only in named fields.
func collectFunctions(n ast.Node, out *[]ast.Node) {
	if n == nil {
		return
	}
	if n.Kind() == "function_declaration" || n.Kind() == "method_declaration" {
		*out = append(*out, n)
	}
	if kids := n.Children(); len(kids) > 0 {
		for _, c := range kids {
			collectFunctions(c, out)
		}
		return
	}
	collectFunctions(n.FieldChild("body"), out)
}
