package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/anteater/internal/ast"
	"github.com/viant/anteater/internal/ast/treesitter"
	"github.com/viant/anteater/internal/cfg"
	"github.com/viant/anteater/internal/datalog"
	"github.com/viant/anteater/internal/facts"
	"github.com/viant/anteater/internal/ssa"
)

var datalogCmd = &cobra.Command{
	Use:   "datalog",
	Short: "Inspect the Datalog facts and derived tuples for one function",
}

var queryCmd = &cobra.Command{
	Use:   "query <predicate> <file> <function>",
	Short: "Build one function's facts, run the built-in rule set, and print every tuple a predicate holds",
	Long: `query rebuilds the CFG/SSA/fact pipeline for a single named function —
bypassing a full project scan — since the per-function Datalog engine a
"scan" run builds is scoped to that function and discarded once its
verdicts are recorded (see DESIGN.md). This gives ad-hoc Datalog
inspection without paying for or retaining per-function engines across
an entire project.`,
	Args: cobra.ExactArgs(3),
	RunE: runQuery,
}

func init() {
	datalogCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	predicate, path, function := args[0], args[1], args[2]

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tree, err := parseFile(ctx, path)
	if err != nil {
		return withExitCode(err, exitInternalError)
	}

	fn := findFunction(tree.Root(), function)
	if fn == nil {
		return withExitCode(fmt.Errorf("datalog query: function %q not found in %s", function, path), exitConfigError)
	}

	g, err := cfg.Build(fn)
	if err != nil {
		return withExitCode(fmt.Errorf("datalog query: cfg build: %w", err), exitInternalError)
	}
	form, err := ssa.Build(g)
	if err != nil {
		return withExitCode(fmt.Errorf("datalog query: ssa build: %w", err), exitInternalError)
	}

	engine := datalog.NewEngine()
	for _, rule := range datalog.BuiltinRules() {
		if err := engine.AddRule(rule); err != nil {
			return withExitCode(fmt.Errorf("datalog query: rule rejected: %w", err), exitInternalError)
		}
	}
	if err := engine.AddFacts(facts.Extract(form)); err != nil {
		return withExitCode(fmt.Errorf("datalog query: facts rejected: %w", err), exitInternalError)
	}
	if err := engine.Run(); err != nil {
		return withExitCode(fmt.Errorf("datalog query: evaluation failed: %w", err), exitInternalError)
	}

	tuples := engine.Query(predicate)
	out := cmd.OutOrStdout()
	if len(tuples) == 0 {
		fmt.Fprintf(out, "%s holds no tuples for %s:%s\n", predicate, path, function)
		return nil
	}
	for _, tup := range tuples {
		args := make([]string, len(tup))
		for i, c := range tup {
			args[i] = c.String()
		}
		fmt.Fprintf(out, "%s(%s)\n", predicate, strings.Join(args, ", "))
	}
	return nil
}

func parseFile(ctx context.Context, path string) (ast.Tree, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	lang := ""
	switch filepath.Ext(path) {
	case ".go":
		lang = treesitter.Go
	case ".java":
		lang = treesitter.Java
	default:
		return nil, fmt.Errorf("unsupported file extension for %s", path)
	}
	return treesitter.Parse(ctx, path, lang, src)
}

// findFunction locates the first function/method declaration named name,
// the same Children()-first, body-fallback traversal internal/run and
// internal/aggregator use to find function-shaped nodes.
func findFunction(n ast.Node, name string) ast.Node {
	if n == nil {
		return nil
	}
	if n.Kind() == "function_declaration" || n.Kind() == "method_declaration" {
		if nameNode := n.FieldChild("name"); nameNode != nil && nameNode.Lexeme() == name {
			return n
		}
	}
	if kids := n.Children(); len(kids) > 0 {
		for _, c := range kids {
			if found := findFunction(c, name); found != nil {
				return found
			}
		}
		return nil
	}
	return findFunction(n.FieldChild("body"), name)
}
