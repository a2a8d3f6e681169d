// Package aggregator implements spec.md §4.10: it accepts (filePath, AST)
// entries, runs metrics and violation extraction on each, and rolls the
// results up into per-file and project-level summaries.
package aggregator

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/viant/anteater/internal/ast"
	"github.com/viant/anteater/internal/debt"
	"github.com/viant/anteater/internal/metrics"
	"github.com/viant/anteater/internal/rules"
)

// FileReport is the per-file roll-up spec.md §4.10 describes.
type FileReport struct {
	Path       string
	Functions  []metrics.FunctionMetrics
	Violations []rules.Violation
	DebtItems  []debt.Item
	DebtCost   float64
}

// Aggregator is the single shared sink of spec.md §5: "the aggregator is
// the only shared sink; its addFile operation must be serialized".
type Aggregator struct {
	runner   *rules.Runner
	detector *debt.Detector
	costs    debt.Costs
	mult     debt.Multipliers

	mu    sync.Mutex
	files []FileReport
}

// New builds an Aggregator over a shared, immutable rule runner and debt
// detector (spec.md §5: "rule registries ... are immutable after
// construction and may be freely shared").
func New(runner *rules.Runner, detector *debt.Detector, costs debt.Costs, mult debt.Multipliers) *Aggregator {
	return &Aggregator{runner: runner, detector: detector, costs: costs, mult: mult}
}

// collectFunctions finds every function-shaped node in tree, the same
// "function_declaration"/"method_declaration" kinds analyzer/node.go's
// walk dispatches on.
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
	for _, field := range []string{"body"} {
		collectFunctions(n.FieldChild(field), out)
	}
}

// AddFile runs per-function metrics, the style-rule pass, and the debt
// scan over tree, appends the resulting FileReport to the aggregator
// under its lock, and returns it. Per-file analyses share no mutable
// state with each other (spec.md §5), so AddFile itself is the only
// critical section.
func (a *Aggregator) AddFile(tree ast.Tree) FileReport {
	var fnNodes []ast.Node
	collectFunctions(tree.Root(), &fnNodes)

	fns := make([]metrics.FunctionMetrics, 0, len(fnNodes))
	for _, fn := range fnNodes {
		fns = append(fns, metrics.Compute(fn))
	}

	violations := a.runner.Run(tree)
	items := a.detector.Detect(tree)

	report := FileReport{
		Path:       tree.Path(),
		Functions:  fns,
		Violations: violations,
		DebtItems:  items,
		DebtCost:   debt.TotalCost(items, a.costs, a.mult),
	}

	a.mu.Lock()
	a.files = append(a.files, report)
	a.mu.Unlock()
	return report
}

// AddFiles is the optional bounded worker pool of spec.md §5: per-file
// analyses run concurrently (each owns its own AST, metrics, and facts),
// while AddFile serializes the merge into the shared file list. limit <= 0
// means unbounded (errgroup.Group's zero value): every tree gets its own
// goroutine at once.
func (a *Aggregator) AddFiles(ctx context.Context, trees []ast.Tree, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, tree := range trees {
		tree := tree
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			a.AddFile(tree)
			return nil
		})
	}
	return g.Wait()
}

// Files returns every report added so far, sorted by path (spec.md §5:
// "across files, report ordering is sorted by path").
func (a *Aggregator) Files() []FileReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := append([]FileReport(nil), a.files...)
	sortFilesByPath(out)
	return out
}
