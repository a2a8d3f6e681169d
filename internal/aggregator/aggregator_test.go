package aggregator_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/anteater/internal/aggregator"
	"github.com/viant/anteater/internal/ast"
	"github.com/viant/anteater/internal/ast/asttest"
	"github.com/viant/anteater/internal/debt"
	"github.com/viant/anteater/internal/rules"
)

func goodFunction(name string) *asttest.N {
	fn := asttest.Node("function_declaration").
		WithField("name", asttest.Leaf("identifier", name)).
		WithField("parameters", asttest.Node("parameter_list")).
		WithField("body", asttest.Node("block"))
	fn.At(1, 1, 2, 1)
	return fn
}

// badFunction builds a deeply nested, low-maintainability function: a
// cyclomatic-heavy nested if/&&-chain spanning many lines.
func badFunction(name string) *asttest.N {
	cond := asttest.Node("binary_expression").
		WithField("operator", asttest.Leaf("&&", "&&")).
		WithField("left", asttest.Leaf("identifier", "a")).
		WithField("right", asttest.Leaf("identifier", "b"))
	nested := asttest.Node("if_statement").
		WithField("condition", cond).
		WithField("consequence", asttest.Node("block"))
	outer := asttest.Node("if_statement").
		WithField("condition", asttest.Leaf("identifier", "x")).
		WithField("consequence", asttest.Node("block", nested))
	fn := asttest.Node("function_declaration").
		WithField("name", asttest.Leaf("identifier", name)).
		WithField("parameters", asttest.Node("parameter_list")).
		WithField("body", asttest.Node("block", outer))
	fn.At(1, 1, 200, 1)
	return fn
}

func newAggregator() *aggregator.Aggregator {
	runner := rules.NewRunner(rules.NewRegistry(rules.Default()...))
	return aggregator.New(runner, debt.NewDetector(), debt.DefaultCosts(), debt.DefaultMultipliers())
}

func TestAggregator_AddFile_CollectsFunctionMetrics(t *testing.T) {
	agg := newAggregator()
	tree := &asttest.Tree{RootNode: asttest.Node("source_file", goodFunction("f")), Path_: "a.go"}

	report := agg.AddFile(tree)
	assert.Len(t, report.Functions, 1)
	assert.Equal(t, "f", report.Functions[0].Name)
}

func TestAggregator_Report_AveragesAndDistribution(t *testing.T) {
	agg := newAggregator()
	agg.AddFile(&asttest.Tree{RootNode: asttest.Node("source_file", goodFunction("f")), Path_: "a.go"})
	agg.AddFile(&asttest.Tree{RootNode: asttest.Node("source_file", badFunction("g")), Path_: "b.go"})

	report := agg.Report(5)
	assert.Len(t, report.Files, 2)
	assert.Equal(t, "a.go", report.Files[0].Path, "files sorted by path")
	assert.Greater(t, report.AvgMI, 0.0)
	assert.LessOrEqual(t, report.HealthScore, 100.0)
	assert.GreaterOrEqual(t, report.HealthScore, 0.0)
	total := 0
	for _, c := range report.RatingDistribution {
		total += c
	}
	assert.Equal(t, 2, total)
}

func TestAggregator_Report_WorstFunctionsWorstFirst(t *testing.T) {
	agg := newAggregator()
	agg.AddFile(&asttest.Tree{RootNode: asttest.Node("source_file", goodFunction("good")), Path_: "a.go"})
	agg.AddFile(&asttest.Tree{RootNode: asttest.Node("source_file", badFunction("bad")), Path_: "b.go"})

	report := agg.Report(1)
	assert.Len(t, report.WorstFunctions, 1)
	assert.Equal(t, "bad", report.WorstFunctions[0].Name)
}

func TestAggregator_AddFiles_ParallelMergesAllFiles(t *testing.T) {
	agg := newAggregator()
	trees := make([]ast.Tree, 0, 5)
	for i := 0; i < 5; i++ {
		trees = append(trees, &asttest.Tree{
			RootNode: asttest.Node("source_file"),
			Path_:    fmt.Sprintf("file_%d.go", i),
		})
	}

	err := agg.AddFiles(context.Background(), trees, 2)
	assert.NoError(t, err)
	assert.Len(t, agg.Files(), 5)
}
