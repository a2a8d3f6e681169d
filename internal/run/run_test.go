package run_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/anteater/internal/ast"
	"github.com/viant/anteater/internal/ast/asttest"
	"github.com/viant/anteater/internal/config"
	"github.com/viant/anteater/internal/run"
)

// function(x) { if (x) { y = 1; } ; return y; }
func sampleFunction(name string) *asttest.N {
	assign := asttest.Node("assignment_statement").
		WithField("left", asttest.Leaf("identifier", "y")).
		WithField("right", asttest.Leaf("integer_literal", "1"))
	ifStmt := asttest.Node("if_statement").
		WithField("condition", asttest.Leaf("identifier", "x")).
		WithField("consequence", asttest.Node("block", assign))
	ret := asttest.Node("return_statement", asttest.Leaf("identifier", "y"))
	fn := asttest.Node("function_declaration").
		WithField("name", asttest.Leaf("identifier", name)).
		WithField("parameters", asttest.Node("parameter_list"))
	fn.WithField("body", asttest.Node("block", ifStmt, ret))
	return fn
}

func newTestTree(path string, fns ...*asttest.N) ast.Tree {
	root := asttest.Node("source_file", fns...)
	return &asttest.Tree{RootNode: root, Path_: path}
}

func TestScan_AnalyzesDiscoveredFileThroughPipeline(t *testing.T) {
	tree := newTestTree("widget.go", sampleFunction("DoThing"))

	r := run.New(config.Default())
	r.AnalyzeFile(context.Background(), tree)
	result := r.Snapshot("run-1", "/repo")

	assert := assert.New(t)
	assert.Len(result.Report.Files, 1)
	assert.Equal("widget.go", result.Report.Files[0].Path)
	assert.Len(result.Report.Files[0].Functions, 1)
	assert.Empty(result.Skipped)
}

func TestAnalyzeFile_SkipsUnparseableFunctionWithoutAbortingRun(t *testing.T) {
	broken := asttest.Node("function_declaration").
		WithField("name", asttest.Leaf("identifier", "Broken"))
	broken.WithField("body", asttest.Node("block", asttest.Node("break_statement")))
	tree := newTestTree("broken.go", broken)

	r := run.New(config.Default())
	require.NotPanics(t, func() { r.AnalyzeFile(context.Background(), tree) })

	result := r.Snapshot("run-2", "/repo")
	assert.Len(t, result.Skipped, 1)
	assert.Equal(t, "Broken", result.Skipped[0].Function)
}

func TestSnapshot_EmptyBeforeAnyAnalysis(t *testing.T) {
	r := run.New(config.Default())
	result := r.Snapshot("run-3", "/repo")
	assert.Empty(t, result.Report.Files)
	assert.False(t, result.Aborted)
	assert.False(t, result.DebtThresholdHit)
}
