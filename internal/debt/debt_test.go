package debt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/anteater/internal/ast/asttest"
	"github.com/viant/anteater/internal/debt"
)

func TestDetector_ScansCommentMarkers(t *testing.T) {
	todo := asttest.Leaf("comment", "// TODO: handle retry")
	fixme := asttest.Leaf("line_comment", "// FIXME broken on windows")
	root := asttest.Node("block", todo, fixme)
	tree := &asttest.Tree{RootNode: root, Path_: "f.go"}

	items := debt.NewDetector().Detect(tree)
	assert := assert.New(t)
	assert.Len(items, 2)
	assert.Equal(debt.TODO, items[0].Type)
	assert.Equal(debt.FIXME, items[1].Type)
}

func TestDetector_DeprecatedAnnotationComment(t *testing.T) {
	c := asttest.Leaf("comment", "// @deprecated use NewThing instead")
	root := asttest.Node("block", c)
	tree := &asttest.Tree{RootNode: root, Path_: "f.go"}

	items := debt.NewDetector().Detect(tree)
	assert.Len(t, items, 1)
	assert.Equal(t, debt.Deprecated, items[0].Type)
}

func TestDetector_AsDynamicCast(t *testing.T) {
	cast := asttest.Node("cast_expression").
		WithField("value", asttest.Leaf("identifier", "x")).
		WithField("type", asttest.Leaf("type_identifier", "dynamic"))
	root := asttest.Node("block", cast)
	tree := &asttest.Tree{RootNode: root, Path_: "f.go"}

	items := debt.NewDetector().Detect(tree)
	assert.Len(t, items, 1)
	assert.Equal(t, debt.AsDynamic, items[0].Type)
}

func TestDetector_EmptyCatch(t *testing.T) {
	catch := asttest.Node("catch_clause").WithField("body", asttest.Node("block"))
	root := asttest.Node("block", catch)
	tree := &asttest.Tree{RootNode: root, Path_: "f.go"}

	items := debt.NewDetector().Detect(tree)
	assert.Len(t, items, 1)
	assert.Equal(t, debt.EmptyCatch, items[0].Type)
}

func TestDetector_NonEmptyCatchIsNotFlagged(t *testing.T) {
	catch := asttest.Node("catch_clause").
		WithField("body", asttest.Node("block", asttest.Node("expression_statement")))
	root := asttest.Node("block", catch)
	tree := &asttest.Tree{RootNode: root, Path_: "f.go"}

	assert.Empty(t, debt.NewDetector().Detect(tree))
}

func TestDetector_GodClass(t *testing.T) {
	fields := make([]*asttest.N, 0, 25)
	for i := 0; i < 25; i++ {
		fields = append(fields, asttest.Node("field_declaration"))
	}
	body := asttest.Node("field_declaration_list", fields...)
	typeSpec := asttest.Node("type_spec").
		WithField("name", asttest.Leaf("identifier", "Big")).
		WithField("body", body)
	root := asttest.Node("block", typeSpec)
	tree := &asttest.Tree{RootNode: root, Path_: "f.go"}

	d := debt.NewDetector()
	d.GodClassThreshold = 20
	items := d.Detect(tree)
	assert.Len(t, items, 1)
	assert.Equal(t, debt.GodClass, items[0].Type)
}

func TestCost_Composition(t *testing.T) {
	costs := debt.DefaultCosts()
	mult := debt.DefaultMultipliers()
	items := []debt.Item{
		{Type: debt.TODO, Severity: debt.Low, File: "a.go"},
		{Type: debt.HACK, Severity: debt.Medium, File: "a.go"},
		{Type: debt.GodClass, Severity: debt.Critical, File: "b.go"},
	}

	var want float64
	for _, it := range items {
		want += debt.Cost(it, costs, mult)
	}
	assert.Equal(t, want, debt.TotalCost(items, costs, mult))
}

func TestSummarize_ExceedsThreshold(t *testing.T) {
	costs := debt.DefaultCosts()
	mult := debt.DefaultMultipliers()
	items := []debt.Item{
		{Type: debt.GodClass, Severity: debt.Critical, File: "a.go"},
	}
	s := debt.Summarize(items, costs, mult, 10)
	assert.True(t, s.ExceedsThresh)
	assert.InDelta(t, costs.GodClass*mult.Critical, s.TotalCost, 0.0001)
}

func TestHotspots_SortedByCostThenCountThenName(t *testing.T) {
	costs := debt.DefaultCosts()
	mult := debt.DefaultMultipliers()
	items := []debt.Item{
		{Type: debt.TODO, Severity: debt.Low, File: "z.go"},
		{Type: debt.GodClass, Severity: debt.Critical, File: "a.go"},
		{Type: debt.TODO, Severity: debt.Low, File: "a.go"},
	}
	hotspots := debt.Hotspots(items, costs, mult)
	assert.Equal(t, "a.go", hotspots[0].File, "highest combined cost wins")
	assert.Equal(t, "z.go", hotspots[1].File)
}

func TestTypesByCost_Ranked(t *testing.T) {
	costs := debt.DefaultCosts()
	mult := debt.DefaultMultipliers()
	items := []debt.Item{
		{Type: debt.TODO, Severity: debt.Low, File: "a.go"},
		{Type: debt.GodClass, Severity: debt.Critical, File: "a.go"},
	}
	ranked := debt.TypesByCost(debt.Summarize(items, costs, mult, 0))
	assert.Equal(t, debt.GodClass, ranked[0].Type)
}
