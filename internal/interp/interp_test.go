package interp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/anteater/internal/ast/asttest"
	"github.com/viant/anteater/internal/cfg"
	"github.com/viant/anteater/internal/interp"
)

func paramFn(paramType string) *asttest.N {
	fn := asttest.Node("function_declaration").
		WithField("name", asttest.Leaf("identifier", "f")).
		WithField("parameters", asttest.Node("parameter_list",
			asttest.Node("parameter").
				WithField("name", asttest.Leaf("identifier", "x")).
				WithField("type", asttest.Leaf("type_identifier", paramType))))
	return fn
}

func findVerdict(t *testing.T, vs []interp.Verdict, kind interp.VerdictKind) interp.Verdict {
	t.Helper()
	for _, v := range vs {
		if v.Kind == kind {
			return v
		}
	}
	t.Fatalf("no %s verdict found among %d verdicts", kind, len(vs))
	return interp.Verdict{}
}

// function(x: Foo?) { return x.name; } -- nullable receiver field access.
func TestRun_NullVerifier_PotentialOnNullableParam(t *testing.T) {
	fn := paramFn("Foo?")
	access := asttest.Node("member_expression").
		WithField("object", asttest.Leaf("identifier", "x")).
		WithField("property", asttest.Leaf("identifier", "name"))
	fn.WithField("body", asttest.Node("block", asttest.Node("return_statement", access)))

	g, err := cfg.Build(fn)
	require.NoError(t, err)

	vs := interp.Run(g)
	v := findVerdict(t, vs, interp.NullVerifier)
	assert.False(t, v.IsSafe)
	assert.False(t, v.IsDefinite)
}

// function(x: Foo) { return x.name; } -- non-null receiver, safe.
func TestRun_NullVerifier_SafeOnNonNullParam(t *testing.T) {
	fn := paramFn("Foo")
	access := asttest.Node("member_expression").
		WithField("object", asttest.Leaf("identifier", "x")).
		WithField("property", asttest.Leaf("identifier", "name"))
	fn.WithField("body", asttest.Node("block", asttest.Node("return_statement", access)))

	g, err := cfg.Build(fn)
	require.NoError(t, err)

	vs := interp.Run(g)
	v := findVerdict(t, vs, interp.NullVerifier)
	assert.True(t, v.IsSafe)
}

// function() { y = null; return y.name; } -- definitely-null receiver.
func TestRun_NullVerifier_DefiniteOnNullAssign(t *testing.T) {
	fn := asttest.Node("function_declaration").WithField("name", asttest.Leaf("identifier", "f"))
	assign := asttest.Node("assignment_statement").
		WithField("left", asttest.Leaf("identifier", "y")).
		WithField("right", asttest.Leaf("null", "null"))
	access := asttest.Node("member_expression").
		WithField("object", asttest.Leaf("identifier", "y")).
		WithField("property", asttest.Leaf("identifier", "name"))
	fn.WithField("body", asttest.Node("block", assign, asttest.Node("return_statement", access)))

	g, err := cfg.Build(fn)
	require.NoError(t, err)

	vs := interp.Run(g)
	v := findVerdict(t, vs, interp.NullVerifier)
	assert.False(t, v.IsSafe)
	assert.True(t, v.IsDefinite)
}

// function(x: Foo) { return x[0]; } -- length never tracked, so the
// checker can only report "potential", never a false "safe".
func TestRun_BoundsChecker_PotentialWhenLengthUnknown(t *testing.T) {
	fn := paramFn("Foo")
	idx := asttest.Node("index_expression").
		WithField("object", asttest.Leaf("identifier", "x")).
		WithField("index", asttest.Leaf("integer_literal", "0"))
	fn.WithField("body", asttest.Node("block", asttest.Node("return_statement", idx)))

	g, err := cfg.Build(fn)
	require.NoError(t, err)

	vs := interp.Run(g)
	v := findVerdict(t, vs, interp.BoundsChecker)
	assert.False(t, v.IsSafe)
	assert.False(t, v.IsDefinite)
}

// function() { x = new Array(3); return x[1]; } -- a literal allocation
// size makes len(x) tracked, so an in-bounds index is reported safe.
func TestRun_BoundsChecker_SafeWithKnownAllocationLength(t *testing.T) {
	fn := asttest.Node("function_declaration").WithField("name", asttest.Leaf("identifier", "f"))
	alloc := asttest.Node("instance_creation_expression").
		WithField("type", asttest.Leaf("type_identifier", "Array")).
		WithField("size", asttest.Leaf("integer_literal", "3"))
	assign := asttest.Node("assignment_statement").
		WithField("left", asttest.Leaf("identifier", "x")).
		WithField("right", alloc)
	idx := asttest.Node("index_expression").
		WithField("object", asttest.Leaf("identifier", "x")).
		WithField("index", asttest.Leaf("integer_literal", "1"))
	fn.WithField("body", asttest.Node("block", assign, asttest.Node("return_statement", idx)))

	g, err := cfg.Build(fn)
	require.NoError(t, err)

	vs := interp.Run(g)
	v := findVerdict(t, vs, interp.BoundsChecker)
	assert.True(t, v.IsSafe)
	assert.False(t, v.IsDefinite)
}

// function() { x = new Array(3); return x[5]; } -- an index disjoint from
// the known [0, len-1] range is reported as a definite violation.
func TestRun_BoundsChecker_DefiniteWithKnownAllocationLength(t *testing.T) {
	fn := asttest.Node("function_declaration").WithField("name", asttest.Leaf("identifier", "f"))
	alloc := asttest.Node("instance_creation_expression").
		WithField("type", asttest.Leaf("type_identifier", "Array")).
		WithField("size", asttest.Leaf("integer_literal", "3"))
	assign := asttest.Node("assignment_statement").
		WithField("left", asttest.Leaf("identifier", "x")).
		WithField("right", alloc)
	idx := asttest.Node("index_expression").
		WithField("object", asttest.Leaf("identifier", "x")).
		WithField("index", asttest.Leaf("integer_literal", "5"))
	fn.WithField("body", asttest.Node("block", assign, asttest.Node("return_statement", idx)))

	g, err := cfg.Build(fn)
	require.NoError(t, err)

	vs := interp.Run(g)
	v := findVerdict(t, vs, interp.BoundsChecker)
	assert.False(t, v.IsSafe)
	assert.True(t, v.IsDefinite)
}
