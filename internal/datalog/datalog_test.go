package datalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/anteater/internal/datalog"
	"github.com/viant/anteater/internal/facts"
)

func mustAddFacts(t *testing.T, e *datalog.Engine, fs ...facts.Fact) {
	t.Helper()
	require.NoError(t, e.AddFacts(fs))
}

// Alloc(1,"T"). Store(1,"f",2). PointsTo(x,1). -> Mutable(1).
// Reproduces spec.md §4.4's own illustrative example almost verbatim.
func TestEngine_MutableFromSpecExample(t *testing.T) {
	e := datalog.NewEngine()
	mustAddFacts(t, e,
		facts.Fact{Pred: facts.PredAlloc, Args: []facts.Const{facts.Int(1), facts.Str("T")}},
		facts.Fact{Pred: facts.PredStore, Args: []facts.Const{facts.Int(1), facts.Str("f"), facts.Int(2)}},
		facts.Fact{Pred: facts.PredAssign, Args: []facts.Const{facts.Int(99), facts.Int(1)}}, // x -> site 1
	)
	for _, r := range datalog.BuiltinRules() {
		require.NoError(t, e.AddRule(r))
	}
	require.NoError(t, e.Run())

	pts := e.Query(datalog.PredPointsTo)
	assert.Contains(t, pts, datalog.Tuple{facts.Int(99), facts.Int(1)})

	mutable := e.Query(datalog.PredMutable)
	assert.Contains(t, mutable, datalog.Tuple{facts.Int(1)})
}

func TestEngine_ReachesTransitive(t *testing.T) {
	e := datalog.NewEngine()
	mustAddFacts(t, e,
		facts.Fact{Pred: facts.PredEdgeCF, Args: []facts.Const{facts.Int(0), facts.Int(1)}},
		facts.Fact{Pred: facts.PredEdgeCF, Args: []facts.Const{facts.Int(1), facts.Int(2)}},
		facts.Fact{Pred: facts.PredEdgeCF, Args: []facts.Const{facts.Int(2), facts.Int(3)}},
	)
	for _, r := range datalog.BuiltinRules() {
		require.NoError(t, e.AddRule(r))
	}
	require.NoError(t, e.Run())

	reaches := e.Query(datalog.PredReaches)
	assert.Contains(t, reaches, datalog.Tuple{facts.Int(0), facts.Int(3)})
	assert.Contains(t, reaches, datalog.Tuple{facts.Int(1), facts.Int(3)})
	assert.Len(t, reaches, 6) // 0->1,0->2,0->3,1->2,1->3,2->3
}

func TestEngine_MayAliasExcludesSelf(t *testing.T) {
	e := datalog.NewEngine()
	mustAddFacts(t, e,
		facts.Fact{Pred: facts.PredAlloc, Args: []facts.Const{facts.Int(1), facts.Str("T")}},
		facts.Fact{Pred: facts.PredAssign, Args: []facts.Const{facts.Int(10), facts.Int(1)}},
		facts.Fact{Pred: facts.PredAssign, Args: []facts.Const{facts.Int(20), facts.Int(1)}},
	)
	for _, r := range datalog.BuiltinRules() {
		require.NoError(t, e.AddRule(r))
	}
	require.NoError(t, e.Run())

	aliases := e.Query(datalog.PredMayAlias)
	assert.Contains(t, aliases, datalog.Tuple{facts.Int(10), facts.Int(20)})
	assert.Contains(t, aliases, datalog.Tuple{facts.Int(20), facts.Int(10)})
	for _, tup := range aliases {
		assert.NotEqual(t, tup[0], tup[1])
	}
}

func TestEngine_StratifiedNegation(t *testing.T) {
	// Reachable(x) :- Start(x).
	// Reachable(y) :- Reachable(x), Edge(x,y).
	// Unreached(x) :- Node(x), not Reachable(x).
	e := datalog.NewEngine()
	x, y := datalog.Var("x"), datalog.Var("y")
	require.NoError(t, e.AddRule(datalog.Rule{Head: datalog.Lit("Reachable", x), Body: []datalog.Literal{datalog.Lit("Start", x)}}))
	require.NoError(t, e.AddRule(datalog.Rule{Head: datalog.Lit("Reachable", y), Body: []datalog.Literal{
		datalog.Lit("Reachable", x), datalog.Lit("Edge", x, y),
	}}))
	require.NoError(t, e.AddRule(datalog.Rule{Head: datalog.Lit("Unreached", x), Body: []datalog.Literal{
		datalog.Lit("Node", x), datalog.NotLit("Reachable", x),
	}}))

	mustAddFacts(t, e,
		facts.Fact{Pred: "Start", Args: []facts.Const{facts.Int(1)}},
		facts.Fact{Pred: "Edge", Args: []facts.Const{facts.Int(1), facts.Int(2)}},
		facts.Fact{Pred: "Node", Args: []facts.Const{facts.Int(1)}},
		facts.Fact{Pred: "Node", Args: []facts.Const{facts.Int(2)}},
		facts.Fact{Pred: "Node", Args: []facts.Const{facts.Int(3)}},
	)

	require.NoError(t, e.Run())

	unreached := e.Query("Unreached")
	assert.Contains(t, unreached, datalog.Tuple{facts.Int(3)})
	assert.NotContains(t, unreached, datalog.Tuple{facts.Int(1)})
	assert.NotContains(t, unreached, datalog.Tuple{facts.Int(2)})
}

func TestEngine_AddRule_UnsafeNegation(t *testing.T) {
	e := datalog.NewEngine()
	x, y := datalog.Var("x"), datalog.Var("y")
	err := e.AddRule(datalog.Rule{Head: datalog.Lit("Head", x), Body: []datalog.Literal{
		datalog.NotLit("Foo", y), // y never bound by a positive literal
	}})
	require.Error(t, err)
	var ee *datalog.EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, datalog.UnsafeRule, ee.Kind)
}

func TestEngine_AddRule_UnsafeHeadVariable(t *testing.T) {
	e := datalog.NewEngine()
	x, y := datalog.Var("x"), datalog.Var("y")
	err := e.AddRule(datalog.Rule{Head: datalog.Lit("Head", x, y), Body: []datalog.Literal{
		datalog.Lit("Foo", x),
	}})
	require.Error(t, err)
	var ee *datalog.EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, datalog.UnsafeRule, ee.Kind)
}

func TestEngine_CyclicNegation(t *testing.T) {
	e := datalog.NewEngine()
	x := datalog.Var("x")
	require.NoError(t, e.AddRule(datalog.Rule{Head: datalog.Lit("A", x), Body: []datalog.Literal{
		datalog.NotLit("B", x),
	}}))
	require.NoError(t, e.AddRule(datalog.Rule{Head: datalog.Lit("B", x), Body: []datalog.Literal{
		datalog.NotLit("A", x),
	}}))
	mustAddFacts(t, e, facts.Fact{Pred: "A", Args: []facts.Const{facts.Int(1)}})

	err := e.Run()
	require.Error(t, err)
	var ee *datalog.EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, datalog.CyclicNegation, ee.Kind)
}

func TestEngine_ArityMismatch(t *testing.T) {
	e := datalog.NewEngine()
	mustAddFacts(t, e, facts.Fact{Pred: "Foo", Args: []facts.Const{facts.Int(1)}})
	err := e.AddFacts([]facts.Fact{{Pred: "Foo", Args: []facts.Const{facts.Int(1), facts.Int(2)}}})
	require.Error(t, err)
	var ee *datalog.EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, datalog.ArityMismatch, ee.Kind)
}
