package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/anteater/internal/config"
	"github.com/viant/anteater/internal/rules"
)

func TestLoad_OverridesDefaultsFromYAML(t *testing.T) {
	doc := []byte(`
thresholds:
  cyclomaticComplexity: 12
debt:
  threshold: 100
  unit: hours
rules:
  exclude: ["binary-expression-order"]
  overrides:
    - id: no-equal-then-else
      severity: error
`)
	cfg, err := config.Load(doc)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(12, cfg.Thresholds.CyclomaticComplexity)
	// an omitted threshold keeps Default()'s value.
	assert.Equal(15, cfg.Thresholds.CognitiveComplexity)
	assert.Equal(100.0, cfg.Debt.Threshold)
	assert.Equal([]string{"binary-expression-order"}, cfg.Rules.Exclude)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	_, err := config.Load([]byte("thresholds: [this is not a map"))
	assert.Error(t, err)
}

func TestActiveRules_ExcludeAndOverrideSeverity(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Exclude = []string{"binary-expression-order"}
	cfg.Rules.Overrides = []config.RuleOverride{{ID: "no-equal-then-else", Severity: "error"}}

	active := cfg.ActiveRules(rules.Default())
	ids := map[string]rules.Rule{}
	for _, r := range active {
		ids[r.ID()] = r
	}

	assert := assert.New(t)
	assert.NotContains(ids, "binary-expression-order")
	assert.Contains(ids, "avoid-unnecessary-cast")
	assert.Equal(rules.Error, ids["no-equal-then-else"].Severity())
}

func TestActiveRules_IncludeIsAllowList(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Include = []string{"avoid-unnecessary-cast"}

	active := cfg.ActiveRules(rules.Default())
	assert.Len(t, active, 1)
	assert.Equal(t, "avoid-unnecessary-cast", active[0].ID())
}

func TestDefault_DebtCostsRoundTripToDebtPackage(t *testing.T) {
	cfg := config.Default()
	costs := cfg.Debt.Costs.ToDebtCosts()
	assert.Equal(t, cfg.Debt.Costs.TODO, costs.TODO)
	assert.Equal(t, cfg.Debt.Costs.GodClass, costs.GodClass)
}
