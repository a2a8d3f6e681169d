// Package config loads the YAML-backed configuration record spec.md §6
// describes: metric thresholds, debt costs/multipliers, and rule
// include/exclude overrides.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/viant/anteater/internal/debt"
	"github.com/viant/anteater/internal/rules"
)

// Thresholds is spec.md §6's metric-threshold configuration.
type Thresholds struct {
	CyclomaticComplexity int     `yaml:"cyclomaticComplexity"`
	CognitiveComplexity  int     `yaml:"cognitiveComplexity"`
	MaintainabilityIndex float64 `yaml:"maintainabilityIndex"`
	LinesOfCode          int     `yaml:"linesOfCode"`
	Parameters           int     `yaml:"parameters"`
}

// DefaultThresholds matches spec.md §6's illustrative defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CyclomaticComplexity: 20,
		CognitiveComplexity:  15,
		MaintainabilityIndex: 50,
		LinesOfCode:          100,
		Parameters:           4,
	}
}

// DebtCosts is spec.md §6's debt-cost configuration (hours per type).
type DebtCosts struct {
	TODO       float64 `yaml:"todo"`
	FIXME      float64 `yaml:"fixme"`
	HACK       float64 `yaml:"hack"`
	AsDynamic  float64 `yaml:"asDynamic"`
	Deprecated float64 `yaml:"deprecated"`
	Ignore     float64 `yaml:"ignore"`
	EmptyCatch float64 `yaml:"emptyCatch"`
	GodClass   float64 `yaml:"godClass"`
}

// ToDebtCosts adapts the YAML record into internal/debt.Costs.
func (d DebtCosts) ToDebtCosts() debt.Costs {
	return debt.Costs{
		TODO: d.TODO, FIXME: d.FIXME, HACK: d.HACK, AsDynamic: d.AsDynamic,
		Deprecated: d.Deprecated, Ignore: d.Ignore, EmptyCatch: d.EmptyCatch,
		GodClass: d.GodClass,
	}
}

// SeverityMultipliers is spec.md §6's severity-multiplier configuration.
type SeverityMultipliers struct {
	Critical float64 `yaml:"critical"`
	High     float64 `yaml:"high"`
	Medium   float64 `yaml:"medium"`
	Low      float64 `yaml:"low"`
}

func (m SeverityMultipliers) ToMultipliers() debt.Multipliers {
	return debt.Multipliers{Critical: m.Critical, High: m.High, Medium: m.Medium, Low: m.Low}
}

// DebtConfig is spec.md §6's debt section: costs, multipliers, an overall
// cost threshold, and the unit they're expressed in.
type DebtConfig struct {
	Costs       DebtCosts           `yaml:"costs"`
	Multipliers SeverityMultipliers `yaml:"multipliers"`
	Threshold   float64             `yaml:"threshold"`
	Unit        string              `yaml:"unit"`
}

func DefaultDebtConfig() DebtConfig {
	costs := debt.DefaultCosts()
	mult := debt.DefaultMultipliers()
	return DebtConfig{
		Costs: DebtCosts{
			TODO: costs.TODO, FIXME: costs.FIXME, HACK: costs.HACK,
			AsDynamic: costs.AsDynamic, Deprecated: costs.Deprecated,
			Ignore: costs.Ignore, EmptyCatch: costs.EmptyCatch, GodClass: costs.GodClass,
		},
		Multipliers: SeverityMultipliers{
			Critical: mult.Critical, High: mult.High, Medium: mult.Medium, Low: mult.Low,
		},
		Threshold: 40,
		Unit:      "hours",
	}
}

// RuleOverride is one entry of spec.md §6's "per-rule severity overrides".
type RuleOverride struct {
	ID       string `yaml:"id"`
	Severity string `yaml:"severity"`
}

// RuleConfig is spec.md §6's rules section: include/exclude sets plus
// per-rule severity overrides. ExcludeFiles holds spec.md §4.8's
// "exclusion patterns (glob) filter files before dispatch" — shell-glob
// path patterns, distinct from Exclude's rule-ID set.
type RuleConfig struct {
	Include      []string       `yaml:"include"`
	Exclude      []string       `yaml:"exclude"`
	ExcludeFiles []string       `yaml:"excludeFiles"`
	Overrides    []RuleOverride `yaml:"overrides"`
}

// Config is the full record spec.md §6 describes, decoded from YAML the
// way the teacher's own tests decode fixtures (gopkg.in/yaml.v3).
type Config struct {
	Thresholds Thresholds `yaml:"thresholds"`
	Debt       DebtConfig `yaml:"debt"`
	Rules      RuleConfig `yaml:"rules"`
}

// Default mirrors the teacher's inspector/info.DefaultConfig() idiom: a
// fully populated, sane baseline a caller can selectively override.
func Default() *Config {
	return &Config{
		Thresholds: DefaultThresholds(),
		Debt:       DefaultDebtConfig(),
	}
}

// Load decodes a Config from YAML bytes, starting from Default() so an
// incomplete document still yields sane values for whatever it omits.
func Load(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// severityByName maps a YAML override's severity string onto
// internal/rules.Severity, defaulting to Warning for an unrecognized name.
func severityByName(name string) rules.Severity {
	switch name {
	case "error":
		return rules.Error
	case "info":
		return rules.Info
	case "hint":
		return rules.Hint
	default:
		return rules.Warning
	}
}

// SeverityOverrides flattens the configured rule overrides into a lookup
// by rule ID, for a runner to apply at registration time.
func (c *Config) SeverityOverrides() map[string]rules.Severity {
	out := make(map[string]rules.Severity, len(c.Rules.Overrides))
	for _, o := range c.Rules.Overrides {
		out[o.ID] = severityByName(o.Severity)
	}
	return out
}
