package config

import "github.com/viant/anteater/internal/rules"

// ActiveRules applies this config's include/exclude sets and per-rule
// severity overrides to candidates, returning the rule set a runner
// should register (spec.md §6: "rules: include/exclude sets; per-rule
// severity overrides").
//
// An empty Include list means "all rules except Exclude"; a non-empty
// Include list is an allow-list.
func (c *Config) ActiveRules(candidates []rules.Rule) []rules.Rule {
	include := toSet(c.Rules.Include)
	exclude := toSet(c.Rules.Exclude)
	overrides := c.SeverityOverrides()

	out := make([]rules.Rule, 0, len(candidates))
	for _, r := range candidates {
		if exclude[r.ID()] {
			continue
		}
		if len(include) > 0 && !include[r.ID()] {
			continue
		}
		if sev, ok := overrides[r.ID()]; ok {
			r = rules.WithSeverity(r, sev)
		}
		out = append(out, r)
	}
	return out
}

func toSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}
