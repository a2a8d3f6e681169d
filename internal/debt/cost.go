package debt

// Costs is spec.md §6's debt-cost configuration, hours per DebtType.
type Costs struct {
	TODO       float64
	FIXME      float64
	HACK       float64
	AsDynamic  float64
	Deprecated float64
	Ignore     float64
	EmptyCatch float64
	GodClass   float64
}

// DefaultCosts matches the teacher-idiom DefaultConfig() pattern
// (inspector/info/config.go) of shipping sane baseline values.
func DefaultCosts() Costs {
	return Costs{
		TODO: 0.25, FIXME: 0.5, HACK: 1, AsDynamic: 0.5,
		Deprecated: 0.25, Ignore: 0.5, EmptyCatch: 1, GodClass: 4,
	}
}

func (c Costs) baseCost(t Type) float64 {
	switch t {
	case TODO:
		return c.TODO
	case FIXME:
		return c.FIXME
	case HACK:
		return c.HACK
	case XXX:
		return c.HACK
	case AsDynamic:
		return c.AsDynamic
	case Deprecated:
		return c.Deprecated
	case IgnorePragma:
		return c.Ignore
	case EmptyCatch:
		return c.EmptyCatch
	case GodClass:
		return c.GodClass
	default:
		return 0
	}
}

// Multipliers is spec.md §6's severity-multiplier configuration.
type Multipliers struct {
	Critical float64
	High     float64
	Medium   float64
	Low      float64
}

// DefaultMultipliers is a conservative escalation curve: each severity
// step doubles the base cost.
func DefaultMultipliers() Multipliers {
	return Multipliers{Critical: 8, High: 4, Medium: 2, Low: 1}
}

func (m Multipliers) multiplier(s Severity) float64 {
	switch s {
	case Critical:
		return m.Critical
	case High:
		return m.High
	case Medium:
		return m.Medium
	default:
		return m.Low
	}
}

// Cost implements spec.md §4.9's `cost = baseCost(type) × multiplier(severity)`.
func Cost(item Item, costs Costs, mult Multipliers) float64 {
	return costs.baseCost(item.Type) * mult.multiplier(item.Severity)
}

// TotalCost implements spec.md §8's debt cost composition invariant:
// `totalCost == Σ baseCost(type)·multiplier(severity)` across items.
func TotalCost(items []Item, costs Costs, mult Multipliers) float64 {
	var total float64
	for _, it := range items {
		total += Cost(it, costs, mult)
	}
	return total
}
