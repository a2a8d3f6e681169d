package debt

import "sort"

// TypeStat is one DebtType's aggregated count and cost.
type TypeStat struct {
	Type  Type
	Count int
	Cost  float64
}

// Hotspot is one file's aggregated debt cost, spec.md §4.9's "hotspots".
type Hotspot struct {
	File  string
	Count int
	Cost  float64
}

// Summary is spec.md §4.9's aggregate-by-type-and-severity record.
type Summary struct {
	ByType        map[Type]*TypeStat
	BySeverity    map[Severity]float64
	TotalCost     float64
	Threshold     float64
	ExceedsThresh bool
}

// Summarize aggregates items by type and severity and evaluates
// `exceedsThreshold iff totalCost > configured threshold` (spec.md §4.9).
func Summarize(items []Item, costs Costs, mult Multipliers, threshold float64) Summary {
	s := Summary{
		ByType:     map[Type]*TypeStat{},
		BySeverity: map[Severity]float64{},
		Threshold:  threshold,
	}
	for _, it := range items {
		cost := Cost(it, costs, mult)
		s.TotalCost += cost
		s.BySeverity[it.Severity] += cost

		stat, ok := s.ByType[it.Type]
		if !ok {
			stat = &TypeStat{Type: it.Type}
			s.ByType[it.Type] = stat
		}
		stat.Count++
		stat.Cost += cost
	}
	s.ExceedsThresh = s.TotalCost > threshold
	return s
}

// byCostThenCountThenName is the tie-break spec.md §4.9 mandates for both
// "hotspots" and "types by highest cost": cost descending, ties by count
// descending, then name ascending.
func byCostThenCountThenName(costI, costJ float64, countI, countJ int, nameI, nameJ string) bool {
	if costI != costJ {
		return costI > costJ
	}
	if countI != countJ {
		return countI > countJ
	}
	return nameI < nameJ
}

// Hotspots ranks files by total debt cost, spec.md §4.9's ordering.
func Hotspots(items []Item, costs Costs, mult Multipliers) []Hotspot {
	byFile := map[string]*Hotspot{}
	for _, it := range items {
		h, ok := byFile[it.File]
		if !ok {
			h = &Hotspot{File: it.File}
			byFile[it.File] = h
		}
		h.Count++
		h.Cost += Cost(it, costs, mult)
	}
	out := make([]Hotspot, 0, len(byFile))
	for _, h := range byFile {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool {
		return byCostThenCountThenName(out[i].Cost, out[j].Cost, out[i].Count, out[j].Count, out[i].File, out[j].File)
	})
	return out
}

// TypesByCost ranks debt types by total cost, spec.md §4.9's ordering.
func TypesByCost(summary Summary) []TypeStat {
	out := make([]TypeStat, 0, len(summary.ByType))
	for _, stat := range summary.ByType {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool {
		return byCostThenCountThenName(out[i].Cost, out[j].Cost, out[i].Count, out[j].Count, out[i].Type.String(), out[j].Type.String())
	})
	return out
}
