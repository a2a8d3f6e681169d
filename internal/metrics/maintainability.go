package metrics

import "math"

func log2(x float64) float64 { return math.Log2(x) }

// maintainabilityIndex implements spec.md §4.7: `MI = max(0, (171 −
// 5.2·ln(V) − 0.23·CC − 16.2·ln(LOC)) · 100 / 171)`; LOC=0 ⇒ MI = 100;
// V=0 is treated as V=1.
func maintainabilityIndex(volume float64, cyclomatic, loc int) float64 {
	if loc == 0 {
		return 100
	}
	v := volume
	if v == 0 {
		v = 1
	}
	raw := 171 - 5.2*math.Log(v) - 0.23*float64(cyclomatic) - 16.2*math.Log(float64(loc))
	mi := raw * 100 / 171
	if mi < 0 {
		return 0
	}
	return mi
}
