package aggregator

import (
	"math"
	"sort"
)

func sortFilesByPath(files []FileReport) {
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
}

// Rating is spec.md §4.10's A-F maintainability bucket.
type Rating string

const (
	RatingA Rating = "A"
	RatingB Rating = "B"
	RatingC Rating = "C"
	RatingD Rating = "D"
	RatingF Rating = "F"
)

// ratingFor buckets a function's MI per spec.md §4.10: A [80-100],
// B [60-80), C [40-60), D [20-40), F [0-20).
func ratingFor(mi float64) Rating {
	switch {
	case mi >= 80:
		return RatingA
	case mi >= 60:
		return RatingB
	case mi >= 40:
		return RatingC
	case mi >= 20:
		return RatingD
	default:
		return RatingF
	}
}

// WorstFunction names one of the project's lowest-maintainability
// functions, spec.md §4.10's "worstFunctions (top-k by severity)" — here
// severity is read off each function's own rating bucket, worst first.
type WorstFunction struct {
	File   string
	Name   string
	Rating Rating
	MI     float64
	CC     int
}

// ProjectReport is spec.md §4.10's project roll-up.
type ProjectReport struct {
	Files              []FileReport
	AvgCC              float64
	AvgMI              float64
	HealthScore        float64
	RatingDistribution map[Rating]int
	WorstFunctions     []WorstFunction
	Violations         int
	TotalDebtCost      float64
}

// Report computes the project roll-up spec.md §4.10 describes, over
// every file added so far.
func (a *Aggregator) Report(worstK int) ProjectReport {
	files := a.Files()

	var (
		sumCC, sumMI float64
		fnCount      int
		violations   int
		debtCost     float64
		allFns       []WorstFunction
		distribution = map[Rating]int{}
	)

	for _, f := range files {
		violations += len(f.Violations)
		debtCost += f.DebtCost
		for _, fn := range f.Functions {
			sumCC += float64(fn.Cyclomatic)
			sumMI += fn.MaintainabilityIndex
			fnCount++
			rating := ratingFor(fn.MaintainabilityIndex)
			distribution[rating]++
			allFns = append(allFns, WorstFunction{
				File: f.Path, Name: fn.Name, Rating: rating,
				MI: fn.MaintainabilityIndex, CC: fn.Cyclomatic,
			})
		}
	}

	report := ProjectReport{
		Files:              files,
		RatingDistribution: distribution,
		Violations:         violations,
		TotalDebtCost:      debtCost,
	}
	if fnCount > 0 {
		report.AvgCC = sumCC / float64(fnCount)
		report.AvgMI = sumMI / float64(fnCount)
	}
	report.HealthScore = healthScore(report.AvgMI, report.AvgCC, violations, len(files))
	report.WorstFunctions = worstFunctions(allFns, worstK)
	return report
}

// healthScore implements spec.md §4.10's weighted composite:
// `0.4·MI/100 + 0.3·(1 − min(CC, 40)/40) + 0.3·(1 − violations/files normalized)`.
func healthScore(avgMI, avgCC float64, violations, files int) float64 {
	if files == 0 {
		return 100
	}
	ccTerm := 1 - math.Min(avgCC, 40)/40
	perFileViolations := float64(violations) / float64(files)
	violationTerm := 1 - math.Min(perFileViolations, 1)
	score := 0.4*(avgMI/100) + 0.3*ccTerm + 0.3*violationTerm
	return math.Max(0, math.Min(100, score*100))
}

// worstFunctions sorts every function by rating severity (F worst, A
// best), ties by MI ascending then CC descending, and returns the
// bottom k (k<=0 returns everything).
func worstFunctions(fns []WorstFunction, k int) []WorstFunction {
	out := append([]WorstFunction(nil), fns...)
	sort.Slice(out, func(i, j int) bool {
		si, sj := ratingSeverity(out[i].Rating), ratingSeverity(out[j].Rating)
		if si != sj {
			return si > sj
		}
		if out[i].MI != out[j].MI {
			return out[i].MI < out[j].MI
		}
		return out[i].CC > out[j].CC
	})
	if k > 0 && k < len(out) {
		out = out[:k]
	}
	return out
}

func ratingSeverity(r Rating) int {
	switch r {
	case RatingF:
		return 4
	case RatingD:
		return 3
	case RatingC:
		return 2
	case RatingB:
		return 1
	default:
		return 0
	}
}
