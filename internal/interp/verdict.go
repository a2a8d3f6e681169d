package interp

import "github.com/viant/anteater/internal/cfg"

// VerdictKind names the two checkers spec.md §4.6 runs.
type VerdictKind string

const (
	NullVerifier   VerdictKind = "NullVerifier"
	BoundsChecker  VerdictKind = "BoundsChecker"
)

// Verdict is one safety finding: `{isSafe, isDefinite*, reason, site}`
// (spec.md §4.6). IsDefinite is only meaningful when IsSafe is false — it
// distinguishes "definite" (certain fault) from "potential" (ambiguous).
type Verdict struct {
	Kind       VerdictKind
	Site       cfg.InstrID
	IsSafe     bool
	IsDefinite bool
	Reason     string
}

func safeVerdict(kind VerdictKind, site cfg.InstrID, reason string) Verdict {
	return Verdict{Kind: kind, Site: site, IsSafe: true, Reason: reason}
}

func potentialVerdict(kind VerdictKind, site cfg.InstrID, reason string) Verdict {
	return Verdict{Kind: kind, Site: site, IsSafe: false, IsDefinite: false, Reason: reason}
}

func definiteVerdict(kind VerdictKind, site cfg.InstrID, reason string) Verdict {
	return Verdict{Kind: kind, Site: site, IsSafe: false, IsDefinite: true, Reason: reason}
}
