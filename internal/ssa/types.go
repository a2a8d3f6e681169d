package ssa

import (
	"strconv"

	"github.com/viant/anteater/internal/cfg"
)

// VersionInfo records which base symbol and which sequential index a
// renamed (versioned) symbol corresponds to, so callers can render it as
// "name#k" (spec.md §3).
type VersionInfo struct {
	Base  cfg.SymbolID
	Index int
}

// Form is the SSA overlay on top of a CFG: a dominator tree plus, after
// renaming, versioned operands/results in g's own instructions and
// populated Block.Phis/Instruction.Phis.
type Form struct {
	CFG      *cfg.CFG
	Dom      *DomTree
	Versions map[cfg.SymbolID]VersionInfo
}

// VersionName renders a versioned symbol as "name#k", falling back to the
// bare symbol name if it was never renamed (e.g. an instruction operand
// that had no reaching definition — used-before-def in the source).
func (f *Form) VersionName(sym cfg.SymbolID) string {
	base := sym
	idx := 0
	if v, ok := f.Versions[sym]; ok {
		base = v.Base
		idx = v.Index
	}
	name := ""
	if s := f.CFG.Symbol(base); s != nil {
		name = s.Name
	}
	if _, versioned := f.Versions[sym]; !versioned {
		return name
	}
	return name + "#" + strconv.Itoa(idx)
}
