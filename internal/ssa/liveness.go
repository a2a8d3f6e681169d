package ssa

import "github.com/viant/anteater/internal/cfg"

// liveness holds, per reachable block, the set of symbols live on entry.
// It is computed over the CFG's original (pre-renaming) instructions and
// used only to prune phi placement to symbols actually live at a join
// (spec.md §4.2: "provided s is live-in there").
type liveness struct {
	liveIn map[cfg.BlockID]map[cfg.SymbolID]bool
}

func computeLiveness(g *cfg.CFG) *liveness {
	reach := g.Reachable()
	use := map[cfg.BlockID]map[cfg.SymbolID]bool{}
	def := map[cfg.BlockID]map[cfg.SymbolID]bool{}
	for id, ok := range reach {
		if !ok {
			continue
		}
		blk := g.Block(id)
		u := map[cfg.SymbolID]bool{}
		d := map[cfg.SymbolID]bool{}
		for _, iid := range blk.Instructions {
			instr := g.Instruction(iid)
			for _, op := range instr.Operands {
				if op == cfg.NoSymbol || d[op] {
					continue
				}
				u[op] = true
			}
			if instr.Result != cfg.NoSymbol {
				d[instr.Result] = true
			}
		}
		use[id] = u
		def[id] = d
	}

	liveIn := map[cfg.BlockID]map[cfg.SymbolID]bool{}
	liveOut := map[cfg.BlockID]map[cfg.SymbolID]bool{}
	for id := range reach {
		liveIn[id] = map[cfg.SymbolID]bool{}
		liveOut[id] = map[cfg.SymbolID]bool{}
	}

	order := g.Postorder() // process successors before predecessors converges faster
	changed := true
	for changed {
		changed = false
		for _, id := range order {
			blk := g.Block(id)
			out := map[cfg.SymbolID]bool{}
			for _, s := range blk.Succs {
				for sym := range liveIn[s] {
					out[sym] = true
				}
			}
			in := map[cfg.SymbolID]bool{}
			for sym := range use[id] {
				in[sym] = true
			}
			for sym := range out {
				if !def[id][sym] {
					in[sym] = true
				}
			}
			if !setEqual(in, liveIn[id]) {
				liveIn[id] = in
				changed = true
			}
			liveOut[id] = out
		}
	}
	return &liveness{liveIn: liveIn}
}

func (l *liveness) isLiveIn(b cfg.BlockID, s cfg.SymbolID) bool {
	set, ok := l.liveIn[b]
	return ok && set[s]
}

func setEqual(a, b map[cfg.SymbolID]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
