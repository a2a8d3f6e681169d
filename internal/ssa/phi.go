package ssa

import "github.com/viant/anteater/internal/cfg"

// defSites returns, for every symbol with at least one definition, the set
// of reachable blocks that define it (including a synthetic entry
// definition for every parameter — spec.md treats parameters as defined at
// function entry).
func defSites(g *cfg.CFG) map[cfg.SymbolID][]cfg.BlockID {
	reach := g.Reachable()
	sites := map[cfg.SymbolID][]cfg.BlockID{}
	add := func(s cfg.SymbolID, b cfg.BlockID) {
		for _, existing := range sites[s] {
			if existing == b {
				return
			}
		}
		sites[s] = append(sites[s], b)
	}
	for _, sym := range g.Symbols {
		if sym.IsParam {
			add(sym.ID, g.Entry)
		}
	}
	for id, ok := range reach {
		if !ok {
			continue
		}
		for _, iid := range g.Block(id).Instructions {
			instr := g.Instruction(iid)
			if instr.Result != cfg.NoSymbol {
				add(instr.Result, id)
			}
		}
	}
	return sites
}

// placePhis inserts a phi instruction for each (symbol, join-block) pair
// required by the minimal/pruned-SSA rule of spec.md §4.2: for every block
// in the iterated dominance frontier of a symbol's definition set, provided
// the symbol is live-in there. Phi instructions are appended to the
// block's Phis list; operand slots are pre-sized to the block's current
// predecessor count and filled in during renaming.
func placePhis(g *cfg.CFG, dt *DomTree, live *liveness) map[cfg.BlockID]map[cfg.SymbolID]cfg.InstrID {
	placed := map[cfg.BlockID]map[cfg.SymbolID]cfg.InstrID{}
	sites := defSites(g)

	for sym, defs := range sites {
		frontier := dt.IteratedFrontier(defs)
		for _, b := range frontier {
			if !live.isLiveIn(b, sym) {
				continue
			}
			if placed[b] == nil {
				placed[b] = map[cfg.SymbolID]cfg.InstrID{}
			}
			if _, already := placed[b][sym]; already {
				continue
			}
			blk := g.Block(b)
			phi := &cfg.Instruction{
				Op:     cfg.OpPhi,
				Result: sym, // placeholder: renaming replaces this with a fresh version
				Phis:   make([]cfg.PhiOperand, len(blk.Preds)),
			}
			for i, p := range blk.Preds {
				phi.Phis[i] = cfg.PhiOperand{Pred: p}
			}
			phi.ID = cfg.InstrID(len(g.Instructions))
			g.Instructions = append(g.Instructions, phi)
			blk.Phis = append(blk.Phis, phi.ID)
			placed[b][sym] = phi.ID
		}
	}
	return placed
}
