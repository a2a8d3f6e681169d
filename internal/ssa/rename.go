package ssa

import "github.com/viant/anteater/internal/cfg"

// synthesizeParamDefs prepends a synthetic definition instruction for every
// parameter symbol to the entry block, so liveness and phi placement see
// parameters as defined at function entry (spec.md §4.6: "entry block has
// parameters mapped per their declared nullability/integer bounds").
func synthesizeParamDefs(g *cfg.CFG) {
	var params []*cfg.Symbol
	for _, sym := range g.Symbols {
		if sym.IsParam {
			params = append(params, sym)
		}
	}
	sortSymbolsByID(params)

	entry := g.Block(g.Entry)
	paramInstrs := make([]cfg.InstrID, 0, len(params))
	for _, sym := range params {
		instr := &cfg.Instruction{Op: cfg.OpAssign, Result: sym.ID, Aux: "param"}
		instr.ID = cfg.InstrID(len(g.Instructions))
		g.Instructions = append(g.Instructions, instr)
		paramInstrs = append(paramInstrs, instr.ID)
	}
	entry.Instructions = append(paramInstrs, entry.Instructions...)
}

func sortSymbolsByID(syms []*cfg.Symbol) {
	for i := 1; i < len(syms); i++ {
		for j := i; j > 0 && syms[j-1].ID > syms[j].ID; j-- {
			syms[j-1], syms[j] = syms[j], syms[j-1]
		}
	}
}

// renamer performs the dominator-tree DFS renaming pass of spec.md §4.2.
type renamer struct {
	g        *cfg.CFG
	dt       *DomTree
	phiBase  map[cfg.InstrID]cfg.SymbolID
	stacks   map[cfg.SymbolID][]cfg.SymbolID
	counters map[cfg.SymbolID]int
	versions map[cfg.SymbolID]VersionInfo
}

func newRenamer(g *cfg.CFG, dt *DomTree, placed map[cfg.BlockID]map[cfg.SymbolID]cfg.InstrID) *renamer {
	phiBase := map[cfg.InstrID]cfg.SymbolID{}
	for _, bySym := range placed {
		for sym, iid := range bySym {
			phiBase[iid] = sym
		}
	}
	return &renamer{
		g:        g,
		dt:       dt,
		phiBase:  phiBase,
		stacks:   map[cfg.SymbolID][]cfg.SymbolID{},
		counters: map[cfg.SymbolID]int{},
		versions: map[cfg.SymbolID]VersionInfo{},
	}
}

func (r *renamer) top(base cfg.SymbolID) (cfg.SymbolID, bool) {
	st := r.stacks[base]
	if len(st) == 0 {
		return cfg.NoSymbol, false
	}
	return st[len(st)-1], true
}

func (r *renamer) push(base cfg.SymbolID) cfg.SymbolID {
	sym := r.g.Symbol(base)
	var name, scope, declType string
	if sym != nil {
		name, scope, declType = sym.Name, sym.ScopeID, sym.DeclType
	}
	idx := r.counters[base]
	r.counters[base] = idx + 1
	versioned := r.g.NewSymbol(name, scope, declType)
	r.versions[versioned.ID] = VersionInfo{Base: base, Index: idx}
	r.stacks[base] = append(r.stacks[base], versioned.ID)
	return versioned.ID
}

func (r *renamer) pop(base cfg.SymbolID) {
	st := r.stacks[base]
	r.stacks[base] = st[:len(st)-1]
}

// run renames the whole function starting at entry.
func (r *renamer) run(entry cfg.BlockID) {
	r.renameBlock(entry)
}

func (r *renamer) renameBlock(b cfg.BlockID) {
	blk := r.g.Block(b)
	var defined []cfg.SymbolID // bases pushed while processing this block, for popping on backtrack

	for _, iid := range blk.Phis {
		instr := r.g.Instruction(iid)
		base := r.phiBase[iid]
		instr.Result = r.push(base)
		defined = append(defined, base)
	}

	for _, iid := range blk.Instructions {
		instr := r.g.Instruction(iid)
		for i, op := range instr.Operands {
			if op == cfg.NoSymbol {
				continue
			}
			if v, ok := r.top(op); ok {
				instr.Operands[i] = v
			}
			// else: no reaching definition (used-before-def / unreachable
			// predecessor path); operand is left pointing at the original
			// base symbol id.
		}
		if instr.Result != cfg.NoSymbol {
			base := instr.Result
			instr.Result = r.push(base)
			defined = append(defined, base)
		}
	}

	for _, s := range blk.Succs {
		sblk := r.g.Block(s)
		for _, piid := range sblk.Phis {
			phi := r.g.Instruction(piid)
			base := r.phiBase[piid]
			version, ok := r.top(base)
			if !ok {
				continue
			}
			for i := range phi.Phis {
				if phi.Phis[i].Pred == b {
					phi.Phis[i].Version = version
				}
			}
		}
	}

	for _, c := range r.dt.Children(b) {
		r.renameBlock(c)
	}

	for _, base := range defined {
		r.pop(base)
	}
}
