package facts

import (
	"github.com/viant/anteater/internal/cfg"
	"github.com/viant/anteater/internal/ssa"
)

// Extract performs the single deterministic pass of spec.md §4.3: blocks in
// postorder, instructions in program order. form must already be in SSA
// form (see ssa.Build): Extract reads operand/result symbol ids as they
// stand after renaming.
func Extract(form *ssa.Form) []Fact {
	g := form.CFG
	var out []Fact

	for _, id := range g.Postorder() {
		blk := g.Block(id)
		for _, s := range blk.Succs {
			out = append(out, newFact(PredEdgeCF, Int(int64(id)), Int(int64(s))))
		}
		for _, iid := range blk.Phis {
			out = append(out, phiFacts(g, iid)...)
		}
		for _, iid := range blk.Instructions {
			out = append(out, instrFacts(g, iid)...)
		}
	}

	out = append(out, dominatesFacts(g, form.Dom)...)
	return out
}

func phiFacts(g *cfg.CFG, iid cfg.InstrID) []Fact {
	instr := g.Instruction(iid)
	out := make([]Fact, 0, len(instr.Phis))
	for _, op := range instr.Phis {
		if op.Version == cfg.NoSymbol {
			continue // unreachable predecessor, never renamed
		}
		out = append(out, newFact(PredAssign, Int(int64(instr.Result)), Int(int64(op.Version))))
	}
	return out
}

// instrFacts maps one CFG instruction onto the fact schema of spec.md §3.
// Op kinds with no direct schema entry (branch, return, nullCheck) emit
// nothing here: their control-flow effect is already captured by EdgeCF,
// and they add no fact otherwise observable in the IR.
func instrFacts(g *cfg.CFG, iid cfg.InstrID) []Fact {
	instr := g.Instruction(iid)
	site := int64(iid)

	switch instr.Op {
	case cfg.OpAssign:
		if len(instr.Operands) == 1 {
			return []Fact{newFact(PredAssign, Int(int64(instr.Result)), Int(int64(instr.Operands[0])))}
		}
		// literal, parameter, or other zero-operand definition: src is a
		// string constant rather than a symbol.
		return []Fact{newFact(PredAssign, Int(int64(instr.Result)), Str(instr.Aux))}

	case cfg.OpBinop:
		return callFacts(site, Str(instr.Aux), instr.Operands, instr.Result)

	case cfg.OpCall:
		if len(instr.Operands) == 0 {
			return nil
		}
		callee := Int(int64(instr.Operands[0]))
		return callFacts(site, callee, instr.Operands[1:], instr.Result)

	case cfg.OpLoad:
		if len(instr.Operands) != 1 {
			return nil
		}
		return []Fact{newFact(PredLoad, Int(int64(instr.Result)), Int(int64(instr.Operands[0])), Str(instr.Aux))}

	case cfg.OpIndexLoad:
		if len(instr.Operands) != 2 {
			return nil
		}
		return []Fact{newFact(PredLoad, Int(int64(instr.Result)), Int(int64(instr.Operands[0])), Str("[]"))}

	case cfg.OpStore:
		if len(instr.Operands) != 2 {
			return nil
		}
		return []Fact{newFact(PredStore, Int(int64(instr.Operands[0])), Str(instr.Aux), Int(int64(instr.Operands[1])))}

	case cfg.OpIndexStore:
		if len(instr.Operands) != 3 {
			return nil
		}
		return []Fact{newFact(PredStore, Int(int64(instr.Operands[0])), Str("[]"), Int(int64(instr.Operands[2])))}

	case cfg.OpAlloc:
		// Alloc(site,type) is fixed at arity 2 per spec.md §3 and carries no
		// link to the symbol the allocation's result was stored into; emit
		// an extra Assign(result,site) tuple so internal/datalog's
		// Andersen-style PointsTo rule (reusing Assign rather than a new
		// predicate) has something to join against.
		return []Fact{
			newFact(PredAlloc, Int(site), Str(instr.Aux)),
			newFact(PredAssign, Int(int64(instr.Result)), Int(site)),
		}

	default:
		return nil
	}
}

// callFacts emits one Call(site,callee,i,arg) fact per argument and a
// trailing Call(site,callee,-1,result) fact recording the value the call
// site produces (spec.md §3's Call(site,callee,arg_i,v) collapsed to one
// tuple per argument index, with index -1 reserved for the result).
func callFacts(site int64, callee Const, args []cfg.SymbolID, result cfg.SymbolID) []Fact {
	out := make([]Fact, 0, len(args)+1)
	for i, a := range args {
		out = append(out, newFact(PredCall, Int(site), callee, Int(int64(i)), Int(int64(a))))
	}
	if result != cfg.NoSymbol {
		out = append(out, newFact(PredCall, Int(site), callee, Int(-1), Int(int64(result))))
	}
	return out
}

func dominatesFacts(g *cfg.CFG, dom *ssa.DomTree) []Fact {
	order := g.Postorder()
	var out []Fact
	for _, a := range order {
		for _, b := range order {
			if a == b {
				continue
			}
			if dom.Dominates(a, b) {
				out = append(out, newFact(PredDominates, Int(int64(a)), Int(int64(b))))
			}
		}
	}
	return out
}
