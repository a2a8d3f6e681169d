package interp

import (
	"strconv"
	"strings"

	"github.com/viant/anteater/internal/ast"
	"github.com/viant/anteater/internal/cfg"
	"github.com/viant/anteater/internal/domains"
)

const widenAfterRevisits = 3
const maxNarrowPasses = 2

// Run executes the worklist abstract interpreter of spec.md §4.6 over g and
// returns every NullVerifier/BoundsChecker finding, in block-postorder /
// program order (the same deterministic order internal/facts uses).
func Run(g *cfg.CFG) []Verdict {
	in, _ := fixpoint(g)
	return collectVerdicts(g, in)
}

// fixpoint runs the widening pass to convergence, then up to
// maxNarrowPasses narrowing passes, and returns the stabilized per-block
// in/out state maps.
func fixpoint(g *cfg.CFG) (map[cfg.BlockID]State, map[cfg.BlockID]State) {
	reach := g.Reachable()
	in := map[cfg.BlockID]State{}
	out := map[cfg.BlockID]State{}
	revisits := map[cfg.BlockID]int{}
	for id, ok := range reach {
		if !ok {
			continue
		}
		in[id] = newState()
		out[id] = newState()
	}
	in[g.Entry] = entryState(g)

	queue := []cfg.BlockID{g.Entry}
	queued := map[cfg.BlockID]bool{g.Entry: true}

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		queued[b] = false

		blk := g.Block(b)
		merged := newState()
		first := true
		for _, p := range blk.Preds {
			if !reach[p] {
				continue
			}
			if first {
				merged = out[p].clone()
				first = false
				continue
			}
			merged = merge(merged, out[p])
		}
		if b == g.Entry {
			merged = in[g.Entry]
		}

		if blk.Kind == cfg.KindLoopHeader {
			revisits[b]++
			if revisits[b] > widenAfterRevisits {
				merged = widen(in[b], merged)
			}
		}
		in[b] = merged

		newOut := transferBlock(g, merged, blk)
		if !equal(newOut, out[b]) {
			out[b] = newOut
			for _, s := range blk.Succs {
				if reach[s] && !queued[s] {
					queue = append(queue, s)
					queued[s] = true
				}
			}
		}
	}

	for pass := 0; pass < maxNarrowPasses; pass++ {
		changed := false
		for _, b := range g.ReversePostorder() {
			if !reach[b] {
				continue
			}
			blk := g.Block(b)
			merged := newState()
			first := true
			for _, p := range blk.Preds {
				if !reach[p] {
					continue
				}
				if first {
					merged = out[p].clone()
					first = false
				} else {
					merged = merge(merged, out[p])
				}
			}
			if b == g.Entry {
				merged = entryState(g)
			}
			narrowed := narrow(in[b], merged)
			if !equal(narrowed, in[b]) {
				in[b] = narrowed
				changed = true
			}
			out[b] = transferBlock(g, in[b], blk)
		}
		if !changed {
			break
		}
	}

	return in, out
}

// entryState maps parameters per their declared nullability, following the
// source language's Dart-like `T?` nullable-suffix convention (spec.md's
// "declared nullability ... unknown → ⊤" is otherwise silent on the
// concrete annotation syntax); integer bounds are always ⊤ since no
// declared-range annotation exists in the AST's DeclType tag.
func entryState(g *cfg.CFG) State {
	s := newState()
	for _, sym := range g.Symbols {
		if !sym.IsParam {
			continue
		}
		s.Null[sym.ID] = paramNullState(sym.DeclType)
		s.Interval[sym.ID] = domains.IntervalTop()
	}
	return s
}

func paramNullState(declType string) domains.NullState {
	switch {
	case declType == "":
		return domains.NullTop
	case strings.HasSuffix(declType, "?"):
		return domains.Nullable
	default:
		return domains.NonNull
	}
}

// transferBlock runs every phi then every instruction of blk starting from
// in, returning the resulting state (spec.md §4.6: "propagate through the
// block using transfer").
func transferBlock(g *cfg.CFG, in State, blk *cfg.Block) State {
	cur := in.clone()
	for _, iid := range blk.Phis {
		applyPhi(g, cur, g.Instruction(iid))
	}
	for _, iid := range blk.Instructions {
		applyInstr(g, cur, g.Instruction(iid))
	}
	return cur
}

func applyPhi(g *cfg.CFG, cur State, instr *cfg.Instruction) {
	ns := domains.NullBottom
	iv := domains.IntervalBottom()
	for _, op := range instr.Phis {
		if op.Version == cfg.NoSymbol {
			continue
		}
		ns = domains.NullJoin(ns, cur.null(op.Version))
		iv = domains.IntervalJoin(iv, cur.interval(op.Version))
	}
	cur.Null[instr.Result] = ns
	cur.Interval[instr.Result] = iv
}

func applyInstr(g *cfg.CFG, cur State, instr *cfg.Instruction) {
	if instr.Result == cfg.NoSymbol {
		return
	}
	switch instr.Op {
	case cfg.OpAssign:
		if len(instr.Operands) == 1 {
			cur.Null[instr.Result] = cur.null(instr.Operands[0])
			cur.Interval[instr.Result] = cur.interval(instr.Operands[0])
			if length, tracked := cur.Length[instr.Operands[0]]; tracked {
				cur.Length[instr.Result] = length
			}
			return
		}
		applyLiteral(cur, instr)

	case cfg.OpAlloc:
		cur.Null[instr.Result] = domains.NonNull
		cur.Interval[instr.Result] = domains.IntervalTop()
		if length, ok := allocLength(instr); ok {
			cur.Length[instr.Result] = length
		}

	case cfg.OpLoad:
		cur.Null[instr.Result] = domains.Nullable
		cur.Interval[instr.Result] = domains.IntervalTop()
		if instr.Aux == "length" && len(instr.Operands) == 1 {
			cur.Null[instr.Result] = domains.NonNull
			if length, tracked := cur.Length[instr.Operands[0]]; tracked {
				cur.Interval[instr.Result] = length
			} else {
				cur.Interval[instr.Result] = domains.IntervalOf(0, domains.IntervalTop().Hi)
			}
		}

	case cfg.OpIndexLoad:
		cur.Null[instr.Result] = domains.Nullable
		cur.Interval[instr.Result] = domains.IntervalTop()

	case cfg.OpCall:
		cur.Null[instr.Result] = domains.NullTop
		cur.Interval[instr.Result] = domains.IntervalTop()

	case cfg.OpBinop:
		cur.Null[instr.Result] = domains.NonNull
		cur.Interval[instr.Result] = binopInterval(cur, instr)

	default:
		cur.Null[instr.Result] = domains.NullTop
		cur.Interval[instr.Result] = domains.IntervalTop()
	}
}

func applyLiteral(cur State, instr *cfg.Instruction) {
	if instr.Aux == "null" || instr.Aux == "nil" {
		cur.Null[instr.Result] = domains.Null
		cur.Interval[instr.Result] = domains.IntervalBottom()
		return
	}
	cur.Null[instr.Result] = domains.NonNull
	if v, err := strconv.ParseFloat(instr.Aux, 64); err == nil {
		cur.Interval[instr.Result] = domains.IntervalPoint(v)
		return
	}
	cur.Interval[instr.Result] = domains.IntervalTop()
}

// allocLength derives a tracked `len(x)` bound (spec.md §4.6) for an
// allocation whose size is statically known: an explicit size/length
// argument (`new Array(5)`) or a literal element count (`[1, 2, 3]`).
func allocLength(instr *cfg.Instruction) (domains.Interval, bool) {
	if instr.Node == nil {
		return domains.Interval{}, false
	}
	for _, field := range []string{"size", "length"} {
		sizeNode := instr.Node.FieldChild(field)
		if sizeNode == nil {
			continue
		}
		if n, err := strconv.Atoi(sizeNode.Lexeme()); err == nil {
			return domains.IntervalPoint(float64(n)), true
		}
	}
	if elements := instr.Node.FieldChild("elements"); elements != nil {
		return domains.IntervalPoint(float64(countElements(elements))), true
	}
	return domains.Interval{}, false
}

// countElements counts an array/list literal's element children, skipping
// the delimiter/separator tokens tree-sitter grammars keep as siblings.
func countElements(n ast.Node) int {
	count := 0
	for _, c := range n.Children() {
		switch c.Kind() {
		case ",", "[", "]", "{", "}":
			continue
		}
		count++
	}
	return count
}

func binopInterval(cur State, instr *cfg.Instruction) domains.Interval {
	if len(instr.Operands) != 2 {
		return domains.IntervalTop()
	}
	operands := []domains.Interval{cur.interval(instr.Operands[0]), cur.interval(instr.Operands[1])}
	switch instr.Aux {
	case "+":
		return domains.IntervalTransfer(domains.IntervalOpAdd, operands)
	case "-":
		return domains.IntervalTransfer(domains.IntervalOpSub, operands)
	case "*":
		return domains.IntervalTransfer(domains.IntervalOpMul, operands)
	case "/":
		return domains.IntervalTransfer(domains.IntervalOpDiv, operands)
	default:
		return domains.IntervalTop()
	}
}

// collectVerdicts re-executes every reachable block from its stabilized in
// state, emitting a NullVerifier finding at every OpNullCheck (the CFG
// builder places one before each field load and indexed access on a
// receiver) and a BoundsChecker finding at every indexed access
// (spec.md §4.6).
func collectVerdicts(g *cfg.CFG, in map[cfg.BlockID]State) []Verdict {
	var out []Verdict
	for _, id := range g.Postorder() {
		blk := g.Block(id)
		cur := in[id].clone()
		for _, iid := range blk.Phis {
			applyPhi(g, cur, g.Instruction(iid))
		}
		for _, iid := range blk.Instructions {
			instr := g.Instruction(iid)
			out = append(out, verdictsForInstr(cur, instr)...)
			applyInstr(g, cur, instr)
		}
	}
	return out
}

func verdictsForInstr(cur State, instr *cfg.Instruction) []Verdict {
	switch instr.Op {
	case cfg.OpNullCheck:
		if len(instr.Operands) != 1 {
			return nil
		}
		return []Verdict{nullVerdict(instr.ID, cur.null(instr.Operands[0]))}

	case cfg.OpIndexLoad:
		if len(instr.Operands) != 2 {
			return nil
		}
		return []Verdict{boundsVerdict(cur, instr.ID, instr.Operands[0], instr.Operands[1])}

	case cfg.OpIndexStore:
		if len(instr.Operands) != 3 {
			return nil
		}
		return []Verdict{boundsVerdict(cur, instr.ID, instr.Operands[0], instr.Operands[1])}

	default:
		return nil
	}
}

func nullVerdict(site cfg.InstrID, state domains.NullState) Verdict {
	switch state {
	case domains.Null:
		return definiteVerdict(NullVerifier, site, "receiver is definitely null")
	case domains.Nullable:
		return potentialVerdict(NullVerifier, site, "receiver may be null")
	default:
		return safeVerdict(NullVerifier, site, "receiver is non-null")
	}
}

func boundsVerdict(cur State, site cfg.InstrID, base, idx cfg.SymbolID) Verdict {
	length, tracked := cur.Length[base]
	if !tracked {
		return potentialVerdict(BoundsChecker, site, "receiver length not tracked")
	}
	valid := domains.IntervalOf(0, length.Hi-1)
	idxInterval := cur.interval(idx)

	if domains.IntervalLeq(idxInterval, valid) {
		return safeVerdict(BoundsChecker, site, "index within known bounds")
	}
	overlap := domains.IntervalMeet(idxInterval, valid)
	if overlap.Bottom {
		return definiteVerdict(BoundsChecker, site, "index disjoint from valid range")
	}
	return potentialVerdict(BoundsChecker, site, "index partially overlaps valid range")
}
