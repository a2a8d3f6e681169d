// Package ssa computes dominator trees and dominance frontiers over a
// internal/cfg.CFG and lowers it into pruned SSA form with phi insertion
// and renaming (C2, spec.md §4.2).
package ssa

import "github.com/viant/anteater/internal/cfg"

// DomTree is an immediate-dominator mapping plus dominance frontiers,
// computed by the standard iterative algorithm over reverse postorder
// (spec.md §4.2) — the Cooper/Harvey/Kennedy formulation, the same
// "iterate to fixpoint over RPO" shape the pack's iterative-DFS
// articulation-point reference material uses for a different graph
// property.
type DomTree struct {
	g        *cfg.CFG
	idom     []cfg.BlockID
	rpoIndex map[cfg.BlockID]int
	children map[cfg.BlockID][]cfg.BlockID
	frontier map[cfg.BlockID][]cfg.BlockID
}

const undefined cfg.BlockID = -1

// ComputeDominators builds the dominator tree and dominance frontiers for g.
// Unreachable blocks are ignored (spec.md §4.2: "unreachable blocks are
// elided first").
func ComputeDominators(g *cfg.CFG) *DomTree {
	rpo := g.ReversePostorder()
	rpoIndex := make(map[cfg.BlockID]int, len(rpo))
	for i, b := range rpo {
		rpoIndex[b] = i
	}

	idom := make([]cfg.BlockID, len(g.Blocks))
	for i := range idom {
		idom[i] = undefined
	}
	idom[g.Entry] = g.Entry

	changed := true
	for changed {
		changed = false
		for _, b := range rpo {
			if b == g.Entry {
				continue
			}
			var newIdom cfg.BlockID = undefined
			for _, p := range g.Block(b).Preds {
				if _, reach := rpoIndex[p]; !reach {
					continue
				}
				if idom[p] == undefined {
					continue
				}
				if newIdom == undefined {
					newIdom = p
					continue
				}
				newIdom = intersect(idom, rpoIndex, newIdom, p)
			}
			if newIdom != undefined && idom[b] != newIdom {
				idom[b] = newIdom
				changed = true
			}
		}
	}

	dt := &DomTree{g: g, idom: idom, rpoIndex: rpoIndex}
	dt.buildChildren(rpo)
	dt.computeFrontiers(rpo)
	return dt
}

func intersect(idom []cfg.BlockID, rpoIndex map[cfg.BlockID]int, a, b cfg.BlockID) cfg.BlockID {
	for a != b {
		for rpoIndex[a] > rpoIndex[b] {
			a = idom[a]
		}
		for rpoIndex[b] > rpoIndex[a] {
			b = idom[b]
		}
	}
	return a
}

func (dt *DomTree) buildChildren(rpo []cfg.BlockID) {
	dt.children = make(map[cfg.BlockID][]cfg.BlockID, len(rpo))
	for _, b := range rpo {
		if b == dt.g.Entry {
			continue
		}
		p := dt.idom[b]
		dt.children[p] = append(dt.children[p], b)
	}
}

// computeFrontiers applies the standard union rule: for every block b with
// two or more predecessors, walk up from each predecessor to (but not
// including) idom(b), adding b to each visited block's frontier.
func (dt *DomTree) computeFrontiers(rpo []cfg.BlockID) {
	dt.frontier = make(map[cfg.BlockID][]cfg.BlockID)
	for _, b := range rpo {
		blk := dt.g.Block(b)
		if len(blk.Preds) < 2 {
			continue
		}
		for _, p := range blk.Preds {
			if _, reach := dt.rpoIndex[p]; !reach {
				continue
			}
			runner := p
			for runner != dt.idom[b] {
				if !containsBlock(dt.frontier[runner], b) {
					dt.frontier[runner] = append(dt.frontier[runner], b)
				}
				runner = dt.idom[runner]
			}
		}
	}
}

func containsBlock(s []cfg.BlockID, v cfg.BlockID) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// IDom returns the immediate dominator of b (b itself for the entry block).
func (dt *DomTree) IDom(b cfg.BlockID) cfg.BlockID { return dt.idom[b] }

// Children returns b's children in the dominator tree.
func (dt *DomTree) Children(b cfg.BlockID) []cfg.BlockID { return dt.children[b] }

// Frontier returns the dominance frontier of b.
func (dt *DomTree) Frontier(b cfg.BlockID) []cfg.BlockID { return dt.frontier[b] }

// Dominates reports whether a dominates b (reflexively: a dominates a).
func (dt *DomTree) Dominates(a, b cfg.BlockID) bool {
	cur := b
	for {
		if cur == a {
			return true
		}
		if cur == dt.g.Entry {
			return false
		}
		cur = dt.idom[cur]
	}
}

// Reachable reports whether b was reached from entry (and thus has a valid
// dominator entry).
func (dt *DomTree) Reachable(b cfg.BlockID) bool {
	_, ok := dt.rpoIndex[b]
	return ok
}

// IteratedFrontier computes the iterated dominance frontier of a set of
// blocks (DF+), used for pruned phi placement.
func (dt *DomTree) IteratedFrontier(blocks []cfg.BlockID) []cfg.BlockID {
	seen := map[cfg.BlockID]bool{}
	var result []cfg.BlockID
	worklist := append([]cfg.BlockID(nil), blocks...)
	for len(worklist) > 0 {
		b := worklist[0]
		worklist = worklist[1:]
		for _, d := range dt.Frontier(b) {
			if seen[d] {
				continue
			}
			seen[d] = true
			result = append(result, d)
			worklist = append(worklist, d)
		}
	}
	return result
}
