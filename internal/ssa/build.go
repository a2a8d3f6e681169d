package ssa

import "github.com/viant/anteater/internal/cfg"

// Build lowers g into pruned/minimal SSA form in place: it synthesizes
// parameter definitions at entry, computes dominators and liveness, places
// phi instructions at the iterated dominance frontier, and renames every
// operand/result to a versioned symbol (spec.md §4.2).
//
// g's Instructions and Blocks are mutated; the returned Form is g's SSA
// overlay (dominator tree plus the base-symbol/version mapping).
func Build(g *cfg.CFG) (*Form, error) {
	synthesizeParamDefs(g)

	dt := ComputeDominators(g)
	live := computeLiveness(g)
	placed := placePhis(g, dt, live)

	r := newRenamer(g, dt, placed)
	r.run(g.Entry)

	return &Form{CFG: g, Dom: dt, Versions: r.versions}, nil
}
