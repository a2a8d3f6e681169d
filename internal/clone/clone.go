// Package clone specifies, at interface level only, the optional neural
// clone-detection side feature spec.md §1 treats as "a thin consumer of an
// external embedding oracle": a vector producer this package never
// implements, only calls through Embedder.
package clone

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/viant/anteater/internal/ast"
)

// Embedder is the external embedding oracle spec.md §1 and §5 call out:
// an opaque vector producer, awaited like any external request, never
// invoked from inside the hot CFG/SSA/Datalog passes.
type Embedder interface {
	// Embed returns a fixed-length vector for the source text spanned by n.
	Embed(ctx context.Context, n ast.Node, source string) ([]float64, error)
}

// Candidate is one function considered for clone detection.
type Candidate struct {
	File string
	Name string
	Node ast.Node
}

// Pair is two candidates whose embeddings were found similar enough to
// report as a likely clone.
type Pair struct {
	A, B       Candidate
	Similarity float64
}

// Detector finds near-duplicate functions by cosine similarity over an
// Embedder's vectors. It holds no model weights itself; all inference is
// delegated to the Embedder.
type Detector struct {
	embedder  Embedder
	threshold float64
}

// NewDetector constructs a Detector. threshold is the minimum cosine
// similarity (0,1] at which two candidates are reported as a clone pair.
func NewDetector(embedder Embedder, threshold float64) *Detector {
	return &Detector{embedder: embedder, threshold: threshold}
}

// Detect embeds every candidate and returns all pairs whose cosine
// similarity meets the configured threshold, most-similar first.
func (d *Detector) Detect(ctx context.Context, candidates []Candidate, sources map[string]string) ([]Pair, error) {
	vectors := make([][]float64, len(candidates))
	for i, c := range candidates {
		v, err := d.embedder.Embed(ctx, c.Node, sources[c.File])
		if err != nil {
			return nil, fmt.Errorf("clone: embed %s:%s: %w", c.File, c.Name, err)
		}
		vectors[i] = v
	}

	var pairs []Pair
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			sim := CosineSimilarity(vectors[i], vectors[j])
			if sim >= d.threshold {
				pairs = append(pairs, Pair{A: candidates[i], B: candidates[j], Similarity: sim})
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Similarity > pairs[j].Similarity })
	return pairs, nil
}

// CosineSimilarity returns the cosine similarity of two equal-length
// vectors, or 0 if either is a zero vector or they differ in length.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
