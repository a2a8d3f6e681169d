package metrics

// halsteadFrom implements spec.md §4.7: distinct operators η₁, distinct
// operands η₂, totals N₁, N₂. Volume `V = (N₁+N₂)·log₂(η₁+η₂)` (V = 0 when
// the vocabulary is ≤ 1). Returns (vocab, length, volume) where
// vocab = η₁+η₂ and length = N₁+N₂.
func halsteadFrom(acc *accumulator) (vocab, length int, volume float64) {
	n1, n2 := len(acc.operators), len(acc.operands)
	bigN1, bigN2 := 0, 0
	for _, c := range acc.operators {
		bigN1 += c
	}
	for _, c := range acc.operands {
		bigN2 += c
	}

	vocab = n1 + n2
	length = bigN1 + bigN2
	if vocab <= 1 {
		return vocab, length, 0
	}
	return vocab, length, float64(length) * log2(float64(vocab))
}
