package game

// RandomSource supplies uniform floats in [0, 1). *rand.Rand from math/rand/v2
// satisfies it.
type RandomSource interface {
	Float64() float64
}

// randIntn returns a uniform integer in [0, n) derived from a single Float64 draw
func randIntn(rng RandomSource, n int) int {
	j := int(rng.Float64() * float64(n))
	if j >= n {
		// guards against a source returning 1.0
		j = n - 1
	}
	return j
}

// Shuffle permutes s in place with a single Fisher-Yates pass, so every permutation is
// equally likely for a uniform source.
func Shuffle[T any](rng RandomSource, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := randIntn(rng, i+1)
		s[i], s[j] = s[j], s[i]
	}
}

// choose returns k distinct elements of from, picked uniformly. It runs the first k
// steps of a forward Fisher-Yates pass over a copy, leaving from untouched.
func choose[T any](rng RandomSource, from []T, k int) []T {
	pool := make([]T, len(from))
	copy(pool, from)
	for i := 0; i < k; i++ {
		j := i + randIntn(rng, len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// deal builds a shuffled board of two cards per symbol with ids assigned by position
func deal(rng RandomSource, symbols []Symbol) []Card {
	faces := make([]Symbol, 0, len(symbols)*2)
	faces = append(faces, symbols...)
	faces = append(faces, symbols...)
	Shuffle(rng, faces)

	cards := make([]Card, len(faces))
	for i, s := range faces {
		cards[i] = Card{ID: i, Symbol: s, State: Hidden}
	}
	return cards
}
