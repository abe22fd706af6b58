package game

import "github.com/lox/concentration/internal/randutil"

// NewOrderedSource returns a random source that makes StartSession deal the first
// pairs symbols of the alphabet in order, twice: [a0 .. aN-1, a0 .. aN-1].
// It is meant for tests that need to know where each symbol lies.
func NewOrderedSource(pairs int) RandomSource {
	values := make([]float64, 0, 3*pairs)
	// symbol choice: j = i + floor(0*(n-i)) keeps the alphabet order
	for i := 0; i < pairs; i++ {
		values = append(values, 0)
	}
	// shuffle: j = floor(u*(i+1)) == i for u just below 1 leaves every card in place
	for i := 0; i < 2*pairs-1; i++ {
		values = append(values, 0.999999)
	}
	return randutil.NewSequence(values...)
}
