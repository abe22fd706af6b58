package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsReproducible(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
	assert.NotEqual(t, New(1).Float64(), New(2).Float64())
}

func TestSeed(t *testing.T) {
	assert.Equal(t, int64(7), Seed(7))
	assert.NotZero(t, Seed(0))
}

func TestSequenceWraps(t *testing.T) {
	s := NewSequence(0.1, 0.5)
	assert.Equal(t, []float64{0.1, 0.5, 0.1}, []float64{s.Float64(), s.Float64(), s.Float64()})
	assert.Equal(t, 0.0, NewSequence().Float64())
}
