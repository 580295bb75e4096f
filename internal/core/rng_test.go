package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNGDeterministicForSameSeed(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Float(), b.Float())
	}
}

func TestRNGDiffersAcrossSeeds(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)

	same := true
	for i := 0; i < 10; i++ {
		if a.Float() != b.Float() {
			same = false
			break
		}
	}
	assert.False(t, same, "two distinct seeds should not produce identical streams")
}

func TestRNGFloatRange(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		v := r.Float()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRNGIntRange(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		v := r.Int(10, 20)
		assert.GreaterOrEqual(t, v, 10)
		assert.Less(t, v, 20)
	}
}

func TestRNGIntDegenerateRangeReturnsLo(t *testing.T) {
	r := NewRNG(7)
	assert.Equal(t, 5, r.Int(5, 5))
	assert.Equal(t, 5, r.Int(5, 1))
}
