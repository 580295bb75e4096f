package core

import "math/rand/v2"

// RNG is the engine's one source of randomness. It is a thin, explicit
// wrapper around math/rand/v2's PCG stream so that every draw is
// reproducible across platforms given the same seed — design note §9
// replaces the source's ambient global RNG with a value threaded through
// the match context; there is no package-level random state anywhere in
// this module.
type RNG struct {
	r *rand.Rand
}

// NewRNG seeds a new PCG stream with the caller's seed and that seed XORed
// with a fixed constant.
func NewRNG(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

// Float returns a float64 in [0,1).
func (g *RNG) Float() float64 {
	return g.r.Float64()
}

// Int returns an int in [lo, hi) exclusive. hi <= lo returns lo.
func (g *RNG) Int(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.r.IntN(hi-lo)
}
