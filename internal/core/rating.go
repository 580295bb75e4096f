package core

import (
	"math"
	"sort"
)

// Clamp01 bounds a probability to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Softmax2 is the numerically-stable two-class softmax spec §4.2 describes:
// exp(a-m)/(exp(a-m)+exp(b-m)) with m = max(a,b).
func Softmax2(a, b float64) float64 {
	m := math.Max(a, b)
	ea := math.Exp(a - m)
	eb := math.Exp(b - m)
	return ea / (ea + eb)
}

func topN(runtimes []*PlayerRuntime, n int, score func(*PlayerRuntime) float64) []float64 {
	scores := make([]float64, len(runtimes))
	for i, r := range runtimes {
		scores[i] = score(r)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	if n > len(scores) {
		n = len(scores)
	}
	return scores[:n]
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// MidfieldRating scores an on-field vector's clearance work: top-5 of
// 0.45*clearance + 0.25*strength + 0.15*positioning + 0.15*decision_making,
// each term scaled by the runtime's fatigue/injury multiplier, averaged.
// Empty input returns 1.0 (spec §4.2).
func MidfieldRating(runtimes []*PlayerRuntime) float64 {
	if len(runtimes) == 0 {
		return 1.0
	}
	top := topN(runtimes, 5, func(r *PlayerRuntime) float64 {
		mult := r.EffectiveMult()
		p := r.Player
		return mult * (0.45*float64(p.Skill.Clearance) + 0.25*float64(p.Physical.Strength) +
			0.15*float64(p.Mental.Positioning) + 0.15*float64(p.Mental.DecisionMaking))
	})
	return mean(top)
}

// Inside50Quality scores an on-field vector's forward delivery: top-6 of
// 0.5*marking + 0.3*kicking + 0.2*decision_making, scaled and averaged.
// Empty input returns 1.0 (spec §4.2).
func Inside50Quality(runtimes []*PlayerRuntime) float64 {
	if len(runtimes) == 0 {
		return 1.0
	}
	top := topN(runtimes, 6, func(r *PlayerRuntime) float64 {
		mult := r.EffectiveMult()
		p := r.Player
		return mult * (0.5*float64(p.Skill.Marking) + 0.3*float64(p.Skill.Kicking) +
			0.2*float64(p.Mental.DecisionMaking))
	})
	return mean(top)
}

// DefensivePressure scores the mean, over every on-field runtime, of
// 0.5*tackling + 0.3*positioning + 0.2*work_rate, scaled. Empty input
// returns 1.0 (spec §4.2).
func DefensivePressure(runtimes []*PlayerRuntime) float64 {
	if len(runtimes) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, r := range runtimes {
		mult := r.EffectiveMult()
		p := r.Player
		sum += mult * (0.5*float64(p.Skill.Tackling) + 0.3*float64(p.Mental.Positioning) +
			0.2*float64(p.Mental.WorkRate))
	}
	return sum / float64(len(runtimes))
}
