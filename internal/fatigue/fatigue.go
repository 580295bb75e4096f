// Package fatigue implements the per-tick condition drain and recovery
// model (spec §4.3): on-field runtimes drain condition by a phase- and
// work-rate-weighted amount, bench runtimes recover at a fixed rate, and
// fatigue_mult is recomputed from the result every tick.
package fatigue

import "github.com/footycoach/matchsim/internal/core"

// baseDrainPerSecond is the drain rate at work_rate=70 before the
// phase multiplier is applied.
const baseDrainPerSecond = 0.008

// benchRecoveryPerSecond is the fixed condition-per-second bench runtimes
// regain while not on the field.
const benchRecoveryPerSecond = 0.05

func phaseDrainMult(phase core.Phase) float64 {
	switch phase {
	case core.PhaseInside50, core.PhaseCenterBounce:
		return 1.4
	case core.PhaseOpenPlay, core.PhaseShotOnGoal:
		return 1.0
	case core.PhaseStoppage, core.PhaseKickIn:
		return 0.6
	default:
		return 1.0
	}
}

// FatigueMult maps condition in [100,0] to a multiplier in [1.0,0.6],
// smoothly and monotonically non-decreasing in condition (spec §3 invariant).
func FatigueMult(condition float64) float64 {
	c := condition
	if c < 0 {
		c = 0
	}
	if c > 100 {
		c = 100
	}
	return 0.6 + 0.4*(c/100.0)
}

// Model applies the drain/recovery step. It holds no state of its own —
// every input it needs lives on the runtime it's mutating.
type Model struct{}

// NewModel constructs the (stateless) fatigue model.
func NewModel() *Model { return &Model{} }

// Tick drains condition for every on-field runtime and recovers it for
// every bench runtime on both teams, then recomputes fatigue_mult.
func (m *Model) Tick(home, away *core.TeamState, phase core.Phase, tickSeconds int) {
	m.tickTeam(home, phase, tickSeconds)
	m.tickTeam(away, phase, tickSeconds)
}

func (m *Model) tickTeam(team *core.TeamState, phase core.Phase, tickSeconds int) {
	drainRate := baseDrainPerSecond * phaseDrainMult(phase)
	for _, r := range team.OnField {
		workRateScale := float64(r.Player.Mental.WorkRate) / 70.0
		drain := drainRate * workRateScale * float64(tickSeconds)
		r.SetCondition(r.Condition() - drain)
		r.FatigueMult = FatigueMult(r.Condition())
		r.SecondsPlayed += tickSeconds
		r.SecondsSinceRotated += tickSeconds
	}
	for _, r := range team.Bench {
		if r.ReturnInSeconds > 0 {
			r.ReturnInSeconds -= tickSeconds
			if r.ReturnInSeconds < 0 {
				r.ReturnInSeconds = 0
			}
		}
		recovered := benchRecoveryPerSecond * float64(tickSeconds)
		r.SetCondition(r.Condition() + recovered)
		r.FatigueMult = FatigueMult(r.Condition())
	}
}
