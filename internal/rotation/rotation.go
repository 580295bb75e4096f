// Package rotation implements the interchange policy (spec §4.4): each
// tick, the most-tired eligible on-field player is swapped for the
// freshest available bench player once condition falls below a
// tactics-determined threshold and the team has interchanges left.
package rotation

import (
	"sort"

	"github.com/footycoach/matchsim/internal/core"
)

// Manager is the (stateless) rotation policy.
type Manager struct{}

// NewManager constructs the rotation manager.
func NewManager() *Manager { return &Manager{} }

// threshold converts a team's rotation_aggressiveness dial into the
// condition floor that triggers a swap: more aggressive rotation swaps
// players sooner (at a higher condition).
func threshold(tactics core.Tactics) int {
	return 55 + tactics.RotationAggressiveness/4 // [55,80]
}

// Tick evaluates both teams and returns whether each swapped this tick.
// Each real swap also increments that team's InterchangesUsed, the
// counter the interchange telemetry reads.
func (m *Manager) Tick(home, away *core.TeamState) (homeSwapped, awaySwapped bool) {
	return m.tickTeam(home), m.tickTeam(away)
}

func (m *Manager) tickTeam(team *core.TeamState) bool {
	if len(team.OnField) == 0 {
		return false
	}
	if team.InterchangesUsed >= team.Tactics.InterchangeCap {
		return false
	}

	onField := append([]*core.PlayerRuntime{}, team.OnField...)
	sort.Slice(onField, func(i, j int) bool {
		if onField[i].SecondsSinceRotated != onField[j].SecondsSinceRotated {
			return onField[i].SecondsSinceRotated > onField[j].SecondsSinceRotated
		}
		return onField[i].Condition() < onField[j].Condition()
	})
	tired := onField[0]
	if tired.InjuredOut {
		return false
	}
	if tired.Condition() >= float64(threshold(team.Tactics)) {
		return false
	}

	var fresh *core.PlayerRuntime
	for _, b := range team.Bench {
		if !b.Available() {
			continue
		}
		if fresh == nil || b.Condition() > fresh.Condition() {
			fresh = b
		}
	}
	if fresh == nil {
		return false
	}

	swap(team, tired, fresh)
	team.InterchangesUsed++
	return true
}

func swap(team *core.TeamState, out, in *core.PlayerRuntime) {
	for i, r := range team.OnField {
		if r == out {
			team.OnField[i] = in
			break
		}
	}
	for i, r := range team.Bench {
		if r == in {
			team.Bench[i] = out
			break
		}
	}
	out.OnField = false
	out.SecondsSinceRotated = 0
	in.OnField = true
	in.SecondsSinceRotated = 0
}
