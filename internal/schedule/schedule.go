// Package schedule builds round-robin fixture lists (spec §4.9) using the
// circle method: teams are arranged around a fixed pivot and all but the
// first slot rotate each round.
package schedule

import "github.com/footycoach/matchsim/internal/core"

// byeSentinel marks the padding slot added for an odd team count. No
// fixture naming it is ever returned to the caller.
const byeSentinel core.TeamID = -1

// Fixture is one scheduled match: the round it falls in and the two
// teams, home first.
type Fixture struct {
	Round int
	Home  core.TeamID
	Away  core.TeamID
}

// BuildRoundRobin returns every fixture for a single (or double) round
// robin over teamIDs. Order within a round is deterministic: by the
// circle method's slot order, pivot fixture first.
func BuildRoundRobin(teamIDs []core.TeamID, doubleRoundRobin bool) []Fixture {
	ids := append([]core.TeamID{}, teamIDs...)
	if len(ids)%2 == 1 {
		ids = append(ids, byeSentinel)
	}
	n := len(ids)
	if n < 2 {
		return nil
	}
	rounds := n - 1
	half := n / 2

	slots := append([]core.TeamID{}, ids...)
	var fixtures []Fixture

	for round := 0; round < rounds; round++ {
		for i := 0; i < half; i++ {
			home := slots[i]
			away := slots[n-1-i]
			if round%2 == 1 {
				home, away = away, home
			}
			if home == byeSentinel || away == byeSentinel {
				continue
			}
			fixtures = append(fixtures, Fixture{Round: round + 1, Home: home, Away: away})
		}
		slots = rotate(slots)
	}

	if doubleRoundRobin {
		secondHalf := make([]Fixture, len(fixtures))
		for i, f := range fixtures {
			secondHalf[i] = Fixture{Round: f.Round + rounds, Home: f.Away, Away: f.Home}
		}
		fixtures = append(fixtures, secondHalf...)
	}
	return fixtures
}

// rotate implements one circle-method step: the first slot is fixed, all
// others rotate one position, with the slot that falls off the end
// wrapping to position 1.
func rotate(slots []core.TeamID) []core.TeamID {
	n := len(slots)
	if n < 3 {
		return slots
	}
	out := make([]core.TeamID, n)
	out[0] = slots[0]
	out[1] = slots[n-1]
	for i := 2; i < n; i++ {
		out[i] = slots[i-1]
	}
	return out
}
