package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footycoach/matchsim/internal/core"
)

func newRuntime(id, condition int) *core.PlayerRuntime {
	p := &core.Player{ID: core.PlayerID(id), Condition: condition}
	return core.NewPlayerRuntime(p, core.TeamID(1), true)
}

func teamWithOneTiredOnField(condition int, aggressiveness, cap int) *core.TeamState {
	tired := newRuntime(1, condition)
	fresh := newRuntime(2, 100)
	fresh.OnField = false
	return &core.TeamState{
		Tactics: core.Tactics{RotationAggressiveness: aggressiveness, InterchangeCap: cap},
		OnField: []*core.PlayerRuntime{tired},
		Bench:   []*core.PlayerRuntime{fresh},
	}
}

func TestTickSwapsWhenBelowThreshold(t *testing.T) {
	m := NewManager()
	team := teamWithOneTiredOnField(40, 0, 5) // threshold = 55
	other := &core.TeamState{}

	homeSwapped, awaySwapped := m.Tick(team, other)
	require.True(t, homeSwapped)
	assert.False(t, awaySwapped)

	assert.False(t, team.OnField[0] == team.Bench[0])
	assert.Equal(t, 1, team.InterchangesUsed)
	assert.True(t, team.OnField[0].OnField)
	assert.False(t, team.Bench[0].OnField)
}

func TestTickDoesNotSwapAboveThreshold(t *testing.T) {
	m := NewManager()
	team := teamWithOneTiredOnField(90, 0, 5)
	other := &core.TeamState{}

	homeSwapped, _ := m.Tick(team, other)
	assert.False(t, homeSwapped)
	assert.Equal(t, 0, team.InterchangesUsed)
}

func TestTickRespectsInterchangeCap(t *testing.T) {
	m := NewManager()
	team := teamWithOneTiredOnField(10, 0, 0) // cap exhausted immediately
	other := &core.TeamState{}

	homeSwapped, _ := m.Tick(team, other)
	assert.False(t, homeSwapped)
}

func TestTickSkipsInjuredOutTiredPlayer(t *testing.T) {
	m := NewManager()
	team := teamWithOneTiredOnField(10, 0, 5)
	team.OnField[0].InjuredOut = true
	other := &core.TeamState{}

	homeSwapped, _ := m.Tick(team, other)
	assert.False(t, homeSwapped)
}

func TestTickNoSwapWhenNoBenchAvailable(t *testing.T) {
	m := NewManager()
	team := teamWithOneTiredOnField(10, 0, 5)
	team.Bench[0].InjuredOut = true
	other := &core.TeamState{}

	homeSwapped, _ := m.Tick(team, other)
	assert.False(t, homeSwapped)
}

func TestTickPicksFreshestBenchPlayer(t *testing.T) {
	m := NewManager()
	tired := newRuntime(1, 10)
	weakBench := newRuntime(2, 60)
	weakBench.OnField = false
	strongBench := newRuntime(3, 95)
	strongBench.OnField = false

	team := &core.TeamState{
		Tactics: core.Tactics{InterchangeCap: 5},
		OnField: []*core.PlayerRuntime{tired},
		Bench:   []*core.PlayerRuntime{weakBench, strongBench},
	}
	other := &core.TeamState{}

	m.Tick(team, other)
	assert.Equal(t, strongBench, team.OnField[0])
}

func TestTickTieBreaksBySecondsSinceRotatedThenCondition(t *testing.T) {
	m := NewManager()
	longerRotated := newRuntime(1, 50)
	longerRotated.SecondsSinceRotated = 600
	shorterRotated := newRuntime(2, 30)
	shorterRotated.SecondsSinceRotated = 300
	bench := newRuntime(3, 100)
	bench.OnField = false

	team := &core.TeamState{
		Tactics: core.Tactics{InterchangeCap: 5},
		OnField: []*core.PlayerRuntime{shorterRotated, longerRotated},
		Bench:   []*core.PlayerRuntime{bench},
	}
	other := &core.TeamState{}

	m.Tick(team, other)
	// longerRotated has the higher SecondsSinceRotated so it is selected as
	// most-tired regardless of its higher condition value.
	assert.False(t, longerRotated.OnField)
	assert.True(t, shorterRotated.OnField)
}

func TestThresholdScalesWithAggressiveness(t *testing.T) {
	assert.Equal(t, 55, threshold(core.Tactics{RotationAggressiveness: 0}))
	assert.Equal(t, 80, threshold(core.Tactics{RotationAggressiveness: 100}))
}
