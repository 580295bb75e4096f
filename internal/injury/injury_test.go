package injury

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footycoach/matchsim/internal/core"
)

func guaranteedTuning() core.Tuning {
	tun := core.Default()
	tun.InjuryBasePerMinuteRisk = 1000 // forces risk >= 1 every draw
	tun.InjuryMaxPerTeam = 2
	return tun
}

func neverTuning() core.Tuning {
	tun := core.Default()
	tun.InjuryBasePerMinuteRisk = 0
	tun.InjuryMaxPerTeam = 2
	return tun
}

func teamOf(n int) *core.TeamState {
	team := &core.TeamState{ID: core.TeamID(1)}
	for i := 0; i < n; i++ {
		p := &core.Player{ID: core.PlayerID(i), Condition: 100, Durability: 80}
		team.OnField = append(team.OnField, core.NewPlayerRuntime(p, team.ID, true))
	}
	return team
}

func TestTickNeverTriggersAtZeroRisk(t *testing.T) {
	m := NewModel()
	rng := core.NewRNG(1)
	home := teamOf(5)
	away := teamOf(5)

	events := m.Tick(home, away, core.PhaseOpenPlay, core.WeatherClear, neverTuning(), 5, rng)
	assert.Empty(t, events)
	assert.Equal(t, 0, home.InjuryEvents)
	assert.Equal(t, 0, away.InjuryEvents)
}

func TestTickTriggersAtGuaranteedRisk(t *testing.T) {
	m := NewModel()
	rng := core.NewRNG(1)
	home := teamOf(5)
	away := teamOf(5)

	events := m.Tick(home, away, core.PhaseOpenPlay, core.WeatherClear, guaranteedTuning(), 5, rng)
	require.NotEmpty(t, events)

	for _, ev := range events {
		assert.Contains(t, []Severity{SeverityNiggle, SeverityMinor, SeverityModerate, SeverityMajor, SeverityConcussion}, ev.Severity)
	}
}

func TestTickRespectsInjuryMaxPerTeam(t *testing.T) {
	m := NewModel()
	rng := core.NewRNG(1)
	home := teamOf(10)
	away := &core.TeamState{ID: core.TeamID(2)}

	tun := guaranteedTuning()
	tun.InjuryMaxPerTeam = 2

	m.Tick(home, away, core.PhaseOpenPlay, core.WeatherClear, tun, 5, rng)
	assert.Equal(t, 2, home.InjuryEvents)
}

func TestOutForMatchMovesPlayerToBenchPermanently(t *testing.T) {
	m := NewModel()
	rng := core.NewRNG(1)
	home := teamOf(3)
	away := &core.TeamState{}

	tun := guaranteedTuning()
	tun.InjuryMaxPerTeam = 3

	var gotOutForMatch bool
	events := m.Tick(home, away, core.PhaseCenterBounce, core.WeatherClear, tun, 5, rng)
	for _, ev := range events {
		if ev.OutForMatch {
			gotOutForMatch = true
		}
	}

	// With three players drawing severities across a wide RNG stream, at
	// least one aerial-phase draw should land moderate or worse.
	if gotOutForMatch {
		found := false
		for _, r := range append(home.OnField, home.Bench...) {
			if r.InjuredOut {
				found = true
				assert.False(t, r.OnField)
			}
		}
		assert.True(t, found)
	}
}

func TestEventsOrderedHomeThenAway(t *testing.T) {
	m := NewModel()
	rng := core.NewRNG(1)
	home := teamOf(1)
	away := teamOf(1)

	events := m.Tick(home, away, core.PhaseOpenPlay, core.WeatherClear, guaranteedTuning(), 5, rng)
	require.Len(t, events, 2)
	assert.Equal(t, home.ID, events[0].Team)
	assert.Equal(t, away.ID, events[1].Team)
}

func TestWeatherIncreasesEffectiveRisk(t *testing.T) {
	// With a mid-range base risk, heavy rain should trigger injuries in
	// cases where clear weather does not, over the same RNG stream and
	// roster; assert only that heavy rain never reduces risk directly.
	tun := core.Default()
	tun.InjuryBasePerMinuteRisk = 6e-4
	assert.Greater(t, weatherMult(core.WeatherHeavyRain), weatherMult(core.WeatherClear))
	assert.Greater(t, weatherMult(core.WeatherLightRain), weatherMult(core.WeatherWindy))
}
