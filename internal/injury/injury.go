// Package injury implements the per-tick injury risk draw and severity
// classification (spec §4.5).
package injury

import (
	"github.com/footycoach/matchsim/internal/core"
)

// Severity is one of the five injury outcome levels spec §4.5 names.
type Severity string

const (
	SeverityNiggle     Severity = "niggle"
	SeverityMinor      Severity = "minor"
	SeverityModerate   Severity = "moderate"
	SeverityMajor      Severity = "major"
	SeverityConcussion Severity = "concussion"
)

// Event records one triggered injury for telemetry/commentary.
type Event struct {
	Player   core.PlayerID
	Team     core.TeamID
	Severity Severity
	OutForMatch bool
}

// Model is the (stateless) injury risk/severity model; all per-match state
// (event counts) lives on core.TeamState.
type Model struct{}

// NewModel constructs the injury model.
func NewModel() *Model { return &Model{} }

// Tick draws once per on-field runtime per team and applies any triggered
// injury. Returns the events triggered this tick, in team order (home
// first) then on-field order, for deterministic telemetry/commentary
// consumption.
func (m *Model) Tick(home, away *core.TeamState, phase core.Phase, weather core.Weather, tuning core.Tuning, tickSeconds int, rng *core.RNG) []Event {
	var events []Event
	events = append(events, m.tickTeam(home, phase, weather, tuning, tickSeconds, rng)...)
	events = append(events, m.tickTeam(away, phase, weather, tuning, tickSeconds, rng)...)
	return events
}

func weatherMult(w core.Weather) float64 {
	switch w {
	case core.WeatherWindy:
		return 1.05
	case core.WeatherLightRain:
		return 1.15
	case core.WeatherHeavyRain:
		return 1.30
	default:
		return 1.0
	}
}

func (m *Model) tickTeam(team *core.TeamState, phase core.Phase, weather core.Weather, tuning core.Tuning, tickSeconds int, rng *core.RNG) []Event {
	var events []Event
	if team.InjuryEvents >= tuning.InjuryMaxPerTeam {
		return events
	}

	// Iterate a snapshot: the on-field slice is mutated by a triggered
	// injury (player moves to bench), and iterating the live slice while
	// mutating it would skip or double-visit entries.
	onField := append([]*core.PlayerRuntime{}, team.OnField...)
	for _, r := range onField {
		if team.InjuryEvents >= tuning.InjuryMaxPerTeam {
			break
		}

		p := r.Player
		risk := tuning.InjuryBasePerMinuteRisk *
			tuning.InjuryPhaseMult[phase] *
			(1 + tuning.InjuryFatigueScale*(1-r.Condition()/100.0)) *
			(1 + tuning.InjuryDurabilityScale*(1-float64(p.Durability)/100.0)) *
			weatherMult(weather) *
			float64(tickSeconds)

		if rng.Float() >= risk {
			continue
		}

		severity := classify(phase, rng)
		event := apply(team, r, severity, rng)
		team.InjuryEvents++
		events = append(events, event)
	}
	return events
}

// classify draws the severity, weighted by phase: aerial contests (center
// bounce, inside 50, shot on goal) skew toward concussion/joint injury
// (moderate+), open play skews toward muscle strains (niggle/minor).
func classify(phase core.Phase, rng *core.RNG) Severity {
	aerial := phase == core.PhaseCenterBounce || phase == core.PhaseInside50 || phase == core.PhaseShotOnGoal

	u := rng.Float()
	if aerial {
		switch {
		case u < 0.45:
			return SeverityNiggle
		case u < 0.70:
			return SeverityMinor
		case u < 0.88:
			return SeverityModerate
		case u < 0.97:
			return SeverityMajor
		default:
			return SeverityConcussion
		}
	}
	switch {
	case u < 0.60:
		return SeverityNiggle
	case u < 0.85:
		return SeverityMinor
	case u < 0.96:
		return SeverityModerate
	case u < 0.995:
		return SeverityMajor
	default:
		return SeverityConcussion
	}
}

func apply(team *core.TeamState, r *core.PlayerRuntime, sev Severity, rng *core.RNG) Event {
	event := Event{Player: r.Player.ID, Team: team.ID, Severity: sev}

	switch sev {
	case SeverityNiggle, SeverityMinor:
		lo, hi := 0.85, 0.95
		r.InjuryMult = lo + rng.Float()*(hi-lo)
		r.ReturnInSeconds = 60 + rng.Int(0, 240)
		benchTemporarily(team, r)
	case SeverityModerate, SeverityMajor:
		lo, hi := 0.5, 0.8
		r.InjuryMult = lo + rng.Float()*(hi-lo)
		r.InjuredOut = true
		event.OutForMatch = true
		benchPermanently(team, r)
	case SeverityConcussion:
		r.InjuryMult = 0.5
		r.InjuredOut = true
		event.OutForMatch = true
		benchPermanently(team, r)
	}
	return event
}

func benchTemporarily(team *core.TeamState, r *core.PlayerRuntime) {
	moveToBench(team, r)
}

func benchPermanently(team *core.TeamState, r *core.PlayerRuntime) {
	moveToBench(team, r)
}

func moveToBench(team *core.TeamState, r *core.PlayerRuntime) {
	idx := -1
	for i, on := range team.OnField {
		if on == r {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	team.OnField = append(team.OnField[:idx], team.OnField[idx+1:]...)
	r.OnField = false
	team.Bench = append(team.Bench, r)
}
