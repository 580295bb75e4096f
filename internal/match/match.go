// Package match implements the tick-driven phase resolution loop that is
// the core of the simulation (spec §4.7): four quarters of ticks, each
// running fatigue, rotation, and injury before resolving the current
// phase and advancing the clock.
package match

import (
	"fmt"

	"github.com/footycoach/matchsim/internal/core"
	"github.com/footycoach/matchsim/internal/fatigue"
	"github.com/footycoach/matchsim/internal/injury"
	"github.com/footycoach/matchsim/internal/rotation"
	"github.com/footycoach/matchsim/internal/selector"
	"github.com/footycoach/matchsim/internal/telemetry"
)

// InvalidInputError reports a host-layer error that must be surfaced
// before the tick loop starts (spec §7 InvalidInput): bad team ids or a
// tick/quarter duration relationship that cannot be clamped away.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("match: invalid input: %s", e.Reason)
}

// Roster bundles the per-team inputs a host supplies for one match: team
// identity and tactics plus the full squad the auto-selector picks from.
// The engine never mutates Players — it is a read-only alias (spec §5).
type Roster struct {
	ID      core.TeamID
	Name    string
	Ground  string
	Tactics core.Tactics
	Players []*core.Player
}

// Input is everything play_match needs beyond the RNG/tuning/sink.
type Input struct {
	Round       int
	Home        Roster
	Away        Roster
	Weather     core.Weather
	QuarterSecs int
}

// Result is the value play_match returns: final scores plus the
// aggregate telemetry counters spec §6 names.
type Result struct {
	Round  int
	HomeID core.TeamID
	AwayID core.TeamID
	Score  core.Score

	TotalTicks int

	Inside50Entries int
	Shots           int
	Goals           int
	Behinds         int

	HomeInterchanges int
	AwayInterchanges int
	HomeInjuryEvents int
	AwayInjuryEvents int

	HomeAvgConditionEnd float64
	AwayAvgConditionEnd float64
}

// Context owns everything mutated over the lifetime of one match. It is
// never shared across matches and never outlives play_match's call frame.
type Context struct {
	Round  int
	HomeID core.TeamID
	AwayID core.TeamID

	Home *core.TeamState
	Away *core.TeamState

	Ball  core.BallState
	Score core.Score
	Phase core.Phase

	Quarter       int
	TimeRemaining int

	Weather core.Weather
	Tuning  core.Tuning
	RNG     *core.RNG

	fatigueModel  *fatigue.Model
	rotationModel *rotation.Manager
	injuryModel   *injury.Model

	Telemetry telemetry.Accumulator
}

// PlayMatch runs one complete match and returns its result. sink may be
// nil; when non-nil it receives a snapshot after every tick plus a final
// snapshot at match end (spec §4.8).
func PlayMatch(in Input, seed uint64, tuning core.Tuning, sink telemetry.Sink) (Result, error) {
	if in.Home.ID == in.Away.ID {
		return Result{}, &InvalidInputError{Reason: "home and away team ids must differ"}
	}
	if in.QuarterSecs <= 0 {
		return Result{}, &InvalidInputError{Reason: "quarter_seconds must be positive"}
	}
	tuning.Clamp()
	if tuning.TickSeconds > in.QuarterSecs {
		return Result{}, &InvalidInputError{Reason: "tick_seconds cannot exceed quarter_seconds"}
	}

	in.Home.Tactics.Clamp()
	in.Away.Tactics.Clamp()
	weather := in.Weather.Normalize()

	home := buildTeamState(in.Home)
	away := buildTeamState(in.Away)

	ctx := &Context{
		Round:   in.Round,
		HomeID:  in.Home.ID,
		AwayID:  in.Away.ID,
		Home:    home,
		Away:    away,
		Ball:    core.BallState{PossessionTeam: in.Home.ID},
		Phase:   core.PhaseCenterBounce,
		Quarter: 1,
		Weather: weather,
		Tuning:  tuning,
		RNG:     core.NewRNG(seed),

		fatigueModel:  fatigue.NewModel(),
		rotationModel: rotation.NewManager(),
		injuryModel:   injury.NewModel(),
	}

	quarterSecs := in.QuarterSecs
	tickSecs := tuning.TickSeconds

	for ctx.Quarter = 1; ctx.Quarter <= 4; ctx.Quarter++ {
		ctx.TimeRemaining = quarterSecs
		ctx.Phase = core.PhaseCenterBounce
		for ctx.TimeRemaining > 0 {
			ctx.tick(tickSecs)
			if sink != nil {
				sink.OnTick(ctx.snapshot())
			}
		}
	}

	result := Result{
		Round:  ctx.Round,
		HomeID: ctx.HomeID,
		AwayID: ctx.AwayID,
		Score:  ctx.Score,

		TotalTicks: ctx.Telemetry.Ticks,

		Inside50Entries: ctx.Telemetry.Inside50Entries,
		Shots:           ctx.Telemetry.Shots,
		Goals:           ctx.Telemetry.Goals,
		Behinds:         ctx.Telemetry.Behinds,

		HomeInterchanges: ctx.Home.InterchangesUsed,
		AwayInterchanges: ctx.Away.InterchangesUsed,
		HomeInjuryEvents: ctx.Home.InjuryEvents,
		AwayInjuryEvents: ctx.Away.InjuryEvents,

		HomeAvgConditionEnd: ctx.Home.AverageCondition(),
		AwayAvgConditionEnd: ctx.Away.AverageCondition(),
	}

	if sink != nil {
		sink.OnComplete(ctx.snapshot())
	}
	return result, nil
}

// tick runs the six ordered steps spec §4.7 names for a single tick.
func (ctx *Context) tick(tickSecs int) {
	ctx.fatigueModel.Tick(ctx.Home, ctx.Away, ctx.Phase, tickSecs)

	ctx.rotationModel.Tick(ctx.Home, ctx.Away)

	ctx.injuryModel.Tick(ctx.Home, ctx.Away, ctx.Phase, ctx.Weather, ctx.Tuning, tickSecs, ctx.RNG)

	ctx.resolvePhase()

	ctx.TimeRemaining -= tickSecs
	ctx.Telemetry.Ticks++
}

func (ctx *Context) snapshot() telemetry.MatchSnapshot {
	return telemetry.MatchSnapshot{
		Quarter:       ctx.Quarter,
		TimeRemaining: ctx.TimeRemaining,
		Phase:         string(ctx.Phase),
		Score:         ctx.Score,
		HomeInterchanges: ctx.Home.InterchangesUsed,
		AwayInterchanges: ctx.Away.InterchangesUsed,
		HomeInjuryEvents: ctx.Home.InjuryEvents,
		AwayInjuryEvents: ctx.Away.InjuryEvents,
		HomeAvgCondition: ctx.Home.AverageCondition(),
		AwayAvgCondition: ctx.Away.AverageCondition(),
	}
}

func (ctx *Context) teamFor(id core.TeamID) *core.TeamState {
	if id == ctx.HomeID {
		return ctx.Home
	}
	return ctx.Away
}

func (ctx *Context) opponentOf(id core.TeamID) core.TeamID {
	if id == ctx.HomeID {
		return ctx.AwayID
	}
	return ctx.HomeID
}

// buildTeamState runs the auto-selector over a roster and wraps the
// result in a TeamState. An undersized or empty roster is EmptyRoster
// (spec §7), not InvalidInput: the match proceeds with whatever runtimes
// the selector could produce, and the rating functions fall back to 1.0
// for an empty on-field vector.
func buildTeamState(r Roster) *core.TeamState {
	onField, bench, err := selector.Select(r.ID, r.Players)
	if err != nil {
		onField, bench = fallbackSelect(r.ID, r.Players)
	}
	return &core.TeamState{
		ID:      r.ID,
		Name:    r.Name,
		Ground:  r.Ground,
		Tactics: r.Tactics,
		OnField: onField,
		Bench:   bench,
	}
}

// fallbackSelect handles rosters too small for selector.Select's normal
// bucket-balancing pass: every available player goes on-field (up to the
// target), the rest to the bench, in roster order.
func fallbackSelect(teamID core.TeamID, players []*core.Player) ([]*core.PlayerRuntime, []*core.PlayerRuntime) {
	var onField, bench []*core.PlayerRuntime
	for i, p := range players {
		if i < selector.OnFieldTarget {
			onField = append(onField, core.NewPlayerRuntime(p, teamID, true))
		} else {
			bench = append(bench, core.NewPlayerRuntime(p, teamID, false))
		}
	}
	return onField, bench
}
