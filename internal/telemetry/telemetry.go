// Package telemetry defines the sink contract the match engine emits
// snapshots to (spec §4.8) and the aggregate counters accumulated over a
// match's tick loop. The engine holds a borrowed Sink reference and never
// owns it — there is no event-callback inheritance here, unlike the
// object-oriented telemetry managers this design replaces.
package telemetry

import "github.com/footycoach/matchsim/internal/core"

// MatchSnapshot is the per-tick state spec §4.8 says a sink receives.
type MatchSnapshot struct {
	Quarter       int
	TimeRemaining int
	Phase         string
	Score         core.Score

	HomeInterchanges int
	AwayInterchanges int
	HomeInjuryEvents int
	AwayInjuryEvents int

	HomeAvgCondition float64
	AwayAvgCondition float64
}

// Sink is the abstract telemetry/commentary consumer. The engine calls
// OnTick after every tick and OnComplete exactly once at match end.
type Sink interface {
	OnTick(snapshot MatchSnapshot)
	OnComplete(snapshot MatchSnapshot)
}

// Accumulator holds the running totals the match context maintains across
// its tick loop (spec §3 Telemetry). It is plain data, pre-sized at zero
// value, never allocated per-tick.
type Accumulator struct {
	Ticks           int
	Inside50Entries int
	Shots           int
	Goals           int
	Behinds         int
}
