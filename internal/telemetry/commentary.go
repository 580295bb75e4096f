package telemetry

import (
	"strconv"
	"strings"

	"github.com/footycoach/matchsim/internal/core"
)

// Event is one rendered commentary line, kept alongside the kind and tick
// it fired on so a host can filter or re-render without re-diffing.
type Event struct {
	Tick int
	Kind string
	Text string
}

// CommentarySink diffs consecutive snapshots to detect goals, behinds,
// quarter transitions, injuries, and substitutions, and layers in
// ambient events drawn with a phase-dependent probability (spec §4.8).
// It owns its own snapshot and event history — the engine only ever
// calls OnTick/OnComplete, never reads this state back.
type CommentarySink struct {
	home *core.TeamState
	away *core.TeamState
	weather core.Weather
	rng *core.RNG

	tick int
	prev MatchSnapshot
	have bool

	events []Event
}

// NewCommentarySink builds a sink bound to the two team rosters so
// ambient events can pick a positionally-plausible actor. rngSeed drives
// the sink's own template/actor draws, independent of the engine's RNG
// stream — the sink is a host-side consumer, not part of the core.
func NewCommentarySink(home, away *core.TeamState, weather core.Weather, rngSeed uint64) *CommentarySink {
	return &CommentarySink{
		home:    home,
		away:    away,
		weather: weather,
		rng:     core.NewRNG(rngSeed),
	}
}

// Events returns the commentary log accumulated so far, in emission order.
func (s *CommentarySink) Events() []Event {
	return s.events
}

// OnTick implements telemetry.Sink.
func (s *CommentarySink) OnTick(snap MatchSnapshot) {
	s.tick++
	if !s.have {
		s.have = true
		s.prev = snap
		s.emit(eventQuarterStart, snap.Quarter, map[string]string{"quarter": strconv.Itoa(snap.Quarter)})
		return
	}
	s.diff(snap)
	s.maybeAmbient(snap)
	s.prev = snap
}

// OnComplete implements telemetry.Sink.
func (s *CommentarySink) OnComplete(snap MatchSnapshot) {
	s.emit(eventQuarterEnd, snap.Quarter, map[string]string{"quarter": strconv.Itoa(snap.Quarter)})
}

func (s *CommentarySink) diff(snap MatchSnapshot) {
	if snap.Quarter != s.prev.Quarter {
		s.emit(eventQuarterEnd, s.prev.Quarter, map[string]string{"quarter": strconv.Itoa(s.prev.Quarter)})
		s.emit(eventQuarterStart, snap.Quarter, map[string]string{"quarter": strconv.Itoa(snap.Quarter)})
	}

	if snap.Score.HomeGoals > s.prev.Score.HomeGoals {
		s.emitScoringActor(eventGoal, s.home, snap)
	}
	if snap.Score.AwayGoals > s.prev.Score.AwayGoals {
		s.emitScoringActor(eventGoal, s.away, snap)
	}
	if snap.Score.HomeBehinds > s.prev.Score.HomeBehinds {
		s.emitScoringActor(eventBehind, s.home, snap)
	}
	if snap.Score.AwayBehinds > s.prev.Score.AwayBehinds {
		s.emitScoringActor(eventBehind, s.away, snap)
	}

	if snap.HomeInjuryEvents > s.prev.HomeInjuryEvents {
		s.emitInjuryActor(s.home, snap)
	}
	if snap.AwayInjuryEvents > s.prev.AwayInjuryEvents {
		s.emitInjuryActor(s.away, snap)
	}

	if snap.HomeInterchanges > s.prev.HomeInterchanges {
		s.emitSubstitution(s.home, snap)
	}
	if snap.AwayInterchanges > s.prev.AwayInterchanges {
		s.emitSubstitution(s.away, snap)
	}
}

func (s *CommentarySink) maybeAmbient(snap MatchSnapshot) {
	if s.rng.Float() >= ambientProbability(snap.Phase) {
		return
	}
	team := s.home
	if s.rng.Float() < 0.5 {
		team = s.away
	}
	actor := s.pickActor(team, snap.Phase)
	if actor == nil {
		return
	}
	actor2 := s.pickActor(team, snap.Phase)
	fields := map[string]string{
		"player":  actor.Player.Name,
		"player2": actorName(actor2),
		"zone":    zoneFor(snap.Phase),
		"time":    strconv.Itoa(snap.TimeRemaining),
	}
	s.emitWithFields(eventAmbient, snap.Quarter, fields)
}

func (s *CommentarySink) emitScoringActor(kind eventKind, team *core.TeamState, snap MatchSnapshot) {
	actor := s.pickForwardActor(team)
	fields := map[string]string{
		"player": actorName(actor),
		"zone":   "the forward line",
	}
	s.emitWithFields(kind, snap.Quarter, fields)
}

func (s *CommentarySink) emitInjuryActor(team *core.TeamState, snap MatchSnapshot) {
	actor := s.pickActor(team, "")
	s.emitWithFields(eventInjury, snap.Quarter, map[string]string{"player": actorName(actor)})
}

func (s *CommentarySink) emitSubstitution(team *core.TeamState, snap MatchSnapshot) {
	out := s.pickActor(team, "")
	in := s.pickActor(team, "")
	s.emitWithFields(eventSubstitution, snap.Quarter, map[string]string{
		"player":  actorName(out),
		"player2": actorName(in),
	})
}

// pickActor draws a runtime from team's on-field vector weighted toward
// the phase's relevant bucket: rucks for center bounce, forwards for
// inside-50/shot-on-goal, otherwise any on-field player.
func (s *CommentarySink) pickActor(team *core.TeamState, phase string) *core.PlayerRuntime {
	if team == nil || len(team.OnField) == 0 {
		return nil
	}
	bucket := bucketFor(phase)
	var candidates []*core.PlayerRuntime
	for _, r := range team.OnField {
		if bucket == "" || r.Player.Role.Bucket() == bucket {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		candidates = team.OnField
	}
	return candidates[s.rng.Int(0, len(candidates))]
}

func (s *CommentarySink) pickForwardActor(team *core.TeamState) *core.PlayerRuntime {
	return s.pickActor(team, "shot_on_goal")
}

func bucketFor(phase string) core.Bucket {
	switch phase {
	case "center_bounce", "stoppage":
		return core.BucketRuck
	case "inside_50", "shot_on_goal":
		return core.BucketForward
	default:
		return ""
	}
}

func zoneFor(phase string) string {
	switch phase {
	case "center_bounce", "stoppage":
		return "the middle"
	case "inside_50", "shot_on_goal":
		return "attacking 50"
	case "kick_in":
		return "defensive 50"
	default:
		return "open play"
	}
}

func actorName(r *core.PlayerRuntime) string {
	if r == nil {
		return "a teammate"
	}
	return r.Player.Name
}

func (s *CommentarySink) emit(kind eventKind, quarter int, fields map[string]string) {
	s.emitWithFields(kind, quarter, fields)
}

func (s *CommentarySink) emitWithFields(kind eventKind, _ int, fields map[string]string) {
	pool := templateSet[kind]
	if len(pool) == 0 {
		return
	}
	tpl := pool[s.rng.Int(0, len(pool))]
	text := render(tpl, fields)
	if s.weather != core.WeatherClear {
		if suffix, ok := weatherSuffix[kind]; ok && s.rng.Float() < 0.5 {
			text += suffix
		}
	}
	s.events = append(s.events, Event{Tick: s.tick, Kind: string(kind), Text: text})
}

func render(tpl string, fields map[string]string) string {
	out := tpl
	for k, v := range fields {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}
