package telemetry

// eventKind names the category of commentary event a template set is keyed
// on. Ambient events (marks, tackles, clearances) share one "ambient"
// template pool; the phase only changes the {zone} text and the actor drawn.
type eventKind string

const (
	eventGoal         eventKind = "goal"
	eventBehind       eventKind = "behind"
	eventQuarterStart eventKind = "quarter_start"
	eventQuarterEnd   eventKind = "quarter_end"
	eventInjury       eventKind = "injury"
	eventSubstitution eventKind = "substitution"
	eventAmbient      eventKind = "ambient"
)

// templateSet is a small pool of interchangeable phrasings for one event
// kind. One is picked uniformly at random per emitted event so the same
// kind of event doesn't read identically twice in a row.
var templateSet = map[eventKind][]string{
	eventGoal: {
		"{player} goals for {zone}! The margin shifts.",
		"{player} slots it through truly — six points.",
		"GOAL! {player} finishes off a good string of possessions.",
	},
	eventBehind: {
		"{player}'s shot drifts wide for a behind.",
		"Just a behind to {player}, who will want that one back.",
		"{player} rushes it through for one point.",
	},
	eventQuarterStart: {
		"Quarter {quarter} is underway.",
		"The ball is bounced to start quarter {quarter}.",
	},
	eventQuarterEnd: {
		"That's the end of quarter {quarter}.",
		"Siren sounds to close out quarter {quarter}.",
	},
	eventInjury: {
		"{player} is down and receiving attention.",
		"Concern on the ground for {player}.",
		"{player} has pulled up sore after that contest.",
	},
	eventSubstitution: {
		"{player} comes off, {player2} takes their place.",
		"Fresh legs: {player2} replaces {player}.",
	},
	eventAmbient: {
		"{player} takes a strong contested mark.",
		"{player} lays a crunching tackle in the {zone}.",
		"{player} wins the clearance at {time} remaining.",
		"{player} gets a hand to it but can't control it.",
		"{player} and {player2} contest hard at half-back.",
	},
}

// weatherSuffix appends a short clause to a subset of event kinds when the
// match weather is notable, so the same template reads differently in
// different conditions.
var weatherSuffix = map[eventKind]string{
	eventGoal:   " despite the swirling wind",
	eventBehind: " in the tricky crosswind",
	eventAmbient: " as the rain sets in",
}

// ambientProbability is the phase-dependent chance of emitting an ambient
// event on a given tick (spec §4.8).
func ambientProbability(phase string) float64 {
	switch phase {
	case "shot_on_goal":
		return 0.8
	case "center_bounce":
		return 0.5
	case "inside_50":
		return 0.3
	case "open_play":
		return 0.1
	default:
		return 0.05
	}
}
