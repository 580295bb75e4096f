package match

import "github.com/footycoach/matchsim/internal/core"

// resolvePhase runs the resolution function for ctx.Phase, consuming RNG
// draws in exactly the order spec §4.7 defines for that phase so results
// stay reproducible across runs.
func (ctx *Context) resolvePhase() {
	switch ctx.Phase {
	case core.PhaseCenterBounce, core.PhaseStoppage:
		ctx.resolveCenterBounce()
	case core.PhaseOpenPlay:
		ctx.resolveOpenPlay()
	case core.PhaseInside50:
		ctx.resolveInside50()
	case core.PhaseShotOnGoal:
		ctx.resolveShotOnGoal()
	case core.PhaseKickIn:
		ctx.resolveKickIn()
	default:
		ctx.Phase = core.PhaseCenterBounce
	}
}

func (ctx *Context) resolveCenterBounce() {
	isBounce := ctx.Phase == core.PhaseCenterBounce

	h := core.MidfieldRating(ctx.Home.OnField) * (0.9 + 0.2*float64(ctx.Home.Tactics.ContestBias)/100.0)
	a := core.MidfieldRating(ctx.Away.OnField) * (0.9 + 0.2*float64(ctx.Away.Tactics.ContestBias)/100.0)
	if isBounce {
		h *= 1 + ctx.Tuning.HomeGroundAdvantage
	}

	pHome := core.Softmax2(h, a)
	if ctx.RNG.Float() < pHome {
		ctx.Ball = core.BallState{PossessionTeam: ctx.HomeID}
	} else {
		ctx.Ball = core.BallState{PossessionTeam: ctx.AwayID}
	}
	ctx.Phase = core.PhaseOpenPlay
}

func (ctx *Context) resolveOpenPlay() {
	att := ctx.teamFor(ctx.Ball.PossessionTeam)
	def := ctx.teamFor(ctx.opponentOf(ctx.Ball.PossessionTeam))

	base := core.Inside50Quality(att.OnField) - 0.6*core.DefensivePressure(def.OnField) - ctx.Tuning.WeatherProgressPenalty[ctx.Weather]
	pP := core.Clamp01(ctx.Tuning.ProgressBase + base*ctx.Tuning.ProgressScale)

	r := ctx.RNG.Float()
	forwardBand := ctx.Tuning.OpenPlayForwardScale * pP
	switch {
	case r < forwardBand:
		ctx.Ball.Inside50 = true
		ctx.Phase = core.PhaseInside50
		ctx.Telemetry.Inside50Entries++
	case r < forwardBand+ctx.Tuning.OpenPlayContestBand:
		ctx.Phase = core.PhaseStoppage
	default:
		ctx.Ball = core.BallState{PossessionTeam: def.ID}
		ctx.Phase = core.PhaseOpenPlay
	}
}

func (ctx *Context) resolveInside50() {
	att := ctx.teamFor(ctx.Ball.PossessionTeam)
	def := ctx.teamFor(ctx.opponentOf(ctx.Ball.PossessionTeam))

	tactics := att.Tactics
	x := core.Clamp01(0.25+(core.Inside50Quality(att.OnField)-0.5*core.DefensivePressure(def.OnField))/150.0) *
		(0.5 + 0.5*float64(tactics.KickingRisk)/100.0)

	r := ctx.RNG.Float()
	switch {
	case r < x:
		ctx.Phase = core.PhaseShotOnGoal
		ctx.Telemetry.Shots++
	case r < x+ctx.Tuning.Inside50ContestBand:
		ctx.Phase = core.PhaseStoppage
	default:
		ctx.Ball = core.BallState{PossessionTeam: def.ID}
		ctx.Phase = core.PhaseOpenPlay
	}
}

func (ctx *Context) resolveShotOnGoal() {
	att := ctx.teamFor(ctx.Ball.PossessionTeam)
	def := ctx.teamFor(ctx.opponentOf(ctx.Ball.PossessionTeam))

	pGoal := core.Clamp01(ctx.Tuning.ShotBaseGoal + ctx.Tuning.ShotScaleWithQual*core.Inside50Quality(att.OnField)/100.0 -
		ctx.Tuning.WeatherAccuracyPenalty[ctx.Weather])

	u := ctx.RNG.Float()
	switch {
	case u < pGoal:
		ctx.addGoal(att.ID)
		ctx.Ball = core.BallState{PossessionTeam: ctx.HomeID}
		ctx.Phase = core.PhaseCenterBounce
	case u < pGoal+ctx.Tuning.ShotBehindBand:
		ctx.addBehind(att.ID)
		ctx.Ball = core.BallState{PossessionTeam: def.ID}
		ctx.Phase = core.PhaseKickIn
	default:
		ctx.Ball = core.BallState{PossessionTeam: def.ID}
		ctx.Phase = core.PhaseKickIn
	}
}

func (ctx *Context) resolveKickIn() {
	r := ctx.RNG.Float()
	if r < ctx.Tuning.KickInRetainProb {
		ctx.Phase = core.PhaseOpenPlay
		return
	}
	ctx.Ball = core.BallState{PossessionTeam: ctx.opponentOf(ctx.Ball.PossessionTeam)}
	ctx.Phase = core.PhaseOpenPlay
}

func (ctx *Context) addGoal(teamID core.TeamID) {
	if teamID == ctx.HomeID {
		ctx.Score.HomeGoals++
	} else {
		ctx.Score.AwayGoals++
	}
	ctx.Telemetry.Goals++
}

func (ctx *Context) addBehind(teamID core.TeamID) {
	if teamID == ctx.HomeID {
		ctx.Score.HomeBehinds++
	} else {
		ctx.Score.AwayBehinds++
	}
	ctx.Telemetry.Behinds++
}
