// Package ladder aggregates match results into standings (spec §4.10).
package ladder

import (
	"sort"

	"github.com/footycoach/matchsim/internal/core"
)

// Result is the minimal match outcome the ladder consumes: enough to
// attribute a win/loss/draw and points for/against to each side.
type Result struct {
	HomeID    core.TeamID
	AwayID    core.TeamID
	HomeScore core.Score
}

// Entry is one team's row on the ladder.
type Entry struct {
	TeamID core.TeamID
	Played int
	Wins   int
	Losses int
	Draws  int

	PointsFor     int
	PointsAgainst int

	CompetitionPoints int
	Percentage        float64
}

// BuildLadder aggregates results into a standings table, sorted by
// competition points desc, percentage desc, points-for desc, team id asc
// (spec §4.10, tie-break tested in §8 scenario 6).
func BuildLadder(results []Result) []Entry {
	byTeam := map[core.TeamID]*Entry{}

	order := func(id core.TeamID) *Entry {
		if e, ok := byTeam[id]; ok {
			return e
		}
		e := &Entry{TeamID: id}
		byTeam[id] = e
		return e
	}

	for _, r := range results {
		home := order(r.HomeID)
		away := order(r.AwayID)

		homePts := r.HomeScore.HomePoints()
		awayPts := r.HomeScore.AwayPoints()

		home.Played++
		away.Played++
		home.PointsFor += homePts
		home.PointsAgainst += awayPts
		away.PointsFor += awayPts
		away.PointsAgainst += homePts

		switch {
		case homePts > awayPts:
			home.Wins++
			home.CompetitionPoints += 4
			away.Losses++
		case awayPts > homePts:
			away.Wins++
			away.CompetitionPoints += 4
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.CompetitionPoints += 2
			away.CompetitionPoints += 2
		}
	}

	entries := make([]Entry, 0, len(byTeam))
	for _, e := range byTeam {
		against := e.PointsAgainst
		if against < 1 {
			against = 1
		}
		e.Percentage = 100 * float64(e.PointsFor) / float64(against)
		entries = append(entries, *e)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.CompetitionPoints != b.CompetitionPoints {
			return a.CompetitionPoints > b.CompetitionPoints
		}
		if a.Percentage != b.Percentage {
			return a.Percentage > b.Percentage
		}
		if a.PointsFor != b.PointsFor {
			return a.PointsFor > b.PointsFor
		}
		return a.TeamID < b.TeamID
	})
	return entries
}
