// Package selector implements the bucket-and-rebalance auto-selection
// algorithm (spec §4.6): given a roster, produce a deterministic 22-on-field
// / 4-bench split with every positional bucket covered.
package selector

import (
	"fmt"
	"sort"

	"github.com/footycoach/matchsim/internal/core"
)

// OnFieldTarget and BenchTarget are the fixed squad-shape constants spec
// §4.6 names.
const (
	OnFieldTarget = 22
	BenchTarget   = 4
)

// minPerBucket is the minimum number of starters the selector guarantees
// for each positional bucket before filling the remainder by overall
// rating, so a roster heavy in one line never starts with an empty line.
var minPerBucket = map[core.Bucket]int{
	core.BucketDefender:   6,
	core.BucketMidfielder: 8,
	core.BucketForward:    6,
	core.BucketRuck:       1,
}

// Select splits roster into on-field and bench runtimes for teamID. It is a
// pure function of roster's contents and order: selection is by overall
// rating descending, tie-broken by ascending player ID, so the same roster
// always yields the same split.
func Select(teamID core.TeamID, roster []*core.Player) (onField, bench []*core.PlayerRuntime, err error) {
	if len(roster) < OnFieldTarget+BenchTarget {
		return nil, nil, fmt.Errorf("selector: roster has %d players, need at least %d", len(roster), OnFieldTarget+BenchTarget)
	}

	sorted := append([]*core.Player{}, roster...)
	sort.Slice(sorted, func(i, j int) bool {
		oi, oj := sorted[i].Overall(), sorted[j].Overall()
		if oi != oj {
			return oi > oj
		}
		return sorted[i].ID < sorted[j].ID
	})

	byBucket := map[core.Bucket][]*core.Player{}
	for _, p := range sorted {
		b := p.Role.Bucket()
		byBucket[b] = append(byBucket[b], p)
	}

	picked := map[core.PlayerID]bool{}
	var starters []*core.Player

	// Guarantee each bucket's minimum, in a fixed bucket order so ties at
	// the boundary resolve the same way every time.
	for _, b := range []core.Bucket{core.BucketDefender, core.BucketMidfielder, core.BucketForward, core.BucketRuck} {
		need := minPerBucket[b]
		for _, p := range byBucket[b] {
			if need <= 0 {
				break
			}
			if picked[p.ID] {
				continue
			}
			starters = append(starters, p)
			picked[p.ID] = true
			need--
		}
	}

	// Fill the remaining on-field slots by overall rating, independent of
	// bucket.
	for _, p := range sorted {
		if len(starters) >= OnFieldTarget {
			break
		}
		if picked[p.ID] {
			continue
		}
		starters = append(starters, p)
		picked[p.ID] = true
	}
	// Restore overall-rating order among the starters (the bucket pass
	// interleaves buckets, not ratings).
	sort.Slice(starters, func(i, j int) bool {
		oi, oj := starters[i].Overall(), starters[j].Overall()
		if oi != oj {
			return oi > oj
		}
		return starters[i].ID < starters[j].ID
	})

	var benchPlayers []*core.Player
	for _, p := range sorted {
		if len(benchPlayers) >= BenchTarget {
			break
		}
		if picked[p.ID] {
			continue
		}
		benchPlayers = append(benchPlayers, p)
		picked[p.ID] = true
	}

	onField = make([]*core.PlayerRuntime, len(starters))
	for i, p := range starters {
		onField[i] = core.NewPlayerRuntime(p, teamID, true)
	}
	bench = make([]*core.PlayerRuntime, len(benchPlayers))
	for i, p := range benchPlayers {
		bench[i] = core.NewPlayerRuntime(p, teamID, false)
	}
	return onField, bench, nil
}
