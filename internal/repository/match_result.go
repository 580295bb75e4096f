// Package repository persists match outputs and ladder snapshots through
// two concrete repository types, grounded on the teacher's repository-per-entity
// pattern but trimmed to the two aggregates this domain produces.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/footycoach/matchsim/internal/cache"
	"github.com/footycoach/matchsim/internal/core"
	"github.com/footycoach/matchsim/internal/match"
)

// MatchResultRepository persists the output of play_match.
type MatchResultRepository struct {
	db    *sql.DB
	cache *cache.CachedRepository
}

// NewMatchResultRepository constructs a repository. cacheClient may be
// nil, in which case every read goes straight to the database.
func NewMatchResultRepository(db *sql.DB, cacheClient *cache.Client) *MatchResultRepository {
	return &MatchResultRepository{db: db, cache: cache.NewCachedRepository(cacheClient, "match_result")}
}

// Save inserts one completed match's result row and returns its id.
func (r *MatchResultRepository) Save(ctx context.Context, result match.Result) (int64, error) {
	query := `
		INSERT INTO match_results (
			round, home_id, away_id,
			home_goals, home_behinds, away_goals, away_behinds,
			total_ticks, inside50_entries, shots,
			home_interchanges, away_interchanges,
			home_injury_events, away_injury_events,
			home_avg_condition_end, away_avg_condition_end
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		result.Round, int(result.HomeID), int(result.AwayID),
		result.Score.HomeGoals, result.Score.HomeBehinds, result.Score.AwayGoals, result.Score.AwayBehinds,
		result.TotalTicks, result.Inside50Entries, result.Shots,
		result.HomeInterchanges, result.AwayInterchanges,
		result.HomeInjuryEvents, result.AwayInjuryEvents,
		result.HomeAvgConditionEnd, result.AwayAvgConditionEnd,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save match result: %w", err)
	}
	if _, err := r.cache.List.InvalidateAll(ctx); err != nil {
		log.Warn("failed to invalidate match result list cache", "error", err)
	}
	return id, nil
}

// GetByID retrieves a single match result by its row id.
func (r *MatchResultRepository) GetByID(ctx context.Context, id int64) (match.Result, error) {
	idKey := strconv.FormatInt(id, 10)

	var cached match.Result
	if r.cache.Entity.Get(ctx, idKey, &cached) {
		return cached, nil
	}

	query := `
		SELECT round, home_id, away_id,
			home_goals, home_behinds, away_goals, away_behinds,
			total_ticks, inside50_entries, shots,
			home_interchanges, away_interchanges,
			home_injury_events, away_injury_events,
			home_avg_condition_end, away_avg_condition_end
		FROM match_results WHERE id = $1
	`
	var res match.Result
	var homeID, awayID int
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&res.Round, &homeID, &awayID,
		&res.Score.HomeGoals, &res.Score.HomeBehinds, &res.Score.AwayGoals, &res.Score.AwayBehinds,
		&res.TotalTicks, &res.Inside50Entries, &res.Shots,
		&res.HomeInterchanges, &res.AwayInterchanges,
		&res.HomeInjuryEvents, &res.AwayInjuryEvents,
		&res.HomeAvgConditionEnd, &res.AwayAvgConditionEnd,
	)
	if err == sql.ErrNoRows {
		return match.Result{}, core.NewNotFoundError("match result", fmt.Sprintf("%d", id))
	}
	if err != nil {
		return match.Result{}, fmt.Errorf("failed to get match result: %w", err)
	}
	res.HomeID = core.TeamID(homeID)
	res.AwayID = core.TeamID(awayID)

	if err := r.cache.Entity.Set(ctx, idKey, res); err != nil {
		log.Warn("failed to cache match result", "id", id, "error", err)
	}
	return res, nil
}

// ListByRound retrieves every result recorded for one round, ordered by
// insertion id (their natural play order).
func (r *MatchResultRepository) ListByRound(ctx context.Context, round int) ([]match.Result, error) {
	query := `
		SELECT round, home_id, away_id,
			home_goals, home_behinds, away_goals, away_behinds,
			total_ticks, inside50_entries, shots,
			home_interchanges, away_interchanges,
			home_injury_events, away_injury_events,
			home_avg_condition_end, away_avg_condition_end
		FROM match_results WHERE round = $1 ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, round)
	if err != nil {
		return nil, fmt.Errorf("failed to list match results: %w", err)
	}
	defer rows.Close()

	var results []match.Result
	for rows.Next() {
		var res match.Result
		var homeID, awayID int
		if err := rows.Scan(
			&res.Round, &homeID, &awayID,
			&res.Score.HomeGoals, &res.Score.HomeBehinds, &res.Score.AwayGoals, &res.Score.AwayBehinds,
			&res.TotalTicks, &res.Inside50Entries, &res.Shots,
			&res.HomeInterchanges, &res.AwayInterchanges,
			&res.HomeInjuryEvents, &res.AwayInjuryEvents,
			&res.HomeAvgConditionEnd, &res.AwayAvgConditionEnd,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}
		res.HomeID = core.TeamID(homeID)
		res.AwayID = core.TeamID(awayID)
		results = append(results, res)
	}
	return results, rows.Err()
}

// ListAll retrieves every recorded result, ordered by round then
// insertion id, for season-wide ladder computation.
func (r *MatchResultRepository) ListAll(ctx context.Context) ([]match.Result, error) {
	query := `
		SELECT round, home_id, away_id,
			home_goals, home_behinds, away_goals, away_behinds,
			total_ticks, inside50_entries, shots,
			home_interchanges, away_interchanges,
			home_injury_events, away_injury_events,
			home_avg_condition_end, away_avg_condition_end
		FROM match_results ORDER BY round, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list match results: %w", err)
	}
	defer rows.Close()

	var results []match.Result
	for rows.Next() {
		var res match.Result
		var homeID, awayID int
		if err := rows.Scan(
			&res.Round, &homeID, &awayID,
			&res.Score.HomeGoals, &res.Score.HomeBehinds, &res.Score.AwayGoals, &res.Score.AwayBehinds,
			&res.TotalTicks, &res.Inside50Entries, &res.Shots,
			&res.HomeInterchanges, &res.AwayInterchanges,
			&res.HomeInjuryEvents, &res.AwayInjuryEvents,
			&res.HomeAvgConditionEnd, &res.AwayAvgConditionEnd,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}
		res.HomeID = core.TeamID(homeID)
		res.AwayID = core.TeamID(awayID)
		results = append(results, res)
	}
	return results, rows.Err()
}
