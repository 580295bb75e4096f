package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/footycoach/matchsim/internal/cache"
	"github.com/footycoach/matchsim/internal/core"
	"github.com/footycoach/matchsim/internal/ladder"
)

// LadderRepository persists and retrieves computed ladder snapshots, one
// row per team per season.
type LadderRepository struct {
	db    *sql.DB
	cache *cache.CachedRepository
}

// NewLadderRepository constructs a repository. cacheClient may be nil.
func NewLadderRepository(db *sql.DB, cacheClient *cache.Client) *LadderRepository {
	return &LadderRepository{db: db, cache: cache.NewCachedRepository(cacheClient, "ladder")}
}

// SaveSnapshot replaces a season's ladder with a freshly computed one.
func (r *LadderRepository) SaveSnapshot(ctx context.Context, season int, entries []ladder.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin ladder snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ladder_snapshots WHERE season = $1`, season); err != nil {
		return fmt.Errorf("failed to clear previous ladder snapshot: %w", err)
	}

	query := `
		INSERT INTO ladder_snapshots (
			season, team_id, played, wins, losses, draws,
			points_for, points_against, competition_points, percentage
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, query,
			season, int(e.TeamID), e.Played, e.Wins, e.Losses, e.Draws,
			e.PointsFor, e.PointsAgainst, e.CompetitionPoints, e.Percentage,
		); err != nil {
			return fmt.Errorf("failed to insert ladder row for team %d: %w", e.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	if err := r.cache.Entity.Delete(ctx, strconv.Itoa(season)); err != nil {
		log.Warn("failed to invalidate ladder snapshot cache", "season", season, "error", err)
	}
	return nil
}

// GetSnapshot retrieves one season's ladder, already in standings order.
func (r *LadderRepository) GetSnapshot(ctx context.Context, season int) ([]ladder.Entry, error) {
	seasonKey := strconv.Itoa(season)

	var cached []ladder.Entry
	if r.cache.Entity.Get(ctx, seasonKey, &cached) {
		return cached, nil
	}

	query := `
		SELECT team_id, played, wins, losses, draws,
			points_for, points_against, competition_points, percentage
		FROM ladder_snapshots WHERE season = $1
		ORDER BY competition_points DESC, percentage DESC, points_for DESC, team_id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to get ladder snapshot: %w", err)
	}
	defer rows.Close()

	var entries []ladder.Entry
	for rows.Next() {
		var e ladder.Entry
		var teamID int
		if err := rows.Scan(
			&teamID, &e.Played, &e.Wins, &e.Losses, &e.Draws,
			&e.PointsFor, &e.PointsAgainst, &e.CompetitionPoints, &e.Percentage,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ladder row: %w", err)
		}
		e.TeamID = core.TeamID(teamID)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.cache.Entity.Set(ctx, seasonKey, entries); err != nil {
		log.Warn("failed to cache ladder snapshot", "season", season, "error", err)
	}
	return entries, nil
}
