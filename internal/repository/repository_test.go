package repository

import (
	"context"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/footycoach/matchsim/internal/core"
	"github.com/footycoach/matchsim/internal/db"
	"github.com/footycoach/matchsim/internal/ladder"
	"github.com/footycoach/matchsim/internal/match"
	"github.com/footycoach/matchsim/internal/testutils"
)

func setupTestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	ctx := context.Background()
	projectRoot, err := testutils.GetProjectRoot()
	require.NoError(t, err)

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(projectRoot))

	container, err := testutils.NewPostgresContainer(ctx)
	require.NoError(t, err)

	cleanup := func() {
		os.Chdir(originalDir)
		require.NoError(t, container.Terminate(ctx))
	}

	database, err := db.Connect(container.ConnStr)
	if err != nil {
		cleanup()
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(ctx); err != nil {
		cleanup()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return database, cleanup
}

func sampleResult(round int, home, away core.TeamID) match.Result {
	return match.Result{
		Round:  round,
		HomeID: home,
		AwayID: away,
		Score:  core.Score{HomeGoals: 12, HomeBehinds: 8, AwayGoals: 9, AwayBehinds: 10},

		TotalTicks:      240,
		Inside50Entries: 50,
		Shots:           21,
		Goals:           21,
		Behinds:         18,

		HomeInterchanges: 30,
		AwayInterchanges: 28,
		HomeInjuryEvents: 1,
		AwayInjuryEvents: 0,

		HomeAvgConditionEnd: 61.5,
		AwayAvgConditionEnd: 58.2,
	}
}

func TestMatchResultRepositorySaveAndGetByID(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMatchResultRepository(database.DB, nil)
	ctx := context.Background()

	want := sampleResult(1, 11, 22)
	id, err := repo.Save(ctx, want)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, want.Round, got.Round)
	require.Equal(t, want.HomeID, got.HomeID)
	require.Equal(t, want.AwayID, got.AwayID)
	require.Equal(t, want.Score, got.Score)
	require.Equal(t, want.TotalTicks, got.TotalTicks)
	require.Equal(t, want.HomeInjuryEvents, got.HomeInjuryEvents)
}

func TestMatchResultRepositoryGetByIDMissingReturnsNotFound(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMatchResultRepository(database.DB, nil)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 999999)
	require.Error(t, err)
	require.True(t, core.IsNotFound(err))
}

func TestMatchResultRepositoryListByRound(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMatchResultRepository(database.DB, nil)
	ctx := context.Background()

	_, err := repo.Save(ctx, sampleResult(1, 11, 22))
	require.NoError(t, err)
	_, err = repo.Save(ctx, sampleResult(1, 33, 44))
	require.NoError(t, err)
	_, err = repo.Save(ctx, sampleResult(2, 11, 33))
	require.NoError(t, err)

	round1, err := repo.ListByRound(ctx, 1)
	require.NoError(t, err)
	require.Len(t, round1, 2)

	round2, err := repo.ListByRound(ctx, 2)
	require.NoError(t, err)
	require.Len(t, round2, 1)
}

func TestMatchResultRepositoryListAllOrdersByRoundThenID(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMatchResultRepository(database.DB, nil)
	ctx := context.Background()

	_, err := repo.Save(ctx, sampleResult(2, 11, 22))
	require.NoError(t, err)
	_, err = repo.Save(ctx, sampleResult(1, 33, 44))
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, 1, all[0].Round)
	require.Equal(t, 2, all[1].Round)
}

func TestLadderRepositorySaveAndGetSnapshot(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewLadderRepository(database.DB, nil)
	ctx := context.Background()

	entries := []ladder.Entry{
		{TeamID: 11, Played: 1, Wins: 1, PointsFor: 80, PointsAgainst: 60, CompetitionPoints: 4, Percentage: 133.33},
		{TeamID: 22, Played: 1, Losses: 1, PointsFor: 60, PointsAgainst: 80, CompetitionPoints: 0, Percentage: 75.0},
	}

	require.NoError(t, repo.SaveSnapshot(ctx, 2026, entries))

	got, err := repo.GetSnapshot(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, core.TeamID(11), got[0].TeamID)
	require.Equal(t, 4, got[0].CompetitionPoints)
}

func TestLadderRepositorySaveSnapshotReplacesPrevious(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewLadderRepository(database.DB, nil)
	ctx := context.Background()

	require.NoError(t, repo.SaveSnapshot(ctx, 2026, []ladder.Entry{
		{TeamID: 1, Played: 3, Wins: 3, CompetitionPoints: 12},
	}))
	require.NoError(t, repo.SaveSnapshot(ctx, 2026, []ladder.Entry{
		{TeamID: 2, Played: 1, Wins: 1, CompetitionPoints: 4},
	}))

	got, err := repo.GetSnapshot(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, core.TeamID(2), got[0].TeamID)
}

func TestLadderRepositoryGetSnapshotEmptyForUnknownSeason(t *testing.T) {
	database, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewLadderRepository(database.DB, nil)
	ctx := context.Background()

	got, err := repo.GetSnapshot(ctx, 1999)
	require.NoError(t, err)
	require.Empty(t, got)
}
