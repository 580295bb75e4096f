package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/footycoach/matchsim/internal/config"
	"github.com/footycoach/matchsim/internal/db"
	"github.com/footycoach/matchsim/internal/echo"
	"github.com/footycoach/matchsim/internal/ladder"
	"github.com/footycoach/matchsim/internal/repository"
)

// LadderCmd creates the ladder command group.
func LadderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ladder",
		Short: "Competition standings",
		Long:  "Rebuild and inspect a season's ladder from stored match results.",
	}

	cmd.AddCommand(LadderBuildCmd())
	cmd.AddCommand(LadderShowCmd())
	return cmd
}

// LadderBuildCmd creates the `ladder build` command.
func LadderBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [season]",
		Short: "Recompute and persist a season's ladder",
		Args:  cobra.ExactArgs(1),
		RunE:  ladderBuild,
	}
	return cmd
}

// LadderShowCmd creates the `ladder show` command.
func LadderShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [season]",
		Short: "Print a season's saved ladder",
		Args:  cobra.ExactArgs(1),
		RunE:  ladderShow,
	}
	cmd.Flags().Bool("json", false, "Print the ladder as JSON")
	return cmd
}

func ladderBuild(cmd *cobra.Command, args []string) error {
	season, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("error: invalid season %q: %w", args[0], err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("error: failed to load config: %w", err)
	}

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	defer database.Close()

	matchRepo := repository.NewMatchResultRepository(database.DB, nil)
	ladderRepo := repository.NewLadderRepository(database.DB, nil)

	results, err := matchRepo.ListAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("error: failed to list match results: %w", err)
	}

	ladderResults := make([]ladder.Result, len(results))
	for i, r := range results {
		ladderResults[i] = ladder.Result{HomeID: r.HomeID, AwayID: r.AwayID, HomeScore: r.Score}
	}

	entries := ladder.BuildLadder(ladderResults)
	if err := ladderRepo.SaveSnapshot(cmd.Context(), season, entries); err != nil {
		return fmt.Errorf("error: failed to save ladder snapshot: %w", err)
	}

	echo.Successf("✓ Rebuilt ladder for season %d (%d teams)", season, len(entries))
	printLadder(entries)
	return nil
}

func ladderShow(cmd *cobra.Command, args []string) error {
	season, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("error: invalid season %q: %w", args[0], err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("error: failed to load config: %w", err)
	}

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	defer database.Close()

	ladderRepo := repository.NewLadderRepository(database.DB, nil)
	entries, err := ladderRepo.GetSnapshot(cmd.Context(), season)
	if err != nil {
		return fmt.Errorf("error: failed to load ladder snapshot: %w", err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	printLadder(entries)
	return nil
}

func printLadder(entries []ladder.Entry) {
	echo.Header("Ladder")
	for i, e := range entries {
		echo.Infof("%2d. Team %-4d P:%-2d W:%-2d L:%-2d D:%-2d  Pts:%-3d  %%:%6.2f",
			i+1, e.TeamID, e.Played, e.Wins, e.Losses, e.Draws, e.CompetitionPoints, e.Percentage)
	}
}
