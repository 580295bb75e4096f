package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/footycoach/matchsim/internal/config"
	"github.com/footycoach/matchsim/internal/core"
	"github.com/footycoach/matchsim/internal/db"
	"github.com/footycoach/matchsim/internal/echo"
	"github.com/footycoach/matchsim/internal/ladder"
	"github.com/footycoach/matchsim/internal/match"
	"github.com/footycoach/matchsim/internal/repository"
	"github.com/footycoach/matchsim/internal/schedule"
	"github.com/footycoach/matchsim/internal/telemetry"
)

// SimulateCmd creates the simulate command group.
func SimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run match simulations",
		Long:  "Simulate one or more matches from a rosters file and store the results.",
	}

	cmd.AddCommand(SimulateMatchCmd())
	cmd.AddCommand(SimulateSeasonCmd())
	return cmd
}

// simulateFile is the on-disk shape `simulate match` reads: two full
// rosters plus the match-level inputs.
type simulateFile struct {
	Round       int           `json:"round"`
	Home        rosterFile    `json:"home"`
	Away        rosterFile    `json:"away"`
	Weather     core.Weather  `json:"weather"`
	QuarterSecs int           `json:"quarter_seconds"`
	Seed        uint64        `json:"seed"`
}

type rosterFile struct {
	ID      int            `json:"team_id"`
	Name    string         `json:"name"`
	Ground  string         `json:"ground"`
	Tactics core.Tactics   `json:"tactics"`
	Players []*core.Player `json:"players"`
}

func (r rosterFile) toRoster() match.Roster {
	return match.Roster{
		ID:      core.TeamID(r.ID),
		Name:    r.Name,
		Ground:  r.Ground,
		Tactics: r.Tactics,
		Players: r.Players,
	}
}

// SimulateMatchCmd creates the `simulate match` command.
func SimulateMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match [file]",
		Short: "Simulate a single match from a roster file",
		Args:  cobra.ExactArgs(1),
		RunE:  simulateMatch,
	}

	cmd.Flags().Bool("commentary", false, "Print generated commentary lines to stdout")
	cmd.Flags().Bool("save", true, "Persist the result to the database")
	return cmd
}

func simulateMatch(cmd *cobra.Command, args []string) error {
	echo.Header("Simulating Match")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("error: failed to read roster file: %w", err)
	}

	var in simulateFile
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("error: failed to parse roster file: %w", err)
	}
	if in.QuarterSecs == 0 {
		in.QuarterSecs = 1200
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("error: failed to load config: %w", err)
	}
	tuning := core.FromOverrides(cfg.Tuning)

	wantCommentary, _ := cmd.Flags().GetBool("commentary")

	var sink *telemetry.CommentarySink
	var telSink telemetry.Sink
	if wantCommentary {
		home := &core.TeamState{ID: core.TeamID(in.Home.ID), Name: in.Home.Name}
		away := &core.TeamState{ID: core.TeamID(in.Away.ID), Name: in.Away.Name}
		sink = telemetry.NewCommentarySink(home, away, in.Weather.Normalize(), in.Seed+1)
		telSink = sink
	}

	matchInput := match.Input{
		Round:       in.Round,
		Home:        in.Home.toRoster(),
		Away:        in.Away.toRoster(),
		Weather:     in.Weather,
		QuarterSecs: in.QuarterSecs,
	}

	result, err := match.PlayMatch(matchInput, in.Seed, tuning, telSink)
	if err != nil {
		return fmt.Errorf("error: simulation failed: %w", err)
	}

	echo.Successf("✓ Final score: %d.%d (%d) – %d.%d (%d)",
		result.Score.HomeGoals, result.Score.HomeBehinds, result.Score.HomePoints(),
		result.Score.AwayGoals, result.Score.AwayBehinds, result.Score.AwayPoints())
	echo.Infof("  Ticks: %d | Inside-50s: %d | Shots: %d", result.TotalTicks, result.Inside50Entries, result.Shots)

	if sink != nil {
		echo.Info("")
		for _, ev := range sink.Events() {
			echo.Info(ev.Text)
		}
	}

	save, _ := cmd.Flags().GetBool("save")
	if !save {
		return nil
	}

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		echo.Infof("⚠ Could not connect to database, skipping save: %v", err)
		return nil
	}
	defer database.Close()

	repo := repository.NewMatchResultRepository(database.DB, nil)
	id, err := repo.Save(cmd.Context(), result)
	if err != nil {
		return fmt.Errorf("error: failed to save result: %w", err)
	}
	echo.Successf("✓ Saved as match result #%d", id)
	return nil
}

// seasonFile is the on-disk shape `simulate season` reads: every team's
// full roster plus the match-level inputs shared across every fixture.
type seasonFile struct {
	Teams            []rosterFile `json:"teams"`
	Weather          core.Weather `json:"weather"`
	QuarterSecs      int          `json:"quarter_seconds"`
	Seed             uint64       `json:"seed"`
	DoubleRoundRobin bool         `json:"double_round_robin"`
}

// SimulateSeasonCmd creates the `simulate season` command.
func SimulateSeasonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "season [file]",
		Short: "Build a round robin and simulate every fixture",
		Long:  "Build a round-robin fixture list from a rosters file, simulate every fixture, and print the resulting ladder.",
		Args:  cobra.ExactArgs(1),
		RunE:  simulateSeason,
	}

	cmd.Flags().Bool("save", true, "Persist each match result to the database")
	return cmd
}

func simulateSeason(cmd *cobra.Command, args []string) error {
	echo.Header("Simulating Season")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("error: failed to read rosters file: %w", err)
	}

	var in seasonFile
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("error: failed to parse rosters file: %w", err)
	}
	if len(in.Teams) < 2 {
		return fmt.Errorf("error: at least two teams are required")
	}
	if in.QuarterSecs == 0 {
		in.QuarterSecs = 1200
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("error: failed to load config: %w", err)
	}
	tuning := core.FromOverrides(cfg.Tuning)

	rosters := make(map[core.TeamID]rosterFile, len(in.Teams))
	ids := make([]core.TeamID, 0, len(in.Teams))
	for _, t := range in.Teams {
		id := core.TeamID(t.ID)
		rosters[id] = t
		ids = append(ids, id)
	}

	fixtures := schedule.BuildRoundRobin(ids, in.DoubleRoundRobin)
	echo.Infof("  %d teams, %d fixtures", len(ids), len(fixtures))

	save, _ := cmd.Flags().GetBool("save")
	var database *db.DB
	var matchRepo *repository.MatchResultRepository
	if save {
		database, err = db.Connect(cfg.Database.URL)
		if err != nil {
			echo.Infof("⚠ Could not connect to database, skipping save: %v", err)
			save = false
		} else {
			defer database.Close()
			matchRepo = repository.NewMatchResultRepository(database.DB, nil)
		}
	}

	var ladderResults []ladder.Result
	for i, f := range fixtures {
		matchInput := match.Input{
			Round:       f.Round,
			Home:        rosters[f.Home].toRoster(),
			Away:        rosters[f.Away].toRoster(),
			Weather:     in.Weather,
			QuarterSecs: in.QuarterSecs,
		}

		result, err := match.PlayMatch(matchInput, in.Seed+uint64(i), tuning, nil)
		if err != nil {
			return fmt.Errorf("error: round %d fixture %d vs %d failed: %w", f.Round, f.Home, f.Away, err)
		}

		echo.Infof("  R%d: %d %d.%d (%d) – %d %d.%d (%d)",
			f.Round, f.Home, result.Score.HomeGoals, result.Score.HomeBehinds, result.Score.HomePoints(),
			f.Away, result.Score.AwayGoals, result.Score.AwayBehinds, result.Score.AwayPoints())

		ladderResults = append(ladderResults, ladder.Result{HomeID: f.Home, AwayID: f.Away, HomeScore: result.Score})

		if matchRepo != nil {
			if _, err := matchRepo.Save(cmd.Context(), result); err != nil {
				return fmt.Errorf("error: failed to save result for round %d: %w", f.Round, err)
			}
		}
	}

	printLadder(ladder.BuildLadder(ladderResults))
	return nil
}
