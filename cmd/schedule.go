package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/footycoach/matchsim/internal/core"
	"github.com/footycoach/matchsim/internal/echo"
	"github.com/footycoach/matchsim/internal/schedule"
)

// ScheduleCmd creates the schedule command group.
func ScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Fixture scheduling",
		Long:  "Build round-robin fixture lists for a set of teams.",
	}

	cmd.AddCommand(ScheduleBuildCmd())
	return cmd
}

// ScheduleBuildCmd creates the `schedule build` command.
func ScheduleBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [team-ids]",
		Short: "Build a round-robin fixture list",
		Long:  "Build a round-robin fixture list from a comma-separated list of team ids.",
		Args:  cobra.ExactArgs(1),
		RunE:  scheduleBuild,
	}

	cmd.Flags().Bool("double", false, "Build a home-and-away double round robin")
	cmd.Flags().Bool("json", false, "Print the fixture list as JSON")
	return cmd
}

func scheduleBuild(cmd *cobra.Command, args []string) error {
	parts := strings.Split(args[0], ",")
	ids := make([]core.TeamID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("error: invalid team id %q: %w", p, err)
		}
		ids = append(ids, core.TeamID(n))
	}
	if len(ids) < 2 {
		return fmt.Errorf("error: at least two team ids are required")
	}

	double, _ := cmd.Flags().GetBool("double")
	fixtures := schedule.BuildRoundRobin(ids, double)

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(fixtures)
	}

	echo.Header("Fixtures")
	round := 0
	for _, f := range fixtures {
		if f.Round != round {
			round = f.Round
			echo.Info(fmt.Sprintf("Round %d", round))
		}
		echo.Infof("  %d vs %d", f.Home, f.Away)
	}
	return nil
}
