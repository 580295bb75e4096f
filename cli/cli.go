// Package main is the matchsim CLI entrypoint.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/footycoach/matchsim/cmd"
	"github.com/footycoach/matchsim/internal/echo"
)

// RootCmd is the root command for the matchsim CLI.
var RootCmd = &cobra.Command{
	Use:   "matchsim",
	Short: "Australian Rules Football match simulation toolkit",
	Long: echo.HeaderStyle().Render("Matchsim") + "\n\n" +
		"A deterministic, tick-driven match simulation engine, scheduler,\n" +
		"and ladder calculator, served over HTTP and the command line.",
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "Path to a config file (defaults to conf.toml lookup)")

	RootCmd.AddCommand(cmd.ServerCmd())
	RootCmd.AddCommand(cmd.SimulateCmd())
	RootCmd.AddCommand(cmd.ScheduleCmd())
	RootCmd.AddCommand(cmd.LadderCmd())
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		echo.Error(err.Error())
		os.Exit(1)
	}
}
