package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "contagion",
		Short: "Turn-based contagion game",
		Long: `contagion spreads a disease across a world map one day at a time.

Each player has one saved game. Place the first infection on a continent,
advance days, and spend the points new infections earn on upgrades that
make the disease spread faster.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before the environment")
	rootCmd.PersistentFlags().String("user", "local", "player id")
	rootCmd.PersistentFlags().StringToString("set", nil, "game overrides (starting_points, points_per_infection)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(),
		newNewGameCmd(),
		newMapCmd(),
		newPlaceCmd(),
		newNextCmd(),
		newUpgradeCmd(),
		newUpgradesCmd(),
		newMapsCmd(),
		newEndCmd(),
		newSweepCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "contagion version %s\n", version)
		},
	}
}
