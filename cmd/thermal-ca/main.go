package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "thermal-ca",
		Short: "Game of Life with temperature-driven noise",
		Long: `thermal-ca runs Conway's Game of Life with a stochastic flip rule.

After each deterministic step every cell is inverted with probability
T*exp(-k/2), where T is the temperature and k the cell's live neighbor
count. T=0 is plain Life; small T keeps patterns from settling.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML run configuration")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: error, warn, info, debug, trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newSweepCmd(),
		newPatternsCmd(),
		newParamsCmd(),
		newSimsCmd(),
	)
	return rootCmd
}
