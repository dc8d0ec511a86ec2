package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"thermal-ca/pkg/sims/thermal"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare several temperatures from the same initial grid and seed",
		Long: `Run the same initial grid once per temperature and summarise each run.

Every run starts from the same random state, so temperatures differ only in
how many of the shared draws fall below their flip probability.

Examples:
  thermal-ca sweep --temperatures 0,0.01,0.05,0.1 --steps 2000
  thermal-ca sweep --burn-in 500 --json --series`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			series, _ := cmd.Flags().GetBool("series")

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, cfg)

			initial, err := buildInitial(cfg)
			if err != nil {
				return err
			}

			logger.Info("sweeping", "temperatures", cfg.Run.Temperatures, "steps", cfg.Run.Steps, "seed", cfg.Run.Seed)
			results, runErr := thermal.Sweep(initial, cfg.Run.Seed, cfg.Run.Steps, cfg.Run.Temperatures, runOptions(cfg, logger))
			if results == nil {
				return runErr
			}

			failed := thermal.RunErrors(runErr, len(results))
			out := cmd.OutOrStdout()
			if jsonOut {
				payload := make([]resultJSON, len(results))
				for i, res := range results {
					if res == nil {
						payload[i] = resultJSON{Temperature: cfg.Run.Temperatures[i], Error: runErrorText(failed, i)}
						continue
					}
					payload[i] = toJSON(res, cfg.Run.BurnIn, cfg.Run.SnapshotEvery, series)
				}
				if err := json.NewEncoder(out).Encode(map[string]any{"results": payload}); err != nil {
					return err
				}
				return runErr
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TEMPERATURE\tFINAL\tMIN\tMAX\tMEAN\tSTDDEV\tACTIVITY\tRECURRENCE")
			for i, res := range results {
				if res == nil {
					fmt.Fprintf(tw, "%g\t-\t-\t-\t-\t-\t-\tfailed: %s\n", cfg.Run.Temperatures[i], runErrorText(failed, i))
					continue
				}
				s := res.StatsFrom(cfg.Run.BurnIn)
				fmt.Fprintf(tw, "%g\t%d\t%d\t%d\t%.2f\t%.2f\t%.2f\t%s\n",
					res.Temperature, s.FinalPopulation, s.MinPopulation, s.MaxPopulation,
					s.MeanPopulation, s.StdDevPopulation, s.MeanChanges, cycleText(res.Cycle))
			}
			if err := tw.Flush(); err != nil {
				return errors.Join(err, runErr)
			}
			return runErr
		},
	}

	addRunFlags(cmd)
	cmd.Flags().Float64Slice("temperatures", nil, "Comma-separated temperatures to compare")
	cmd.Flags().Int("workers", 0, "Maximum concurrent runs (0 uses every CPU)")
	cmd.Flags().Int("burn-in", 0, "Leading steps excluded from summary statistics")
	cmd.Flags().Bool("series", false, "Include per-step series in JSON output")

	return cmd
}

// runErrorText returns the cause of run i, without the run prefix the
// temperature column already shows.
func runErrorText(failed []*thermal.RunError, i int) string {
	if i < len(failed) && failed[i] != nil {
		return failed[i].Err.Error()
	}
	return "run failed"
}
