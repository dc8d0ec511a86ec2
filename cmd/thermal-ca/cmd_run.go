package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"thermal-ca/pkg/sims/thermal"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate one temperature and print the population series",
		Long: `Run a single simulation and print one line per step with the live-cell
population and the number of cells that changed.

Examples:
  thermal-ca run --pattern glider --width 20 --height 20 --steps 100
  thermal-ca run --temperature 0.05 --steps 1000
  thermal-ca run --config run.yaml --snapshot-every 10 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			quiet, _ := cmd.Flags().GetBool("summary")

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, cfg)

			initial, err := buildInitial(cfg)
			if err != nil {
				return err
			}

			temp := cfg.Run.Temperatures[0]
			logger.Info("running", "temperature", temp, "steps", cfg.Run.Steps, "seed", cfg.Run.Seed, "pattern", cfg.Pattern.Name)
			res, err := thermal.Simulate(initial, cfg.Run.Seed, cfg.Run.Steps, temp, runOptions(cfg, logger))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(toJSON(res, cfg.Run.BurnIn, cfg.Run.SnapshotEvery, !quiet))
			}

			if !quiet {
				fmt.Fprintln(out, "step\tpopulation\tchanges")
				for i, p := range res.Population {
					fmt.Fprintf(out, "%d\t%d\t%d\n", i+1, p, res.Changes[i])
				}
			}
			for i, snap := range res.Snapshots {
				fmt.Fprintf(out, "\n# step %d\n%s", (i+1)*cfg.Run.SnapshotEvery, snap)
			}

			s := res.StatsFrom(cfg.Run.BurnIn)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "temperature: %g\n", res.Temperature)
			fmt.Fprintf(out, "population:  final %d, min %d, max %d, mean %.2f ± %.2f\n",
				s.FinalPopulation, s.MinPopulation, s.MaxPopulation, s.MeanPopulation, s.StdDevPopulation)
			fmt.Fprintf(out, "activity:    %.2f cells/step\n", s.MeanChanges)
			fmt.Fprintf(out, "recurrence:  %s\n", cycleText(res.Cycle))
			return nil
		},
	}

	addRunFlags(cmd)
	cmd.Flags().Float64("temperature", 0, "Temperature (defaults to the first configured temperature)")
	cmd.Flags().Int("burn-in", 0, "Leading steps excluded from summary statistics")
	cmd.Flags().Bool("summary", false, "Print only the summary, not the per-step series")

	return cmd
}
