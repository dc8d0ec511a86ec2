package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"thermal-ca/internal/config"
	"thermal-ca/internal/logging"
	"thermal-ca/pkg/core"
	"thermal-ca/pkg/patterns"
	"thermal-ca/pkg/sims/thermal"
)

// addRunFlags registers the flags shared by run and sweep. Each one overrides
// the matching config value only when set explicitly.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("width", 0, "Grid width")
	cmd.Flags().Int("height", 0, "Grid height")
	cmd.Flags().String("topology", "", "Edge handling: torus or fixed")
	cmd.Flags().String("rule", "", "Rule in B/S notation, e.g. B3/S23")
	cmd.Flags().String("pattern", "", "Initial pattern name, or 'soup' for a random field")
	cmd.Flags().Int("x", 0, "Pattern offset X (disables centering)")
	cmd.Flags().Int("y", 0, "Pattern offset Y (disables centering)")
	cmd.Flags().Float64("density", 0, "Live-cell density for the soup pattern")
	cmd.Flags().Int64("seed", 0, "Random seed")
	cmd.Flags().Int("steps", 0, "Number of steps to simulate")
	cmd.Flags().Int("snapshot-every", 0, "Record every n-th grid (0 disables)")
}

// resolveConfig loads the config file, applies flag overrides and validates
// the result.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Grid.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Grid.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("topology") {
		cfg.Grid.Topology, _ = flags.GetString("topology")
	}
	if flags.Changed("rule") {
		cfg.Grid.Rule, _ = flags.GetString("rule")
	}
	if flags.Changed("pattern") {
		cfg.Pattern.Name, _ = flags.GetString("pattern")
	}
	if flags.Changed("x") || flags.Changed("y") {
		cfg.Pattern.Center = false
		cfg.Pattern.X, _ = flags.GetInt("x")
		cfg.Pattern.Y, _ = flags.GetInt("y")
	}
	if flags.Changed("density") {
		cfg.Pattern.Density, _ = flags.GetFloat64("density")
	}
	if flags.Changed("seed") {
		cfg.Run.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("steps") {
		cfg.Run.Steps, _ = flags.GetInt("steps")
	}
	if flags.Changed("snapshot-every") {
		cfg.Run.SnapshotEvery, _ = flags.GetInt("snapshot-every")
	}
	if flags.Changed("temperature") {
		t, _ := flags.GetFloat64("temperature")
		cfg.Run.Temperatures = []float64{t}
	}
	if flags.Changed("temperatures") {
		cfg.Run.Temperatures, _ = flags.GetFloat64Slice("temperatures")
	}
	if flags.Changed("workers") {
		cfg.Run.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("burn-in") {
		cfg.Run.BurnIn, _ = flags.GetInt("burn-in")
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
}

// buildInitial creates the starting field described by cfg.
func buildInitial(cfg *config.Config) (*core.Grid, error) {
	w, h := cfg.Grid.Width, cfg.Grid.Height
	if cfg.Pattern.Name == config.SoupPattern {
		// Fold keeps the soup's draws disjoint from the run's own lineage.
		return core.Soup(w, h, cfg.Pattern.Density, core.NewState(cfg.Run.Seed).Fold(0)), nil
	}

	p, ok := core.Pattern(cfg.Pattern.Name)
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q (see 'thermal-ca patterns'): %w", cfg.Pattern.Name, core.ErrInvalidArgument)
	}
	if cfg.Pattern.Center {
		return patterns.Centered(w, h, p)
	}
	return patterns.At(w, h, p, cfg.Pattern.X, cfg.Pattern.Y)
}

func runOptions(cfg *config.Config, logger *slog.Logger) thermal.Options {
	rule := cfg.Rule()
	return thermal.Options{
		Stepper: thermal.Stepper{
			Rule:     &rule,
			Topology: cfg.Topology(),
		},
		SnapshotEvery: cfg.Run.SnapshotEvery,
		Workers:       cfg.Run.Workers,
		Logger:        logger,
	}
}
