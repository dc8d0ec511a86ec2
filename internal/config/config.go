// Package config provides run configuration loading for thermal-ca.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"thermal-ca/internal/logging"
	"thermal-ca/pkg/core"
	"thermal-ca/pkg/sims/life"
)

// SoupPattern is the pattern name that requests a random initial field.
const SoupPattern = "soup"

// Config contains all settings for a simulation run or sweep.
type Config struct {
	Grid    GridConfig    `json:"grid" yaml:"grid"`
	Pattern PatternConfig `json:"pattern" yaml:"pattern"`
	Run     RunConfig     `json:"run" yaml:"run"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// GridConfig describes the field the pattern is placed into.
type GridConfig struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`

	// Topology is "torus" (default) or "fixed".
	Topology string `json:"topology" yaml:"topology"`

	// Rule is B/S notation, e.g. "B3/S23".
	Rule string `json:"rule" yaml:"rule"`
}

// PatternConfig selects the initial configuration.
type PatternConfig struct {
	// Name is a registered pattern or "soup" for a random field.
	Name string `json:"name" yaml:"name"`

	// X and Y place the pattern's top-left corner when Center is false.
	X      int  `json:"x" yaml:"x"`
	Y      int  `json:"y" yaml:"y"`
	Center bool `json:"center" yaml:"center"`

	// Density is the live-cell probability for "soup".
	Density float64 `json:"density,omitempty" yaml:"density,omitempty"`
}

// RunConfig controls the driver.
type RunConfig struct {
	Seed         int64     `json:"seed" yaml:"seed"`
	Steps        int       `json:"steps" yaml:"steps"`
	Temperatures []float64 `json:"temperatures" yaml:"temperatures"`

	// SnapshotEvery records every n-th grid; 0 disables snapshots.
	SnapshotEvery int `json:"snapshot_every" yaml:"snapshot_every"`

	// Workers bounds concurrent temperature runs; 0 uses every CPU.
	Workers int `json:"workers" yaml:"workers"`

	// BurnIn is the number of leading steps excluded from summary statistics.
	BurnIn int `json:"burn_in" yaml:"burn_in"`
}

// LoggingConfig configures operational logging.
type LoggingConfig struct {
	// Level sets the log verbosity: "warn", "info" (default), "debug" or "trace".
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults: a Gosper glider gun in the
// middle of a 64x64 torus, swept across a handful of temperatures.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Width:    64,
			Height:   64,
			Topology: "torus",
			Rule:     "B3/S23",
		},
		Pattern: PatternConfig{
			Name:    "gosper-gun",
			Center:  true,
			Density: 0.3,
		},
		Run: RunConfig{
			Seed:         42,
			Steps:        500,
			Temperatures: []float64{0, 0.001, 0.01, 0.05, 0.1},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load returns defaults, overlaid by the YAML file at path when path is
// non-empty, then by environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		cfg = fileCfg
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file. Keys missing
// from the file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is valid. Every failure wraps
// core.ErrInvalidArgument.
func (c *Config) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return invalid("grid must be at least 1x1, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if _, err := life.ParseTopology(c.Grid.Topology); err != nil {
		return err
	}
	if _, err := life.ParseRule(c.Grid.Rule); err != nil {
		return err
	}

	if c.Pattern.Name == "" {
		return invalid("pattern name must be set")
	}
	if c.Pattern.Name == SoupPattern && (c.Pattern.Density < 0 || c.Pattern.Density > 1) {
		return invalid("soup density must be between 0 and 1, got %v", c.Pattern.Density)
	}

	if c.Run.Steps < 0 {
		return invalid("steps must be non-negative, got %d", c.Run.Steps)
	}
	if len(c.Run.Temperatures) == 0 {
		return invalid("at least one temperature is required")
	}
	for _, t := range c.Run.Temperatures {
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
			return invalid("temperature must be a finite value >= 0, got %v", t)
		}
	}
	if c.Run.SnapshotEvery < 0 {
		return invalid("snapshot_every must be non-negative, got %d", c.Run.SnapshotEvery)
	}
	if c.Run.BurnIn < 0 {
		return invalid("burn_in must be non-negative, got %d", c.Run.BurnIn)
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return invalid("invalid log level: %s (valid: error, warn, info, debug, trace, or empty for default)", c.Logging.Level)
	}
	return nil
}

// Topology returns the parsed grid topology, defaulting to torus.
func (c *Config) Topology() life.Topology {
	t, _ := life.ParseTopology(c.Grid.Topology)
	return t
}

// Rule returns the parsed rule, defaulting to Conway.
func (c *Config) Rule() life.Rule {
	r, err := life.ParseRule(c.Grid.Rule)
	if err != nil {
		return life.Conway
	}
	return r
}

// Parameters describes the resolved configuration for display.
func (c *Config) Parameters() core.ParameterSnapshot {
	temps := make([]string, len(c.Run.Temperatures))
	for i, t := range c.Run.Temperatures {
		temps[i] = strconv.FormatFloat(t, 'f', -1, 64)
	}
	pattern := []core.Parameter{core.StringParam("pattern.name", "Pattern", c.Pattern.Name)}
	switch {
	case c.Pattern.Name == SoupPattern:
		pattern = append(pattern, core.FloatParam("pattern.density", "Density", c.Pattern.Density))
	case c.Pattern.Center:
		pattern = append(pattern, core.StringParam("pattern.center", "Placement", "centered"))
	default:
		pattern = append(pattern,
			core.IntParam("pattern.x", "Offset X", c.Pattern.X),
			core.IntParam("pattern.y", "Offset Y", c.Pattern.Y),
		)
	}

	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("grid.width", "Width", c.Grid.Width),
				core.IntParam("grid.height", "Height", c.Grid.Height),
				core.StringParam("grid.topology", "Topology", c.Topology().String()),
				core.StringParam("grid.rule", "Rule", c.Rule().String()),
			},
		},
		{Name: "Pattern", Params: pattern},
		{
			Name: "Run",
			Params: []core.Parameter{
				core.Int64Param("run.seed", "Seed", c.Run.Seed),
				core.IntParam("run.steps", "Steps", c.Run.Steps),
				core.StringParam("run.temperatures", "Temperatures", strings.Join(temps, ",")),
				core.IntParam("run.snapshot_every", "Snapshot interval", c.Run.SnapshotEvery),
				core.IntParam("run.workers", "Workers", c.Run.Workers),
				core.IntParam("run.burn_in", "Burn-in steps", c.Run.BurnIn),
			},
		},
	}}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, core.ErrInvalidArgument)...)
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("THERMAL_CA_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Run.Seed = n
		}
	}
	if v := os.Getenv("THERMAL_CA_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Run.Steps = n
		}
	}
	if v := os.Getenv("THERMAL_CA_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Run.Workers = n
		}
	}
	if v := os.Getenv("THERMAL_CA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
