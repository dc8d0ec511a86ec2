package life

import (
	"strconv"

	"thermal-ca/pkg/core"
)

// Config holds parameters for a deterministic Life sim.
type Config struct {
	Width    int
	Height   int
	Rule     Rule
	Topology Topology
	Density  float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 64, Height: 64, Rule: Conway, Topology: Torus, Density: 0.5}
}

// FromMap populates a Config from a string map. Unparseable values keep
// their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := ParseRule(v); err == nil {
			c.Rule = parsed
		}
	}
	if v, ok := cfg["topology"]; ok {
		if parsed, err := ParseTopology(v); err == nil {
			c.Topology = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	return c
}

// Life is a stateful deterministic automaton. Each Step replaces the current
// grid with a fresh one.
type Life struct {
	cfg Config
	cur *core.Grid
}

// New returns an empty Life field with the provided configuration.
func New(cfg Config) *Life {
	return &Life{cfg: cfg, cur: core.NewGrid(cfg.Width, cfg.Height)}
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return l.cur.Size() }

// Cells exposes the current grid values.
func (l *Life) Cells() []uint8 { return l.cur.Cells() }

// Grid returns the current generation.
func (l *Life) Grid() *core.Grid { return l.cur }

// Reset fills the board with a random soup drawn from seed.
func (l *Life) Reset(seed int64) {
	l.cur = core.Soup(l.cfg.Width, l.cfg.Height, l.cfg.Density, core.NewState(seed).Fold(0))
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	l.cur = l.cfg.Rule.Step(l.cur, l.cfg.Topology)
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
