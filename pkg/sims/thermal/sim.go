package thermal

import (
	"strconv"

	"thermal-ca/pkg/core"
	"thermal-ca/pkg/sims/life"
)

// Sim is a stateful thermal automaton: a grid, the random state the next step
// consumes, a fixed temperature and the deterministic Stepper.
type Sim struct {
	stepper     Stepper
	temperature float64
	initial     *core.Grid
	density     float64
	w, h        int

	cur   *core.Grid
	state core.State
}

// NewSim returns a sim that restarts from a copy of initial on every Reset.
// initial is not modified.
func NewSim(initial *core.Grid, temperature float64, stepper Stepper) *Sim {
	s := &Sim{
		stepper:     stepper,
		temperature: temperature,
		initial:     initial.Clone(),
		w:           initial.W,
		h:           initial.H,
	}
	s.Reset(0)
	return s
}

// NewSoupSim returns a sim that draws a fresh random soup on every Reset.
func NewSoupSim(w, h int, density, temperature float64, stepper Stepper) *Sim {
	s := &Sim{
		stepper:     stepper,
		temperature: temperature,
		density:     density,
		w:           w,
		h:           h,
	}
	s.Reset(0)
	return s
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "thermal" }

// Size returns the grid dimensions.
func (s *Sim) Size() core.Size { return s.cur.Size() }

// Cells exposes the current grid values.
func (s *Sim) Cells() []uint8 { return s.cur.Cells() }

// Grid returns the current generation. Step replaces it rather than writing
// into it, so earlier grids stay valid.
func (s *Sim) Grid() *core.Grid { return s.cur }

// State returns the state the next Step will consume.
func (s *Sim) State() core.State { return s.state }

// Temperature returns the flip temperature.
func (s *Sim) Temperature() float64 { return s.temperature }

// Reset restores the starting grid and restarts the random stream from
// core.NewState(seed). Soup sims draw their board from the Fold(0) child of
// that state, which Step never reaches.
func (s *Sim) Reset(seed int64) {
	s.state = core.NewState(seed)
	if s.initial != nil {
		s.cur = s.initial.Clone()
		return
	}
	s.cur = core.Soup(s.w, s.h, s.density, s.state.Fold(0))
}

// Step advances the simulation by one generation.
func (s *Sim) Step() {
	s.cur, s.state = s.stepper.Step(s.cur, s.state, s.temperature)
}

// SimFromMap builds a soup sim from string options: w, h, density,
// temperature, rule and topology. Unparseable values keep their defaults.
func SimFromMap(cfg map[string]string) *Sim {
	lc := life.FromMap(cfg)
	temperature := 0.0
	if v, ok := cfg["temperature"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && validateTemperature(parsed) == nil {
			temperature = parsed
		}
	}
	rule := lc.Rule
	return NewSoupSim(lc.Width, lc.Height, lc.Density, temperature, Stepper{Rule: &rule, Topology: lc.Topology})
}

func init() {
	core.Register("thermal", func(cfg map[string]string) core.Sim {
		return SimFromMap(cfg)
	})
}
