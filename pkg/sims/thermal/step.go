package thermal

import (
	"thermal-ca/pkg/core"
	"thermal-ca/pkg/sims/life"
)

// Stepper holds the deterministic half of a step. A nil Rule means Conway, so
// the zero value runs B3/S23 on a torus.
type Stepper struct {
	Rule     *life.Rule
	Topology life.Topology
}

func (s Stepper) rule() life.Rule {
	if s.Rule == nil {
		return life.Conway
	}
	return *s.Rule
}

// Step advances g by one generation at the given temperature and returns the
// new grid with the successor state. g is never modified and identical inputs
// always yield identical outputs.
func (s Stepper) Step(g *core.Grid, state core.State, temperature float64) (*core.Grid, core.State) {
	counts := life.CountNeighbors(g, s.Topology)
	next := s.rule().Apply(g, counts)
	mask, state := FlipMask(counts, temperature, state)

	cells := next.Cells()
	for i, flip := range mask {
		if flip {
			cells[i] ^= 1
		}
	}
	return next, state
}

// Step is Stepper{}.Step: Conway's rule on a torus.
func Step(g *core.Grid, state core.State, temperature float64) (*core.Grid, core.State) {
	return Stepper{}.Step(g, state, temperature)
}
