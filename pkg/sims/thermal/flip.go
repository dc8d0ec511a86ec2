// Package thermal runs Game of Life with a temperature-driven stochastic flip
// applied on top of the deterministic rule.
//
// Each step computes neighbor counts, applies the rule, and then inverts every
// cell whose uniform draw falls below T*exp(-k/2), where k is the cell's
// neighbor count. Randomness is threaded explicitly through core.State values
// so that a run is reproducible from its seed.
package thermal

import (
	"math"

	"thermal-ca/pkg/core"
)

// FlipProbability returns temperature*exp(-neighbors/2). The value is not
// clamped; with temperature > 1 it can exceed 1, in which case the cell always
// flips. Keep temperature <= 1 for the value to remain a probability.
func FlipProbability(neighbors uint8, temperature float64) float64 {
	return temperature * math.Exp(-float64(neighbors)/2)
}

// FlipMask draws one uniform value per cell and marks the cell for flipping
// when the draw is below its flip probability. state is split once: one child
// is used for the draws and the other is returned as the successor. One value
// is drawn for every cell regardless of temperature.
func FlipMask(counts []uint8, temperature float64, state core.State) ([]bool, core.State) {
	next, sub := state.Split()

	var table [9]float64
	for k := range table {
		table[k] = FlipProbability(uint8(k), temperature)
	}

	rng := sub.Rand()
	mask := make([]bool, len(counts))
	for i, k := range counts {
		mask[i] = rng.Float64() < table[k]
	}
	return mask, next
}
