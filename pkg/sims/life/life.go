// Package life implements the deterministic half of a Game of Life step:
// neighbor counting over a grid and the birth/survival rule table.
package life

import (
	"fmt"
	"strings"

	"thermal-ca/pkg/core"
)

// Topology selects how neighbors past the grid edge are resolved.
type Topology uint8

const (
	// Torus wraps each edge onto the opposite edge.
	Torus Topology = iota
	// Fixed treats cells outside the grid as permanently dead.
	Fixed
)

func (t Topology) String() string {
	switch t {
	case Torus:
		return "torus"
	case Fixed:
		return "fixed"
	}
	return fmt.Sprintf("Topology(%d)", uint8(t))
}

// ParseTopology accepts "torus" (or "wrap") and "fixed" (or "zero").
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(s) {
	case "", "torus", "wrap":
		return Torus, nil
	case "fixed", "zero":
		return Fixed, nil
	}
	return Torus, fmt.Errorf("unknown topology %q: %w", s, core.ErrInvalidArgument)
}

// CountNeighbors returns, for every cell, the number of live cells among its
// eight neighbors. The result has the grid's row-major layout and each entry
// is in [0, 8].
func CountNeighbors(g *core.Grid, topo Topology) []uint8 {
	w, h := g.W, g.H
	cells := g.Cells()
	counts := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			neighbors := uint8(0)
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if topo == Fixed {
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
					} else {
						nx = (nx + w) % w
						ny = (ny + h) % h
					}
					neighbors += cells[ny*w+nx]
				}
			}
			counts[y*w+x] = neighbors
		}
	}
	return counts
}
