// Package patterns registers well-known seed configurations with the core
// pattern registry. Import it for its side effects.
package patterns

import (
	"fmt"

	"thermal-ca/pkg/core"
)

var (
	glider     = []string{".O.", "..O", "OOO"}
	block      = []string{"OO", "OO"}
	blinker    = []string{"OOO"}
	rPentomino = []string{".OO", "OO.", ".O."}
	gosperGun  = []string{
		"........................O...........",
		"......................O.O...........",
		"............OO......OO............OO",
		"...........O...O....OO............OO",
		"OO........O.....O...OO..............",
		"OO........O...O.OO....O.O...........",
		"..........O.....O.......O...........",
		"...........O...O....................",
		"............OO......................",
	}
)

func init() {
	register("glider", glider)
	register("block", block)
	register("blinker", blinker)
	register("r-pentomino", rPentomino)
	register("gosper-gun", gosperGun)
}

func register(name string, rows []string) {
	core.RegisterPattern(name, func() *core.Grid { return core.MustRows(rows...) })
}

// Centered returns a w*h field with p placed at its centre.
func Centered(w, h int, p *core.Grid) (*core.Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("field %dx%d: %w", w, h, core.ErrInvalidArgument)
	}
	g := core.NewGrid(w, h)
	if err := g.Place(p, (w-p.W)/2, (h-p.H)/2); err != nil {
		return nil, err
	}
	return g, nil
}

// At returns a w*h field with p's top-left corner at (x, y).
func At(w, h int, p *core.Grid, x, y int) (*core.Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("field %dx%d: %w", w, h, core.ErrInvalidArgument)
	}
	g := core.NewGrid(w, h)
	if err := g.Place(p, x, y); err != nil {
		return nil, err
	}
	return g, nil
}
