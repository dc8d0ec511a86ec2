package core

import (
	"fmt"
	"strings"
)

// Grid stores a 2D field of binary cells (0 dead, 1 alive) in row-major
// order. Step functions treat a Grid as immutable and return fresh values;
// only code that builds a grid should call Set or Place.
type Grid struct {
	W, H  int
	cells []uint8
}

// NewGrid allocates an empty grid. Negative dimensions are treated as zero so
// callers can validate with Empty instead of handling a nil grid.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{W: w, H: h, cells: make([]uint8, w*h)}
}

// FromCells wraps a copy of cells as a w*h grid. Any non-zero value is stored
// as alive.
func FromCells(w, h int, cells []uint8) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", w, h, ErrInvalidArgument)
	}
	if len(cells) != w*h {
		return nil, fmt.Errorf("grid %dx%d needs %d cells, got %d: %w", w, h, w*h, len(cells), ErrShapeMismatch)
	}
	g := NewGrid(w, h)
	for i, c := range cells {
		if c != 0 {
			g.cells[i] = 1
		}
	}
	return g, nil
}

// FromRows parses a picture such as ".O.\n..O\nOOO". 'O', '#', '*' and '1' are
// alive; '.', ' ', '_' and '0' are dead. Short rows are padded with dead cells.
func FromRows(rows ...string) (*Grid, error) {
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	if w == 0 || len(rows) == 0 {
		return nil, fmt.Errorf("empty pattern: %w", ErrInvalidArgument)
	}
	g := NewGrid(w, len(rows))
	for y, r := range rows {
		for x, ch := range r {
			switch ch {
			case 'O', '#', '*', '1':
				g.cells[g.Index(x, y)] = 1
			case '.', ' ', '_', '0':
			default:
				return nil, fmt.Errorf("pattern row %d: unexpected %q: %w", y, ch, ErrInvalidArgument)
			}
		}
	}
	return g, nil
}

// MustRows is FromRows for package-level pattern literals.
func MustRows(rows ...string) *Grid {
	g, err := FromRows(rows...)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Empty reports whether the grid has no cells.
func (g *Grid) Empty() bool { return g == nil || g.W == 0 || g.H == 0 }

// Cells exposes the backing slice. Callers must not modify it unless they own
// the grid.
func (g *Grid) Cells() []uint8 { return g.cells }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// In reports whether (x, y) lies inside the grid.
func (g *Grid) In(x, y int) bool { return x >= 0 && y >= 0 && x < g.W && y < g.H }

// At returns the cell at (x, y), or 0 outside the grid.
func (g *Grid) At(x, y int) uint8 {
	if !g.In(x, y) {
		return 0
	}
	return g.cells[g.Index(x, y)]
}

// Set writes a cell. Out-of-range coordinates are ignored.
func (g *Grid) Set(x, y int, alive bool) {
	if !g.In(x, y) {
		return
	}
	var v uint8
	if alive {
		v = 1
	}
	g.cells[g.Index(x, y)] = v
}

// Place copies the live cells of p into g with p's top-left corner at (x, y).
// The pattern must fit entirely inside g.
func (g *Grid) Place(p *Grid, x, y int) error {
	if p.Empty() {
		return fmt.Errorf("place empty pattern: %w", ErrInvalidArgument)
	}
	if x < 0 || y < 0 || x+p.W > g.W || y+p.H > g.H {
		return fmt.Errorf("pattern %dx%d at (%d,%d) does not fit grid %dx%d: %w",
			p.W, p.H, x, y, g.W, g.H, ErrShapeMismatch)
	}
	for py := 0; py < p.H; py++ {
		copy(g.cells[g.Index(x, y+py):g.Index(x+p.W, y+py)], p.cells[p.Index(0, py):p.Index(p.W, py)])
	}
	return nil
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	return &Grid{W: g.W, H: g.H, cells: append([]uint8(nil), g.cells...)}
}

// Equal reports whether both grids have the same shape and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.W != o.W || g.H != o.H {
		return false
	}
	for i, c := range g.cells {
		if o.cells[i] != c {
			return false
		}
	}
	return true
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		n += int(c)
	}
	return n
}

// Diff counts cells whose state differs between g and o. Both grids must have
// the same shape.
func (g *Grid) Diff(o *Grid) int {
	n := 0
	for i, c := range g.cells {
		if o.cells[i] != c {
			n++
		}
	}
	return n
}

// String renders the grid with 'O' for live and '.' for dead cells.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.W + 1) * g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.cells[g.Index(x, y)] != 0 {
				b.WriteByte('O')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
