package core

import (
	"errors"
	"testing"
)

func TestFromRows(t *testing.T) {
	g, err := FromRows(".O.", "..O", "OOO")
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	if g.W != 3 || g.H != 3 {
		t.Fatalf("expected 3x3, got %dx%d", g.W, g.H)
	}
	if g.Population() != 5 {
		t.Fatalf("expected 5 live cells, got %d", g.Population())
	}
	if g.At(1, 0) != 1 || g.At(0, 0) != 0 || g.At(2, 1) != 1 {
		t.Fatalf("unexpected cells:\n%s", g)
	}
	if got := g.String(); got != ".O.\n..O\nOOO\n" {
		t.Fatalf("String() = %q", got)
	}

	if _, err := FromRows("x"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for bad rune, got %v", err)
	}
	if _, err := FromRows(); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty pattern, got %v", err)
	}
}

func TestFromCells(t *testing.T) {
	g, err := FromCells(2, 2, []uint8{0, 5, 1, 0})
	if err != nil {
		t.Fatalf("FromCells: %v", err)
	}
	if g.Cells()[1] != 1 {
		t.Fatal("non-zero cells must normalise to 1")
	}
	if _, err := FromCells(2, 2, []uint8{1}); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
	if _, err := FromCells(0, 2, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestPlace(t *testing.T) {
	field := NewGrid(6, 5)
	block := MustRows("OO", "OO")

	if err := field.Place(block, 4, 3); err != nil {
		t.Fatalf("Place at edge: %v", err)
	}
	if field.Population() != 4 || field.At(5, 4) != 1 || field.At(4, 3) != 1 {
		t.Fatalf("block not placed at (4,3):\n%s", field)
	}

	for _, pos := range [][2]int{{5, 0}, {0, 4}, {-1, 0}, {0, -1}} {
		err := field.Place(block, pos[0], pos[1])
		if !errors.Is(err, ErrShapeMismatch) {
			t.Fatalf("Place at %v: expected ErrShapeMismatch, got %v", pos, err)
		}
	}

	if err := NewGrid(2, 2).Place(NewGrid(3, 1), 0, 0); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch for oversized pattern, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := MustRows("O.", ".O")
	c := g.Clone()
	c.Set(0, 0, false)
	if g.At(0, 0) != 1 {
		t.Fatal("mutating a clone must not affect the original")
	}
	if g.Equal(c) {
		t.Fatal("grids differ after mutation")
	}
	if g.Diff(c) != 1 {
		t.Fatalf("expected diff of 1, got %d", g.Diff(c))
	}
}

func TestWrapAndEmpty(t *testing.T) {
	g := NewGrid(4, 3)
	if x, y := g.Wrap(-1, 3); x != 3 || y != 0 {
		t.Fatalf("Wrap(-1,3) = (%d,%d)", x, y)
	}
	if g.Empty() {
		t.Fatal("4x3 grid is not empty")
	}
	if !NewGrid(0, 3).Empty() || !NewGrid(-2, -2).Empty() {
		t.Fatal("zero-sized grids must report Empty")
	}
	var nilGrid *Grid
	if !nilGrid.Empty() {
		t.Fatal("nil grid must report Empty")
	}
}

func TestPatternRegistry(t *testing.T) {
	RegisterPattern("test-dot", func() *Grid { return MustRows("O") })
	RegisterPattern("", func() *Grid { return nil })

	p, ok := Pattern("test-dot")
	if !ok || p.Population() != 1 {
		t.Fatal("registered pattern not found")
	}
	p.Set(0, 0, false)
	again, _ := Pattern("test-dot")
	if again.Population() != 1 {
		t.Fatal("Pattern must return a fresh grid each call")
	}
	if _, ok := Pattern("missing"); ok {
		t.Fatal("unexpected pattern")
	}
	found := false
	for _, n := range PatternNames() {
		if n == "" {
			t.Fatal("empty names must not register")
		}
		if n == "test-dot" {
			found = true
		}
	}
	if !found {
		t.Fatal("PatternNames missing test-dot")
	}
}
