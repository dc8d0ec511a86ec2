package core

import (
	"errors"
	"sort"
)

var (
	// ErrInvalidArgument reports a bad step count, grid size, temperature or
	// similar input. Nothing has been simulated when it is returned.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrShapeMismatch reports a pattern or cell buffer that does not fit the
	// configured grid dimensions.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim is a stepped automaton over a binary grid.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames lists registered simulations in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PatternFactory returns a fresh copy of a named seed configuration.
type PatternFactory func() *Grid

var patterns = map[string]PatternFactory{}

// RegisterPattern adds a pattern factory under the provided name.
func RegisterPattern(name string, f PatternFactory) {
	if name == "" || f == nil {
		return
	}
	patterns[name] = f
}

// Pattern builds the named pattern.
func Pattern(name string) (*Grid, bool) {
	f, ok := patterns[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// PatternNames lists registered patterns in sorted order.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
