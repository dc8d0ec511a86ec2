package core

import "math/rand/v2"

const golden = 0x9e3779b97f4a7c15

// State is an immutable, splittable random state. A State value is consumed by
// splitting it; reusing the same value reproduces the same draws.
type State struct {
	key     uint64
	counter uint64
}

// NewState derives the root state for a seed.
func NewState(seed int64) State {
	k := mix(uint64(seed) + golden)
	return State{key: k, counter: mix(k ^ golden)}
}

// Split returns two independent children of s. By convention the first child
// is carried forward and the second is used for drawing.
func (s State) Split() (State, State) {
	return s.child(0), s.child(1)
}

// Fold derives a child of s keyed by i, disjoint from the children returned by
// Split.
func (s State) Fold(i uint64) State {
	return s.child(i + 2)
}

// Rand returns a generator whose output is fully determined by s.
func (s State) Rand() *rand.Rand {
	return rand.New(rand.NewPCG(s.key, s.counter))
}

// Uniform fills buf with values in [0, 1) drawn from s.
func (s State) Uniform(buf []float64) {
	r := s.Rand()
	for i := range buf {
		buf[i] = r.Float64()
	}
}

func (s State) child(i uint64) State {
	k := mix(s.key ^ mix(s.counter+(i+1)*golden))
	return State{key: k, counter: mix(k + i + 1)}
}

// mix is the splitmix64 finalizer.
func mix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// FillDensity sets each cell of buf to 1 with probability density, else 0.
func FillDensity(r *rand.Rand, buf []uint8, density float64) {
	for i := range buf {
		buf[i] = 0
		if r.Float64() < density {
			buf[i] = 1
		}
	}
}

// Soup returns a w*h grid whose cells are alive with probability density,
// drawn from s.
func Soup(w, h int, density float64, s State) *Grid {
	g := NewGrid(w, h)
	FillDensity(s.Rand(), g.cells, density)
	return g
}
