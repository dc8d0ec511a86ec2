package life

import (
	"fmt"
	"strings"

	"thermal-ca/pkg/core"
)

// Rule is an outer-totalistic birth/survival table. Bit k of Birth is set when
// a dead cell with k live neighbors is born; bit k of Survive is set when a
// live cell with k live neighbors stays alive.
type Rule struct {
	Birth   uint16
	Survive uint16
}

// Conway is the classic B3/S23 rule.
var Conway = Rule{Birth: 1 << 3, Survive: 1<<2 | 1<<3}

// Next returns the next state of a single cell.
func (r Rule) Next(alive bool, neighbors uint8) bool {
	if alive {
		return r.Survive&(1<<neighbors) != 0
	}
	return r.Birth&(1<<neighbors) != 0
}

// Apply evaluates the rule for every cell of g using counts from
// CountNeighbors(g, ...) and returns a new grid. g is not modified.
func (r Rule) Apply(g *core.Grid, counts []uint8) *core.Grid {
	cells := g.Cells()
	if len(counts) != len(cells) {
		panic(fmt.Sprintf("life: %d neighbor counts for %d cells", len(counts), len(cells)))
	}
	next := core.NewGrid(g.W, g.H)
	out := next.Cells()
	for i, c := range cells {
		if r.Next(c == 1, counts[i]) {
			out[i] = 1
		}
	}
	return next
}

// Step counts neighbors and applies the rule in one call.
func (r Rule) Step(g *core.Grid, topo Topology) *core.Grid {
	return r.Apply(g, CountNeighbors(g, topo))
}

// String renders the rule in B/S notation, e.g. "B3/S23".
func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	writeCounts(&b, r.Birth)
	b.WriteString("/S")
	writeCounts(&b, r.Survive)
	return b.String()
}

func writeCounts(b *strings.Builder, mask uint16) {
	for k := 0; k <= 8; k++ {
		if mask&(1<<k) != 0 {
			b.WriteByte(byte('0' + k))
		}
	}
}

// ParseRule parses B/S notation such as "B3/S23" or "B36/S23". The empty
// string yields Conway.
func ParseRule(s string) (Rule, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Conway, nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("rule %q: want B<digits>/S<digits>: %w", s, core.ErrInvalidArgument)
	}
	var r Rule
	var seen [2]bool
	for _, p := range parts {
		if p == "" {
			return Rule{}, fmt.Errorf("rule %q: empty section: %w", s, core.ErrInvalidArgument)
		}
		mask, err := parseCounts(p[1:])
		if err != nil {
			return Rule{}, fmt.Errorf("rule %q: %w", s, err)
		}
		var slot int
		switch p[0] {
		case 'B':
			r.Birth = mask
		case 'S':
			r.Survive = mask
			slot = 1
		default:
			return Rule{}, fmt.Errorf("rule %q: unknown section %q: %w", s, p[0], core.ErrInvalidArgument)
		}
		if seen[slot] {
			return Rule{}, fmt.Errorf("rule %q: section %q given twice: %w", s, p[0], core.ErrInvalidArgument)
		}
		seen[slot] = true
	}
	return r, nil
}

func parseCounts(digits string) (uint16, error) {
	var mask uint16
	for _, d := range digits {
		if d < '0' || d > '8' {
			return 0, fmt.Errorf("neighbor count %q out of range: %w", d, core.ErrInvalidArgument)
		}
		mask |= 1 << (d - '0')
	}
	return mask, nil
}
