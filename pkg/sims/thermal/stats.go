package thermal

import "math"

// Stats summarises a population series.
type Stats struct {
	MinPopulation    int
	MaxPopulation    int
	MeanPopulation   float64
	StdDevPopulation float64
	MeanChanges      float64
	FinalPopulation  int
	Extinct          bool
}

// Stats summarises the whole run.
func (r *Result) Stats() Stats { return r.StatsFrom(0) }

// StatsFrom summarises steps from index start onwards, which lets callers
// discard a burn-in period. FinalPopulation and Extinct always describe the
// last recorded step.
func (r *Result) StatsFrom(start int) Stats {
	var s Stats
	if n := len(r.Population); n > 0 {
		s.FinalPopulation = r.Population[n-1]
		s.Extinct = s.FinalPopulation == 0
	} else if r.Final != nil {
		s.FinalPopulation = r.Final.Population()
		s.Extinct = s.FinalPopulation == 0
	}

	if start < 0 {
		start = 0
	}
	if start >= len(r.Population) {
		return s
	}
	pop := r.Population[start:]
	changes := r.Changes[start:]

	s.MinPopulation, s.MaxPopulation = pop[0], pop[0]
	var sum, sumChanges float64
	for i, p := range pop {
		s.MinPopulation = min(s.MinPopulation, p)
		s.MaxPopulation = max(s.MaxPopulation, p)
		sum += float64(p)
		sumChanges += float64(changes[i])
	}
	n := float64(len(pop))
	s.MeanPopulation = sum / n
	s.MeanChanges = sumChanges / n

	var sq float64
	for _, p := range pop {
		d := float64(p) - s.MeanPopulation
		sq += d * d
	}
	s.StdDevPopulation = math.Sqrt(sq / n)
	return s
}
