package main

import (
	"strconv"
	"strings"

	"thermal-ca/pkg/core"
	"thermal-ca/pkg/sims/thermal"
)

type statsJSON struct {
	MinPopulation    int     `json:"min_population"`
	MaxPopulation    int     `json:"max_population"`
	MeanPopulation   float64 `json:"mean_population"`
	StdDevPopulation float64 `json:"stddev_population"`
	MeanChanges      float64 `json:"mean_changes"`
	FinalPopulation  int     `json:"final_population"`
	Extinct          bool    `json:"extinct"`
}

type cycleJSON struct {
	Start  int `json:"start"`
	Period int `json:"period"`
}

type frameJSON struct {
	Step int      `json:"step"`
	Rows []string `json:"rows"`
}

type resultJSON struct {
	Temperature float64     `json:"temperature"`
	Seed        int64       `json:"seed"`
	Steps       int         `json:"steps"`
	Stats       statsJSON   `json:"stats"`
	Cycle       *cycleJSON  `json:"cycle,omitempty"`
	Population  []int       `json:"population,omitempty"`
	Changes     []int       `json:"changes,omitempty"`
	Frames      []frameJSON `json:"frames,omitempty"`
	Error       string      `json:"error,omitempty"`
}

func toJSON(res *thermal.Result, burnIn, snapshotEvery int, series bool) resultJSON {
	s := res.StatsFrom(burnIn)
	out := resultJSON{
		Temperature: res.Temperature,
		Seed:        res.Seed,
		Steps:       res.Steps,
		Stats: statsJSON{
			MinPopulation:    s.MinPopulation,
			MaxPopulation:    s.MaxPopulation,
			MeanPopulation:   s.MeanPopulation,
			StdDevPopulation: s.StdDevPopulation,
			MeanChanges:      s.MeanChanges,
			FinalPopulation:  s.FinalPopulation,
			Extinct:          s.Extinct,
		},
	}
	if res.Cycle != nil {
		out.Cycle = &cycleJSON{Start: res.Cycle.Start, Period: res.Cycle.Period}
	}
	if series {
		out.Population = res.Population
		out.Changes = res.Changes
	}
	for i, snap := range res.Snapshots {
		out.Frames = append(out.Frames, frameJSON{Step: (i + 1) * snapshotEvery, Rows: rows(snap)})
	}
	return out
}

func rows(g *core.Grid) []string {
	return strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")
}

func cycleText(c *thermal.Cycle) string {
	if c == nil {
		return "none"
	}
	if c.Period == 1 {
		return "still from step " + strconv.Itoa(c.Start)
	}
	return "period " + strconv.Itoa(c.Period) + " from step " + strconv.Itoa(c.Start)
}
