package thermal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"thermal-ca/internal/logging"
	"thermal-ca/pkg/core"
)

// ErrInvalidArgument and ErrShapeMismatch are the driver's failure kinds.
// Both are reported before any step runs.
var (
	ErrInvalidArgument = core.ErrInvalidArgument
	ErrShapeMismatch   = core.ErrShapeMismatch
)

// Options tunes a run. The zero value runs Conway on a torus, records
// populations only and logs nothing.
type Options struct {
	Stepper Stepper

	// SnapshotEvery records the grid after every n-th step. Zero disables
	// snapshots.
	SnapshotEvery int

	// Workers bounds how many temperatures Sweep runs at once. Values <= 0
	// use runtime.NumCPU().
	Workers int

	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return logging.Discard()
	}
	return o.Logger
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

// Cycle marks the first time a run revisited an earlier grid: the grid after
// step Start+Period equals the grid after step Start (step 0 is the initial
// grid). At temperature 0 this means the run has settled into a still life or
// oscillator of that period.
type Cycle struct {
	Start  int
	Period int
}

// Result is the recorded output of a single run. Population[i] and Changes[i]
// describe the grid produced by step i+1; Changes counts cells that differ
// from the previous grid. Nothing in a Result is modified after the run
// returns.
type Result struct {
	Temperature float64
	Seed        int64
	Steps       int

	Population []int
	Changes    []int
	Snapshots  []*core.Grid

	Final *core.Grid
	State core.State
	Cycle *Cycle
}

// Simulate runs initial for steps generations at one temperature, starting
// from core.NewState(seed). initial is not modified.
func Simulate(initial *core.Grid, seed int64, steps int, temperature float64, opts Options) (*Result, error) {
	if err := validateRun(initial, steps, opts); err != nil {
		return nil, err
	}
	if err := validateTemperature(temperature); err != nil {
		return nil, err
	}
	return run(initial, seed, steps, temperature, opts), nil
}

// Sweep runs initial once per temperature. Runs are independent and execute
// concurrently, bounded by opts.Workers. Every run starts from the same
// core.NewState(seed), so all temperatures see identical uniform draws for
// a given step and cell.
//
// The returned slice is aligned with temperatures. A run that fails
// validation leaves a nil entry and contributes a *RunError to the joined
// error (see RunErrors); other runs are unaffected. Problems shared by every run (grid, steps, an empty
// temperature list) fail the whole sweep before anything executes.
func Sweep(initial *core.Grid, seed int64, steps int, temperatures []float64, opts Options) ([]*Result, error) {
	if err := validateRun(initial, steps, opts); err != nil {
		return nil, err
	}
	if len(temperatures) == 0 {
		return nil, fmt.Errorf("no temperatures to sweep: %w", ErrInvalidArgument)
	}

	results := make([]*Result, len(temperatures))
	errs := make([]error, len(temperatures))

	var g errgroup.Group
	g.SetLimit(opts.workers())
	for i, t := range temperatures {
		g.Go(func() error {
			if err := validateTemperature(t); err != nil {
				errs[i] = &RunError{Index: i, Temperature: t, Err: err}
				return nil
			}
			results[i] = run(initial, seed, steps, t, opts)
			return nil
		})
	}
	_ = g.Wait()

	return results, errors.Join(errs...)
}

// RunError is one failed run of a Sweep.
type RunError struct {
	Index       int
	Temperature float64
	Err         error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %d (T=%g): %v", e.Index, e.Temperature, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// RunErrors extracts the per-run failures from an error returned by Sweep,
// indexed like the temperatures passed in. Entries for runs that succeeded
// are nil. It returns nil if err carries no RunError.
func RunErrors(err error, n int) []*RunError {
	if err == nil {
		return nil
	}
	var found []*RunError
	var walk func(error)
	walk = func(err error) {
		if re, ok := err.(*RunError); ok {
			found = append(found, re)
			return
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				walk(e)
			}
		case interface{ Unwrap() error }:
			if inner := u.Unwrap(); inner != nil {
				walk(inner)
			}
		}
	}
	walk(err)
	if len(found) == 0 {
		return nil
	}

	out := make([]*RunError, n)
	for _, re := range found {
		if re.Index >= 0 && re.Index < n {
			out[re.Index] = re
		}
	}
	return out
}

func validateRun(initial *core.Grid, steps int, opts Options) error {
	if initial.Empty() {
		return fmt.Errorf("initial grid has no cells: %w", ErrInvalidArgument)
	}
	if len(initial.Cells()) != initial.W*initial.H {
		return fmt.Errorf("initial grid %dx%d holds %d cells: %w",
			initial.W, initial.H, len(initial.Cells()), ErrShapeMismatch)
	}
	if steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d: %w", steps, ErrInvalidArgument)
	}
	if opts.SnapshotEvery < 0 {
		return fmt.Errorf("snapshot interval must be non-negative, got %d: %w", opts.SnapshotEvery, ErrInvalidArgument)
	}
	return nil
}

func validateTemperature(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return fmt.Errorf("temperature must be a finite value >= 0, got %v: %w", t, ErrInvalidArgument)
	}
	return nil
}

func run(initial *core.Grid, seed int64, steps int, temperature float64, opts Options) *Result {
	ctx := context.Background()
	log := opts.logger().With("temperature", temperature, "seed", seed)
	rule := opts.Stepper.rule()
	log.Debug("run started",
		"steps", steps,
		"size", fmt.Sprintf("%dx%d", initial.W, initial.H),
		"rule", rule.String(),
		"topology", opts.Stepper.Topology.String(),
	)

	res := &Result{
		Temperature: temperature,
		Seed:        seed,
		Steps:       steps,
		Population:  make([]int, 0, steps),
		Changes:     make([]int, 0, steps),
	}
	if opts.SnapshotEvery > 0 {
		res.Snapshots = make([]*core.Grid, 0, steps/opts.SnapshotEvery)
	}

	sim := NewSim(initial, temperature, opts.Stepper)
	sim.Reset(seed)
	seen := map[uint64]int{xxhash.Sum64(sim.Cells()): 0}
	traced := log.Enabled(ctx, logging.LevelTrace)

	for i := 0; i < steps; i++ {
		prev := sim.Grid()
		sim.Step()
		cur := sim.Grid()
		changes := prev.Diff(cur)

		pop := cur.Population()
		res.Population = append(res.Population, pop)
		res.Changes = append(res.Changes, changes)
		if opts.SnapshotEvery > 0 && (i+1)%opts.SnapshotEvery == 0 {
			res.Snapshots = append(res.Snapshots, cur)
		}

		if seen != nil {
			h := xxhash.Sum64(cur.Cells())
			if at, ok := seen[h]; ok {
				res.Cycle = &Cycle{Start: at, Period: i + 1 - at}
				seen = nil
				log.Debug("grid recurred", "step", i+1, "start", at, "period", res.Cycle.Period)
			} else {
				seen[h] = i + 1
			}
		}

		if traced {
			log.Log(ctx, logging.LevelTrace, "step", "step", i+1, "population", pop, "changes", changes)
		}
	}

	res.Final = sim.Grid()
	res.State = sim.State()

	stats := res.Stats()
	log.Debug("run finished",
		"final_population", stats.FinalPopulation,
		"mean_population", stats.MeanPopulation,
		"mean_changes", stats.MeanChanges,
	)
	return res
}
