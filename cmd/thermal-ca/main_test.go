package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"thermal-ca/internal/config"
	"thermal-ca/pkg/core"
	"thermal-ca/pkg/sims/thermal"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNewVersionCmd(t *testing.T) {
	out, err := execute(t, "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got["version"] != version {
		t.Errorf("version = %q, want %q", got["version"], version)
	}
}

func TestRunGliderJSON(t *testing.T) {
	out, err := execute(t, "run", "--json",
		"--pattern", "glider", "--width", "20", "--height", "20",
		"--x", "1", "--y", "1", "--steps", "100", "--seed", "42", "--temperature", "0")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var res resultJSON
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(res.Population) != 100 {
		t.Fatalf("expected 100 samples, got %d", len(res.Population))
	}
	for i, p := range res.Population {
		if p != 5 {
			t.Fatalf("step %d population %d, want 5", i+1, p)
		}
	}
	if res.Cycle == nil || res.Cycle.Period != 80 {
		t.Fatalf("expected period-80 recurrence, got %+v", res.Cycle)
	}
	if res.Stats.MeanPopulation != 5 {
		t.Errorf("mean population %f", res.Stats.MeanPopulation)
	}
}

func TestRunTextWithFrames(t *testing.T) {
	out, err := execute(t, "run",
		"--pattern", "blinker", "--width", "5", "--height", "5",
		"--steps", "2", "--snapshot-every", "1", "--temperature", "0")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"step\tpopulation\tchanges", "1\t3\t4", "# step 2", "..O..", "recurrence:  period 2 from step 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	_, err := execute(t, "run", "--steps=-5")
	if !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("negative steps: expected ErrInvalidArgument, got %v", err)
	}

	_, err = execute(t, "run", "--pattern", "gosper-gun", "--width", "10", "--height", "10")
	if !errors.Is(err, core.ErrShapeMismatch) {
		t.Errorf("oversized pattern: expected ErrShapeMismatch, got %v", err)
	}

	_, err = execute(t, "run", "--pattern", "nope")
	if !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("unknown pattern: expected ErrInvalidArgument, got %v", err)
	}

	_, err = execute(t, "run", "--temperature=-1")
	if !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("negative temperature: expected ErrInvalidArgument, got %v", err)
	}
}

func TestSweepJSON(t *testing.T) {
	out, err := execute(t, "sweep", "--json", "--series",
		"--pattern", "r-pentomino", "--width", "24", "--height", "24",
		"--steps", "30", "--temperatures", "0,0.05,0.2", "--workers", "2")
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}

	var payload struct {
		Results []resultJSON `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(payload.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(payload.Results))
	}
	for i, want := range []float64{0, 0.05, 0.2} {
		r := payload.Results[i]
		if r.Temperature != want {
			t.Errorf("result %d temperature %v, want %v", i, r.Temperature, want)
		}
		if len(r.Population) != 30 {
			t.Errorf("result %d has %d samples", i, len(r.Population))
		}
		for _, p := range r.Population {
			if p < 0 || p > 24*24 {
				t.Fatalf("population %d out of range", p)
			}
		}
	}
}

func TestSweepTable(t *testing.T) {
	out, err := execute(t, "sweep", "--pattern", "block", "--width", "8", "--height", "8",
		"--steps", "5", "--temperatures", "0,0.1")
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "TEMPERATURE") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "still from step 0") {
		t.Errorf("block at T=0 should be reported still, got %q", lines[1])
	}
}

func TestRunErrorText(t *testing.T) {
	initial := core.MustRows("OO", "OO")
	temps := []float64{0, math.Inf(1), -2}
	results, err := thermal.Sweep(initial, 1, 2, temps, thermal.Options{})
	if err == nil {
		t.Fatal("expected failed runs")
	}
	failed := thermal.RunErrors(err, len(results))

	if got := runErrorText(failed, 0); got != "run failed" {
		t.Errorf("successful run text %q", got)
	}
	for _, i := range []int{1, 2} {
		got := runErrorText(failed, i)
		if !strings.Contains(got, "temperature must be a finite value") {
			t.Errorf("run %d: text %q should carry the run's own error", i, got)
		}
	}
	if !strings.Contains(runErrorText(failed, 1), "+Inf") || !strings.Contains(runErrorText(failed, 2), "-2") {
		t.Errorf("texts must differ per temperature: %q / %q", runErrorText(failed, 1), runErrorText(failed, 2))
	}
}

func TestSimsList(t *testing.T) {
	out, err := execute(t, "sims", "--json")
	if err != nil {
		t.Fatalf("sims: %v", err)
	}
	var payload struct {
		Sims []struct {
			Name  string `json:"name"`
			Width int    `json:"width"`
		} `json:"sims"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	var names []string
	for _, s := range payload.Sims {
		names = append(names, s.Name)
		if s.Width != 64 {
			t.Errorf("%s default width %d, want 64", s.Name, s.Width)
		}
	}
	if strings.Join(names, ",") != "life,thermal" {
		t.Fatalf("unexpected sims %v", names)
	}
}

func TestSimsRun(t *testing.T) {
	out, err := execute(t, "sims", "thermal", "--json",
		"--set", "w=12,h=10,rule=B/S", "--steps", "3", "--seed", "7")
	if err != nil {
		t.Fatalf("sims thermal: %v", err)
	}
	var payload struct {
		Sim        string `json:"sim"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		Population []int  `json:"population"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Sim != "thermal" || payload.Width != 12 || payload.Height != 10 || len(payload.Population) != 3 {
		t.Fatalf("unexpected header %+v", payload)
	}
	for i, p := range payload.Population {
		if p != 0 {
			t.Fatalf("B/S at T=0 must clear the soup, step %d population %d", i+1, p)
		}
	}

	if _, err := execute(t, "sims", "hexlife"); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("unknown sim: expected ErrInvalidArgument, got %v", err)
	}
}

func TestRunEmptyRule(t *testing.T) {
	out, err := execute(t, "run", "--json", "--pattern", "block",
		"--width", "8", "--height", "8", "--steps", "3", "--temperature", "0", "--rule", "B/S")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var res resultJSON
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(res.Population) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(res.Population))
	}
	for i, p := range res.Population {
		if p != 0 {
			t.Fatalf("B/S rule: step %d population %d, want 0", i+1, p)
		}
	}
}

func TestConfigFileAndSoup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := `
grid:
  width: 16
  height: 12
pattern:
  name: soup
  density: 0.5
run:
  seed: 3
  steps: 4
  temperatures: [0.02]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	first, err := execute(t, "run", "--config", path, "--json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	second, err := execute(t, "run", "--config", path, "--json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if first != second {
		t.Fatal("identical configs must produce identical output")
	}

	var res resultJSON
	if err := json.Unmarshal([]byte(first), &res); err != nil {
		t.Fatal(err)
	}
	if res.Temperature != 0.02 || res.Seed != 3 || len(res.Population) != 4 {
		t.Fatalf("config not applied: %+v", res)
	}
}

func TestBuildInitialPlacement(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Width, cfg.Grid.Height = 10, 10
	cfg.Pattern = config.PatternConfig{Name: "block", X: 8, Y: 8}

	g, err := buildInitial(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if g.At(8, 8) != 1 || g.At(9, 9) != 1 || g.Population() != 4 {
		t.Fatalf("block not at (8,8):\n%s", g)
	}

	cfg.Pattern.X = 9
	if _, err := buildInitial(cfg); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestPatternsCmd(t *testing.T) {
	out, err := execute(t, "patterns", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var payload struct {
		Patterns []struct {
			Name string `json:"name"`
		} `json:"patterns"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, p := range payload.Patterns {
		names[p.Name] = true
	}
	for _, want := range []string{"glider", "block", "blinker", "gosper-gun", "r-pentomino"} {
		if !names[want] {
			t.Errorf("patterns output missing %q", want)
		}
	}
}

func TestParamsCmd(t *testing.T) {
	out, err := execute(t, "params", "--seed", "9", "--temperatures", "0,0.5", "--rule", "b36/s23")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"run.seed", "9", "0,0.5", "B36/S23"} {
		if !strings.Contains(out, want) {
			t.Errorf("params output missing %q:\n%s", want, out)
		}
	}
}
