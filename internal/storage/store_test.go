package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/avelk/pendlab/internal/pendulum"
	"github.com/avelk/pendlab/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		States: []pendulum.State{
			{Theta1: 1.0},
			{Theta1: 0.99, Theta2: 0.01, Omega1: -0.2, Omega2: 0.05},
		},
		Times:   []float64{0.0, 0.01},
		Metrics: map[string]float64{"energy_drift": 1.5e-8},
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	params := pendulum.DefaultParams()
	x0 := pendulum.State{Theta1: 1.0}

	runID, err := st.Save(0.01, 10.0, "rk4", params, x0, sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Integrator != "rk4" || meta.Dt != 0.01 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Params != params {
		t.Errorf("params mismatch: %+v", meta.Params)
	}
	if meta.Metrics["energy_drift"] != 1.5e-8 {
		t.Errorf("metrics not preserved: %v", meta.Metrics)
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states: %v", err)
	}
	if len(states) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 rows, got %d/%d", len(states), len(times))
	}
	if math.Abs(states[1].Omega1+0.2) > 1e-12 {
		t.Errorf("state not preserved: %+v", states[1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list empty store: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	params := pendulum.DefaultParams()
	if _, err := st.Save(0.01, 1.0, "rk4", params, pendulum.State{}, sampleResult()); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save(0.01, 1.0, "euler", params, pendulum.State{}, sampleResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{
		ID: "run_1", Integrator: "rk4", Dt: 0.01, Duration: 1.0,
		Params:  pendulum.DefaultParams(),
		Metrics: map[string]float64{"flips": 2},
	}
	states := []pendulum.State{{Theta1: 1}, {Theta1: 0.9}}
	times := []float64{0, 0.01}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, states, times); err != nil {
		t.Fatalf("export: %v", err)
	}

	var out ExportData
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Steps != 2 || out.States[0][0] != 1 {
		t.Errorf("unexpected export: %+v", out)
	}
}

func TestExportCSV(t *testing.T) {
	states := []pendulum.State{{Theta1: 1, Omega2: -2}}
	times := []float64{0}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, states, times); err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "time,theta1,theta2,omega1,omega2" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "-2.000000") {
		t.Errorf("row missing omega2: %s", lines[1])
	}
}
