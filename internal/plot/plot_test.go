package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avelk/pendlab/internal/pendulum"
)

func sampleRun() ([]float64, []pendulum.State) {
	times := make([]float64, 50)
	states := make([]pendulum.State, 50)
	for i := range times {
		times[i] = float64(i) * 0.01
		states[i] = pendulum.State{
			Theta1: 1.0 - float64(i)*0.01,
			Theta2: float64(i) * 0.02,
		}
	}
	return times, states
}

func assertImage(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("output file is empty")
	}
}

func TestAngles(t *testing.T) {
	times, states := sampleRun()
	path := filepath.Join(t.TempDir(), "angles.png")

	if err := Angles(path, times, states); err != nil {
		t.Fatalf("angles: %v", err)
	}
	assertImage(t, path)
}

func TestAnglesLengthMismatch(t *testing.T) {
	times, states := sampleRun()
	if err := Angles(filepath.Join(t.TempDir(), "x.png"), times[:10], states); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestEnergy(t *testing.T) {
	times, states := sampleRun()
	path := filepath.Join(t.TempDir(), "energy.png")

	if err := Energy(path, times, states, pendulum.DefaultParams()); err != nil {
		t.Fatalf("energy: %v", err)
	}
	assertImage(t, path)
}

func TestTrace(t *testing.T) {
	_, states := sampleRun()
	path := filepath.Join(t.TempDir(), "trace.png")

	if err := Trace(path, states, pendulum.DefaultParams()); err != nil {
		t.Fatalf("trace: %v", err)
	}
	assertImage(t, path)
}
