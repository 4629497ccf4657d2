// Package sim orchestrates double-pendulum runs: fixed-step batch
// integration with metrics and observers, a long-lived Session for
// frame-driven callers, and parallel sweeps over initial conditions.
package sim

import (
	"errors"
	"fmt"

	"github.com/avelk/pendlab/internal/pendulum"
)

// ErrConfig indicates an invalid run configuration.
var ErrConfig = errors.New("sim: invalid config")

// Config controls a batch run.
type Config struct {
	Dt       float64
	Duration float64
	// ValidateState stops the run if integration produces a
	// non-finite state. The core never checks; this is the caller-side
	// finiteness check done between steps.
	ValidateState bool
}

// DefaultConfig matches the presets: 10 simulated seconds at dt = 0.01.
func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		ValidateState: true,
	}
}

func (c Config) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrConfig, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrConfig, c.Duration)
	}
	return nil
}

// Result holds a completed (or aborted) run.
type Result struct {
	States      []pendulum.State
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(s pendulum.State, t float64)
	Value() float64
	Reset()
}

// Observer is notified of every recorded state.
type Observer interface {
	OnStep(s pendulum.State, t float64)
}

// SimError marks where a run went bad.
type SimError struct {
	Step    int
	Time    float64
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
