package sim

import (
	"context"
	"math"

	"github.com/avelk/pendlab/internal/integrators"
	"github.com/avelk/pendlab/internal/pendulum"
)

// Simulator runs batch integrations of one parameter set with one
// method. Parameters are validated once here; the step loop never
// re-checks them. A Simulator is not safe for concurrent use; run one
// per goroutine (see Sweep).
type Simulator struct {
	params    pendulum.Params
	method    integrators.Method
	deriv     integrators.Derivative
	metrics   []Metric
	observers []Observer
}

// New builds a Simulator, rejecting non-positive or non-finite
// parameters up front.
func New(params pendulum.Params, method integrators.Method) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		params: params,
		method: method,
		deriv: func(s pendulum.State) pendulum.State {
			return pendulum.Derivative(s, params)
		},
	}, nil
}

func (s *Simulator) Params() pendulum.Params { return s.params }

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 for cfg.Duration at fixed cfg.Dt, recording
// every state. Cancelling ctx returns the partial result with the
// context error.
func (s *Simulator) Run(ctx context.Context, x0 pendulum.State, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:  make([]pendulum.State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0
	t := 0.0
	result.States = append(result.States, x)
	result.Times = append(result.Times, t)

	initialEnergy := pendulum.Energy(x, s.params)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		next := s.method.Step(s.deriv, x, cfg.Dt)

		if cfg.ValidateState && !next.IsFinite() {
			result.Errors = append(result.Errors,
				SimError{Step: i, Time: t, Message: "non-finite state"})
			break
		}

		x = next
		t += cfg.Dt
		result.StepsTaken++

		result.States = append(result.States, x)
		result.Times = append(result.Times, t)
	}

	if initialEnergy != 0 {
		final := pendulum.Energy(x, s.params)
		result.EnergyDrift = math.Abs(final-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback integrates without recording, handing each state to
// the callback. Returning false stops the run early.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 pendulum.State, cfg Config, callback func(pendulum.State, float64) bool) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	x := x0
	t := 0.0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(x, t) {
			return nil
		}

		x = s.method.Step(s.deriv, x, cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !x.IsFinite() {
			return SimError{Step: int(t / cfg.Dt), Time: t, Message: "non-finite state"}
		}
	}

	return nil
}
