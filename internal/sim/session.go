package sim

import (
	"github.com/avelk/pendlab/internal/integrators"
	"github.com/avelk/pendlab/internal/pendulum"
)

// Session is the long-lived simulation context for frame-driven
// callers: it owns exactly one current state and replaces it wholesale
// on each Step. The caller supplies dt per tick (typically measured
// wall-clock time scaled by a display speed factor). Multiple Sessions
// are independent; run as many concurrently as needed.
type Session struct {
	params pendulum.Params
	method integrators.Method
	deriv  integrators.Derivative
	state  pendulum.State
	x0     pendulum.State
	t      float64
}

// NewSession validates params and seeds the context with x0.
func NewSession(params pendulum.Params, method integrators.Method, x0 pendulum.State) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		params: params,
		method: method,
		state:  x0,
		x0:     x0,
	}
	s.bindDeriv()
	return s, nil
}

func (s *Session) bindDeriv() {
	p := s.params
	s.deriv = func(x pendulum.State) pendulum.State {
		return pendulum.Derivative(x, p)
	}
}

// Step advances the owned state by dt and returns the new state.
func (s *Session) Step(dt float64) pendulum.State {
	s.state = s.method.Step(s.deriv, s.state, dt)
	s.t += dt
	return s.state
}

func (s *Session) State() pendulum.State   { return s.state }
func (s *Session) Time() float64           { return s.t }
func (s *Session) Params() pendulum.Params { return s.params }

// Energy returns the current mechanical energy.
func (s *Session) Energy() float64 {
	return pendulum.Energy(s.state, s.params)
}

// Positions returns the current Cartesian bob positions.
func (s *Session) Positions() (pendulum.Point, pendulum.Point) {
	return pendulum.Positions(s.state, s.params)
}

// Reset rewinds to the initial state and time zero.
func (s *Session) Reset() {
	s.state = s.x0
	s.t = 0
}

// SetParams swaps the physical parameters mid-flight (live tuning).
// The current state is kept; invalid parameters are rejected.
func (s *Session) SetParams(p pendulum.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	s.bindDeriv()
	return nil
}
