// Package integrators provides fixed-step integration methods over the
// pendulum state. Methods are pure: each Step maps (state, dt) to the
// next state through a caller-supplied derivative function and performs
// no validation, no allocation beyond the returned value, and no
// retries. Non-finite inputs propagate.
package integrators

import (
	"fmt"

	"github.com/avelk/pendlab/internal/pendulum"
)

// Derivative evaluates the instantaneous time derivative of a state.
type Derivative func(pendulum.State) pendulum.State

// Method advances a state by one fixed step. dt = 0 is an exact no-op
// and negative dt integrates backward in time.
type Method interface {
	Name() string
	Step(f Derivative, s pendulum.State, dt float64) pendulum.State
}

// New returns the named method. Known names: "rk4", "euler".
func New(name string) (Method, error) {
	switch name {
	case "rk4":
		return RK4{}, nil
	case "euler":
		return Euler{}, nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}
