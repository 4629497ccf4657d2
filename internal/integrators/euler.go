package integrators

import "github.com/avelk/pendlab/internal/pendulum"

// Euler is the explicit first-order method, kept only as a drift
// baseline for comparison runs. Its O(dt) per-step error pumps energy
// into the pendulum within seconds at frame-sized steps; it is never
// selected by default.
type Euler struct{}

func (Euler) Name() string { return "euler" }

func (Euler) Step(f Derivative, s pendulum.State, dt float64) pendulum.State {
	return s.Add(f(s).Scale(dt))
}
