package integrators

import "github.com/avelk/pendlab/internal/pendulum"

// RK4 is the classical fourth-order Runge-Kutta method: four derivative
// evaluations at interpolated states, combined with 1-2-2-1 weights.
// Local truncation error is O(dt⁵), global error O(dt⁴).
type RK4 struct{}

func (RK4) Name() string { return "rk4" }

func (RK4) Step(f Derivative, s pendulum.State, dt float64) pendulum.State {
	k1 := f(s).Scale(dt)
	k2 := f(s.Add(k1.Scale(0.5))).Scale(dt)
	k3 := f(s.Add(k2.Scale(0.5))).Scale(dt)
	k4 := f(s.Add(k3)).Scale(dt)

	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return s.Add(sum.Div(6))
}
