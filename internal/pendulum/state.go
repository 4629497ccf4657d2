package pendulum

import "math"

// State is the dynamical state of the double pendulum at an instant:
// the two link angles and their angular velocities. It is a plain value
// type; operations return new values and never mutate the receiver.
type State struct {
	Theta1 float64
	Theta2 float64
	Omega1 float64
	Omega2 float64
}

// Scale multiplies every component by k.
func (s State) Scale(k float64) State {
	return State{
		Theta1: s.Theta1 * k,
		Theta2: s.Theta2 * k,
		Omega1: s.Omega1 * k,
		Omega2: s.Omega2 * k,
	}
}

// Div divides every component by k. The caller must guarantee k is
// nonzero; a zero divisor produces non-finite components.
func (s State) Div(k float64) State {
	return State{
		Theta1: s.Theta1 / k,
		Theta2: s.Theta2 / k,
		Omega1: s.Omega1 / k,
		Omega2: s.Omega2 / k,
	}
}

// Add returns the component-wise sum of s and o.
func (s State) Add(o State) State {
	return State{
		Theta1: s.Theta1 + o.Theta1,
		Theta2: s.Theta2 + o.Theta2,
		Omega1: s.Omega1 + o.Omega1,
		Omega2: s.Omega2 + o.Omega2,
	}
}

// Sub returns the component-wise difference s - o.
func (s State) Sub(o State) State {
	return State{
		Theta1: s.Theta1 - o.Theta1,
		Theta2: s.Theta2 - o.Theta2,
		Omega1: s.Omega1 - o.Omega1,
		Omega2: s.Omega2 - o.Omega2,
	}
}

// Norm returns the Euclidean norm over all four components.
func (s State) Norm() float64 {
	return math.Sqrt(s.Theta1*s.Theta1 + s.Theta2*s.Theta2 +
		s.Omega1*s.Omega1 + s.Omega2*s.Omega2)
}

// IsFinite reports whether every component is a finite real number.
// The step path never calls this; it is for callers that want to check
// output after the fact.
func (s State) IsFinite() bool {
	for _, v := range [4]float64{s.Theta1, s.Theta2, s.Omega1, s.Omega2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Vector returns the components in storage order
// (theta1, theta2, omega1, omega2), for writers that want columns.
func (s State) Vector() [4]float64 {
	return [4]float64{s.Theta1, s.Theta2, s.Omega1, s.Omega2}
}
