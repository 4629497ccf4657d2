package pendulum

import "math"

// Derivative maps a state to its time derivative under the given
// parameters: the angle slots carry the angular velocities and the
// velocity slots carry the angular accelerations (first-order reduction
// of the second-order system).
//
// The accelerations come from the Lagrangian dynamics of two point
// masses on massless rigid links, written in mass/length ratios so that
// the shared denominator is 1 + (m2/m1)·sin²(θ1−θ2). That form is
// bounded below by 1 for any positive masses, unlike the raw two-mass
// form whose denominator crosses zero. Derivation: Marendic,
// "The Double Pendulum" tutorial (Univ. of Edinburgh), pp. 30-31.
//
// Pure and branch-free: no wrapping, no finiteness checks. Invalid
// parameters or non-finite states propagate to the output.
func Derivative(s State, p Params) State {
	mu := p.M2 / p.M1
	lambda := p.L2 / p.L1
	gamma := p.Gravity / p.L1

	dtheta := s.Theta1 - s.Theta2
	sd, cd := math.Sin(dtheta), math.Cos(dtheta)
	s1 := math.Sin(s.Theta1)
	s2 := math.Sin(s.Theta2)

	denom := 1 + mu*sd*sd

	// Shared sub-expressions of both accelerations.
	drive := (mu+1)*gamma*s1 + mu*lambda*s.Omega2*s.Omega2*sd
	recoil := s.Omega1*s.Omega1*sd - gamma*s2

	alpha1 := -(drive + mu*cd*recoil) / denom
	alpha2 := ((mu+1)*recoil + cd*drive) / (lambda * denom)

	return State{
		Theta1: s.Omega1,
		Theta2: s.Omega2,
		Omega1: alpha1,
		Omega2: alpha2,
	}
}

// Energy returns the total mechanical energy (kinetic + potential) of
// the state. The potential zero is at the pivot, so a hanging pendulum
// has negative energy. Conserved by the true dynamics; numerical drift
// in this quantity measures integrator quality.
func Energy(s State, p Params) float64 {
	v1sq := p.L1 * p.L1 * s.Omega1 * s.Omega1
	v2sq := v1sq + p.L2*p.L2*s.Omega2*s.Omega2 +
		2*p.L1*p.L2*s.Omega1*s.Omega2*math.Cos(s.Theta1-s.Theta2)

	ke := 0.5*p.M1*v1sq + 0.5*p.M2*v2sq

	y1 := -p.L1 * math.Cos(s.Theta1)
	y2 := y1 - p.L2*math.Cos(s.Theta2)
	pe := p.M1*p.Gravity*y1 + p.M2*p.Gravity*y2

	return ke + pe
}
