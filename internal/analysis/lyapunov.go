package analysis

import (
	"math"

	"github.com/avelk/pendlab/internal/integrators"
	"github.com/avelk/pendlab/internal/pendulum"
)

// LyapunovExponent estimates the largest Lyapunov exponent by running
// twin trajectories: integrate x0 and a copy perturbed by delta on
// theta1, renormalizing the separation each step and averaging the log
// stretch rate. Positive means nearby trajectories diverge
// exponentially, the chaos signature.
func LyapunovExponent(params pendulum.Params, method integrators.Method, x0 pendulum.State, dt, duration, delta float64) float64 {
	f := func(s pendulum.State) pendulum.State {
		return pendulum.Derivative(s, params)
	}

	x := x0
	xp := x0
	xp.Theta1 += delta

	steps := int(duration / dt)
	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		x = method.Step(f, x, dt)
		xp = method.Step(f, xp, dt)

		sep := xp.Sub(x).Norm()
		if sep <= 0 {
			continue
		}

		sumLog += math.Log(sep / delta)
		count++

		// Renormalize the twin back to distance delta along the
		// current separation direction so growth never saturates.
		diff := xp.Sub(x).Scale(delta / sep)
		xp = x.Add(diff)
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
