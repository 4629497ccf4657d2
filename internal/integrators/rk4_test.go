package integrators

import (
	"math"
	"testing"

	"github.com/avelk/pendlab/internal/pendulum"
)

func deriv(p pendulum.Params) Derivative {
	return func(s pendulum.State) pendulum.State {
		return pendulum.Derivative(s, p)
	}
}

func TestZeroStepIdentity(t *testing.T) {
	p := pendulum.DefaultParams()
	s := pendulum.State{Theta1: 1.2, Theta2: -0.4, Omega1: 3, Omega2: -1}

	for _, m := range []Method{RK4{}, Euler{}} {
		if got := m.Step(deriv(p), s, 0); got != s {
			t.Errorf("%s: zero step must return state unchanged, got %+v", m.Name(), got)
		}
	}
}

func TestTimeReversal(t *testing.T) {
	// One step forward then one step back lands within the local
	// truncation order of the start.
	p := pendulum.DefaultParams()
	s := pendulum.State{Theta1: 1.0, Theta2: 2.0, Omega1: 0.3, Omega2: -0.5}
	dt := 0.01

	f := deriv(p)
	back := RK4{}.Step(f, RK4{}.Step(f, s, dt), -dt)

	if diff := back.Sub(s).Norm(); diff > 1e-8 {
		t.Errorf("forward-backward residual %e exceeds O(dt^5) tolerance", diff)
	}
}

func TestRK4SmallOscillationPeriod(t *testing.T) {
	// For m2 -> 0 the upper link is a simple pendulum; a small swing
	// started at theta1 = 0.01 crosses zero at a quarter period
	// T/4 = (pi/2)·sqrt(l/g).
	p := pendulum.Params{L1: 1, L2: 1, M1: 1, M2: 1e-9, Gravity: 9.81}
	s := pendulum.State{Theta1: 0.01}
	f := deriv(p)

	dt := 1e-4
	var tCross float64
	prev := s
	for i := 1; i < 200000; i++ {
		next := RK4{}.Step(f, prev, dt)
		if next.Theta1 <= 0 {
			tCross = float64(i) * dt
			break
		}
		prev = next
	}

	want := math.Pi / 2 * math.Sqrt(p.L1/p.Gravity)
	if tCross == 0 || math.Abs(tCross-want) > want*0.01 {
		t.Errorf("quarter period = %v, want ~%v", tCross, want)
	}
}

func TestEnergyDriftRK4VsEuler(t *testing.T) {
	p := pendulum.DefaultParams()
	x0 := pendulum.State{Theta1: 1.0}
	f := deriv(p)
	dt := 0.01
	steps := 1000

	e0 := pendulum.Energy(x0, p)

	maxDrift := func(m Method) float64 {
		s := x0
		drift := 0.0
		for i := 0; i < steps; i++ {
			s = m.Step(f, s, dt)
			d := math.Abs(pendulum.Energy(s, p) - e0)
			if d > drift {
				drift = d
			}
		}
		return drift
	}

	rk4Drift := maxDrift(RK4{})
	eulerDrift := maxDrift(Euler{})

	if rk4Drift > 0.01*math.Abs(e0) {
		t.Errorf("rk4 drift %e exceeds 1%% of |E0| = %e", rk4Drift, math.Abs(e0))
	}
	if eulerDrift < 10*rk4Drift {
		t.Errorf("euler drift %e not materially worse than rk4 drift %e",
			eulerDrift, rk4Drift)
	}
}

func TestNewByName(t *testing.T) {
	for _, name := range []string{"rk4", "euler"} {
		m, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if m.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, m.Name())
		}
	}

	if _, err := New("verlet"); err == nil {
		t.Error("expected error for unknown method")
	}
}
