package analysis

import (
	"math"
	"testing"

	"github.com/avelk/pendlab/internal/integrators"
	"github.com/avelk/pendlab/internal/pendulum"
)

func TestFFTSingleTone(t *testing.T) {
	// A pure cosine concentrates power in one bin.
	n := 256
	cycles := 8
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * float64(cycles) * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)
	maxIdx := 0
	for i := range ps {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}

	if maxIdx != cycles {
		t.Errorf("peak at bin %d, want %d", maxIdx, cycles)
	}
}

func TestNextPow2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 255: 256, 256: 256, 1000: 1024}
	for in, want := range cases {
		if got := NextPow2(in); got != want {
			t.Errorf("NextPow2(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestDominantFrequency(t *testing.T) {
	// 2 Hz tone sampled at 100 Hz for 512 samples.
	dt := 0.01
	data := make([]float64, 512)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 2.0 * float64(i) * dt)
	}

	freq := DominantFrequency(data, dt)
	if math.Abs(freq-2.0) > 0.2 {
		t.Errorf("dominant frequency = %v, want ~2.0", freq)
	}
}

func TestLyapunovPositiveForChaoticStart(t *testing.T) {
	// High-energy start: the double pendulum is chaotic and the
	// largest exponent comes out clearly positive.
	p := pendulum.DefaultParams()
	x0 := pendulum.State{Theta1: 3.0, Theta2: 3.0}

	lam := LyapunovExponent(p, integrators.RK4{}, x0, 0.005, 20.0, 1e-8)
	if lam <= 0 {
		t.Errorf("expected positive exponent for chaotic regime, got %v", lam)
	}
}

func TestLyapunovSmallForGentleSwing(t *testing.T) {
	// Small oscillations are quasi-periodic; the exponent estimate
	// stays near zero compared to the chaotic regime.
	p := pendulum.DefaultParams()

	gentle := LyapunovExponent(p, integrators.RK4{},
		pendulum.State{Theta1: 0.1, Theta2: 0.1}, 0.005, 20.0, 1e-8)
	chaotic := LyapunovExponent(p, integrators.RK4{},
		pendulum.State{Theta1: 3.0, Theta2: 3.0}, 0.005, 20.0, 1e-8)

	if gentle >= chaotic {
		t.Errorf("gentle exponent %v should be below chaotic %v", gentle, chaotic)
	}
}
