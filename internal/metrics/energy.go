// Package metrics provides run observers that reduce a trajectory to a
// scalar: energy drift for integrator quality and flip count for chaos
// bookkeeping.
package metrics

import (
	"math"

	"github.com/avelk/pendlab/internal/pendulum"
)

// EnergyDrift tracks the worst relative departure of mechanical energy
// from its value at the first observed state. Small drift under a long
// run means the integrator is holding the conserved quantity.
type EnergyDrift struct {
	params   pendulum.Params
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(params pendulum.Params) *EnergyDrift {
	return &EnergyDrift{params: params}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s pendulum.State, t float64) {
	energy := pendulum.Energy(s, e.params)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		if drift > e.maxDrift {
			e.maxDrift = drift
		}
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MeanEnergy averages mechanical energy over the run.
type MeanEnergy struct {
	params  pendulum.Params
	total   float64
	samples int
}

func NewMeanEnergy(params pendulum.Params) *MeanEnergy {
	return &MeanEnergy{params: params}
}

func (m *MeanEnergy) Name() string { return "mean_energy" }

func (m *MeanEnergy) Observe(s pendulum.State, t float64) {
	m.total += pendulum.Energy(s, m.params)
	m.samples++
}

func (m *MeanEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanEnergy) Reset() {
	m.total = 0
	m.samples = 0
}
