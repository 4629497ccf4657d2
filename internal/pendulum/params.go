package pendulum

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultLength  = 1.0
	DefaultMass    = 1.0
	DefaultGravity = 10.0
)

// ErrParams indicates a physically meaningless parameter set.
var ErrParams = errors.New("pendulum: parameters must be positive and finite")

// Params holds the fixed physical configuration of a run: link lengths,
// point masses, and gravitational acceleration. Validate once at
// construction; the derivative and step paths never re-check.
type Params struct {
	L1, L2  float64
	M1, M2  float64
	Gravity float64
}

// DefaultParams returns unit links and masses under g = 10, the
// configuration the chaos presets are tuned for.
func DefaultParams() Params {
	return Params{
		L1: DefaultLength, L2: DefaultLength,
		M1: DefaultMass, M2: DefaultMass,
		Gravity: DefaultGravity,
	}
}

// Validate reports an error if any length, mass, or gravity is zero,
// negative, or non-finite.
func (p Params) Validate() error {
	fields := map[string]float64{
		"l1": p.L1, "l2": p.L2,
		"m1": p.M1, "m2": p.M2,
		"gravity": p.Gravity,
	}
	for name, v := range fields {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrParams, name, v)
		}
	}
	return nil
}
