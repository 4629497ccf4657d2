package metrics

import (
	"math"

	"github.com/avelk/pendlab/internal/pendulum"
)

// FlipCount counts how many times the second link passes over the top.
// Because angles are unwrapped, a flip is a change of winding number:
// floor((theta2 + pi) / 2pi) moving up or down.
type FlipCount struct {
	winding int
	seeded  bool
	flips   int
}

func NewFlipCount() *FlipCount {
	return &FlipCount{}
}

func (f *FlipCount) Name() string { return "flips" }

func (f *FlipCount) Observe(s pendulum.State, t float64) {
	w := int(math.Floor((s.Theta2 + math.Pi) / (2 * math.Pi)))
	if !f.seeded {
		f.winding = w
		f.seeded = true
		return
	}
	if w != f.winding {
		if w > f.winding {
			f.flips += w - f.winding
		} else {
			f.flips += f.winding - w
		}
		f.winding = w
	}
}

func (f *FlipCount) Value() float64 { return float64(f.flips) }

func (f *FlipCount) Reset() {
	f.winding = 0
	f.seeded = false
	f.flips = 0
}
