// Package plot renders stored trajectories to image files: angles over
// time, energy drift, and the Cartesian trace of the second bob (the
// persistent counterpart of the live view's trail).
package plot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/avelk/pendlab/internal/pendulum"
)

// Angles writes a line chart of both unwrapped angles against time.
func Angles(path string, times []float64, states []pendulum.State) error {
	if len(times) != len(states) {
		return fmt.Errorf("plot: %d times vs %d states", len(times), len(states))
	}

	p := plot.New()
	p.Title.Text = "link angles"
	p.X.Label.Text = "t (s)"
	p.Y.Label.Text = "theta (rad)"

	t1 := make(plotter.XYs, len(states))
	t2 := make(plotter.XYs, len(states))
	for i, s := range states {
		t1[i] = plotter.XY{X: times[i], Y: s.Theta1}
		t2[i] = plotter.XY{X: times[i], Y: s.Theta2}
	}

	l1, err := plotter.NewLine(t1)
	if err != nil {
		return err
	}
	l2, err := plotter.NewLine(t2)
	if err != nil {
		return err
	}
	l2.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}

	p.Add(l1, l2, plotter.NewGrid())
	p.Legend.Add("theta1", l1)
	p.Legend.Add("theta2", l2)
	p.Legend.Top = true

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// Energy writes the mechanical-energy series; a flat line means the
// integrator held the conserved quantity.
func Energy(path string, times []float64, states []pendulum.State, params pendulum.Params) error {
	if len(times) != len(states) {
		return fmt.Errorf("plot: %d times vs %d states", len(times), len(states))
	}

	p := plot.New()
	p.Title.Text = "mechanical energy"
	p.X.Label.Text = "t (s)"
	p.Y.Label.Text = "E"

	xys := make(plotter.XYs, len(states))
	for i, s := range states {
		xys[i] = plotter.XY{X: times[i], Y: pendulum.Energy(s, params)}
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}

	p.Add(line, plotter.NewGrid())
	return p.Save(8*vg.Inch, 3*vg.Inch, path)
}

// Trace writes the path of the second bob in the plane.
func Trace(path string, states []pendulum.State, params pendulum.Params) error {
	p := plot.New()
	p.Title.Text = "bob-2 trace"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	xys := make(plotter.XYs, len(states))
	for i, s := range states {
		_, b2 := pendulum.Positions(s, params)
		xys[i] = plotter.XY{X: b2.X, Y: b2.Y}
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}

	reach := params.L1 + params.L2
	p.X.Min, p.X.Max = -reach, reach
	p.Y.Min, p.Y.Max = -reach, reach

	p.Add(line, plotter.NewGrid())
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
