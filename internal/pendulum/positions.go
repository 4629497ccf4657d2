package pendulum

import "math"

// Point is a planar Cartesian position, derived on demand from the
// state for display. Never part of the integrated state.
type Point struct {
	X, Y float64
}

// ToCartesian projects a link of length r at angle theta onto the
// plane: x = r·sin(θ), y = −r·cos(θ). Theta = 0 hangs straight down,
// matching the sign convention of the equations of motion.
func ToCartesian(r, theta float64) Point {
	return Point{
		X: r * math.Sin(theta),
		Y: -r * math.Cos(theta),
	}
}

// Positions returns the absolute positions of both bobs with the pivot
// at the origin. Bob 2 chains off bob 1.
func Positions(s State, p Params) (Point, Point) {
	b1 := ToCartesian(p.L1, s.Theta1)
	off := ToCartesian(p.L2, s.Theta2)
	b2 := Point{X: b1.X + off.X, Y: b1.Y + off.Y}
	return b1, b2
}
