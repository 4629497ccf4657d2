// Package pendulum implements the planar double pendulum: the state
// vector and its algebra, the equations of motion, mechanical energy,
// and the polar-to-Cartesian projection used by every consumer.
//
// Everything here is pure over value types. There is no shared mutable
// state, so any number of simulations may evaluate these functions
// concurrently without synchronization.
//
// Angle convention: theta = 0 is the downward rest position, positive
// counterclockwise. Angles are never wrapped; a pendulum that has gone
// over the top keeps accumulating angle so that the velocity history
// stays continuous for integration.
package pendulum
