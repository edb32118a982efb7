// Package components defines ECS components for the simulation.
package components

import "image/color"

// Identity names a car. It is cosmetic except that the red channel of Color
// feeds the leader selection.
type Identity struct {
	ID    uint32     `inspect:"label"`
	Name  string     `inspect:"label"`
	Color color.RGBA `inspect:"color"`
}

// Waypoint is a destination plus the speed to approach it with.
// The approach speed doubles as the arrival radius.
// Waypoints are replaced whole, never edited in place.
type Waypoint struct {
	Location Position `inspect:"skip"`
	Speed    float32  `inspect:"bar,max:80"`
}

// NewWaypoint creates a waypoint at (x, y).
func NewWaypoint(x, y, speed float32) Waypoint {
	return Waypoint{Location: Position{X: x, Y: y}, Speed: speed}
}
