package systems

import (
	"image/color"

	"github.com/pthm-cable/traffic/components"
)

// AgentSnapshot is a read-only copy of one car, taken before a substep.
// It carries no driver and has no way to be stepped; drivers and renderers
// see the world only through snapshots.
type AgentSnapshot struct {
	ID    uint32
	Name  string
	Color color.RGBA

	Location     components.Position
	Heading      float32
	WheelAngle   float32
	Speed        float32
	TurnRate     float32
	Acceleration float32
	Destination  components.Waypoint
}

// Behind returns the point dist units behind the car along its heading.
func (s AgentSnapshot) Behind(dist float32) components.Position {
	x, y := forward(s.Heading)
	return components.Position{
		X: s.Location.X + x*-dist,
		Y: s.Location.Y + y*-dist,
	}
}
