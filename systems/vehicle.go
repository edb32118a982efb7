// Package systems provides the per-substep car update and destination strategies.
package systems

import (
	"math"

	"github.com/pthm-cable/traffic/components"
)

// Vehicle bundles pointers to one car's live components for an update.
type Vehicle struct {
	Pos  *components.Position
	Kin  *components.Kinematics
	Lim  *components.Limits
	Dest *components.Waypoint
	ID   *components.Identity
}

// Snapshot returns a driverless value copy of the car.
func (v Vehicle) Snapshot() AgentSnapshot {
	return AgentSnapshot{
		ID:           v.ID.ID,
		Name:         v.ID.Name,
		Color:        v.ID.Color,
		Location:     *v.Pos,
		Heading:      v.Kin.Heading,
		WheelAngle:   v.Kin.WheelAngle,
		Speed:        v.Kin.Speed,
		TurnRate:     v.Lim.TurnRate,
		Acceleration: v.Lim.Acceleration,
		Destination:  *v.Dest,
	}
}

// Step advances the car by one substep and reports whether it reached its
// destination (and so asked driver for a new one). scene is the population
// as it was before the substep began; it is only read when the car arrives.
//
// Step panics if driver is nil.
func (v Vehicle) Step(driver Driver, scene []AgentSnapshot, p Params) bool {
	if driver == nil {
		panic("systems: Step called on a car without a driver")
	}

	// Arrival radius is the approach speed of the destination
	arrived := false
	d := v.Pos.Sub(v.Dest.Location)
	if d.X*d.X+d.Y*d.Y < v.Dest.Speed*v.Dest.Speed {
		*v.Dest = driver.NextDestination(v.Snapshot(), scene)
		arrived = true
		d = v.Pos.Sub(v.Dest.Location)
	}

	// Steering: slew the wheel toward the destination
	target := headingTo(d.X, d.Y)
	delta := normalizeAngle(target - v.Kin.Heading - v.Kin.WheelAngle)
	v.Kin.WheelAngle = steer(v.Kin.WheelAngle, delta, v.Lim.TurnRate, p.MaxWheelAngle)

	// Yaw: speed / (360 / wheel), rearranged so a straight wheel is not a division by zero
	v.Kin.Heading = normalizeHeading(v.Kin.Heading + v.Kin.Speed*v.Kin.WheelAngle/360)

	// Move with the pre-regulation speed
	fx, fy := forward(v.Kin.Heading)
	px := p.PixelsPerSubstep(v.Kin.Speed)
	v.Pos.Y += fy * px
	v.Pos.X += fx * px

	// Regulate speed toward the destination's approach speed
	accel := float32(math.Sqrt(float64(v.Lim.Acceleration)))
	if v.Kin.Speed < v.Dest.Speed {
		v.Kin.Speed += accel
	} else {
		v.Kin.Speed -= accel
	}
	v.Kin.Speed = clampFloat(v.Kin.Speed, 0, p.MaxSpeed)

	return arrived
}
