package components

// Position represents a point on the plane, in world units (pixels).
type Position struct {
	X, Y float32
}

// Sub returns p - o.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Kinematics holds the motion state of a car.
// Angles are in degrees; heading 0 faces +Y.
type Kinematics struct {
	Heading    float32 `inspect:"angle"`              // [0, 360)
	WheelAngle float32 `inspect:"bar,min:-30,max:30"` // steering deflection
	Speed      float32 `inspect:"bar,max:80"`         // km/h
}
