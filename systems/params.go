package systems

import "github.com/pthm-cable/traffic/config"

// Params holds the motion model constants shared by every car.
type Params struct {
	MaxWheelAngle    float32 // degrees
	MaxSpeed         float32 // km/h
	PixelsPerMeter   float32
	MillisPerSubstep float32
}

// DefaultParams returns the reference motion model: 30° wheel lock, 80 km/h,
// 10 px/m and 17 ms substeps.
func DefaultParams() Params {
	return Params{
		MaxWheelAngle:    30,
		MaxSpeed:         80,
		PixelsPerMeter:   10,
		MillisPerSubstep: 17,
	}
}

// ParamsFromConfig builds Params from the kinematics section.
func ParamsFromConfig(cfg *config.Config) Params {
	k := cfg.Kinematics
	return Params{
		MaxWheelAngle:    float32(k.MaxWheelAngle),
		MaxSpeed:         float32(k.MaxSpeed),
		PixelsPerMeter:   float32(k.PixelsPerMeter),
		MillisPerSubstep: float32(k.MillisPerSubstep),
	}
}

// PixelsPerSubstep converts a speed in km/h to the distance covered in one substep.
func (p Params) PixelsPerSubstep(speed float32) float32 {
	// (km/h) * (h/3600 s) * (m*s/km*ms) * (px/m) * (ms/substep)
	return speed * p.PixelsPerMeter * p.MillisPerSubstep / 3600
}
