package systems

import (
	"math"
	"math/rand"
)

// Clamp functions for common value ranges

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Angle functions. All angles are in degrees.

// normalizeAngle wraps an angle to (-180, 180].
func normalizeAngle(angle float32) float32 {
	r := float32(math.Mod(float64(angle)+180, 360))
	if r < 0 {
		r += 360
	}
	r -= 180
	if r <= -180 {
		r += 360
	}
	return r
}

// normalizeHeading wraps a heading to [0, 360).
func normalizeHeading(h float32) float32 {
	r := float32(math.Mod(float64(h), 360))
	if r < 0 {
		r += 360
	}
	// A tiny negative remainder rounds up to exactly 360 in float32
	if r >= 360 {
		r = 0
	}
	return r
}

// headingTo returns the heading, in degrees, that points along -(dx, dy).
// Heading 0 faces +Y and 90 faces -X, matching the integration in Step.
func headingTo(dx, dy float32) float32 {
	return float32(math.Atan2(float64(dx), float64(-dy))) / math.Pi * 180
}

// radians converts degrees to radians.
func radians(deg float32) float64 {
	return float64(deg/180) * math.Pi
}

// forward returns the unit vector a car with the given heading moves along.
func forward(heading float32) (x, y float32) {
	th := radians(heading)
	return -float32(math.Sin(th)), float32(math.Cos(th))
}

// steer moves wheel toward closing delta by at most rate, then clamps it to ±limit.
func steer(wheel, delta, rate, limit float32) float32 {
	if delta > 0 {
		wheel += min(rate, delta)
	} else {
		wheel += max(-rate, delta)
	}
	return clampFloat(wheel, -limit, limit)
}

// RandRange returns a uniform value in [lo, hi).
func RandRange(rng *rand.Rand, lo, hi float32) float32 {
	v := lo + rng.Float32()*(hi-lo)
	if v >= hi {
		v = math.Nextafter32(hi, lo)
	}
	return v
}
