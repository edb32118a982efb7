package telemetry

import (
	"math"

	"github.com/pthm-cable/traffic/components"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int
	secondsPerTick      float64

	// Current window tracking
	windowStartTick     int
	windowStartArrivals int

	// Event counters for current window
	shuffles int

	// Per-car samples gathered since the last flush
	speeds    []float64
	wheels    []float64
	destDists []float64
	stopped   int
}

// NewCollector creates a new stats collector.
// windowTicks: how many ticks each stats window spans
// secondsPerTick: simulated seconds per tick (used for tick-to-time conversion)
func NewCollector(windowTicks int, secondsPerTick float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: windowTicks,
		secondsPerTick:      secondsPerTick,
	}
}

// RecordShuffle records a reordering of the car sequence.
func (c *Collector) RecordShuffle() {
	c.shuffles++
}

// Sample records one car's state for the next flush.
func (c *Collector) Sample(pos components.Position, kin components.Kinematics, dest components.Waypoint) {
	c.speeds = append(c.speeds, float64(kin.Speed))
	c.wheels = append(c.wheels, math.Abs(float64(kin.WheelAngle)))

	d := pos.Sub(dest.Location)
	c.destDists = append(c.destDists, math.Hypot(float64(d.X), float64(d.Y)))

	if kin.Speed == 0 {
		c.stopped++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the samples taken since the last flush
// and resets the window.
// arrivals is the running total of destinations reached.
func (c *Collector) Flush(currentTick, arrivals int) WindowStats {
	windowArrivals := arrivals - c.windowStartArrivals
	var perTick float64
	if ticks := currentTick - c.windowStartTick; ticks > 0 {
		perTick = float64(windowArrivals) / float64(ticks)
	}

	speed := ComputeDistribution(c.speeds)
	wheel := ComputeDistribution(c.wheels)
	dist := ComputeDistribution(c.destDists)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.secondsPerTick,

		Cars:    len(c.speeds),
		Stopped: c.stopped,

		Arrivals:        windowArrivals,
		ArrivalsPerTick: perTick,
		Shuffles:        c.shuffles,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP10:  speed.P10,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,

		WheelAbsMean: wheel.Mean,

		DestDistMean: dist.Mean,
		DestDistP50:  dist.P50,
		DestDistP90:  dist.P90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowStartArrivals = arrivals
	c.shuffles = 0
	c.speeds = c.speeds[:0]
	c.wheels = c.wheels[:0]
	c.destDists = c.destDists[:0]
	c.stopped = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int {
	return c.windowDurationTicks
}
