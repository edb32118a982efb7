package telemetry

import (
	"math"
	"slices"
	"testing"

	"github.com/pthm-cable/traffic/components"
)

func TestComputeDistribution(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Distribution
	}{
		{"empty slice", []float64{}, Distribution{}},
		{"single element", []float64{5}, Distribution{Mean: 5, P10: 5, P50: 5, P90: 5}},
		{"one to ten", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, Distribution{Mean: 5.5, Std: math.Sqrt(8.25), P10: 1, P50: 5, P90: 9}},
		{"unsorted", []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}, Distribution{Mean: 5.5, Std: math.Sqrt(8.25), P10: 1, P50: 5, P90: 9}},
		{"constant", []float64{80, 80, 80, 80}, Distribution{Mean: 80, P10: 80, P50: 80, P90: 80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDistribution(tt.values)
			for _, c := range []struct {
				field     string
				got, want float64
			}{
				{"mean", got.Mean, tt.want.Mean},
				{"std", got.Std, tt.want.Std},
				{"p10", got.P10, tt.want.P10},
				{"p50", got.P50, tt.want.P50},
				{"p90", got.P90, tt.want.P90},
			} {
				if math.Abs(c.got-c.want) > 0.001 {
					t.Errorf("%s = %v, want %v", c.field, c.got, c.want)
				}
			}
		})
	}
}

func TestComputeDistributionLeavesInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeDistribution(values)
	if !slices.Equal(values, []float64{3, 1, 2}) {
		t.Errorf("input reordered to %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10, 0.85)

	if c.ShouldFlush(9) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush once the window ends")
	}

	c.RecordShuffle()
	c.Sample(components.Position{X: 0, Y: 0}, components.Kinematics{Speed: 40, WheelAngle: -10}, components.NewWaypoint(3, 4, 80))
	c.Sample(components.Position{X: 10, Y: 10}, components.Kinematics{Speed: 0, WheelAngle: 20}, components.NewWaypoint(10, 10, 65))

	stats := c.Flush(10, 7)

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 10 {
		t.Errorf("window = [%d, %d], want [0, 10]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if math.Abs(stats.SimTimeSec-8.5) > 1e-9 {
		t.Errorf("sim_time = %v, want 8.5", stats.SimTimeSec)
	}
	if stats.Cars != 2 || stats.Stopped != 1 {
		t.Errorf("cars=%d stopped=%d, want 2 1", stats.Cars, stats.Stopped)
	}
	if stats.Arrivals != 7 || math.Abs(stats.ArrivalsPerTick-0.7) > 1e-9 {
		t.Errorf("arrivals=%d per_tick=%v, want 7 0.7", stats.Arrivals, stats.ArrivalsPerTick)
	}
	if stats.Shuffles != 1 {
		t.Errorf("shuffles = %d, want 1", stats.Shuffles)
	}
	if stats.SpeedMean != 20 || stats.WheelAbsMean != 15 {
		t.Errorf("speed_mean=%v wheel_abs_mean=%v, want 20 15", stats.SpeedMean, stats.WheelAbsMean)
	}
	if math.Abs(stats.DestDistMean-2.5) > 1e-6 {
		t.Errorf("dest_dist_mean = %v, want 2.5", stats.DestDistMean)
	}

	// Next window counts only new arrivals and starts empty
	next := c.Flush(20, 10)
	if next.WindowStartTick != 10 || next.Arrivals != 3 || next.Cars != 0 || next.Shuffles != 0 {
		t.Errorf("second window = %+v", next)
	}
}
