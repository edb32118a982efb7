package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int     `csv:"-"`
	WindowEndTick   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Cars    int `csv:"cars"`
	Stopped int `csv:"stopped"` // cars at speed 0

	// Events during window
	Arrivals        int     `csv:"arrivals"`
	ArrivalsPerTick float64 `csv:"arrivals_per_tick"`
	Shuffles        int     `csv:"shuffles"`

	// Speed distribution (sampled at window end), km/h
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Steering
	WheelAbsMean float64 `csv:"wheel_abs_mean"`

	// Distance to current destination, world units
	DestDistMean float64 `csv:"dest_dist_mean"`
	DestDistP50  float64 `csv:"dest_dist_p50"`
	DestDistP90  float64 `csv:"dest_dist_p90"`
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeDistribution calculates the population mean, standard deviation and
// empirical 10th/50th/90th percentiles. Returns zeros for an empty sample.
// values is not modified.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	var d Distribution
	d.Mean, d.Std = stat.PopMeanStdDev(values, nil)

	// Quantile needs sorted input
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	d.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	d.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	d.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("cars", s.Cars),
		slog.Int("stopped", s.Stopped),
		slog.Int("arrivals", s.Arrivals),
		slog.Float64("arrivals_per_tick", s.ArrivalsPerTick),
		slog.Int("shuffles", s.Shuffles),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("wheel_abs_mean", s.WheelAbsMean),
		slog.Float64("dest_dist_mean", s.DestDistMean),
		slog.Float64("dest_dist_p50", s.DestDistP50),
		slog.Float64("dest_dist_p90", s.DestDistP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"cars", s.Cars,
		"stopped", s.Stopped,
		"arrivals", s.Arrivals,
		"arrivals_per_tick", s.ArrivalsPerTick,
		"shuffles", s.Shuffles,
		"speed_mean", s.SpeedMean,
		"speed_p10", s.SpeedP10,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"wheel_abs_mean", s.WheelAbsMean,
		"dest_dist_mean", s.DestDistMean,
		"dest_dist_p90", s.DestDistP90,
	)
}
