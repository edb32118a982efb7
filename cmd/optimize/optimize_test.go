package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/traffic/config"
	"github.com/pthm-cable/traffic/telemetry"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s: config %v, default %v", spec.Name, got[i], spec.Default)
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	pv.ApplyToConfig(cfg, []float64{-10, 1000, 50, 3, 1})

	if cfg.Driver.FollowDistance != pv.Specs[0].Min {
		t.Errorf("follow distance = %v, want clamped to %v", cfg.Driver.FollowDistance, pv.Specs[0].Min)
	}
	if cfg.Driver.FollowSpeed != pv.Specs[1].Max {
		t.Errorf("follow speed = %v, want clamped to %v", cfg.Driver.FollowSpeed, pv.Specs[1].Max)
	}
	if cfg.Kinematics.MaxAcceleration <= cfg.Kinematics.MinAcceleration {
		t.Errorf("acceleration range [%v, %v) is empty", cfg.Kinematics.MinAcceleration, cfg.Kinematics.MaxAcceleration)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("applied config invalid: %v", err)
	}
}

func window(start, end, arrivals, cars, stopped int, speed float64) telemetry.WindowStats {
	return telemetry.WindowStats{
		WindowStartTick: start,
		WindowEndTick:   end,
		Arrivals:        arrivals,
		ArrivalsPerTick: float64(arrivals) / float64(end-start),
		Cars:            cars,
		Stopped:         stopped,
		SpeedMean:       speed,
	}
}

func TestComputeQuality(t *testing.T) {
	steady := []telemetry.WindowStats{
		window(0, 10, 0, 10, 10, 0),
		window(10, 20, 0, 10, 10, 0),
		window(20, 30, 20, 10, 0, 80),
		window(30, 40, 20, 10, 0, 80),
	}
	if q := computeQuality(steady, 80); math.Abs(q-1) > 1e-9 {
		t.Errorf("steady full-speed quality = %v, want 1", q)
	}

	if q := computeQuality(steady[:2], 80); q != 0 {
		t.Errorf("warmup-only quality = %v, want 0", q)
	}

	jammed := []telemetry.WindowStats{
		window(0, 10, 0, 10, 0, 0),
		window(10, 20, 0, 10, 0, 0),
		window(20, 30, 0, 10, 10, 0),
		window(30, 40, 0, 10, 10, 0),
	}
	if q := computeQuality(jammed, 80); q > 0.21 {
		t.Errorf("jammed quality = %v, want at most the stability share", q)
	}
}

func TestComputeFitness(t *testing.T) {
	windows := []telemetry.WindowStats{
		window(0, 10, 100, 10, 0, 0),
		window(10, 20, 100, 10, 0, 0),
		window(20, 30, 5, 10, 0, 0),
		window(30, 40, 15, 10, 0, 0),
	}
	// Warmup windows are ignored: 20 arrivals over 20 ticks
	if f := computeFitness(windows, 0); math.Abs(f+1) > 1e-9 {
		t.Errorf("fitness = %v, want -1", f)
	}
	if f := computeFitness(windows, 1); math.Abs(f+1.2) > 1e-9 {
		t.Errorf("fitness with quality = %v, want -1.2", f)
	}
}

func TestCV(t *testing.T) {
	if got := cv([]float64{2, 2, 2}); got != 0 {
		t.Errorf("cv of constant = %v, want 0", got)
	}
	if got := cv([]float64{1, 3}); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("cv = %v, want 0.5", got)
	}
	if got := cv(nil); got != 0 {
		t.Errorf("cv of empty = %v, want 0", got)
	}
}
