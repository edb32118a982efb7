package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/traffic/config"
	"github.com/pthm-cable/traffic/game"
	"github.com/pthm-cable/traffic/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int
	cars        int
	seeds       []int64
	baseConfig  *config.Config
	windowTicks int

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks, cars int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		cars:        cars,
		seeds:       seeds,
		baseConfig:  baseCfg,
		windowTicks: max(maxTicks/20, 1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated arrival rate, boosted by up to 20% for flow quality.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows := fe.runSimulation(x, s)
			quality := computeQuality(windows, fe.baseConfig.Kinematics.MaxSpeed)
			results[idx] = seedResult{
				fitness: computeFitness(windows, quality),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless run and returns its windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) []telemetry.WindowStats {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Telemetry.StatsWindowTicks = fe.windowTicks

	var windows []telemetry.WindowStats
	g := game.NewGameWithOptions(game.Options{
		Seed:     seed,
		Config:   cfg,
		Cars:     fe.cars,
		Headless: true,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows
}

// copyConfig returns a copy of the base config. Config holds no
// reference types, so a value copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// Quality component weights.
const (
	qualityWeightSpeed     = 0.5
	qualityWeightMoving    = 0.3
	qualityWeightStability = 0.2

	qualityWarmupWindows = 2 // skip first N windows (warmup)
)

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(arrivalsPerTick × (1.0 + 0.2 × quality))
func computeFitness(windows []telemetry.WindowStats, quality float64) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	var arrivals, ticks int
	for _, w := range windows[qualityWarmupWindows:] {
		arrivals += w.Arrivals
		ticks += w.WindowEndTick - w.WindowStartTick
	}
	if ticks == 0 {
		return 0
	}
	rate := float64(arrivals) / float64(ticks)
	return -(rate * (1.0 + 0.2*quality))
}

// computeQuality scores traffic flow ∈ [0, 1] from window stats: how fast
// cars drive, how few are stopped, and how steady the arrival rate is.
func computeQuality(windows []telemetry.WindowStats, maxSpeed float64) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var speedSum, movingSum float64
	rates := make([]float64, 0, len(valid))
	for _, w := range valid {
		if w.Cars == 0 {
			continue
		}
		speedSum += clamp01(w.SpeedMean / maxSpeed)
		movingSum += 1 - float64(w.Stopped)/float64(w.Cars)
		rates = append(rates, w.ArrivalsPerTick)
	}
	if len(rates) == 0 {
		return 0
	}
	n := float64(len(rates))

	stabilityScore := 0.0
	if len(rates) >= 2 {
		c := cv(rates)
		stabilityScore = math.Exp(-c * c)
	}

	quality := qualityWeightSpeed*speedSum/n +
		qualityWeightMoving*movingSum/n +
		qualityWeightStability*stabilityScore

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
