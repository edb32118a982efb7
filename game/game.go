// Package game drives a scenario frame by frame: input, rendering,
// telemetry and the headless loop.
package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/traffic/camera"
	"github.com/pthm-cable/traffic/config"
	"github.com/pthm-cable/traffic/inspector"
	"github.com/pthm-cable/traffic/scenario"
	"github.com/pthm-cable/traffic/systems"
	"github.com/pthm-cable/traffic/telemetry"
	"github.com/pthm-cable/traffic/ui"
)

// Options configures game initialization.
type Options struct {
	Seed           int64                       // RNG seed (0 = time-based)
	Config         *config.Config              // nil = config.Cfg()
	Cars           int                         // Initial population (0 = config)
	LogStats       bool                        // Log each stats window via slog
	OutputDir      string                      // Directory for CSV logs (empty = disabled)
	Headless       bool                        // Skip every raylib call
	StepsPerUpdate int                         // Ticks per UpdateHeadless call
	StatsCallback  func(telemetry.WindowStats) // Called after every stats window
}

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	scn     *scenario.Scenario
	rngSeed int64
	runInfo telemetry.RunInfo

	// View
	camera    *camera.Camera
	inspector *inspector.Inspector
	overlays  *ui.OverlayRegistry
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	statsUI   *ui.StatsPanel
	perfUI    *ui.PerfPanel
	showPerf  bool

	// Per-frame car snapshots for drawing and picking
	frame []systems.AgentSnapshot

	// Mouse drag panning
	dragging  bool
	dragLastX float32
	dragLastY float32

	// Run state
	state          ui.ControlsState
	stepsPerUpdate int
	headless       bool

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	lastStats     *telemetry.WindowStats
	statsCallback func(telemetry.WindowStats)
	logStats      bool

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a new game populated per the configuration.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cars := opts.Cars
	if cars <= 0 {
		cars = cfg.Population.Count
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	scn := scenario.NewWithOptions(scenario.OptionsFromConfig(cfg, seed)).
		WithCars(cars, cfg.Population.NamePrefix)

	k := cfg.Kinematics
	secondsPerTick := float64(k.Substeps) * k.MillisPerSubstep / 1000

	g := &Game{
		cfg:            cfg,
		scn:            scn,
		rngSeed:        seed,
		runInfo:        telemetry.NewRunInfo(seed, cars, opts.Headless),
		stepsPerUpdate: steps,
		headless:       opts.Headless,
		state:          ui.ControlsState{Speed: 1},
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsWindowTicks, secondsPerTick),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		statsCallback:  opts.StatsCallback,
		logStats:       opts.LogStats,
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
	}
	scn.SetPhaseTimer(g.perfCollector)

	// Output manager
	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
			if err := om.WriteRunInfo(g.runInfo); err != nil {
				slog.Error("failed to write run info", "error", err)
			}
		}
	}

	// View state is plain data; nothing here touches the window
	extent := cfg.Derived.SpawnExtent
	g.camera = camera.New(g.screenWidth, g.screenHeight, extent/2, extent/2)
	g.camera.MinZoom = float32(cfg.Camera.MinZoom)
	g.camera.MaxZoom = float32(cfg.Camera.MaxZoom)
	g.overlays = ui.NewOverlayRegistry()
	g.inspector = inspector.NewInspector(int32(g.screenWidth))
	g.hud = ui.NewHUD()
	g.controls = ui.NewControlsPanel(10, 60, 200)
	g.statsUI = ui.NewStatsPanel(10, int32(g.screenHeight)-210, 260)
	g.perfUI = ui.NewPerfPanel(int32(g.screenWidth)-260, int32(g.screenHeight)-110)

	slog.Info("scenario ready",
		"run_id", g.runInfo.ID,
		"seed", seed,
		"cars", cars,
		"substeps", k.Substeps,
		"score", cfg.Driver.Score,
	)

	return g
}

// Update handles input and advances the simulation by the current speed.
func (g *Game) Update() {
	g.handleInput()

	if !g.state.Paused {
		for range g.state.Speed {
			g.simulationStep()
		}
	}

	g.frame = g.scn.Snapshot()
}

// UpdateHeadless advances the simulation without touching raylib.
func (g *Game) UpdateHeadless() {
	for range g.stepsPerUpdate {
		g.simulationStep()
	}
}

// simulationStep runs a single tick of the scenario.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	g.scn.Tick()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// shuffle reorders the car sequence.
func (g *Game) shuffle() {
	g.scn.Shuffle()
	g.collector.RecordShuffle()
}

// Scenario returns the scenario being driven.
func (g *Game) Scenario() *scenario.Scenario {
	return g.scn
}

// RunInfo returns the identity of this run.
func (g *Game) RunInfo() telemetry.RunInfo {
	return g.runInfo
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int {
	return g.scn.Ticks()
}

// Unload releases resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
