// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Score modes for the nearest-leader search.
const (
	ScoreRedChannel = "red_channel"
	ScoreDistance   = "distance"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Kinematics KinematicsConfig `yaml:"kinematics"`
	Driver     DriverConfig     `yaml:"driver"`
	Camera     CameraConfig     `yaml:"camera"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the area new cars are scattered over.
// The plane itself is unbounded; cars may drive anywhere.
type WorldConfig struct {
	SpawnExtent float64 `yaml:"spawn_extent"` // Cars and first destinations land in [0, extent)²
}

// PopulationConfig holds population parameters.
type PopulationConfig struct {
	Count      int    `yaml:"count"`
	NamePrefix string `yaml:"name_prefix"`
}

// KinematicsConfig holds the car motion model parameters.
type KinematicsConfig struct {
	Substeps                int     `yaml:"substeps"`                  // Substeps per Tick call
	TurnRate                float64 `yaml:"turn_rate"`                 // Max wheel slew, degrees per substep
	MaxWheelAngle           float64 `yaml:"max_wheel_angle"`           // Wheel deflection bound, degrees
	MaxSpeed                float64 `yaml:"max_speed"`                 // km/h
	MinAcceleration         float64 `yaml:"min_acceleration"`          // Lower bound of the random per-car acceleration
	MaxAcceleration         float64 `yaml:"max_acceleration"`          // Upper bound (exclusive)
	PixelsPerMeter          float64 `yaml:"pixels_per_meter"`          // World units per meter
	MillisPerSubstep        float64 `yaml:"millis_per_substep"`        // Simulated time per substep
	InitialDestinationSpeed float64 `yaml:"initial_destination_speed"` // Approach speed of the first destination
}

// DriverConfig holds destination strategy parameters.
type DriverConfig struct {
	FollowDistance float64 `yaml:"follow_distance"` // Distance behind the leader to aim for
	FollowSpeed    float64 `yaml:"follow_speed"`    // Approach speed when following
	WanderSpeed    float64 `yaml:"wander_speed"`    // Approach speed of random destinations
	WanderExtent   float64 `yaml:"wander_extent"`   // Random destinations land in [0, extent)²
	Score          string  `yaml:"score"`           // red_channel or distance
}

// CameraConfig holds viewport zoom parameters.
type CameraConfig struct {
	MinZoom  float64 `yaml:"min_zoom"`
	MaxZoom  float64 `yaml:"max_zoom"`
	ZoomStep float64 `yaml:"zoom_step"` // Fractional zoom change per wheel notch
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindowTicks    int `yaml:"stats_window_ticks"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32   float32 // Screen.Width as float32
	ScreenH32   float32 // Screen.Height as float32
	SpawnExtent float32 // World.SpawnExtent as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate reports the first parameter that would make the motion model misbehave.
func (c *Config) Validate() error {
	k := c.Kinematics
	switch {
	case k.Substeps < 1:
		return errors.New("kinematics.substeps must be at least 1")
	case k.TurnRate <= 0:
		return errors.New("kinematics.turn_rate must be positive")
	case k.MaxWheelAngle <= 0:
		return errors.New("kinematics.max_wheel_angle must be positive")
	case k.MaxSpeed <= 0:
		return errors.New("kinematics.max_speed must be positive")
	case k.MinAcceleration <= 0 || k.MaxAcceleration <= k.MinAcceleration:
		return fmt.Errorf("kinematics acceleration range [%g, %g) is empty or non-positive",
			k.MinAcceleration, k.MaxAcceleration)
	}
	if c.Population.Count < 0 {
		return errors.New("population.count must not be negative")
	}
	if c.World.SpawnExtent <= 0 || c.Driver.WanderExtent <= 0 {
		return errors.New("spawn and wander extents must be positive")
	}
	switch c.Driver.Score {
	case ScoreRedChannel, ScoreDistance:
	default:
		return fmt.Errorf("driver.score %q: want %q or %q", c.Driver.Score, ScoreRedChannel, ScoreDistance)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.SpawnExtent = float32(c.World.SpawnExtent)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
