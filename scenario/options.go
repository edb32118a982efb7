package scenario

import (
	"math/rand"

	"github.com/pthm-cable/traffic/config"
	"github.com/pthm-cable/traffic/systems"
)

// Options configures a Scenario.
type Options struct {
	Seed     int64 // RNG seed shared by spawning, shuffling and the default driver
	Substeps int   // substeps per Tick
	Params   systems.Params

	// Spawn parameters used by WithCars
	SpawnExtent             float32 // cars and first destinations land in [0, SpawnExtent)²
	InitialDestinationSpeed float32
	TurnRate                float32
	MinAcceleration         float32
	MaxAcceleration         float32

	// NewDriver builds the driver shared by cars added through WithCars.
	// Nil means systems.NewDriveHome.
	NewDriver func(rng *rand.Rand) systems.Driver
}

// DefaultOptions returns the reference setup: 50 substeps per tick, a
// 1000-unit spawn square, first destinations approached at 80, turn rate 5
// and accelerations in [1, 5).
func DefaultOptions(seed int64) Options {
	return Options{
		Seed:                    seed,
		Substeps:                50,
		Params:                  systems.DefaultParams(),
		SpawnExtent:             1000,
		InitialDestinationSpeed: 80,
		TurnRate:                5,
		MinAcceleration:         1,
		MaxAcceleration:         5,
	}
}

// OptionsFromConfig builds options from a loaded config.
func OptionsFromConfig(cfg *config.Config, seed int64) Options {
	k := cfg.Kinematics
	return Options{
		Seed:                    seed,
		Substeps:                k.Substeps,
		Params:                  systems.ParamsFromConfig(cfg),
		SpawnExtent:             cfg.Derived.SpawnExtent,
		InitialDestinationSpeed: float32(k.InitialDestinationSpeed),
		TurnRate:                float32(k.TurnRate),
		MinAcceleration:         float32(k.MinAcceleration),
		MaxAcceleration:         float32(k.MaxAcceleration),
		NewDriver: func(rng *rand.Rand) systems.Driver {
			return systems.DriveHomeFromConfig(cfg, rng)
		},
	}
}
