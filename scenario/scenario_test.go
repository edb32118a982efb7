package scenario

import (
	"image/color"
	"math/rand"
	"slices"
	"testing"

	"github.com/pthm-cable/traffic/components"
	"github.com/pthm-cable/traffic/config"
	"github.com/pthm-cable/traffic/systems"
)

func TestWithCars(t *testing.T) {
	s := NewWithOptions(DefaultOptions(1)).WithCars(5, "Sedan")

	if s.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", s.Len())
	}

	seen := make(map[uint32]bool)
	s.Each(func(i int, car systems.AgentSnapshot) {
		want := "Sedan " + string(rune('0'+i))
		if car.Name != want {
			t.Errorf("car %d name = %q, want %q", i, car.Name, want)
		}
		if seen[car.ID] {
			t.Errorf("duplicate ID %d", car.ID)
		}
		seen[car.ID] = true

		if car.Color.G != 0 || car.Color.B != 0 {
			t.Errorf("car %d color %v: green and blue should be 0", i, car.Color)
		}
		if car.Location.X < 0 || car.Location.X >= 1000 || car.Location.Y < 0 || car.Location.Y >= 1000 {
			t.Errorf("car %d spawned at %+v", i, car.Location)
		}
		if car.Destination.Speed != 80 {
			t.Errorf("car %d destination speed = %v, want 80", i, car.Destination.Speed)
		}
		if car.Acceleration < 1 || car.Acceleration >= 5 {
			t.Errorf("car %d acceleration = %v, want [1, 5)", i, car.Acceleration)
		}
		if car.TurnRate != 5 || car.Heading != 0 || car.WheelAngle != 0 || car.Speed != 0 {
			t.Errorf("car %d not at rest: %+v", i, car)
		}
	})
}

func TestWithCarsAppends(t *testing.T) {
	s := NewWithOptions(DefaultOptions(1)).WithCars(2, "Sedan").WithCars(3, "Truck")

	if s.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", s.Len())
	}
	if got := s.Car(2).Name; got != "Truck 0" {
		t.Errorf("Car(2).Name = %q, want %q", got, "Truck 0")
	}
}

// sceneRecorder keeps a copy of every scene it is shown and sends the car
// to a destination it is always within reach of.
type sceneRecorder struct {
	scenes [][]systems.AgentSnapshot
}

func (r *sceneRecorder) NextDestination(me systems.AgentSnapshot, scene []systems.AgentSnapshot) components.Waypoint {
	r.scenes = append(r.scenes, slices.Clone(scene))
	return components.NewWaypoint(me.Location.X, me.Location.Y+1000, 1e6)
}

func TestSubstepSharesOneSnapshot(t *testing.T) {
	opts := DefaultOptions(3)
	opts.Substeps = 1
	s := NewWithOptions(opts)
	rec := &sceneRecorder{}

	for i := range 4 {
		s.AddCar(CarSpec{
			Name:        "car",
			Color:       color.RGBA{R: uint8(10 * i), A: 255},
			Location:    components.Position{X: float32(100 * i), Y: 0},
			Destination: components.NewWaypoint(0, 0, 1e6),
			Kinematics:  components.Kinematics{Speed: 50},
			Limits:      components.Limits{TurnRate: 5, Acceleration: 2},
		}, rec)
	}

	for range 3 {
		before := s.Snapshot()
		rec.scenes = nil
		s.Tick()

		if len(rec.scenes) != 4 {
			t.Fatalf("driver consulted %d times, want 4", len(rec.scenes))
		}
		for i, scene := range rec.scenes {
			if !slices.Equal(scene, before) {
				t.Fatalf("car %d saw a scene that differs from the pre-substep snapshot", i)
			}
		}
		if slices.Equal(s.Snapshot(), before) {
			t.Fatal("cars did not move")
		}
	}
}

func TestTickPanicsWithoutDriver(t *testing.T) {
	s := NewWithOptions(DefaultOptions(1))
	s.AddCar(CarSpec{Destination: components.NewWaypoint(0, 100, 80)}, nil)

	defer func() {
		if recover() == nil {
			t.Error("Tick with a driverless car should panic")
		}
	}()
	s.Tick()
}

func TestTickEmpty(t *testing.T) {
	s := NewWithOptions(DefaultOptions(1))
	s.Tick()
	if s.Ticks() != 1 || s.Len() != 0 {
		t.Errorf("Ticks() = %d Len() = %d, want 1 0", s.Ticks(), s.Len())
	}
}

func TestShufflePreservesCars(t *testing.T) {
	s := NewWithOptions(DefaultOptions(9)).WithCars(50, "Sedan")

	ids := func() []uint32 {
		var out []uint32
		s.Each(func(_ int, car systems.AgentSnapshot) { out = append(out, car.ID) })
		return out
	}

	before := ids()
	s.Shuffle()
	after := ids()

	if slices.Equal(before, after) {
		t.Error("Shuffle left the order unchanged")
	}
	slices.Sort(after)
	if !slices.Equal(before, after) {
		t.Error("Shuffle changed the set of cars")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() []systems.AgentSnapshot {
		s := NewWithOptions(DefaultOptions(2024)).WithCars(30, "Sedan")
		for range 5 {
			s.Tick()
		}
		s.Shuffle()
		s.Tick()
		return s.Snapshot()
	}

	if !slices.Equal(run(), run()) {
		t.Error("same seed produced different runs")
	}
}

func TestTickKeepsInvariants(t *testing.T) {
	s := NewWithOptions(DefaultOptions(77)).WithCars(200, "Sedan")
	p := s.Options().Params

	for tick := range 5 {
		s.Tick()
		s.Each(func(i int, car systems.AgentSnapshot) {
			if car.WheelAngle < -p.MaxWheelAngle || car.WheelAngle > p.MaxWheelAngle {
				t.Fatalf("tick %d car %d: wheel %v", tick, i, car.WheelAngle)
			}
			if car.Heading < 0 || car.Heading >= 360 {
				t.Fatalf("tick %d car %d: heading %v", tick, i, car.Heading)
			}
			if car.Speed < 0 || car.Speed > p.MaxSpeed {
				t.Fatalf("tick %d car %d: speed %v", tick, i, car.Speed)
			}
		})
	}
	if s.Ticks() != 5 {
		t.Errorf("Ticks() = %d, want 5", s.Ticks())
	}
	if s.Arrivals() == 0 {
		t.Error("no car reached a destination in 250 substeps")
	}
}

type phaseCounter map[string]int

func (c phaseCounter) StartPhase(name string) { c[name]++ }

func TestPhaseTimer(t *testing.T) {
	s := NewWithOptions(DefaultOptions(1)).WithCars(3, "Sedan")
	c := phaseCounter{}
	s.SetPhaseTimer(c)

	s.Tick()

	if c[PhaseSnapshot] != 50 || c[PhaseDrive] != 50 {
		t.Errorf("phases = %v, want 50 of each", c)
	}
}

func TestSampleVisitsEveryCar(t *testing.T) {
	s := NewWithOptions(DefaultOptions(1)).WithCars(25, "Sedan")

	n := 0
	s.Sample(func(_ components.Position, _ components.Kinematics, dest components.Waypoint) {
		if dest.Speed != 80 {
			t.Errorf("destination speed = %v, want 80", dest.Speed)
		}
		n++
	})
	if n != 25 {
		t.Errorf("Sample visited %d cars, want 25", n)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := OptionsFromConfig(cfg, 5)
	want := DefaultOptions(5)

	if got.Substeps != want.Substeps || got.Params != want.Params || got.SpawnExtent != want.SpawnExtent ||
		got.InitialDestinationSpeed != want.InitialDestinationSpeed || got.TurnRate != want.TurnRate ||
		got.MinAcceleration != want.MinAcceleration || got.MaxAcceleration != want.MaxAcceleration {
		t.Errorf("OptionsFromConfig = %+v, want %+v", got, want)
	}
	if got.NewDriver == nil {
		t.Fatal("OptionsFromConfig should set a driver factory")
	}
	if _, ok := got.NewDriver(rand.New(rand.NewSource(1))).(*systems.DriveHome); !ok {
		t.Error("driver factory should build a DriveHome")
	}
}

func TestDriverLookup(t *testing.T) {
	s := NewWithOptions(DefaultOptions(1))
	rec := &sceneRecorder{}
	id := s.AddCar(CarSpec{Name: "solo"}, rec)

	if s.Driver(id) != rec {
		t.Error("Driver did not return the car's driver")
	}
	if s.Driver(id+1) != nil {
		t.Error("Driver of an unknown car should be nil")
	}
}
