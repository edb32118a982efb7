// Package scenario owns the car population and advances it in lockstep.
package scenario

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/traffic/components"
	"github.com/pthm-cable/traffic/systems"
)

// PhaseTimer receives the start of each named phase of a substep.
type PhaseTimer interface {
	StartPhase(name string)
}

// Phase names reported to a PhaseTimer.
const (
	PhaseSnapshot = "snapshot"
	PhaseDrive    = "drive"
)

// CarSpec describes a car to add to a scenario.
type CarSpec struct {
	Name        string
	Color       color.RGBA
	Location    components.Position
	Destination components.Waypoint
	Kinematics  components.Kinematics
	Limits      components.Limits
}

// Scenario is an ordered population of cars.
// Every car in a substep sees the same snapshot of the population, taken
// before any car moved; cars are then updated in sequence order.
type Scenario struct {
	world *ecs.World
	rng   *rand.Rand
	opts  Options

	carMap *ecs.Map5[
		components.Position,
		components.Kinematics,
		components.Limits,
		components.Waypoint,
		components.Identity,
	]
	carFilter *ecs.Filter5[
		components.Position,
		components.Kinematics,
		components.Limits,
		components.Waypoint,
		components.Identity,
	]

	// Sequence order; Shuffle permutes it
	order []ecs.Entity

	// Driver per car (by Identity.ID)
	drivers map[uint32]systems.Driver

	// Snapshot buffer reused across substeps
	scene []systems.AgentSnapshot

	timer PhaseTimer

	nextID   uint32
	ticks    int
	arrivals int
}

// New creates an empty scenario with the reference options, seeded from the clock.
func New() *Scenario {
	return NewWithOptions(DefaultOptions(time.Now().UnixNano()))
}

// NewWithOptions creates an empty scenario.
func NewWithOptions(opts Options) *Scenario {
	if opts.Substeps < 1 {
		opts.Substeps = 1
	}
	world := ecs.NewWorld()
	return &Scenario{
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		opts:  opts,
		carMap: ecs.NewMap5[
			components.Position,
			components.Kinematics,
			components.Limits,
			components.Waypoint,
			components.Identity,
		](world),
		carFilter: ecs.NewFilter5[
			components.Position,
			components.Kinematics,
			components.Limits,
			components.Waypoint,
			components.Identity,
		](world),
		drivers: make(map[uint32]systems.Driver),
	}
}

// SetPhaseTimer installs a timer notified at each substep phase. Nil disables it.
func (s *Scenario) SetPhaseTimer(t PhaseTimer) {
	s.timer = t
}

// Options returns the options the scenario was created with.
func (s *Scenario) Options() Options {
	return s.opts
}

// AddCar appends a car to the end of the sequence and returns its ID.
// A nil driver is accepted here; Tick panics once it reaches that car.
func (s *Scenario) AddCar(spec CarSpec, driver systems.Driver) uint32 {
	id := s.nextID
	s.nextID++

	pos := spec.Location
	kin := spec.Kinematics
	lim := spec.Limits
	dest := spec.Destination
	ident := components.Identity{ID: id, Name: spec.Name, Color: spec.Color}

	e := s.carMap.NewEntity(&pos, &kin, &lim, &dest, &ident)
	s.order = append(s.order, e)
	s.drivers[id] = driver
	return id
}

// WithCars appends n cars named "<prefix> <i>" (i counting from 0) that
// share one driver. Cars get a random red channel, a random location and
// first destination inside the spawn square, and a random acceleration.
func (s *Scenario) WithCars(n int, prefix string) *Scenario {
	var driver systems.Driver
	if s.opts.NewDriver != nil {
		driver = s.opts.NewDriver(s.rng)
	} else {
		driver = systems.NewDriveHome(s.rng)
	}

	ext := s.opts.SpawnExtent
	for i := range n {
		red := uint8(s.rng.Intn(256))
		x := systems.RandRange(s.rng, 0, ext)
		y := systems.RandRange(s.rng, 0, ext)
		dx := systems.RandRange(s.rng, 0, ext)
		dy := systems.RandRange(s.rng, 0, ext)
		accel := systems.RandRange(s.rng, s.opts.MinAcceleration, s.opts.MaxAcceleration)

		s.AddCar(CarSpec{
			Name:        fmt.Sprintf("%s %d", prefix, i),
			Color:       color.RGBA{R: red, A: 255},
			Location:    components.Position{X: x, Y: y},
			Destination: components.NewWaypoint(dx, dy, s.opts.InitialDestinationSpeed),
			Limits:      components.Limits{TurnRate: s.opts.TurnRate, Acceleration: accel},
		}, driver)
	}
	return s
}

// Tick advances every car by Substeps substeps.
// It panics if a car has no driver.
func (s *Scenario) Tick() {
	for range s.opts.Substeps {
		s.substep()
	}
	s.ticks++
}

// substep snapshots every car, then steps each car in order against that snapshot.
func (s *Scenario) substep() {
	s.startPhase(PhaseSnapshot)
	s.scene = s.scene[:0]
	for _, e := range s.order {
		s.scene = append(s.scene, s.vehicle(e).Snapshot())
	}

	s.startPhase(PhaseDrive)
	for _, e := range s.order {
		v := s.vehicle(e)
		if v.Step(s.drivers[v.ID.ID], s.scene, s.opts.Params) {
			s.arrivals++
		}
	}
}

func (s *Scenario) startPhase(name string) {
	if s.timer != nil {
		s.timer.StartPhase(name)
	}
}

// Shuffle randomly permutes the sequence order.
func (s *Scenario) Shuffle() {
	s.rng.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
}

// vehicle returns the live components of e.
func (s *Scenario) vehicle(e ecs.Entity) systems.Vehicle {
	pos, kin, lim, dest, ident := s.carMap.Get(e)
	return systems.Vehicle{Pos: pos, Kin: kin, Lim: lim, Dest: dest, ID: ident}
}

// Len returns the number of cars.
func (s *Scenario) Len() int {
	return len(s.order)
}

// Car returns a snapshot of the car at sequence position i.
func (s *Scenario) Car(i int) systems.AgentSnapshot {
	return s.vehicle(s.order[i]).Snapshot()
}

// Each calls fn with a snapshot of every car in sequence order.
func (s *Scenario) Each(fn func(i int, car systems.AgentSnapshot)) {
	for i, e := range s.order {
		fn(i, s.vehicle(e).Snapshot())
	}
}

// Snapshot returns snapshots of every car in sequence order.
func (s *Scenario) Snapshot() []systems.AgentSnapshot {
	out := make([]systems.AgentSnapshot, 0, len(s.order))
	for _, e := range s.order {
		out = append(out, s.vehicle(e).Snapshot())
	}
	return out
}

// Sample calls fn for every car in storage order, which is unrelated to
// the sequence order. Use it for aggregate statistics.
func (s *Scenario) Sample(fn func(pos components.Position, kin components.Kinematics, dest components.Waypoint)) {
	query := s.carFilter.Query()
	for query.Next() {
		pos, kin, _, dest, _ := query.Get()
		fn(*pos, *kin, *dest)
	}
}

// Ticks returns the number of completed ticks.
func (s *Scenario) Ticks() int {
	return s.ticks
}

// Arrivals returns the number of destinations reached so far.
func (s *Scenario) Arrivals() int {
	return s.arrivals
}

// Driver returns the driver of the car with the given ID, or nil.
func (s *Scenario) Driver(id uint32) systems.Driver {
	return s.drivers[id]
}
