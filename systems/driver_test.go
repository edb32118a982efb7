package systems

import (
	"image/color"
	"math/rand"
	"slices"
	"testing"

	"github.com/pthm-cable/traffic/components"
	"github.com/pthm-cable/traffic/config"
)

func car(id uint32, red uint8, x, y, heading float32) AgentSnapshot {
	return AgentSnapshot{
		ID:       id,
		Color:    color.RGBA{R: red, A: 255},
		Location: components.Position{X: x, Y: y},
		Heading:  heading,
	}
}

func TestBehind(t *testing.T) {
	tests := []struct {
		name    string
		heading float32
		wantX   float32
		wantY   float32
	}{
		{"facing +Y", 0, 0, -20},
		{"facing -X", 90, 20, 0},
		{"facing -Y", 180, 0, 20},
		{"facing +X", 270, -20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := car(0, 0, 0, 0, tt.heading).Behind(20)
			if !approx(got.X, tt.wantX, 1e-4) || !approx(got.Y, tt.wantY, 1e-4) {
				t.Errorf("Behind(20) = %+v, want (%v, %v)", got, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestRedChannelScoreWraps(t *testing.T) {
	tests := []struct {
		me, c uint8
		want  float32
	}{
		{200, 100, 100},
		{10, 20, 246},
		{50, 50, 0},
		{0, 255, 1},
	}

	for _, tt := range tests {
		got := RedChannelScore(car(0, tt.me, 0, 0, 0), car(1, tt.c, 5, 5, 0))
		if got != tt.want {
			t.Errorf("RedChannelScore(%d, %d) = %v, want %v", tt.me, tt.c, got, tt.want)
		}
	}
}

func TestLeader(t *testing.T) {
	me := car(1, 100, 0, 0, 0)

	tests := []struct {
		name   string
		scene  []AgentSnapshot
		wantOK bool
		wantID uint32
	}{
		{"alone", []AgentSnapshot{me}, false, 0},
		{"empty scene", nil, false, 0},
		{"positive difference", []AgentSnapshot{me, car(2, 60, 10, 10, 0)}, true, 2},
		{"equal red falls back", []AgentSnapshot{me, car(2, 100, 10, 10, 0)}, false, 0},
		{"wrapped difference", []AgentSnapshot{me, car(2, 200, 10, 10, 0)}, true, 2},
		{"lowest positive wins", []AgentSnapshot{car(2, 50, 1, 1, 0), me, car(3, 90, 2, 2, 0)}, true, 3},
		{"first wins ties", []AgentSnapshot{car(2, 90, 1, 1, 0), car(3, 90, 2, 2, 0)}, true, 2},
		{"same location is skipped", []AgentSnapshot{car(2, 90, 0, 0, 0), car(3, 50, 2, 2, 0)}, true, 3},
	}

	d := NewDriveHome(rand.New(rand.NewSource(1)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Leader(me, tt.scene)
			if ok != tt.wantOK {
				t.Fatalf("Leader ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("Leader = car %d, want car %d", got.ID, tt.wantID)
			}
		})
	}
}

func TestNextDestinationFollowsLeader(t *testing.T) {
	d := NewDriveHome(rand.New(rand.NewSource(1)))
	me := car(1, 100, 0, 0, 0)
	leader := car(2, 40, 100, 100, 0)

	got := d.NextDestination(me, []AgentSnapshot{me, leader})

	if !approx(got.Location.X, 100, 1e-4) || !approx(got.Location.Y, 80, 1e-4) {
		t.Errorf("destination = %+v, want 20 behind (100, 100)", got.Location)
	}
	if got.Speed != 80 {
		t.Errorf("speed = %v, want 80", got.Speed)
	}
}

func TestNextDestinationFallback(t *testing.T) {
	d := NewDriveHome(rand.New(rand.NewSource(99)))
	me := car(1, 100, 500, 500, 0)

	for range 1000 {
		got := d.NextDestination(me, []AgentSnapshot{me})
		if got.Speed != 65 {
			t.Fatalf("speed = %v, want 65", got.Speed)
		}
		if got.Location.X < 0 || got.Location.X >= 1000 || got.Location.Y < 0 || got.Location.Y >= 1000 {
			t.Fatalf("fallback location %+v outside [0, 1000)²", got.Location)
		}
	}
}

func TestNextDestinationDeterministic(t *testing.T) {
	a := NewDriveHome(rand.New(rand.NewSource(5)))
	b := NewDriveHome(rand.New(rand.NewSource(5)))
	me := car(1, 100, 0, 0, 0)

	for range 10 {
		wa := a.NextDestination(me, nil)
		wb := b.NextDestination(me, nil)
		if wa != wb {
			t.Fatalf("same seed diverged: %+v vs %+v", wa, wb)
		}
	}
}

func TestNextDestinationLeavesSceneUntouched(t *testing.T) {
	d := NewDriveHome(rand.New(rand.NewSource(1)))
	scene := []AgentSnapshot{car(1, 100, 0, 0, 0), car(2, 60, 10, 10, 45), car(3, 30, 20, 20, 90)}
	before := slices.Clone(scene)

	d.NextDestination(scene[0], scene)

	if !slices.Equal(scene, before) {
		t.Error("NextDestination modified the scene")
	}
}

func TestDriveHomeFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	me := car(1, 100, 0, 0, 0)
	near := car(2, 100, 5, 0, 0)
	far := car(3, 50, 50, 0, 0)
	scene := []AgentSnapshot{me, far, near}

	red := DriveHomeFromConfig(cfg, rand.New(rand.NewSource(1)))
	if red.FollowDistance != 20 || red.FollowSpeed != 80 || red.WanderSpeed != 65 || red.WanderExtent != 1000 {
		t.Errorf("defaults not carried over: %+v", red)
	}
	if got, _ := red.Leader(me, scene); got.ID != 3 {
		t.Errorf("red channel leader = car %d, want car 3", got.ID)
	}

	cfg.Driver.Score = config.ScoreDistance
	dist := DriveHomeFromConfig(cfg, rand.New(rand.NewSource(1)))
	if got, _ := dist.Leader(me, scene); got.ID != 2 {
		t.Errorf("distance leader = car %d, want car 2", got.ID)
	}
}
