package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/traffic/components"
	"github.com/pthm-cable/traffic/config"
)

// Driver chooses a car's next destination once it reaches the current one.
// Implementations must not modify me or scene, and must not retain scene
// beyond the call.
type Driver interface {
	NextDestination(me AgentSnapshot, scene []AgentSnapshot) components.Waypoint
}

// ScoreFunc rates how close candidate c is to me. Only positive scores are
// eligible; the lowest wins.
type ScoreFunc func(me, c AgentSnapshot) float32

// RedChannelScore is the wrapping difference of the red channels, me.R - c.R.
// It ignores geometry entirely: the "nearest" car is the one with the
// closest smaller red value (mod 256), and equal reds never qualify.
func RedChannelScore(me, c AgentSnapshot) float32 {
	return float32(me.Color.R - c.Color.R)
}

// DistanceScore is the squared Euclidean distance between the two cars.
func DistanceScore(me, c AgentSnapshot) float32 {
	d := me.Location.Sub(c.Location)
	return d.X*d.X + d.Y*d.Y
}

// DriveHome follows the point just behind the nearest other car, or picks a
// random destination when no other car qualifies.
type DriveHome struct {
	FollowDistance float32
	FollowSpeed    float32
	WanderSpeed    float32
	WanderExtent   float32
	Score          ScoreFunc

	rng *rand.Rand
}

// NewDriveHome creates a driver with the reference constants: follow 20
// units behind the leader at 80, otherwise wander over [0,1000)² at 65.
func NewDriveHome(rng *rand.Rand) *DriveHome {
	return &DriveHome{
		FollowDistance: 20,
		FollowSpeed:    80,
		WanderSpeed:    65,
		WanderExtent:   1000,
		Score:          RedChannelScore,
		rng:            rng,
	}
}

// DriveHomeFromConfig creates a driver from the driver config section.
func DriveHomeFromConfig(cfg *config.Config, rng *rand.Rand) *DriveHome {
	d := cfg.Driver
	score := RedChannelScore
	if d.Score == config.ScoreDistance {
		score = DistanceScore
	}
	return &DriveHome{
		FollowDistance: float32(d.FollowDistance),
		FollowSpeed:    float32(d.FollowSpeed),
		WanderSpeed:    float32(d.WanderSpeed),
		WanderExtent:   float32(d.WanderExtent),
		Score:          score,
		rng:            rng,
	}
}

// NextDestination implements Driver.
func (d *DriveHome) NextDestination(me AgentSnapshot, scene []AgentSnapshot) components.Waypoint {
	if leader, ok := d.Leader(me, scene); ok {
		return components.Waypoint{
			Location: leader.Behind(d.FollowDistance),
			Speed:    d.FollowSpeed,
		}
	}

	x := RandRange(d.rng, 0, d.WanderExtent)
	y := RandRange(d.rng, 0, d.WanderExtent)
	return components.NewWaypoint(x, y, d.WanderSpeed)
}

// Leader returns the best-scoring car in scene other than me.
// Cars at exactly me's location are treated as me and skipped.
// Ties go to the earliest car in scene.
func (d *DriveHome) Leader(me AgentSnapshot, scene []AgentSnapshot) (AgentSnapshot, bool) {
	best := -1
	bestScore := float32(math.Inf(1))

	for i := range scene {
		c := &scene[i]
		if c.Location == me.Location {
			continue
		}
		score := d.Score(me, *c)
		if score < bestScore && score > 0 {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		return AgentSnapshot{}, false
	}
	return scene[best], true
}
