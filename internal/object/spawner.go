package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/meteors/internal/clock"
)

// MeteorSpawner drops meteors on a fixed wall-clock cadence, independent of
// the frame rate.
type MeteorSpawner struct {
	timer *clock.Repeater
	rng   *rand.Rand
}

// NewMeteorSpawner creates a spawner whose first meteor is due one interval
// after now.
func NewMeteorSpawner(interval time.Duration, now time.Time, rng *rand.Rand) *MeteorSpawner {
	return &MeteorSpawner{
		timer: clock.NewRepeater(interval, now),
		rng:   rng,
	}
}

// Reset re-arms the timer so the next meteor is one interval after now.
func (s *MeteorSpawner) Reset(now time.Time) {
	s.timer.Reset(now)
}

// Update spawns one meteor per timer fire due at ctx.Now and returns how many
// were spawned.
func (s *MeteorSpawner) Update(ctx UpdateContext) int {
	if ctx.Spawner == nil {
		return 0
	}
	n := s.timer.Poll(ctx.Now)
	for i := 0; i < n; i++ {
		ctx.Spawner.Spawn(RandomMeteor(s.rng, ctx.Field, ctx.Now))
	}
	return n
}
