package loop

import (
	"time"

	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/object"
)

// updatePlaying runs one simulation step: spawn, update, collide.
// Escape abandons the session immediately.
func (g *Game) updatePlaying(in, pressed input.Input, dt time.Duration) {
	if pressed.Escape {
		g.toMenu()
		return
	}

	s := g.session
	ctx := object.UpdateContext{
		Delta:   dt,
		Now:     g.clock.Now(),
		Input:   in,
		Field:   g.field,
		Spawner: s,
	}

	// Meteors due this frame move with everything else.
	g.spawner.Update(ctx)
	s.FlushSpawned()

	updateEntities(s, ctx)
	s.Registry.Sync()

	g.checkCollisions()
	s.FlushSpawned()
	s.Registry.Sweep()
}

// updateEntities updates every entity, drops the dead ones and adds what was
// spawned. Lasers fired this frame start moving next frame.
func updateEntities(s *Session, ctx object.UpdateContext) {
	s.Registry.Each(func(e object.Entity) {
		e.Update(ctx)
	})
	s.Registry.Sweep()
	s.FlushSpawned()
}
