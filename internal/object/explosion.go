package object

import (
	"math"

	"github.com/tomz197/meteors/internal/physics"
)

// ExplosionRate is the animation speed in frames per second.
const ExplosionRate = 20.0

// Explosion is a short-lived effect left where something blew up.
type Explosion struct {
	body
	frame float64
}

// NewExplosion creates an explosion centered on pos.
func NewExplosion(pos physics.Vec) *Explosion {
	return &Explosion{body: body{pos: pos, w: ExplosionSize, h: ExplosionSize}}
}

func (e *Explosion) Kind() Kind { return KindExplosion }

// Frame returns the current animation frame index.
func (e *Explosion) Frame() int { return int(math.Floor(e.frame)) }

// Update advances the animation and ends it after the last frame.
func (e *Explosion) Update(ctx UpdateContext) {
	e.frame += ExplosionRate * ctx.Delta.Seconds()
	if e.Frame() >= ExplosionFrames {
		e.Kill()
	}
}
