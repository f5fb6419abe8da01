package object

import (
	"time"

	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/physics"
)

// ID identifies an entity inside a registry.
type ID uint64

// Kind tags the entity variant.
type Kind int

const (
	KindPlayer Kind = iota
	KindStar
	KindLaser
	KindMeteor
	KindExplosion
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindStar:
		return "star"
	case KindLaser:
		return "laser"
	case KindMeteor:
		return "meteor"
	case KindExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Field is the visible play area in field units.
type Field struct {
	Width  float64
	Height float64
}

// Center returns the middle of the field.
func (f Field) Center() physics.Vec {
	return physics.Vec{X: f.Width / 2, Y: f.Height / 2}
}

// Spawner allows entities to spawn new entities during update.
type Spawner interface {
	Spawn(e Entity)
}

// Input is an alias for the input package's Input type.
type Input = input.Input

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Now     time.Time
	Input   Input
	Field   Field
	Spawner Spawner
}

// Entity is one of the game's variants: *Player, *Star, *Laser, *Meteor or
// *Explosion. The set is closed; callers dispatch with a type switch.
type Entity interface {
	// Update advances the entity by ctx.Delta.
	Update(ctx UpdateContext)

	Kind() Kind
	Position() physics.Vec
	Bounds() physics.Rect
	Alive() bool
	Kill()

	entity()
}

// Collider is an entity with a pixel-accurate shape. The mask's (0,0) is the
// top-left of Bounds().
type Collider interface {
	Entity
	Mask() *physics.Mask
}

// body holds the state shared by every variant.
type body struct {
	pos  physics.Vec // center
	w, h float64
	dead bool
}

func (b *body) Position() physics.Vec { return b.pos }

func (b *body) Bounds() physics.Rect { return physics.RectAt(b.pos, b.w, b.h) }

func (b *body) Alive() bool { return !b.dead }

// Kill marks the entity for removal by its owner.
func (b *body) Kill() { b.dead = true }

func (b *body) entity() {}

func axis(neg, pos bool) float64 {
	v := 0.0
	if neg {
		v--
	}
	if pos {
		v++
	}
	return v
}
