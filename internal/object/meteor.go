package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/meteors/internal/physics"
)

// MeteorLifetime is how long a meteor lives regardless of position.
const MeteorLifetime = 10 * time.Second

// Meteor is a rotating rock falling through the field.
type Meteor struct {
	body
	Direction     physics.Vec // not normalized; y is always 1
	Speed         float64     // units per second
	RotationSpeed float64     // degrees per second
	SpawnedAt     time.Time

	rotation float64 // accumulated degrees, never wrapped
	mask     *physics.Mask
}

// NewMeteor creates a meteor centered on pos.
func NewMeteor(pos, dir physics.Vec, speed, rotSpeed float64, now time.Time) *Meteor {
	return &Meteor{
		body:          body{pos: pos, w: MeteorSize, h: MeteorSize},
		Direction:     dir,
		Speed:         speed,
		RotationSpeed: rotSpeed,
		SpawnedAt:     now,
		mask:          meteorMask,
	}
}

// RandomMeteor creates a meteor above the top edge at a random x, with a
// random drift, speed and spin.
func RandomMeteor(rng *rand.Rand, field Field, now time.Time) *Meteor {
	pos := physics.Vec{
		X: float64(rng.Intn(int(field.Width) + 1)),
		Y: float64(-100 - rng.Intn(101)),
	}
	dir := physics.Vec{X: rng.Float64() - 0.5, Y: 1}
	speed := float64(400 + rng.Intn(101))
	rotSpeed := float64(40 + rng.Intn(41))
	return NewMeteor(pos, dir, speed, rotSpeed, now)
}

func (m *Meteor) Kind() Kind { return KindMeteor }

// Mask returns the shape for the current rotation.
func (m *Meteor) Mask() *physics.Mask { return m.mask }

// Rotation returns the accumulated rotation in degrees.
func (m *Meteor) Rotation() float64 { return m.rotation }

// Update moves the meteor, expires it, and re-derives its rotated shape.
func (m *Meteor) Update(ctx UpdateContext) {
	dt := ctx.Delta.Seconds()

	m.pos = m.pos.Add(m.Direction.Scale(m.Speed * dt))
	if m.Bounds().Top() > ctx.Field.Height || ctx.Now.Sub(m.SpawnedAt) >= MeteorLifetime {
		m.Kill()
	}

	m.rotation += m.RotationSpeed * dt
	m.mask = meteorMask.Rotate(m.rotation)
	m.w, m.h = float64(m.mask.Width()), float64(m.mask.Height())
}
