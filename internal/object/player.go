package object

import (
	"time"

	"github.com/tomz197/meteors/internal/physics"
)

const (
	PlayerSpeed    = 300.0
	PlayerCooldown = 400 * time.Millisecond
)

// Player is the ship the user steers along both axes.
type Player struct {
	body
	Direction physics.Vec // unit vector, zero without input
	Speed     float64     // units per second

	cooldown time.Duration
}

// NewPlayer creates a ship centered on pos, ready to fire.
func NewPlayer(pos physics.Vec) *Player {
	return &Player{
		body:  body{pos: pos, w: PlayerWidth, h: PlayerHeight},
		Speed: PlayerSpeed,
	}
}

func (p *Player) Kind() Kind { return KindPlayer }

func (p *Player) Mask() *physics.Mask { return playerMask }

// Cooldown returns the time left until the next shot is allowed.
func (p *Player) Cooldown() time.Duration { return p.cooldown }

// Update moves the ship, keeps it inside the field and fires lasers.
func (p *Player) Update(ctx UpdateContext) {
	dt := ctx.Delta.Seconds()

	// Opposite keys cancel out.
	p.Direction = physics.Vec{
		X: axis(ctx.Input.Left, ctx.Input.Right),
		Y: axis(ctx.Input.Up, ctx.Input.Down),
	}.Normalize()
	p.pos = p.pos.Add(p.Direction.Scale(p.Speed * dt))

	p.pos.X = physics.Clamp(p.pos.X, p.w/2, ctx.Field.Width-p.w/2)
	p.pos.Y = physics.Clamp(p.pos.Y, p.h/2, ctx.Field.Height-p.h/2)

	// Shooting
	p.cooldown -= ctx.Delta
	if p.cooldown < 0 {
		p.cooldown = 0
	}
	if ctx.Input.Shoot && p.cooldown == 0 && ctx.Spawner != nil {
		p.cooldown = PlayerCooldown

		// Laser leaves from the nose: its mid-bottom at the ship's mid-top.
		nose := physics.Vec{X: p.pos.X, Y: p.pos.Y - p.h/2}
		ctx.Spawner.Spawn(NewLaser(physics.Vec{X: nose.X, Y: nose.Y - LaserHeight/2}))
	}
}
