package object

import "github.com/tomz197/meteors/internal/physics"

// LaserSpeed is the upward speed of a laser.
const LaserSpeed = 400.0

// Laser is a shot fired by the player.
type Laser struct {
	body
	Speed float64
}

// NewLaser creates a laser centered on pos.
func NewLaser(pos physics.Vec) *Laser {
	return &Laser{
		body:  body{pos: pos, w: LaserWidth, h: LaserHeight},
		Speed: LaserSpeed,
	}
}

func (l *Laser) Kind() Kind { return KindLaser }

func (l *Laser) Mask() *physics.Mask { return laserMask }

// Update moves the laser up and drops it once it leaves the top edge.
func (l *Laser) Update(ctx UpdateContext) {
	l.pos.Y -= l.Speed * ctx.Delta.Seconds()
	if l.Bounds().Bottom() < 0 {
		l.Kill()
	}
}
