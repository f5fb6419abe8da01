package object

import "github.com/tomz197/meteors/internal/physics"

// Sprite sizes in field units.
const (
	PlayerWidth     = 48
	PlayerHeight    = 48
	LaserWidth      = 4
	LaserHeight     = 20
	MeteorSize      = 64
	StarSize        = 8
	ExplosionSize   = 64
	ExplosionFrames = 21
)

// PlayerOutline returns the ship triangle relative to its center, nose up.
func PlayerOutline() []physics.Vec {
	return []physics.Vec{
		{X: 0, Y: -PlayerHeight / 2},
		{X: PlayerWidth / 2, Y: PlayerHeight / 2},
		{X: 0, Y: PlayerHeight / 4},
		{X: -PlayerWidth / 2, Y: PlayerHeight / 2},
	}
}

// MeteorOutline returns the unrotated rock polygon relative to its center.
func MeteorOutline() []physics.Vec {
	return []physics.Vec{
		{X: -8, Y: -32},
		{X: 18, Y: -28},
		{X: 32, Y: -6},
		{X: 26, Y: 20},
		{X: 6, Y: 32},
		{X: -20, Y: 28},
		{X: -32, Y: 6},
		{X: -26, Y: -18},
	}
}

var (
	playerMask = physics.PolygonMask(PlayerWidth, PlayerHeight, PlayerOutline())
	meteorMask = physics.PolygonMask(MeteorSize, MeteorSize, MeteorOutline())
	laserMask  = physics.FilledMask(LaserWidth, LaserHeight)
)
