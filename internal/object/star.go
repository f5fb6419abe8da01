package object

import (
	"math/rand"

	"github.com/tomz197/meteors/internal/physics"
)

// Star is a static background decoration.
type Star struct {
	body
}

// NewStar places a star at a random position inside the field.
func NewStar(rng *rand.Rand, field Field) *Star {
	pos := physics.Vec{
		X: float64(rng.Intn(int(field.Width) + 1)),
		Y: float64(rng.Intn(int(field.Height) + 1)),
	}
	return &Star{body: body{pos: pos, w: StarSize, h: StarSize}}
}

func (s *Star) Kind() Kind { return KindStar }

// Update is a no-op; stars never move.
func (s *Star) Update(UpdateContext) {}
