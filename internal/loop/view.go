package loop

import (
	"github.com/tomz197/meteors/internal/object"
	"github.com/tomz197/meteors/internal/physics"
)

// Drawable is what a renderer needs to paint one entity.
type Drawable struct {
	Kind     object.Kind
	Center   physics.Vec
	Width    float64
	Height   float64
	Rotation float64 // Meteors only, degrees
	Frame    int     // Explosions only
}

// View is the read-only picture of a frame handed to hosts.
type View struct {
	State           GameState
	ShowLeaderboard bool
	Field           object.Field
	Score           int
	FinalScore      int
	NewHighScore    bool
	Leaderboard     []int
	Drawables       []Drawable // Back to front
	Buttons         []Button
	Focus           int
}

// View snapshots the current frame.
func (g *Game) View() View {
	v := View{
		State:           g.state,
		ShowLeaderboard: g.showLeaderboard,
		Field:           g.field,
		Score:           g.Score(),
		FinalScore:      g.finalScore,
		NewHighScore:    g.newHighScore,
		Leaderboard:     g.scores,
		Buttons:         g.Buttons(),
		Focus:           g.focus,
	}
	if g.session != nil && g.state != GameStateMenu {
		v.Drawables = drawables(g.session.Registry)
	}
	return v
}

func drawables(r *Registry) []Drawable {
	out := make([]Drawable, 0, r.Len())
	r.Each(func(e object.Entity) {
		b := e.Bounds()
		d := Drawable{
			Kind:   e.Kind(),
			Center: e.Position(),
			Width:  b.W,
			Height: b.H,
		}
		switch o := e.(type) {
		case *object.Meteor:
			d.Rotation = o.Rotation()
		case *object.Explosion:
			d.Frame = o.Frame()
		}
		out = append(out, d)
	})
	return out
}
