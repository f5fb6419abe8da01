// Package desktop hosts a game in an ebiten window.
package desktop

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/meteors/internal/clock"
	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/loop"
	"github.com/tomz197/meteors/internal/object"
	"github.com/tomz197/meteors/internal/physics"
)

var (
	colorBackground = color.RGBA{R: 8, G: 8, B: 20, A: 255}
	colorStar       = color.RGBA{R: 200, G: 200, B: 220, A: 255}
	colorPlayer     = color.RGBA{R: 90, G: 200, B: 255, A: 255}
	colorLaser      = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	colorMeteor     = color.RGBA{R: 170, G: 140, B: 110, A: 255}
	colorExplosion  = color.RGBA{R: 255, G: 180, B: 60, A: 255}
	colorButton     = color.RGBA{R: 40, G: 40, B: 70, A: 255}
	colorFocus      = color.RGBA{R: 80, G: 80, B: 140, A: 255}
	colorOutline    = color.RGBA{R: 220, G: 220, B: 255, A: 255}
)

// debugGlyph is the width of one ebitenutil debug font character.
const debugGlyph = 6

// Host adapts a loop.Game to ebiten.Game.
type Host struct {
	game  *loop.Game
	clock *clock.Clock
}

// New wraps g. maxDelta caps a single frame step.
func New(g *loop.Game, src clock.Source, maxDelta time.Duration) *Host {
	if src == nil {
		src = clock.System{}
	}
	return &Host{game: g, clock: clock.New(src, maxDelta)}
}

// Run opens the window and blocks until the game quits.
func Run(h *Host, title string) error {
	f := h.game.Field()
	ebiten.SetWindowSize(int(f.Width), int(f.Height))
	ebiten.SetWindowTitle(title)
	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// Update samples input and advances one frame. ebiten paces the calls, so
// the clock is ticked without its own frame cap.
func (h *Host) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	h.game.Frame(readInput(), h.clock.Tick(0))
	if !h.game.Running() {
		return ebiten.Termination
	}
	return nil
}

// Layout keeps the logical screen at the field size.
func (h *Host) Layout(_, _ int) (int, int) {
	f := h.game.Field()
	return int(f.Width), int(f.Height)
}

func readInput() input.Input {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}

	in := input.Input{
		Quit:    pressed(ebiten.KeyQ),
		Left:    pressed(ebiten.KeyArrowLeft, ebiten.KeyA),
		Right:   pressed(ebiten.KeyArrowRight, ebiten.KeyD),
		Up:      pressed(ebiten.KeyArrowUp, ebiten.KeyW),
		Down:    pressed(ebiten.KeyArrowDown, ebiten.KeyS),
		Shoot:   pressed(ebiten.KeySpace),
		Confirm: pressed(ebiten.KeyEnter),
		Escape:  pressed(ebiten.KeyEscape),
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		in.Clicks = append(in.Clicks, input.Click{X: float64(x), Y: float64(y)})
	}
	return in
}

// Draw paints the current view.
func (h *Host) Draw(screen *ebiten.Image) {
	v := h.game.View()
	screen.Fill(colorBackground)

	for _, d := range v.Drawables {
		drawEntity(screen, d)
	}
	for i, b := range v.Buttons {
		drawButton(screen, b, i == v.Focus)
	}
	drawText(screen, v)
}

func drawEntity(screen *ebiten.Image, d loop.Drawable) {
	switch d.Kind {
	case object.KindStar:
		r := physics.RectAt(d.Center, d.Width, d.Height)
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), colorStar, false)
	case object.KindPlayer:
		strokePolygon(screen, object.PlayerOutline(), d.Center, 0, colorPlayer)
	case object.KindMeteor:
		strokePolygon(screen, object.MeteorOutline(), d.Center, d.Rotation, colorMeteor)
	case object.KindLaser:
		r := physics.RectAt(d.Center, d.Width, d.Height)
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), colorLaser, false)
	case object.KindExplosion:
		radius := object.ExplosionSize / 2 * float32(d.Frame+1) / object.ExplosionFrames
		vector.StrokeCircle(screen, float32(d.Center.X), float32(d.Center.Y), radius, 3, colorExplosion, true)
	}
}

func strokePolygon(screen *ebiten.Image, outline []physics.Vec, center physics.Vec, rotation float64, clr color.Color) {
	n := len(outline)
	for i := range outline {
		a := outline[i].Rotate(rotation).Add(center)
		b := outline[(i+1)%n].Rotate(rotation).Add(center)
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, clr, true)
	}
}

func drawButton(screen *ebiten.Image, b loop.Button, focused bool) {
	fill := colorButton
	if focused {
		fill = colorFocus
	}
	r := b.Bounds
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), fill, false)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, colorOutline, false)
	c := r.Center()
	centered(screen, b.Label, c.X, c.Y-8)
}

// centered prints s with its middle at x.
func centered(screen *ebiten.Image, s string, x, y float64) {
	ebitenutil.DebugPrintAt(screen, s, int(math.Round(x))-len(s)*debugGlyph/2, int(math.Round(y)))
}

func drawText(screen *ebiten.Image, v loop.View) {
	cx, cy := v.Field.Width/2, v.Field.Height/2
	switch {
	case v.State == loop.GameStatePlaying:
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", v.Score), 10, 10)
	case v.State == loop.GameStateMenu && v.ShowLeaderboard:
		centered(screen, "LEADERBOARD", cx, 100)
		if len(v.Leaderboard) == 0 {
			centered(screen, "No scores yet", cx, 200)
		}
		for i, score := range v.Leaderboard {
			centered(screen, fmt.Sprintf("%2d. %8d", i+1, score), cx, 180+float64(i)*40)
		}
	case v.State == loop.GameStateMenu:
		centered(screen, "SPACE SHOOTER", cx, cy-150)
		centered(screen, "Survive the meteor storm!", cx, cy-100)
	case v.State == loop.GameStateGameOver:
		centered(screen, "GAME OVER", cx, cy-150)
		centered(screen, fmt.Sprintf("Final score: %d", v.FinalScore), cx, cy-90)
		if v.NewHighScore {
			centered(screen, "NEW HIGH SCORE!", cx, cy-40)
		}
	}
}
