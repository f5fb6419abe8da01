package client

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/loop"
	"github.com/tomz197/meteors/internal/object"
	"github.com/tomz197/meteors/internal/physics"
)

var (
	playerOutline = object.PlayerOutline()
	meteorOutline = object.MeteorOutline()
)

// drawFrame draws the current frame.
func (c *Client) drawFrame(now time.Time) error {
	v := c.game.View()

	// On screen switches, do a full terminal clear so UI elements from the
	// previous screen don't persist.
	if c.state.switched(v) {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
	}

	c.canvas.Clear()
	for _, d := range v.Drawables {
		c.drawEntity(d)
	}
	if !c.state.inactive {
		for _, b := range v.Buttons {
			c.canvas.DrawRect(b.Bounds, false)
		}
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(v, now)

	return c.chunkWriter.Flush()
}

// drawEntity paints one entity on the canvas.
func (c *Client) drawEntity(d loop.Drawable) {
	switch d.Kind {
	case object.KindStar:
		c.canvas.SetFloat(d.Center.X, d.Center.Y)
	case object.KindPlayer:
		c.drawOutline(playerOutline, d.Center, 0, true)
	case object.KindMeteor:
		c.drawOutline(meteorOutline, d.Center, d.Rotation, false)
	case object.KindLaser:
		c.canvas.DrawRect(physics.RectAt(d.Center, d.Width, d.Height), true)
	case object.KindExplosion:
		// A ring that grows over the animation.
		r := object.ExplosionSize / 2 * float64(d.Frame+1) / object.ExplosionFrames
		pts := c.canvas.BorrowPoints(8)
		for i := range pts {
			a := float64(i) * math.Pi / 4
			pts[i] = physics.Vec{X: d.Center.X + r*math.Cos(a), Y: d.Center.Y + r*math.Sin(a)}
		}
		c.canvas.DrawPolygon(pts, false)
	}
}

func (c *Client) drawOutline(outline []physics.Vec, center physics.Vec, rotation float64, filled bool) {
	pts := c.canvas.BorrowPoints(len(outline))
	for i, p := range outline {
		if rotation != 0 {
			p = p.Rotate(rotation)
		}
		pts[i] = p.Add(center)
	}
	c.canvas.DrawPolygon(pts, filled)
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI(v loop.View, now time.Time) {
	if c.state.inactive {
		c.drawInactivityScreen(v, now)
		return
	}

	switch {
	case v.State == loop.GameStatePlaying:
		c.drawPlayingHUD(v)
	case v.State == loop.GameStateMenu && v.ShowLeaderboard:
		c.drawLeaderboardScreen(v)
	case v.State == loop.GameStateMenu:
		c.drawMenuScreen(v, now)
	case v.State == loop.GameStateGameOver:
		c.drawGameOverScreen(v)
	}
	c.drawButtons(v)
}

// textAt writes s centered on the field position (x, y) and marks the
// covered cells so the canvas repaints them next frame.
func (c *Client) textAt(x, y float64, s, style string) {
	col, row := c.canvas.LogicalToTerminal(x, y)
	n := utf8.RuneCountInString(s)
	col -= n / 2
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	col = max(1, col)

	if style != "" {
		s = style + s + draw.ColorReset
	}
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, n)
}

func (c *Client) drawButtons(v loop.View) {
	for i, b := range v.Buttons {
		style := ""
		if i == v.Focus {
			style = draw.ColorReverse
		}
		center := b.Bounds.Center()
		c.textAt(center.X, center.Y, " "+b.Label+" ", style)
	}
}

// drawMenuScreen draws the title screen.
func (c *Client) drawMenuScreen(v loop.View, now time.Time) {
	cx, cy := v.Field.Width/2, v.Field.Height/2
	c.textAt(cx, cy-150, "SPACE SHOOTER", draw.ColorBold+draw.ColorBrightCyan)
	c.textAt(cx, cy-100, "Survive the meteor storm!", "")

	if best := v.Leaderboard; len(best) > 0 {
		c.textAt(cx, cy-70, fmt.Sprintf("Best: %d", best[0]), draw.ColorDim)
	}

	// Blinking controls hint
	if now.UnixMilli()/600%2 == 0 {
		c.textAt(cx, v.Field.Height-60, "Arrows/WASD move  SPACE shoot  ENTER select  Q quit", draw.ColorDim)
	}
}

// drawLeaderboardScreen lists the best scores.
func (c *Client) drawLeaderboardScreen(v loop.View) {
	cx := v.Field.Width / 2
	c.textAt(cx, 100, "LEADERBOARD", draw.ColorBold+draw.ColorYellow)

	if len(v.Leaderboard) == 0 {
		c.textAt(cx, 200, "No scores yet", draw.ColorDim)
		return
	}
	for i, score := range v.Leaderboard {
		// Fixed width so shorter entries don't leave residue.
		c.textAt(cx, 180+float64(i)*40, fmt.Sprintf("%2d. %8d", i+1, score), "")
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(v loop.View) {
	scoreText := fmt.Sprintf("Score: %-8d", v.Score)
	c.chunkWriter.WriteAt(2, 1, scoreText)
	c.canvas.MarkTextDirty(2, 1, len(scoreText))

	hint := "ESC menu"
	col := c.canvas.TerminalWidth() - len(hint)
	c.chunkWriter.WriteAt(col, 1, draw.ColorDim+hint+draw.ColorReset)
	c.canvas.MarkTextDirty(col, 1, len(hint))
}

// drawGameOverScreen draws the result of the finished session.
func (c *Client) drawGameOverScreen(v loop.View) {
	cx, cy := v.Field.Width/2, v.Field.Height/2
	c.textAt(cx, cy-150, "GAME OVER", draw.ColorBold+draw.ColorRed)
	c.textAt(cx, cy-90, fmt.Sprintf("Final score: %d", v.FinalScore), "")
	if v.NewHighScore {
		c.textAt(cx, cy-40, "NEW HIGH SCORE!", draw.ColorBold+draw.ColorGreen)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(v loop.View, now time.Time) {
	cx, cy := v.Field.Width/2, v.Field.Height/2
	c.textAt(cx, cy-60, "INACTIVITY WARNING", draw.ColorBold+draw.ColorYellow)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(c.state.idleRemaining(now).Seconds()),
	)
	c.textAt(cx, cy, msg, "")
	c.textAt(cx, cy+60, "Press any key to continue", draw.ColorDim)
}
