// Package client hosts a game in an ANSI terminal: a local TTY or an SSH
// session.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/meteors/internal/clock"
	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/loop"
	"github.com/tomz197/meteors/internal/loop/config"
	"github.com/tomz197/meteors/internal/physics"
)

// Client handles rendering and input for a single terminal.
type Client struct {
	game         *loop.Game
	state        *terminalState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	clock        *clock.Clock
	maxFPS       int
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	idleLimits   bool
}

// Options configures the client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Clock        clock.Source  // Defaults to the system clock
	MaxDelta     time.Duration // Cap on a single frame step; zero disables it
	MaxFPS       int           // Defaults to config.ClientTargetFPS
	// IdleLimits enables the inactivity warning and disconnect, for shared
	// servers.
	IdleLimits bool
}

// New creates a client that drives g, reading keys from r and drawing to w.
func New(g *loop.Game, r *bufio.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.MaxFPS <= 0 {
		opts.MaxFPS = config.ClientTargetFPS
	}

	field := g.Field()

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, field.Width, field.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		game:         g,
		state:        newTerminalState(opts.Clock.Now()),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		clock:        clock.New(opts.Clock, opts.MaxDelta),
		maxFPS:       opts.MaxFPS,
		termSizeFunc: termSizeFunc,
		logger:       opts.Logger,
		idleLimits:   opts.IdleLimits,
	}
}

// Run drives frames until the game quits, the input closes, the user idles
// out or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer func() {
		draw.DisableMouse(c.writer)
		draw.ShowCursor(c.writer)
	}()
	draw.ClearScreen(c.writer)

	for c.game.Running() {
		select {
		case <-ctx.Done():
			c.logger.Info("client stopped", "reason", ctx.Err())
			draw.ClearScreen(c.writer)
			return nil
		default:
		}

		dt := c.clock.Tick(c.maxFPS)
		now := c.clock.Source().Now()

		c.updateScreen()
		in := c.processInput(now)
		if c.state.timedOut {
			c.logger.Info("disconnecting idle client", "idle", now.Sub(c.state.lastInput))
			break
		}

		c.game.Frame(in, dt)
		c.releaseKeysOnSwitch()

		if err := c.drawFrame(now); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput samples the stream, maps clicks into field coordinates and
// tracks inactivity.
func (c *Client) processInput(now time.Time) input.Input {
	in := input.ReadInput(c.inputStream, now)

	buttons := c.game.Buttons()
	for i, click := range in.Clicks {
		in.Clicks[i] = clickTarget(c.canvas.CellBounds(int(click.X), int(click.Y)), buttons)
	}

	c.state.observe(in, now, c.idleLimits)
	return in
}

// clickTarget picks the field point a click on cell stands for. A cell can be
// taller than a button, so a click counts for the button covering most of
// the cell; otherwise it lands on the cell's center.
func clickTarget(cell physics.Rect, buttons []loop.Button) input.Click {
	target := cell.Center()
	best := 0.0
	for _, b := range buttons {
		overlap, ok := cell.Intersect(b.Bounds)
		if !ok {
			continue
		}
		if area := overlap.W * overlap.H; area > best {
			best = area
			target = overlap.Center()
		}
	}
	return input.Click{X: target.X, Y: target.Y}
}

// releaseKeysOnSwitch mutes keys held across a screen change, so terminal
// autorepeat of the fire key can't activate the next screen's buttons.
func (c *Client) releaseKeysOnSwitch() {
	if st := c.game.State(); st != c.state.inputState {
		c.state.inputState = st
		c.inputStream.Reset()
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(1, min(termWidth, config.MaxTermWidth))
	renderHeight = max(1, min(termHeight, config.MaxTermHeight))
	offsetCol = max(0, (termWidth-renderWidth)/2)
	offsetRow = max(0, (termHeight-renderHeight)/2)
	return
}
