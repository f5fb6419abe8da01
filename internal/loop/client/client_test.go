package client

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/meteors/internal/clock"
	"github.com/tomz197/meteors/internal/draw"
	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/loop"
	"github.com/tomz197/meteors/internal/loop/config"
)

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name               string
		w, h               int
		rw, rh, offC, offR int
	}{
		{"fits", 100, 40, 100, 40, 0, 0},
		{"too wide", config.MaxTermWidth + 20, 40, config.MaxTermWidth, 40, 10, 0},
		{"too tall", 100, config.MaxTermHeight + 11, 100, config.MaxTermHeight, 0, 5},
		{"unknown size", 0, 0, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw, rh, offC, offR := clampTermSize(tt.w, tt.h)
			if rw != tt.rw || rh != tt.rh || offC != tt.offC || offR != tt.offR {
				t.Errorf("clampTermSize(%d, %d) = %d, %d, %d, %d", tt.w, tt.h, rw, rh, offC, offR)
			}
		})
	}
}

func TestInactivity(t *testing.T) {
	start := time.Unix(0, 0)
	s := newTerminalState(start)

	s.observe(input.Input{}, start.Add(config.InactivityWarnUser+time.Second), true)
	if !s.inactive || s.timedOut {
		t.Fatalf("inactive=%v timedOut=%v after warn threshold", s.inactive, s.timedOut)
	}

	s.observe(input.Input{Left: true}, start.Add(config.InactivityWarnUser+2*time.Second), true)
	if s.inactive {
		t.Fatal("key press did not clear the warning")
	}

	pressedAt := config.InactivityWarnUser + 2*time.Second
	s.observe(input.Input{}, start.Add(pressedAt+config.InactivityDisconnectUser-time.Second), true)
	if s.timedOut {
		t.Fatal("timed out before the disconnect limit")
	}

	s.observe(input.Input{}, start.Add(pressedAt+config.InactivityDisconnectUser+time.Second), true)
	if !s.timedOut {
		t.Error("idle client not timed out")
	}
}

func TestInactivityDisabled(t *testing.T) {
	start := time.Unix(0, 0)
	s := newTerminalState(start)
	s.observe(input.Input{}, start.Add(time.Hour), false)
	if s.inactive || s.timedOut {
		t.Error("idle limits applied while disabled")
	}
}

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func TestRunDrawsMenuAndQuits(t *testing.T) {
	src := clock.NewManual(time.Unix(0, 0))
	g := loop.New(loop.Options{Clock: src})
	var out bytes.Buffer

	c := New(g, bufio.NewReader(strings.NewReader("q")), &out, Options{
		TermSizeFunc: fixedSize(128, 36),
		Clock:        src,
	})
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g.Running() {
		t.Error("game still running after q")
	}
	if !strings.Contains(out.String(), "SPACE SHOOTER") {
		t.Error("menu title never drawn")
	}
}

func TestRunDisconnectsIdleClient(t *testing.T) {
	src := clock.NewManual(time.Unix(0, 0))
	g := loop.New(loop.Options{Clock: src})
	pr, pw := io.Pipe()
	defer pw.Close()

	c := New(g, bufio.NewReader(pr), io.Discard, Options{
		TermSizeFunc: fixedSize(80, 24),
		Clock:        src,
		IdleLimits:   true,
	})
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !c.state.timedOut {
		t.Error("Run returned without an idle timeout")
	}
	if idle := src.Now().Sub(time.Unix(0, 0)); idle < config.InactivityDisconnectUser {
		t.Errorf("disconnected after %v", idle)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	g := loop.New(loop.Options{})
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(g, bufio.NewReader(pr), io.Discard, Options{TermSizeFunc: fixedSize(80, 24)})
	if err := c.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestClickTargetShortTerminal(t *testing.T) {
	g := loop.New(loop.Options{})
	field := g.Field()
	buttons := g.Buttons()

	// Ten rows put a full cell taller than a button.
	canvas := draw.NewScaledCanvas(80, 10, field.Width, field.Height)
	for _, b := range buttons {
		center := b.Bounds.Center()
		col, row := canvas.LogicalToTerminal(center.X, center.Y)
		click := clickTarget(canvas.CellBounds(col, row), buttons)
		if !b.Bounds.Contains(click.X, click.Y) {
			t.Errorf("click on %s cell (%d,%d) landed at (%.0f,%.0f), outside %+v",
				b.Label, col, row, click.X, click.Y, b.Bounds)
		}
	}
}

func TestClickTargetEmptyCell(t *testing.T) {
	g := loop.New(loop.Options{})
	field := g.Field()
	canvas := draw.NewScaledCanvas(128, 36, field.Width, field.Height)

	cell := canvas.CellBounds(1, 1)
	click := clickTarget(cell, g.Buttons())
	if want := cell.Center(); click.X != want.X || click.Y != want.Y {
		t.Errorf("clickTarget = (%v,%v), want cell center (%v,%v)", click.X, click.Y, want.X, want.Y)
	}
}

func TestReleaseKeysOnSwitch(t *testing.T) {
	src := clock.NewManual(time.Unix(0, 0))
	g := loop.New(loop.Options{Clock: src})
	pr, pw := io.Pipe()
	defer pw.Close()

	c := New(g, bufio.NewReader(pr), io.Discard, Options{TermSizeFunc: fixedSize(80, 24), Clock: src})
	c.releaseKeysOnSwitch()
	if c.state.inputState != loop.GameStateMenu {
		t.Fatalf("inputState = %v before any switch", c.state.inputState)
	}

	g.Frame(input.Input{Shoot: true}, 16*time.Millisecond)
	if g.State() != loop.GameStatePlaying {
		t.Fatalf("SPACE on the menu left state %v", g.State())
	}
	c.releaseKeysOnSwitch()
	if c.state.inputState != loop.GameStatePlaying {
		t.Errorf("inputState = %v after starting a game", c.state.inputState)
	}
}
