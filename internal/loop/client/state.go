package client

import (
	"time"

	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/loop"
	"github.com/tomz197/meteors/internal/loop/config"
)

// terminalState is what the terminal host remembers between frames on top of
// the game itself.
type terminalState struct {
	lastInput time.Time
	inactive  bool // Showing the inactivity warning
	timedOut  bool

	// Game state the input stream was last reset for.
	inputState loop.GameState

	// Previous frame, to detect screen switches that need a full clear.
	prevState       loop.GameState
	prevLeaderboard bool
	wasInactive     bool
}

func newTerminalState(now time.Time) *terminalState {
	return &terminalState{
		lastInput:  now,
		inputState: loop.GameStateMenu,
		prevState:  loop.GameStateMenu,
	}
}

// observe updates the inactivity timers from this frame's input.
func (s *terminalState) observe(in input.Input, now time.Time, limits bool) {
	if in.Any() {
		s.lastInput = now
		s.inactive = false
		return
	}
	if !limits {
		return
	}
	idle := now.Sub(s.lastInput)
	switch {
	case idle > config.InactivityDisconnectUser:
		s.timedOut = true
	case idle > config.InactivityWarnUser:
		s.inactive = true
	}
}

// switched reports whether the screen changed since the last call.
func (s *terminalState) switched(v loop.View) bool {
	changed := v.State != s.prevState ||
		v.ShowLeaderboard != s.prevLeaderboard ||
		s.inactive != s.wasInactive
	s.prevState = v.State
	s.prevLeaderboard = v.ShowLeaderboard
	s.wasInactive = s.inactive
	return changed
}

// idleRemaining is the time left before an idle disconnect.
func (s *terminalState) idleRemaining(now time.Time) time.Duration {
	return max(0, config.InactivityDisconnectUser-now.Sub(s.lastInput))
}
