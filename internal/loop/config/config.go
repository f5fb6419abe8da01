// Package config centralizes all tunable game parameters.
package config

import "time"

// Session setup
const (
	StarCount = 20
)

// Spawning
const (
	MeteorInterval = 500 * time.Millisecond
)

// Scoring
const (
	ScoreUnit = 100 * time.Millisecond // One point per unit survived
)

// Buttons, laid out around the field center.
const (
	ButtonWidth   = 200
	ButtonHeight  = 50
	ButtonSpacing = 70
	MenuButtonsY  = -20 // First menu button's top, relative to the center
	OverButtonsY  = 20  // First game-over button's top, relative to the center

	BackButtonWidth  = 150
	BackButtonBottom = 100 // Back button's top, measured up from the bottom edge
)

// Collision broad phase
const (
	SpaceCellSize = 32
	SpaceMargin   = 256 // Room above the field for spawning meteors
)

// Terminal rendering
const (
	MaxTermWidth    = 240 // Columns; wider terminals get a centered render area
	MaxTermHeight   = 80  // Rows
	ClientTargetFPS = 60
)

// Inactivity (SSH sessions)
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)
