package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Defaults for the playfield and frame pacing.
const (
	DefaultFieldWidth  = 1280
	DefaultFieldHeight = 720
	DefaultMaxFPS      = 60
	DefaultMaxDelta    = 50 * time.Millisecond
	DefaultSaveName    = "meteors"
)

// Settings holds the process-wide options every host shares.
type Settings struct {
	FieldWidth  int
	FieldHeight int
	MaxFPS      int
	MaxDelta    time.Duration // Upper bound for a single frame's dt
	Seed        int64         // 0 picks a time-based seed
	SaveName    string        // gdata application name for the leaderboard
	LogLevel    string
	LogFile     string // Terminal host only; empty discards logs
}

// Load reads settings from the environment, falling back to defaults.
func Load() Settings {
	s := Settings{
		FieldWidth:  GetEnvInt("METEORS_WIDTH", DefaultFieldWidth),
		FieldHeight: GetEnvInt("METEORS_HEIGHT", DefaultFieldHeight),
		MaxFPS:      GetEnvInt("METEORS_FPS", DefaultMaxFPS),
		MaxDelta:    GetEnvDuration("METEORS_MAX_DELTA", DefaultMaxDelta),
		Seed:        GetEnvInt64("METEORS_SEED", 0),
		SaveName:    GetEnv("METEORS_SAVE_NAME", DefaultSaveName),
		LogLevel:    GetEnv("METEORS_LOG_LEVEL", "info"),
		LogFile:     GetEnv("METEORS_LOG_FILE", ""),
	}
	if s.FieldWidth <= 0 {
		s.FieldWidth = DefaultFieldWidth
	}
	if s.FieldHeight <= 0 {
		s.FieldHeight = DefaultFieldHeight
	}
	if s.MaxFPS < 0 {
		s.MaxFPS = DefaultMaxFPS
	}
	return s
}

// SeedOrNow returns the configured seed, or a time-based one when unset.
func (s Settings) SeedOrNow() int64 {
	if s.Seed != 0 {
		return s.Seed
	}
	return time.Now().UnixNano()
}

// NewLogger creates a structured logger writing to w at the named level.
// Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           lvl,
	})
}
