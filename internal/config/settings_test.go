package config

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"METEORS_WIDTH", "METEORS_HEIGHT", "METEORS_FPS", "METEORS_MAX_DELTA", "METEORS_SEED"} {
		t.Setenv(key, "")
	}
	s := Load()
	if s.FieldWidth != DefaultFieldWidth || s.FieldHeight != DefaultFieldHeight {
		t.Errorf("field = %dx%d, want %dx%d", s.FieldWidth, s.FieldHeight, DefaultFieldWidth, DefaultFieldHeight)
	}
	if s.MaxFPS != DefaultMaxFPS {
		t.Errorf("MaxFPS = %d, want %d", s.MaxFPS, DefaultMaxFPS)
	}
	if s.MaxDelta != DefaultMaxDelta {
		t.Errorf("MaxDelta = %v, want %v", s.MaxDelta, DefaultMaxDelta)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("METEORS_WIDTH", "800")
	t.Setenv("METEORS_HEIGHT", "600")
	t.Setenv("METEORS_MAX_DELTA", "20ms")
	t.Setenv("METEORS_SEED", "42")

	s := Load()
	if s.FieldWidth != 800 || s.FieldHeight != 600 {
		t.Errorf("field = %dx%d, want 800x600", s.FieldWidth, s.FieldHeight)
	}
	if s.MaxDelta != 20*time.Millisecond {
		t.Errorf("MaxDelta = %v, want 20ms", s.MaxDelta)
	}
	if got := s.SeedOrNow(); got != 42 {
		t.Errorf("SeedOrNow() = %d, want 42", got)
	}
}

func TestLoadRejectsInvalidField(t *testing.T) {
	t.Setenv("METEORS_WIDTH", "-5")
	t.Setenv("METEORS_HEIGHT", "tall")

	s := Load()
	if s.FieldWidth != DefaultFieldWidth {
		t.Errorf("FieldWidth = %d, want default %d", s.FieldWidth, DefaultFieldWidth)
	}
	if s.FieldHeight != DefaultFieldHeight {
		t.Errorf("FieldHeight = %d, want default %d", s.FieldHeight, DefaultFieldHeight)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
}
