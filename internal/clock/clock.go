// Package clock provides time sources and frame timing for the game loop.
package clock

import "time"

// Source reports the current wall-clock time.
type Source interface {
	Now() time.Time
}

// Sleeper is implemented by sources that control how waiting advances time.
// Clock uses it instead of time.Sleep when available.
type Sleeper interface {
	Sleep(d time.Duration)
}

// System is the real monotonic clock.
type System struct{}

// Now returns time.Now.
func (System) Now() time.Time {
	return time.Now()
}

// Manual is a controllable time source for tests and replays.
// Sleeping advances it instantly.
type Manual struct {
	now time.Time
}

// NewManual creates a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// Set jumps to t.
func (m *Manual) Set(t time.Time) {
	m.now = t
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}

// Sleep implements Sleeper.
func (m *Manual) Sleep(d time.Duration) {
	m.Advance(d)
}

// Clock turns wall-clock ticks into a bounded per-frame delta.
type Clock struct {
	src      Source
	last     time.Time
	maxDelta time.Duration
}

// New creates a frame clock reading src. A maxDelta of zero disables clamping.
func New(src Source, maxDelta time.Duration) *Clock {
	return &Clock{
		src:      src,
		last:     src.Now(),
		maxDelta: maxDelta,
	}
}

// Source returns the underlying time source.
func (c *Clock) Source() Source {
	return c.src
}

// Tick waits out the rest of the frame budget for maxFPS (no wait when
// maxFPS <= 0) and returns the time since the previous Tick, capped at the
// clock's max delta so a stall never produces a runaway step.
func (c *Clock) Tick(maxFPS int) time.Duration {
	if maxFPS > 0 {
		budget := time.Second / time.Duration(maxFPS)
		if elapsed := c.src.Now().Sub(c.last); elapsed < budget {
			c.sleep(budget - elapsed)
		}
	}

	now := c.src.Now()
	dt := now.Sub(c.last)
	c.last = now

	if dt < 0 {
		dt = 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}
	return dt
}

func (c *Clock) sleep(d time.Duration) {
	if s, ok := c.src.(Sleeper); ok {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}
