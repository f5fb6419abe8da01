package clock

import "time"

// Repeater fires at a fixed wall-clock interval, independent of how often it
// is polled. A slow frame collects every interval that elapsed meanwhile.
type Repeater struct {
	interval time.Duration
	next     time.Time
}

// NewRepeater creates a repeater whose first fire is one interval after now.
func NewRepeater(interval time.Duration, now time.Time) *Repeater {
	return &Repeater{
		interval: interval,
		next:     now.Add(interval),
	}
}

// Reset re-arms the repeater so the next fire is one interval after now.
func (r *Repeater) Reset(now time.Time) {
	r.next = now.Add(r.interval)
}

// Poll returns how many fires are due at now and schedules the following one.
func (r *Repeater) Poll(now time.Time) int {
	if r.interval <= 0 {
		return 0
	}
	fires := 0
	for !now.Before(r.next) {
		fires++
		r.next = r.next.Add(r.interval)
	}
	return fires
}
