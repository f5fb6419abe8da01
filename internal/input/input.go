package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Click is a pointer press. Hosts deliver it in field coordinates; the
// terminal Stream reports 1-based terminal cells until the client maps them.
type Click struct {
	X, Y float64
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Shoot   bool
	Confirm bool
	Escape  bool
	Clicks  []Click
}

// JustPressed returns the keys that are down now but were up in prev.
// Clicks are events already and pass through unchanged.
func (in Input) JustPressed(prev Input) Input {
	return Input{
		Quit:    in.Quit && !prev.Quit,
		Left:    in.Left && !prev.Left,
		Right:   in.Right && !prev.Right,
		Up:      in.Up && !prev.Up,
		Down:    in.Down && !prev.Down,
		Shoot:   in.Shoot && !prev.Shoot,
		Confirm: in.Confirm && !prev.Confirm,
		Escape:  in.Escape && !prev.Escape,
		Clicks:  in.Clicks,
	}
}

// Any reports whether any key is held or any click arrived.
func (in Input) Any() bool {
	return in.Quit || in.Left || in.Right || in.Up || in.Down ||
		in.Shoot || in.Confirm || in.Escape || len(in.Clicks) > 0
}

// key indexes the keys a terminal can report.
type key int

const (
	keyQuit key = iota
	keyLeft
	keyRight
	keyUp
	keyDown
	keyShoot
	keyConfirm
	keyEscape
	numKeys
)

// repeatDelay is longer than a typical terminal autorepeat delay. A muted key
// becomes live again once its bytes pause for at least this long.
const repeatDelay = 700 * time.Millisecond

// maxPending bounds an unfinished escape sequence carried to the next drain.
const maxPending = 32

// keyState tracks, per key, the last accepted press and the last byte seen.
// A muted key ignores bytes until it has been released.
type keyState struct {
	pressed [numKeys]time.Time
	seen    [numKeys]time.Time
	muted   [numKeys]bool
}

func (k *keyState) press(id key, now time.Time) {
	if k.muted[id] {
		released := now.Sub(k.seen[id]) >= repeatDelay
		k.seen[id] = now
		if !released {
			return
		}
		k.muted[id] = false
	}
	k.seen[id] = now
	k.pressed[id] = now
}

func (k *keyState) held(id key, now time.Time) bool {
	return now.Sub(k.pressed[id]) < keyHoldDuration
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	clicks  []Click
	pending []byte // Unfinished escape sequence from the previous drain
	closed  bool
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// When r fails (EOF, closed session) the stream reports Quit from then on.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Reset releases every held key and mutes all but Quit until the user lets
// go of them, so autorepeat from a key held across a screen change is not
// read as a fresh press.
func (s *Stream) Reset() {
	for id := key(0); id < numKeys; id++ {
		s.state.pressed[id] = time.Time{}
		s.state.muted[id] = id != keyQuit
	}
	s.clicks = nil
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// returns the keys held at now. Key state persistence allows detecting
// simultaneous keys.
func ReadInput(s *Stream, now time.Time) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	s.feed(buf, now)
	return s.snapshot(now)
}

// feed parses the collected bytes and updates key state. An escape sequence
// cut off at the end of buf is kept and completed by the next drain; if that
// drain is empty, a lone ESC counts as the Escape key.
func (s *Stream) feed(buf []byte, now time.Time) {
	if len(s.pending) > 0 {
		pending := s.pending
		s.pending = nil
		if len(buf) == 0 {
			if len(pending) == 1 {
				s.state.press(keyEscape, now)
			}
			return
		}
		buf = append(pending, buf...)
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByteToState(&s.state, b, now)
			continue
		}

		if i+1 == len(buf) {
			s.pending = []byte{b}
			return
		}
		if buf[i+1] != '[' {
			s.state.press(keyEscape, now)
			continue
		}

		n := s.parseCSI(buf[i+2:], now)
		if n < 0 {
			if tail := buf[i:]; len(tail) <= maxPending {
				s.pending = append([]byte(nil), tail...)
			}
			return
		}
		i += 1 + n
	}
}

// parseCSI consumes a control sequence body (after "ESC ["), returning the
// bytes consumed or -1 if the sequence is incomplete. Arrow keys are mapped,
// other sequences are skipped.
func (s *Stream) parseCSI(seq []byte, now time.Time) int {
	if len(seq) == 0 {
		return -1
	}
	if seq[0] == '<' {
		n := s.parseMouse(seq[1:])
		if n < 0 {
			return -1
		}
		return 1 + n
	}

	for j, c := range seq {
		if c < 0x40 || c > 0x7e {
			continue
		}
		switch c {
		case 'A':
			s.state.press(keyUp, now)
		case 'B':
			s.state.press(keyDown, now)
		case 'C':
			s.state.press(keyRight, now)
		case 'D':
			s.state.press(keyLeft, now)
		}
		return j + 1
	}
	return -1
}

// parseMouse consumes an SGR mouse report body "b;x;yM" (after "ESC [ <").
// Returns the bytes consumed, 0 if the report is malformed, or -1 if it is
// incomplete.
func (s *Stream) parseMouse(buf []byte) int {
	var fields [3]int
	field, start := 0, 0
	for j, c := range buf {
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' && field < 2:
			n, err := strconv.Atoi(string(buf[start:j]))
			if err != nil {
				return 0
			}
			fields[field] = n
			field++
			start = j + 1
		case (c == 'M' || c == 'm') && field == 2:
			n, err := strconv.Atoi(string(buf[start:j]))
			if err != nil {
				return 0
			}
			fields[2] = n
			// Left button press without motion or wheel bits.
			if c == 'M' && fields[0]&0b1100011 == 0 {
				s.clicks = append(s.clicks, Click{X: float64(fields[1]), Y: float64(fields[2])})
			}
			return j + 1
		default:
			return 0
		}
	}
	return -1
}

// snapshot builds input from key state - keys are "pressed" if seen within hold duration.
func (s *Stream) snapshot(now time.Time) Input {
	in := Input{
		Quit:    s.closed || s.state.held(keyQuit, now),
		Left:    s.state.held(keyLeft, now),
		Right:   s.state.held(keyRight, now),
		Up:      s.state.held(keyUp, now),
		Down:    s.state.held(keyDown, now),
		Shoot:   s.state.held(keyShoot, now),
		Confirm: s.state.held(keyConfirm, now),
		Escape:  s.state.held(keyEscape, now),
		Clicks:  s.clicks,
	}
	s.clicks = nil
	return in
}

// applyByteToState updates the key state based on a plain (non-escape) byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C arrives as a byte in raw mode
		state.press(keyQuit, now)
	case 'a', 'A', 'h', 'H':
		state.press(keyLeft, now)
	case 'd', 'D', 'l', 'L':
		state.press(keyRight, now)
	case 'w', 'W', 'k', 'K':
		state.press(keyUp, now)
	case 's', 'S', 'j', 'J':
		state.press(keyDown, now)
	case ' ':
		state.press(keyShoot, now)
	case '\n', '\r':
		state.press(keyConfirm, now)
	}
}
