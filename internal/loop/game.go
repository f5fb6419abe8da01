package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/meteors/internal/clock"
	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/leaderboard"
	"github.com/tomz197/meteors/internal/loop/config"
	"github.com/tomz197/meteors/internal/object"
)

// Leaderboard records finished sessions. *leaderboard.Board and
// *leaderboard.Synced implement it.
type Leaderboard interface {
	Submit(score int) []int
	Scores() []int
}

// Options configures a Game. Zero values pick defaults: a 1280×720 field,
// the system clock, a time-seeded rng, an in-memory leaderboard and a
// discarding logger.
type Options struct {
	Field       object.Field
	Clock       clock.Source
	Rand        *rand.Rand
	Leaderboard Leaderboard
	Logger      *log.Logger
}

// Game is the state machine. It is single-threaded: the host calls Frame
// once per frame and reads View to draw.
type Game struct {
	field  object.Field
	clock  clock.Source
	rng    *rand.Rand
	board  Leaderboard
	logger *log.Logger

	state   GameState
	running bool

	session *Session
	spawner *object.MeteorSpawner

	showLeaderboard bool
	focus           int // Focused button on the current screen
	finalScore      int
	newHighScore    bool
	scores          []int // Board snapshot for the screens

	prevInput input.Input
}

// New creates a game on the menu screen.
func New(opts Options) *Game {
	if opts.Field.Width <= 0 || opts.Field.Height <= 0 {
		opts.Field = object.Field{Width: 1280, Height: 720}
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Leaderboard == nil {
		opts.Leaderboard = leaderboard.New(nil, opts.Logger)
	}

	g := &Game{
		field:   opts.Field,
		clock:   opts.Clock,
		rng:     opts.Rand,
		board:   opts.Leaderboard,
		logger:  opts.Logger,
		state:   GameStateMenu,
		running: true,
	}
	g.spawner = object.NewMeteorSpawner(config.MeteorInterval, g.clock.Now(), g.rng)
	g.scores = g.board.Scores()
	return g
}

// Frame runs one frame with the sampled input and the elapsed time dt.
// Quit stops the game at this frame boundary.
func (g *Game) Frame(in input.Input, dt time.Duration) {
	if !g.running {
		return
	}
	if in.Quit {
		g.quit()
		return
	}

	pressed := in.JustPressed(g.prevInput)
	g.prevInput = in

	switch g.state {
	case GameStateMenu:
		g.updateMenu(pressed)
	case GameStatePlaying:
		g.updatePlaying(in, pressed, dt)
	case GameStateGameOver:
		g.updateGameOver(pressed)
	}
}

// Running reports whether the game still wants frames.
func (g *Game) Running() bool { return g.running }

// State returns the current phase.
func (g *Game) State() GameState { return g.state }

// Field returns the play area.
func (g *Game) Field() object.Field { return g.field }

// Session returns the current playthrough, or nil outside of one.
func (g *Game) Session() *Session { return g.session }

// startSession discards any previous session and begins a new one.
func (g *Game) startSession() {
	now := g.clock.Now()
	g.session = NewSession(g.field, g.rng, now)
	g.spawner.Reset(now)
	g.finalScore = 0
	g.newHighScore = false
	g.setState(GameStatePlaying)
}

// toMenu discards the session and shows the title screen.
func (g *Game) toMenu() {
	g.session = nil
	g.showLeaderboard = false
	g.setState(GameStateMenu)
}

func (g *Game) quit() {
	g.running = false
	g.logger.Debug("quit", "state", g.state)
}

func (g *Game) setState(s GameState) {
	if g.state != s {
		g.logger.Debug("state change", "from", g.state, "to", s)
	}
	g.state = s
	g.focus = 0
}
