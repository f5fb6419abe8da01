package loop

import (
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/tomz197/meteors/internal/clock"
	"github.com/tomz197/meteors/internal/input"
	"github.com/tomz197/meteors/internal/object"
	"github.com/tomz197/meteors/internal/physics"
)

var (
	epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	field = object.Field{Width: 1280, Height: 720}
	frame = 16 * time.Millisecond
)

// countingBoard records submissions.
type countingBoard struct {
	submitted []int
	scores    []int
}

func (b *countingBoard) Submit(score int) []int {
	b.submitted = append(b.submitted, score)
	b.scores = append(b.scores, score)
	slices.SortFunc(b.scores, func(x, y int) int { return y - x })
	return slices.Clone(b.scores)
}

func (b *countingBoard) Scores() []int { return slices.Clone(b.scores) }

func newTestGame(t *testing.T) (*Game, *clock.Manual, *countingBoard) {
	t.Helper()
	clk := clock.NewManual(epoch)
	board := &countingBoard{}
	g := New(Options{
		Field:       field,
		Clock:       clk,
		Rand:        rand.New(rand.NewSource(1)),
		Leaderboard: board,
	})
	return g, clk, board
}

// startPlaying presses confirm on the menu's focused Start button.
func startPlaying(t *testing.T, g *Game) {
	t.Helper()
	g.Frame(input.Input{}, frame)
	g.Frame(input.Input{Confirm: true}, frame)
	g.Frame(input.Input{}, frame)
	if g.State() != GameStatePlaying {
		t.Fatalf("State() = %v, want playing", g.State())
	}
}

func still(pos physics.Vec) *object.Meteor {
	return object.NewMeteor(pos, physics.Vec{}, 0, 0, epoch)
}

func countKind(r *Registry, k object.Kind) int {
	n := 0
	r.Each(func(e object.Entity) {
		if e.Kind() == k {
			n++
		}
	})
	return n
}

func TestNewGameStartsOnMenu(t *testing.T) {
	g, _, _ := newTestGame(t)
	if g.State() != GameStateMenu || !g.Running() {
		t.Fatalf("State() = %v, Running() = %v", g.State(), g.Running())
	}
	if v := g.View(); len(v.Drawables) != 0 || len(v.Buttons) != 3 {
		t.Errorf("menu view has %d drawables and %d buttons", len(v.Drawables), len(v.Buttons))
	}
}

func TestSessionReset(t *testing.T) {
	g, _, _ := newTestGame(t)
	startPlaying(t, g)

	s := g.Session()
	if n := countKind(s.Registry, object.KindStar); n != 20 {
		t.Errorf("stars = %d, want 20", n)
	}
	if n := countKind(s.Registry, object.KindPlayer); n != 1 {
		t.Errorf("players = %d, want 1", n)
	}
	if s.StartedAt != epoch {
		t.Errorf("StartedAt = %v, want %v", s.StartedAt, epoch)
	}
}

func TestScoreAfterFiveSeconds(t *testing.T) {
	g, clk, _ := newTestGame(t)
	g.startSession()

	clk.Advance(5000 * time.Millisecond)
	if got := g.Score(); got != 50 {
		t.Errorf("Score() = %d, want 50", got)
	}
	clk.Advance(99 * time.Millisecond)
	if got := g.Score(); got != 50 {
		t.Errorf("Score() at 5099ms = %d, want 50", got)
	}
}

func TestPlayerHitEndsSessionBeforeLaserHits(t *testing.T) {
	g, clk, board := newTestGame(t)
	g.startSession()
	s := g.session

	s.Registry.Add(still(s.Player.Position()))
	laser := object.NewLaser(physics.Vec{X: 200, Y: 300})
	target := still(physics.Vec{X: 200, Y: 300})
	s.Registry.Add(laser)
	s.Registry.Add(target)
	s.Registry.Sync()

	clk.Advance(1234 * time.Millisecond)
	if !g.checkCollisions() {
		t.Fatal("expected the player to die")
	}

	if g.State() != GameStateGameOver {
		t.Errorf("State() = %v, want game over", g.State())
	}
	if !laser.Alive() || !target.Alive() {
		t.Error("laser hit applied after the player died")
	}
	if len(s.toSpawn) != 1 || s.toSpawn[0].Position() != s.Player.Position() {
		t.Errorf("queued %d entities, want one explosion at the player", len(s.toSpawn))
	}
	if !slices.Equal(board.submitted, []int{12}) {
		t.Errorf("submitted %v, want [12]", board.submitted)
	}
}

func TestLaserDestroysEveryOverlappingMeteor(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.startSession()
	s := g.session

	laser := object.NewLaser(physics.Vec{X: 200, Y: 300})
	a := still(physics.Vec{X: 200, Y: 300})
	b := still(physics.Vec{X: 210, Y: 300})
	far := still(physics.Vec{X: 900, Y: 200})
	idle := object.NewLaser(physics.Vec{X: 500, Y: 600})
	for _, e := range []object.Entity{laser, a, b, far, idle} {
		s.Registry.Add(e)
	}
	s.Registry.Sync()

	if g.checkCollisions() {
		t.Fatal("player should not die")
	}
	if laser.Alive() || a.Alive() || b.Alive() {
		t.Error("laser and both meteors should be destroyed")
	}
	if !far.Alive() || !idle.Alive() {
		t.Error("untouched entities were destroyed")
	}

	s.FlushSpawned()
	if n := countKind(s.Registry, object.KindExplosion); n != 2 {
		t.Errorf("explosions = %d, want 2", n)
	}
	s.Registry.Sweep()
	if len(s.Registry.Lasers()) != 1 || len(s.Registry.Meteors()) != 1 {
		t.Errorf("lasers = %d, meteors = %d after sweep, want 1 and 1",
			len(s.Registry.Lasers()), len(s.Registry.Meteors()))
	}
}

func TestDestroyedMeteorOnlyCountsOnce(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.startSession()
	s := g.session

	first := object.NewLaser(physics.Vec{X: 200, Y: 300})
	second := object.NewLaser(physics.Vec{X: 202, Y: 305})
	m := still(physics.Vec{X: 200, Y: 300})
	for _, e := range []object.Entity{first, second, m} {
		s.Registry.Add(e)
	}
	s.Registry.Sync()
	g.checkCollisions()

	if first.Alive() || m.Alive() {
		t.Error("first laser and meteor should be destroyed")
	}
	if !second.Alive() {
		t.Error("second laser hit an already destroyed meteor")
	}
	if len(s.toSpawn) != 1 {
		t.Errorf("explosions = %d, want 1", len(s.toSpawn))
	}
}

func TestFrameDeathSubmitsOnce(t *testing.T) {
	g, _, board := newTestGame(t)
	startPlaying(t, g)
	s := g.Session()
	s.Registry.Add(still(s.Player.Position()))

	g.Frame(input.Input{}, frame)
	if g.State() != GameStateGameOver {
		t.Fatalf("State() = %v, want game over", g.State())
	}

	// Frozen: more frames neither resubmit nor change the score.
	score := g.Score()
	for i := 0; i < 10; i++ {
		g.Frame(input.Input{}, frame)
	}
	if len(board.submitted) != 1 {
		t.Errorf("submitted %d times, want 1", len(board.submitted))
	}
	if g.Score() != score {
		t.Errorf("Score() changed from %d to %d after game over", score, g.Score())
	}
	v := g.View()
	if !v.NewHighScore || v.FinalScore != score {
		t.Errorf("view = %+v", v)
	}
}

func TestHeldShootDoesNotRestart(t *testing.T) {
	g, _, _ := newTestGame(t)
	startPlaying(t, g)
	s := g.Session()
	s.Registry.Add(still(s.Player.Position()))

	shoot := input.Input{Shoot: true}
	g.Frame(shoot, frame)
	g.Frame(shoot, frame)
	if g.State() != GameStateGameOver {
		t.Fatalf("held shoot left the game over screen: %v", g.State())
	}
}

func TestNewLaserWaitsOneFrame(t *testing.T) {
	g, _, _ := newTestGame(t)
	startPlaying(t, g)
	s := g.Session()

	g.Frame(input.Input{Shoot: true}, frame)
	lasers := s.Registry.Lasers()
	if len(lasers) != 1 {
		t.Fatalf("lasers = %d, want 1", len(lasers))
	}
	if lasers[0].Bounds().Bottom() != s.Player.Bounds().Top() {
		t.Error("laser moved in the frame it was fired")
	}
}

func TestMeteorExpiresAfterLifetime(t *testing.T) {
	clk := clock.NewManual(epoch)
	s := NewSession(field, rand.New(rand.NewSource(2)), epoch)
	m := object.NewMeteor(physics.Vec{X: 100, Y: 100}, physics.Vec{}, 0, 60, epoch)
	s.Registry.Add(m)

	ctx := object.UpdateContext{Delta: frame, Field: field, Spawner: s}
	for clk.Now().Before(epoch.Add(10 * time.Second)) {
		clk.Advance(frame)
		ctx.Now = clk.Now()
		updateEntities(s, ctx)
	}

	if m.Alive() || len(s.Registry.Meteors()) != 0 {
		t.Error("meteor still present after 10s")
	}
}

func TestEscapeDiscardsSession(t *testing.T) {
	g, _, board := newTestGame(t)
	startPlaying(t, g)

	g.Frame(input.Input{Escape: true}, frame)
	if g.State() != GameStateMenu || g.Session() != nil {
		t.Fatalf("State() = %v, session = %v", g.State(), g.Session())
	}
	if len(board.submitted) != 0 {
		t.Error("abandoned session reached the leaderboard")
	}
}

func TestQuitFromAnyState(t *testing.T) {
	for _, st := range []GameState{GameStateMenu, GameStatePlaying, GameStateGameOver} {
		g, _, _ := newTestGame(t)
		switch st {
		case GameStatePlaying:
			g.startSession()
		case GameStateGameOver:
			g.startSession()
			g.enterGameOver()
		}

		g.Frame(input.Input{Quit: true}, frame)
		if g.Running() {
			t.Errorf("%v: still running after quit", st)
		}
	}
}

func TestMenuClicks(t *testing.T) {
	g, _, _ := newTestGame(t)

	buttons := g.Buttons()
	lb := buttons[1]
	if lb.Action != ActionShowLeaderboard || lb.Bounds != (physics.Rect{X: 540, Y: 410, W: 200, H: 50}) {
		t.Fatalf("leaderboard button = %+v", lb)
	}

	click := func(b Button) input.Input {
		c := b.Bounds.Center()
		return input.Input{Clicks: []input.Click{{X: c.X, Y: c.Y}}}
	}

	g.Frame(click(lb), frame)
	v := g.View()
	if !v.ShowLeaderboard || v.State != GameStateMenu {
		t.Fatalf("view after leaderboard click = %+v", v)
	}
	back := v.Buttons[0]
	if back.Action != ActionBack || back.Bounds != (physics.Rect{X: 565, Y: 620, W: 150, H: 50}) {
		t.Fatalf("back button = %+v", back)
	}

	g.Frame(input.Input{Escape: true}, frame)
	if g.View().ShowLeaderboard {
		t.Fatal("escape did not close the leaderboard")
	}

	g.Frame(click(g.Buttons()[0]), frame)
	if g.State() != GameStatePlaying {
		t.Errorf("State() = %v after clicking start", g.State())
	}
}

func TestClickOutsideButtonsDoesNothing(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.Frame(input.Input{Clicks: []input.Click{{X: 5, Y: 5}}}, frame)
	if g.State() != GameStateMenu || g.View().ShowLeaderboard {
		t.Error("stray click changed the screen")
	}
}

func TestKeyboardFocus(t *testing.T) {
	g, _, _ := newTestGame(t)

	g.Frame(input.Input{Down: true}, frame)
	g.Frame(input.Input{}, frame)
	g.Frame(input.Input{Down: true}, frame)
	if v := g.View(); v.Focus != 2 {
		t.Fatalf("Focus = %d, want 2", v.Focus)
	}
	g.Frame(input.Input{Down: true, Confirm: true}, frame)
	if g.Running() {
		t.Error("confirm on QUIT should stop the game")
	}
}

func TestGameOverButtons(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.startSession()
	g.enterGameOver()

	buttons := g.Buttons()
	if len(buttons) != 3 || buttons[0].Action != ActionRestart || buttons[0].Bounds.Y != 380 {
		t.Fatalf("buttons = %+v", buttons)
	}

	g.Frame(input.Input{Down: true}, frame)
	g.Frame(input.Input{Confirm: true}, frame)
	if g.State() != GameStateMenu {
		t.Errorf("State() = %v, want menu", g.State())
	}
}

func TestRestartResetsSession(t *testing.T) {
	g, clk, _ := newTestGame(t)
	g.startSession()
	old := g.Session()
	clk.Advance(3 * time.Second)
	g.enterGameOver()

	g.Frame(input.Input{Confirm: true}, frame)
	if g.State() != GameStatePlaying || g.Session() == old {
		t.Fatal("restart did not start a new session")
	}
	if g.Score() != 0 {
		t.Errorf("Score() = %d after restart, want 0", g.Score())
	}
}
