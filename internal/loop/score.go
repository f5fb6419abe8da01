package loop

import (
	"time"

	"github.com/tomz197/meteors/internal/loop/config"
)

// scoreAt converts survival time into points.
func scoreAt(elapsed time.Duration) int {
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / config.ScoreUnit)
}

// Score returns the running score while playing and the final score on the
// game-over screen. It is derived from the session clock, never stored.
func (g *Game) Score() int {
	switch g.state {
	case GameStatePlaying:
		return scoreAt(g.session.Elapsed(g.clock.Now()))
	case GameStateGameOver:
		return g.finalScore
	default:
		return 0
	}
}

// Leaderboard returns the latest board snapshot, best first.
func (g *Game) Leaderboard() []int {
	return g.scores
}

// enterGameOver freezes the session and records its score exactly once.
func (g *Game) enterGameOver() {
	g.finalScore = scoreAt(g.session.Elapsed(g.clock.Now()))
	g.scores = g.board.Submit(g.finalScore)
	g.newHighScore = len(g.scores) > 0 && g.finalScore == g.scores[0]
	g.setState(GameStateGameOver)

	g.logger.Info("session over", "score", g.finalScore, "highScore", g.newHighScore)
}
