// Package leaderboard keeps the bounded list of best scores and persists it.
package leaderboard

import (
	"cmp"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
)

// Capacity is the number of scores kept.
const Capacity = 10

// Insert returns the top Capacity scores of scores plus score, sorted
// descending. Equal scores keep their relative order. scores is not modified.
func Insert(scores []int, score int) []int {
	out := make([]int, 0, len(scores)+1)
	out = append(out, scores...)
	out = append(out, score)
	return normalize(out)
}

// Normalize returns a sorted, capped copy of scores.
func Normalize(scores []int) []int {
	return normalize(slices.Clone(scores))
}

func normalize(scores []int) []int {
	slices.SortStableFunc(scores, func(a, b int) int { return cmp.Compare(b, a) })
	if len(scores) > Capacity {
		scores = scores[:Capacity]
	}
	return scores
}

// Board is an in-memory leaderboard backed by an optional Store. The first
// store failure is logged and turns persistence off for the board's lifetime.
type Board struct {
	scores []int
	store  Store
	logger *log.Logger
}

// New loads the board from store. store may be nil.
func New(store Store, logger *log.Logger) *Board {
	b := &Board{store: store, logger: logger}
	if store == nil {
		return b
	}

	scores, err := store.Load()
	if err != nil {
		b.disable("load", err)
		return b
	}
	b.scores = Normalize(scores)
	return b
}

// Open loads the board saved under appName. If the data directory can't be
// opened the board runs in memory only.
func Open(appName string, logger *log.Logger) *Board {
	store, err := OpenGData(appName)
	if err != nil {
		return New(Unavailable(err), logger)
	}
	return New(store, logger)
}

// Submit records a finished session's score and returns the updated board.
func (b *Board) Submit(score int) []int {
	b.scores = Insert(b.scores, score)
	if b.store != nil {
		if err := b.store.Save(slices.Clone(b.scores)); err != nil {
			b.disable("save", err)
		}
	}
	return b.Scores()
}

// Scores returns a copy of the current board, best first.
func (b *Board) Scores() []int {
	return slices.Clone(b.scores)
}

// Persistent reports whether scores are still written to a store.
func (b *Board) Persistent() bool {
	return b.store != nil
}

func (b *Board) disable(op string, err error) {
	if b.logger != nil {
		b.logger.Warn("leaderboard persistence disabled", "op", op, "err", err)
	}
	b.store = nil
}

// Synced guards a Board shared by several games, e.g. one per SSH session.
type Synced struct {
	mu    sync.Mutex
	board *Board
}

// NewSynced wraps board for concurrent use.
func NewSynced(board *Board) *Synced {
	return &Synced{board: board}
}

// Submit records a score under the lock.
func (s *Synced) Submit(score int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Submit(score)
}

// Scores returns a copy of the board under the lock.
func (s *Synced) Scores() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Scores()
}
