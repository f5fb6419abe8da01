// Package loop runs the game: the state machine, the simulation of a playing
// session and collision resolution. Hosts drive it one frame at a time.
package loop

import (
	"math/rand"
	"time"

	"github.com/tomz197/meteors/internal/loop/config"
	"github.com/tomz197/meteors/internal/object"
)

// GameState represents the current game phase.
type GameState int

const (
	GameStateMenu     GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateGameOver                  // Player died, show results
)

func (s GameState) String() string {
	switch s {
	case GameStateMenu:
		return "menu"
	case GameStatePlaying:
		return "playing"
	case GameStateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Session holds everything that belongs to one playthrough. It is discarded
// when the player returns to the menu or starts over.
type Session struct {
	Field     object.Field
	Registry  *Registry
	Player    *object.Player
	StartedAt time.Time

	toSpawn []object.Entity // Entities to add after the current update cycle
}

// NewSession creates a fresh session: stars, and the player at the center.
func NewSession(field object.Field, rng *rand.Rand, now time.Time) *Session {
	s := &Session{
		Field:     field,
		Registry:  NewRegistry(field),
		StartedAt: now,
	}
	for i := 0; i < config.StarCount; i++ {
		s.Registry.Add(object.NewStar(rng, field))
	}
	s.Player = object.NewPlayer(field.Center())
	s.Registry.Add(s.Player)
	return s
}

// Spawn queues an entity to be added after the current update cycle.
// Implements object.Spawner interface.
func (s *Session) Spawn(e object.Entity) {
	s.toSpawn = append(s.toSpawn, e)
}

// FlushSpawned adds all queued entities to the registry and clears the queue.
func (s *Session) FlushSpawned() {
	for _, e := range s.toSpawn {
		s.Registry.Add(e)
	}
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
}

// Elapsed returns how long the session has been running at now.
func (s *Session) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.StartedAt)
}
