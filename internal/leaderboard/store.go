package leaderboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/quasilyte/gdata"
)

// ErrUnavailable is returned by a store that could not be opened.
var ErrUnavailable = errors.New("leaderboard store unavailable")

// Store persists the ranked score list.
type Store interface {
	Load() ([]int, error)
	Save(scores []int) error
}

// MemoryStore keeps scores for the process lifetime only.
type MemoryStore struct {
	scores []int
}

func (m *MemoryStore) Load() ([]int, error) {
	return slices.Clone(m.scores), nil
}

func (m *MemoryStore) Save(scores []int) error {
	m.scores = slices.Clone(scores)
	return nil
}

// Unavailable returns a store whose every call fails with ErrUnavailable,
// used when the real store cannot be opened.
func Unavailable(cause error) Store {
	return unavailable{cause: cause}
}

type unavailable struct {
	cause error
}

func (u unavailable) Load() ([]int, error) {
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, u.cause)
}

func (u unavailable) Save([]int) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, u.cause)
}

// itemKey is the gdata item holding the leaderboard.
const itemKey = "leaderboard"

// savedLeaderboard is the on-disk form.
type savedLeaderboard struct {
	Scores []int `json:"scores"`
}

// GDataStore saves the leaderboard in the per-user application data
// directory managed by gdata.
type GDataStore struct {
	m *gdata.Manager
}

// OpenGData opens the data directory for appName.
func OpenGData(appName string) (*GDataStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open game data %q: %w", appName, err)
	}
	return &GDataStore{m: m}, nil
}

// Load returns the saved scores, or nil if nothing was saved yet.
func (s *GDataStore) Load() ([]int, error) {
	data, err := s.m.LoadItem(itemKey)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", itemKey, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var saved savedLeaderboard
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("parse %s: %w", itemKey, err)
	}
	return saved.Scores, nil
}

// Save overwrites the saved scores.
func (s *GDataStore) Save(scores []int) error {
	data, err := json.Marshal(savedLeaderboard{Scores: scores})
	if err != nil {
		return fmt.Errorf("serialize %s: %w", itemKey, err)
	}
	if err := s.m.SaveItem(itemKey, data); err != nil {
		return fmt.Errorf("save %s: %w", itemKey, err)
	}
	return nil
}
