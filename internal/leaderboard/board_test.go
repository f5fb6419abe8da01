package leaderboard

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInsertKeepsDescendingOrder(t *testing.T) {
	got := Insert([]int{100, 80, 50}, 90)
	want := []int{100, 90, 80, 50}
	if !slices.Equal(got, want) {
		t.Errorf("Insert = %v, want %v", got, want)
	}
}

func TestInsertCapsAtCapacity(t *testing.T) {
	full := []int{100, 90, 80, 70, 60, 50, 40, 30, 20, 10}

	got := Insert(full, 50)
	want := []int{100, 90, 80, 70, 60, 50, 50, 40, 30, 20}
	if !slices.Equal(got, want) {
		t.Errorf("Insert duplicate = %v, want %v", got, want)
	}

	got = Insert(full, 5)
	if !slices.Equal(got, full) {
		t.Errorf("Insert below the board = %v, want %v", got, full)
	}

	got = Insert(full, 10)
	if len(got) != Capacity || got[Capacity-1] != 10 {
		t.Errorf("Insert tie at the bottom = %v", got)
	}
	if full[9] != 10 {
		t.Error("Insert modified its input")
	}
}

func TestInsertRepeatedNeverGrowsPastCapacity(t *testing.T) {
	var scores []int
	for i := 0; i < 50; i++ {
		scores = Insert(scores, i%7)
		if len(scores) > Capacity {
			t.Fatalf("len = %d after %d inserts", len(scores), i+1)
		}
		if !slices.IsSortedFunc(scores, func(a, b int) int { return b - a }) {
			t.Fatalf("not descending: %v", scores)
		}
	}
}

func TestBoardLoadsAndSaves(t *testing.T) {
	store := &MemoryStore{}
	_ = store.Save([]int{5, 30, 10})

	b := New(store, log.New(io.Discard))
	if got := b.Scores(); !slices.Equal(got, []int{30, 10, 5}) {
		t.Fatalf("loaded %v, want [30 10 5]", got)
	}

	b.Submit(20)
	saved, _ := store.Load()
	if !slices.Equal(saved, []int{30, 20, 10, 5}) {
		t.Errorf("saved %v, want [30 20 10 5]", saved)
	}

	// A second board in the same process sees the saved scores.
	again := New(store, nil)
	if !slices.Equal(again.Scores(), saved) {
		t.Errorf("reloaded %v, want %v", again.Scores(), saved)
	}
}

func TestBoardScoresIsACopy(t *testing.T) {
	b := New(nil, nil)
	b.Submit(3)
	s := b.Scores()
	s[0] = 99
	if b.Scores()[0] != 3 {
		t.Error("Scores() exposed internal state")
	}
}

type flakyStore struct {
	loads, saves int
	loadErr      error
	saveErr      error
}

func (f *flakyStore) Load() ([]int, error) {
	f.loads++
	return []int{7}, f.loadErr
}

func (f *flakyStore) Save([]int) error {
	f.saves++
	return f.saveErr
}

func TestBoardDisablesStoreAfterSaveFailure(t *testing.T) {
	store := &flakyStore{saveErr: errors.New("disk full")}
	b := New(store, log.New(io.Discard))

	b.Submit(1)
	b.Submit(2)
	b.Submit(3)

	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
	if b.Persistent() {
		t.Error("board should no longer be persistent")
	}
	if got := b.Scores(); !slices.Equal(got, []int{7, 3, 2, 1}) {
		t.Errorf("in-memory board = %v, want [7 3 2 1]", got)
	}
}

func TestBoardDegradesWhenStoreUnavailable(t *testing.T) {
	store := Unavailable(errors.New("no home directory"))
	if _, err := store.Load(); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Load() error = %v, want ErrUnavailable", err)
	}

	b := New(store, log.New(io.Discard))
	if len(b.Scores()) != 0 {
		t.Errorf("Scores() = %v, want empty", b.Scores())
	}
	if got := b.Submit(42); !slices.Equal(got, []int{42}) {
		t.Errorf("Submit = %v, want [42]", got)
	}
	if b.Persistent() {
		t.Error("unavailable store should be dropped")
	}
}

func TestSyncedConcurrentSubmit(t *testing.T) {
	s := NewSynced(New(&MemoryStore{}, nil))

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			s.Submit(score)
			_ = s.Scores()
		}(i)
	}
	wg.Wait()

	want := []int{39, 38, 37, 36, 35, 34, 33, 32, 31, 30}
	if got := s.Scores(); !slices.Equal(got, want) {
		t.Errorf("Scores() = %v, want %v", got, want)
	}
}
