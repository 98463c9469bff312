package league

import (
	"context"
	"sync"
)

// HallOfFameEntry is a podium spot from the last finished season.
type HallOfFameEntry struct {
	Rank        int
	Username    string
	Points      int
	SeasonLabel string
}

// HallOfFameStore holds exactly one season's podium; each rollover replaces
// the previous one wholesale.
type HallOfFameStore interface {
	Replace(ctx context.Context, entries []HallOfFameEntry) error
	List(ctx context.Context) ([]HallOfFameEntry, error)
}

type InMemoryHallOfFame struct {
	mu      sync.RWMutex
	entries []HallOfFameEntry
}

func NewInMemoryHallOfFame() *InMemoryHallOfFame {
	return &InMemoryHallOfFame{}
}

func (s *InMemoryHallOfFame) Replace(_ context.Context, entries []HallOfFameEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]HallOfFameEntry(nil), entries...)
	return nil
}

func (s *InMemoryHallOfFame) List(_ context.Context) ([]HallOfFameEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]HallOfFameEntry(nil), s.entries...), nil
}
