package user

import (
	"context"
	"sort"
	"strings"
	"sync"

	id "goodtime/pkg/domain"
	"goodtime/pkg/platform/sentinel"
)

// InMemoryStore keeps the initial implementation lightweight and testable.
// It intentionally favors clarity over performance. Copies go in and copies
// come out so callers can only publish changes through Save.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[id.UserID]*User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[id.UserID]*User)}
}

func (s *InMemoryStore) Create(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Username, u.Username) || strings.EqualFold(existing.Email, u.Email) {
			return sentinel.ErrAlreadyUsed
		}
	}
	s.users[u.ID] = clone(u)
	return nil
}

func (s *InMemoryStore) Save(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.users[u.ID] = clone(u)
	return nil
}

// SaveAll commits the whole batch under one lock acquisition. Every user
// must already exist; a missing one aborts the batch untouched.
func (s *InMemoryStore) SaveAll(_ context.Context, users []*User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		if _, ok := s.users[u.ID]; !ok {
			return sentinel.ErrNotFound
		}
	}
	for _, u := range users {
		s.users[u.ID] = clone(u)
	}
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, userID id.UserID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[userID]; ok {
		return clone(u), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return clone(u), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return clone(u), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListAll(_ context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *InMemoryStore) TopByPoints(_ context.Context, limit int) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LeaguePoints != out[j].LeaguePoints {
			return out[i].LeaguePoints > out[j].LeaguePoints
		}
		return out[i].Username < out[j].Username
	})
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func clone(u *User) *User {
	c := *u
	c.Unlocks = append([]AchievementUnlock(nil), u.Unlocks...)
	return &c
}
