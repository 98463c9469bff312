package task

import (
	"context"
	"sort"
	"strings"
	"sync"

	id "goodtime/pkg/domain"
	"goodtime/pkg/platform/sentinel"
)

// InMemoryStore is a thread-safe map-backed Store for tests and
// single-node runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	tasks map[id.TaskID]*Task
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{tasks: make(map[id.TaskID]*Task)}
}

func (s *InMemoryStore) Create(_ context.Context, t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[t.ID]; ok {
		return sentinel.ErrConflict
	}
	s.tasks[t.ID] = clone(t)
	return nil
}

func (s *InMemoryStore) Save(_ context.Context, t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[t.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.tasks[t.ID] = clone(t)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, taskID id.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[taskID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

// FindByName prefers the pending task with the given name; completed tasks
// only match when no pending task does.
func (s *InMemoryStore) FindByName(_ context.Context, ownerID id.UserID, name string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var completed *Task
	for _, t := range s.tasks {
		if t.OwnerID != ownerID || !strings.EqualFold(t.Name, name) {
			continue
		}
		if !t.IsCompleted() {
			return clone(t), nil
		}
		if completed == nil || t.CompletedAt.After(*completed.CompletedAt) {
			completed = t
		}
	}
	if completed != nil {
		return clone(completed), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListPendingByOwner(_ context.Context, ownerID id.UserID) ([]*Task, error) {
	return s.list(ownerID, func(t *Task) bool { return !t.IsCompleted() })
}

func (s *InMemoryStore) ListCompletedByOwner(_ context.Context, ownerID id.UserID) ([]*Task, error) {
	return s.list(ownerID, func(t *Task) bool { return t.IsCompleted() })
}

func (s *InMemoryStore) list(ownerID id.UserID, keep func(*Task) bool) ([]*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Task, 0)
	for _, t := range s.tasks {
		if t.OwnerID == ownerID && keep(t) {
			out = append(out, clone(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func clone(t *Task) *Task {
	c := *t
	if t.CompletedAt != nil {
		completed := *t.CompletedAt
		c.CompletedAt = &completed
	}
	return &c
}
