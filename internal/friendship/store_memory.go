package friendship

import (
	"context"
	"sort"
	"sync"

	id "goodtime/pkg/domain"
	"goodtime/pkg/platform/sentinel"
)

// InMemoryStore is a thread-safe map-backed Store for tests and
// single-node runs.
type InMemoryStore struct {
	mu       sync.RWMutex
	requests map[id.FriendRequestID]*FriendRequest
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{requests: make(map[id.FriendRequestID]*FriendRequest)}
}

func (s *InMemoryStore) Create(_ context.Context, r *FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.requests {
		if samePair(existing, r.RequesterID, r.ReceiverID) {
			return sentinel.ErrConflict
		}
	}
	s.requests[r.ID] = cloneRequest(r)
	return nil
}

func (s *InMemoryStore) Save(_ context.Context, r *FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[r.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.requests[r.ID] = cloneRequest(r)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, requestID id.FriendRequestID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[requestID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.requests, requestID)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, requestID id.FriendRequestID) (*FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.requests[requestID]; ok {
		return cloneRequest(r), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByPair(_ context.Context, a, b id.UserID) (*FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.requests {
		if samePair(r, a, b) {
			return cloneRequest(r), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListInvolving(_ context.Context, userID id.UserID) ([]*FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*FriendRequest, 0)
	for _, r := range s.requests {
		if r.Involves(userID) {
			out = append(out, cloneRequest(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.Before(out[j].RequestedAt) })
	return out, nil
}

func samePair(r *FriendRequest, a, b id.UserID) bool {
	return (r.RequesterID == a && r.ReceiverID == b) || (r.RequesterID == b && r.ReceiverID == a)
}

func cloneRequest(r *FriendRequest) *FriendRequest {
	c := *r
	if r.RespondedAt != nil {
		responded := *r.RespondedAt
		c.RespondedAt = &responded
	}
	return &c
}
