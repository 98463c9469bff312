package friendship

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"goodtime/internal/platform/metrics"
	"goodtime/internal/user"
	id "goodtime/pkg/domain"
	dErrors "goodtime/pkg/domain-errors"
	"goodtime/pkg/platform/sentinel"
	"goodtime/pkg/requestcontext"
)

// userDirectory is the slice of the user store this service needs to
// resolve usernames on both sides of a request.
type userDirectory interface {
	FindByID(ctx context.Context, userID id.UserID) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

// PendingView is what a receiver sees in their inbox. The request id is
// what Respond expects back.
type PendingView struct {
	RequestID         id.FriendRequestID
	RequesterUsername string
	RequestedAt       time.Time
}

// Service owns the friend request lifecycle.
type Service struct {
	store   Store
	users   userDirectory
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger.With("component", "friendship-service") }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, users userDirectory, opts ...Option) *Service {
	s := &Service{
		store:  store,
		users:  users,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send creates a pending request towards the named user. Only one record
// may exist per pair, regardless of direction: a counter-request while one
// is pending is a conflict, as is requesting an existing friend.
func (s *Service) Send(ctx context.Context, requesterID id.UserID, receiverUsername string) (*FriendRequest, error) {
	receiver, err := s.resolveUsername(ctx, receiverUsername)
	if err != nil {
		return nil, err
	}
	if receiver.ID == requesterID {
		return nil, dErrors.New(dErrors.CodeValidation, "cannot send a friend request to yourself")
	}
	if existing, err := s.store.FindByPair(ctx, requesterID, receiver.ID); err == nil {
		if existing.Status == StatusAccepted {
			return nil, dErrors.Newf(dErrors.CodeConflict, "already friends with %q", receiver.Username)
		}
		return nil, dErrors.Newf(dErrors.CodeConflict, "a friend request with %q is already pending", receiver.Username)
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check friend request")
	}

	r := New(id.NewFriendRequestID(), requesterID, receiver.ID, requestcontext.Now(ctx))
	if err := s.store.Create(ctx, r); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "a friend request with %q is already pending", receiver.Username)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create friend request")
	}
	s.logger.InfoContext(ctx, "friend request sent",
		"request_id", r.ID.String(),
		"requester_id", requesterID.String(),
		"receiver", receiver.Username,
	)
	return r, nil
}

// Respond accepts or rejects a pending request by id. Only the receiver
// may respond. Rejection deletes the record so a future request between
// the pair starts clean.
func (s *Service) Respond(ctx context.Context, receiverID id.UserID, requestID id.FriendRequestID, accept bool) error {
	r, err := s.store.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "friend request not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load friend request")
	}
	if r.ReceiverID != receiverID {
		return dErrors.New(dErrors.CodeForbidden, "only the receiver can respond to a friend request")
	}
	if r.Status != StatusPending {
		return dErrors.New(dErrors.CodeConflict, "friend request has already been accepted")
	}

	if !accept {
		if err := s.store.Delete(ctx, r.ID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete friend request")
		}
		s.logger.InfoContext(ctx, "friend request rejected", "request_id", r.ID.String())
		return nil
	}

	r.accept(requestcontext.Now(ctx))
	if err := s.store.Save(ctx, r); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save friend request")
	}
	if s.metrics != nil {
		s.metrics.FriendshipsFormed.Inc()
	}
	s.logger.InfoContext(ctx, "friend request accepted", "request_id", r.ID.String())
	return nil
}

// Remove deletes whatever record exists between the caller and the other
// user, ending a friendship or retracting a pending request.
func (s *Service) Remove(ctx context.Context, userID, otherID id.UserID) error {
	r, err := s.findPair(ctx, userID, otherID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, r.ID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete friend request")
	}
	s.logger.InfoContext(ctx, "friendship removed",
		"request_id", r.ID.String(),
		"user_id", userID.String(),
		"other_id", otherID.String(),
	)
	return nil
}

// Friends lists the users on the other side of the caller's accepted
// requests.
func (s *Service) Friends(ctx context.Context, userID id.UserID) ([]*user.User, error) {
	requests, err := s.store.ListInvolving(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list friendships")
	}
	friends := make([]*user.User, 0, len(requests))
	for _, r := range requests {
		if r.Status != StatusAccepted {
			continue
		}
		friend, err := s.users.FindByID(ctx, r.Other(userID))
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load friend")
		}
		friends = append(friends, friend)
	}
	return friends, nil
}

// PendingReceived lists the caller's inbox of requests awaiting an answer.
func (s *Service) PendingReceived(ctx context.Context, userID id.UserID) ([]PendingView, error) {
	requests, err := s.store.ListInvolving(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list friend requests")
	}
	out := make([]PendingView, 0, len(requests))
	for _, r := range requests {
		if r.Status != StatusPending || r.ReceiverID != userID {
			continue
		}
		requester, err := s.users.FindByID(ctx, r.RequesterID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load requester")
		}
		out = append(out, PendingView{
			RequestID:         r.ID,
			RequesterUsername: requester.Username,
			RequestedAt:       r.RequestedAt,
		})
	}
	return out, nil
}

func (s *Service) resolveUsername(ctx context.Context, username string) (*user.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "user %q not found", username)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return u, nil
}

func (s *Service) findPair(ctx context.Context, a, b id.UserID) (*FriendRequest, error) {
	r, err := s.store.FindByPair(ctx, a, b)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no friend request between these users")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load friend request")
	}
	return r, nil
}
