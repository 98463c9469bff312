package user

import (
	"context"
	"errors"
	"log/slog"

	"goodtime/internal/platform/metrics"
	id "goodtime/pkg/domain"
	dErrors "goodtime/pkg/domain-errors"
	"goodtime/pkg/platform/sentinel"
	"goodtime/pkg/requestcontext"
)

// Service owns registration and user lookups. Progression mutations go
// through the game orchestration, not here.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user with starting stats (level 1, zero xp, Bronze).
// The credential hash is an opaque handle; hashing happens upstream.
func (s *Service) Register(ctx context.Context, username, email, credentialHash string) (*User, error) {
	u, err := New(id.NewUserID(), username, email, credentialHash, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "username or email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "user registered", "user_id", u.ID.String(), "username", u.Username)
	}
	if s.metrics != nil {
		s.metrics.UsersRegistered.Inc()
	}
	return u, nil
}

// Get loads a user by id.
func (s *Service) Get(ctx context.Context, userID id.UserID) (*User, error) {
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return u, nil
}

// IsAdmin reports whether the user holds the admin role. An unknown user
// is simply not an admin.
func (s *Service) IsAdmin(ctx context.Context, userID id.UserID) (bool, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.Role == RoleAdmin, nil
}

// GetByUsername loads a user by name, case-insensitively.
func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return u, nil
}
