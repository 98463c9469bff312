package task

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"goodtime/internal/platform/metrics"
	id "goodtime/pkg/domain"
	dErrors "goodtime/pkg/domain-errors"
	"goodtime/pkg/platform/sentinel"
	"goodtime/pkg/requestcontext"
)

// Service owns task lifecycle rules that need the store: pending-set
// uniqueness, lookup by name, expiry purging.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger.With("component", "task-service") }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates and stores a new pending task for the owner. The name
// and the description must both be unique, case-insensitively, within the
// owner's pending set.
func (s *Service) Create(ctx context.Context, ownerID id.UserID, name, description, difficulty string) (*Task, error) {
	d, err := ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}
	t, err := New(id.NewTaskID(), ownerID, name, description, d, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.checkPendingUnique(ctx, ownerID, t.Name, t.Description, t.ID); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create task")
	}
	if s.metrics != nil {
		s.metrics.TasksCreated.Inc()
	}
	s.logger.InfoContext(ctx, "task created",
		"task_id", t.ID.String(),
		"owner_id", ownerID.String(),
		"difficulty", string(d),
	)
	return t, nil
}

// UpdateParams carries the optional fields of an update; nil means keep.
type UpdateParams struct {
	Name        *string
	Description *string
	Difficulty  *string
}

// Update edits a pending task found by name. Changing the difficulty
// re-derives the reward and the deadline from the original creation time;
// the merged task must still pass the create-time checks, including the
// one-hour expiration lead. Completed tasks cannot be edited.
func (s *Service) Update(ctx context.Context, ownerID id.UserID, name string, params UpdateParams) (*Task, error) {
	t, err := s.findOwned(ctx, ownerID, name)
	if err != nil {
		return nil, err
	}
	if t.IsCompleted() {
		return nil, dErrors.Newf(dErrors.CodeConflict, "task %q has already been completed", t.Name)
	}
	if params.Name != nil {
		newName := strings.TrimSpace(*params.Name)
		if err := ValidateName(newName); err != nil {
			return nil, err
		}
		t.Name = newName
	}
	if params.Description != nil {
		newDescription := strings.TrimSpace(*params.Description)
		if err := ValidateDescription(newDescription); err != nil {
			return nil, err
		}
		t.Description = newDescription
	}
	if params.Difficulty != nil {
		d, err := ParseDifficulty(*params.Difficulty)
		if err != nil {
			return nil, err
		}
		t.XPReward = d.XPReward()
		t.ExpiresAt = t.CreatedAt.Add(d.Lifetime())
	}
	if t.ExpiresAt.Before(requestcontext.Now(ctx).Add(minExpirationLead)) {
		return nil, dErrors.New(dErrors.CodeValidation, "task must expire at least one hour in the future")
	}
	if err := s.checkPendingUnique(ctx, ownerID, t.Name, t.Description, t.ID); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, t); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save task")
	}
	return t, nil
}

// Complete transitions a pending task to completed and returns it. The
// caller is responsible for awarding the reward.
func (s *Service) Complete(ctx context.Context, ownerID id.UserID, name string) (*Task, error) {
	t, err := s.findOwned(ctx, ownerID, name)
	if err != nil {
		return nil, err
	}
	if err := t.CanComplete(); err != nil {
		return nil, err
	}
	t.ApplyCompletion(requestcontext.Now(ctx))
	if err := s.store.Save(ctx, t); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save task")
	}
	if s.metrics != nil {
		s.metrics.TasksCompleted.Inc()
	}
	s.logger.InfoContext(ctx, "task completed",
		"task_id", t.ID.String(),
		"owner_id", ownerID.String(),
		"xp_reward", t.XPReward,
	)
	return t, nil
}

// Cancel removes a pending task. Cancelling a completed task is a conflict,
// not a deletion.
func (s *Service) Cancel(ctx context.Context, ownerID id.UserID, name string) error {
	t, err := s.findOwned(ctx, ownerID, name)
	if err != nil {
		return err
	}
	if err := t.CanCancel(); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, t.ID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete task")
	}
	s.logger.InfoContext(ctx, "task cancelled", "task_id", t.ID.String(), "owner_id", ownerID.String())
	return nil
}

// ListPending returns the owner's pending tasks, oldest first.
func (s *Service) ListPending(ctx context.Context, ownerID id.UserID) ([]*Task, error) {
	tasks, err := s.store.ListPendingByOwner(ctx, ownerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tasks")
	}
	return tasks, nil
}

// ListCompleted returns the owner's completed tasks, oldest first.
func (s *Service) ListCompleted(ctx context.Context, ownerID id.UserID) ([]*Task, error) {
	tasks, err := s.store.ListCompletedByOwner(ctx, ownerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tasks")
	}
	return tasks, nil
}

// PurgeExpired silently drops the owner's pending tasks whose deadline has
// passed and returns how many were removed.
func (s *Service) PurgeExpired(ctx context.Context, ownerID id.UserID) (int, error) {
	pending, err := s.store.ListPendingByOwner(ctx, ownerID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tasks")
	}
	now := requestcontext.Now(ctx)
	purged := 0
	for _, t := range pending {
		if !t.IsExpired(now) {
			continue
		}
		if err := s.store.Delete(ctx, t.ID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue
			}
			return purged, dErrors.Wrap(err, dErrors.CodeInternal, "failed to purge expired task")
		}
		purged++
		if s.metrics != nil {
			s.metrics.TasksExpired.Inc()
		}
	}
	if purged > 0 {
		s.logger.InfoContext(ctx, "expired tasks purged", "owner_id", ownerID.String(), "count", purged)
	}
	return purged, nil
}

func (s *Service) findOwned(ctx context.Context, ownerID id.UserID, name string) (*Task, error) {
	t, err := s.store.FindByName(ctx, ownerID, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "task %q not found", name)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find task")
	}
	return t, nil
}

func (s *Service) checkPendingUnique(ctx context.Context, ownerID id.UserID, name, description string, selfID id.TaskID) error {
	pending, err := s.store.ListPendingByOwner(ctx, ownerID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tasks")
	}
	for _, other := range pending {
		if other.ID == selfID {
			continue
		}
		if strings.EqualFold(other.Name, name) {
			return dErrors.Newf(dErrors.CodeConflict, "a pending task named %q already exists", other.Name)
		}
		if strings.EqualFold(other.Description, description) {
			return dErrors.New(dErrors.CodeConflict, "a pending task with the same description already exists")
		}
	}
	return nil
}
