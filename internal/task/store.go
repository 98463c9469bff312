package task

import (
	"context"

	id "goodtime/pkg/domain"
)

// Store is the persistence contract for tasks. Implementations return
// sentinel.ErrNotFound for missing tasks. Name lookups are scoped to one
// owner and compare case-insensitively; when both a pending and a completed
// task share a name the pending one wins.
type Store interface {
	Create(ctx context.Context, t *Task) error
	Save(ctx context.Context, t *Task) error
	Delete(ctx context.Context, taskID id.TaskID) error
	FindByName(ctx context.Context, ownerID id.UserID, name string) (*Task, error)
	ListPendingByOwner(ctx context.Context, ownerID id.UserID) ([]*Task, error)
	ListCompletedByOwner(ctx context.Context, ownerID id.UserID) ([]*Task, error)
}
