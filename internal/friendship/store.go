package friendship

import (
	"context"

	id "goodtime/pkg/domain"
)

// Store is the persistence contract for friend requests. Pair lookups are
// direction-agnostic. Implementations return sentinel.ErrNotFound for
// missing records.
type Store interface {
	Create(ctx context.Context, r *FriendRequest) error
	Save(ctx context.Context, r *FriendRequest) error
	Delete(ctx context.Context, requestID id.FriendRequestID) error
	FindByID(ctx context.Context, requestID id.FriendRequestID) (*FriendRequest, error)
	FindByPair(ctx context.Context, a, b id.UserID) (*FriendRequest, error)
	ListInvolving(ctx context.Context, userID id.UserID) ([]*FriendRequest, error)
}
