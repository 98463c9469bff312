package user

import (
	"context"

	id "goodtime/pkg/domain"
)

// Store is the user repository contract. Implementations return
// sentinel.ErrNotFound for missing users and sentinel.ErrAlreadyUsed when a
// username or email is already taken (both case-insensitive).
//
// SaveAll persists a batch as one logical commit; the season rollover relies
// on this being all-or-nothing.
type Store interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
	SaveAll(ctx context.Context, users []*User) error
	FindByID(ctx context.Context, userID id.UserID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ListAll(ctx context.Context) ([]*User, error)
	TopByPoints(ctx context.Context, limit int) ([]*User, error)
}
