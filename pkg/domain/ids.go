// Package domain holds typed identifiers shared across the core. Typed IDs
// keep a user ID from ever being passed where a task ID belongs; the mistake
// becomes a compile error instead of a data corruption.
package domain

import (
	"github.com/google/uuid"

	dErrors "goodtime/pkg/domain-errors"
)

type (
	// UserID identifies a user aggregate.
	UserID uuid.UUID
	// TaskID identifies a task.
	TaskID uuid.UUID
	// FriendRequestID identifies a friend request record.
	FriendRequestID uuid.UUID
)

// NewUserID returns a fresh random user ID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewTaskID returns a fresh random task ID.
func NewTaskID() TaskID { return TaskID(uuid.New()) }

// NewFriendRequestID returns a fresh random friend request ID.
func NewFriendRequestID() FriendRequestID { return FriendRequestID(uuid.New()) }

func (id UserID) String() string          { return uuid.UUID(id).String() }
func (id TaskID) String() string          { return uuid.UUID(id).String() }
func (id FriendRequestID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool          { return uuid.UUID(id) == uuid.Nil }
func (id TaskID) IsNil() bool          { return uuid.UUID(id) == uuid.Nil }
func (id FriendRequestID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// ParseUserID validates and converts an external string into a UserID.
// Empty, malformed and nil UUIDs are rejected at this trust boundary.
func ParseUserID(s string) (UserID, error) {
	u, err := parse(s, "user id")
	return UserID(u), err
}

// ParseTaskID validates and converts an external string into a TaskID.
func ParseTaskID(s string) (TaskID, error) {
	u, err := parse(s, "task id")
	return TaskID(u), err
}

// ParseFriendRequestID validates and converts an external string into a
// FriendRequestID.
func ParseFriendRequestID(s string) (FriendRequestID, error) {
	u, err := parse(s, "friend request id")
	return FriendRequestID(u), err
}

func parse(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeValidation, "%s is required", what)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeValidation, "%s is not a valid uuid", what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeValidation, "%s must not be the nil uuid", what)
	}
	return u, nil
}
