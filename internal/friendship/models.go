// Package friendship implements the request-based friend graph. A request
// is directional while pending; once accepted the relationship is mutual.
// Rejection deletes the request so the pair can try again later.
package friendship

import (
	"time"

	id "goodtime/pkg/domain"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
)

// FriendRequest links two users. At most one record exists per unordered
// pair, whatever its direction or status.
type FriendRequest struct {
	ID          id.FriendRequestID
	RequesterID id.UserID
	ReceiverID  id.UserID
	Status      Status
	RequestedAt time.Time
	RespondedAt *time.Time
}

// New builds a pending request.
func New(requestID id.FriendRequestID, requesterID, receiverID id.UserID, now time.Time) *FriendRequest {
	return &FriendRequest{
		ID:          requestID,
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      StatusPending,
		RequestedAt: now,
	}
}

// Involves reports whether the given user is on either side of the request.
func (r *FriendRequest) Involves(userID id.UserID) bool {
	return r.RequesterID == userID || r.ReceiverID == userID
}

// Other returns the opposite side of the request for the given user.
func (r *FriendRequest) Other(userID id.UserID) id.UserID {
	if r.RequesterID == userID {
		return r.ReceiverID
	}
	return r.RequesterID
}

func (r *FriendRequest) accept(now time.Time) {
	r.Status = StatusAccepted
	responded := now
	r.RespondedAt = &responded
}
