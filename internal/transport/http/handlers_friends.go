package httptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"goodtime/internal/friendship"
	id "goodtime/pkg/domain"
	"goodtime/pkg/requestcontext"
)

type friendHandler struct {
	friendships *friendship.Service
}

type sendFriendRequest struct {
	Username string `json:"username"`
}

type friendRequestView struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`
}

func (h *friendHandler) handleSend(w http.ResponseWriter, r *http.Request) {
	var req sendFriendRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	fr, err := h.friendships.Send(r.Context(), requestcontext.UserID(r.Context()), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, friendRequestView{
		ID:          fr.ID.String(),
		Status:      string(fr.Status),
		RequestedAt: fr.RequestedAt,
	})
}

type respondRequest struct {
	Accept bool `json:"accept"`
}

func (h *friendHandler) handleRespond(w http.ResponseWriter, r *http.Request) {
	requestID, err := id.ParseFriendRequestID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req respondRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.friendships.Respond(r.Context(), requestcontext.UserID(r.Context()), requestID, req.Accept); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *friendHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	otherID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.friendships.Remove(r.Context(), requestcontext.UserID(r.Context()), otherID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type friendView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	Tier     string `json:"tier"`
}

func (h *friendHandler) handleList(w http.ResponseWriter, r *http.Request) {
	friends, err := h.friendships.Friends(r.Context(), requestcontext.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]friendView, 0, len(friends))
	for _, f := range friends {
		views = append(views, friendView{
			ID:       f.ID.String(),
			Username: f.Username,
			Level:    f.Level,
			Tier:     string(f.Tier),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

type inboxView struct {
	RequestID string    `json:"request_id"`
	From      string    `json:"from"`
	SentAt    time.Time `json:"sent_at"`
}

func (h *friendHandler) handleInbox(w http.ResponseWriter, r *http.Request) {
	pending, err := h.friendships.PendingReceived(r.Context(), requestcontext.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]inboxView, 0, len(pending))
	for _, p := range pending {
		views = append(views, inboxView{
			RequestID: p.RequestID.String(),
			From:      p.RequesterUsername,
			SentAt:    p.RequestedAt,
		})
	}
	writeJSON(w, http.StatusOK, views)
}
