package httptransport

import (
	"net/http"
	"strconv"

	"goodtime/internal/game"
	"goodtime/pkg/requestcontext"
)

type achievementHandler struct {
	game *game.Service
}

func (h *achievementHandler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	unlocked, err := h.game.EvaluateAchievements(r.Context(), requestcontext.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	ids := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		ids = append(ids, a.ID)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"unlocked": ids})
}

type achieverEntry struct {
	Rank         int    `json:"rank"`
	Username     string `json:"username"`
	Achievements int    `json:"achievements"`
}

func (h *achievementHandler) handleTop(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	top, err := h.game.TopByAchievements(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	entries := make([]achieverEntry, 0, len(top))
	for i, u := range top {
		entries = append(entries, achieverEntry{
			Rank:         i + 1,
			Username:     u.Username,
			Achievements: len(u.Unlocks),
		})
	}
	writeJSON(w, http.StatusOK, entries)
}
