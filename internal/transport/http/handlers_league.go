package httptransport

import (
	"net/http"
	"strconv"

	"goodtime/internal/league"
	"goodtime/internal/settings"
)

type leagueHandler struct {
	league *league.Service
}

type rankingEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Tier     string `json:"tier"`
}

func (h *leagueHandler) handleTop(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	top, err := h.league.Top(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	entries := make([]rankingEntry, 0, len(top))
	for i, u := range top {
		entries = append(entries, rankingEntry{
			Rank:     i + 1,
			Username: u.Username,
			Points:   u.LeaguePoints,
			Tier:     string(u.Tier),
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

type hallOfFameView struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Season   string `json:"season"`
}

func (h *leagueHandler) handleHallOfFame(w http.ResponseWriter, r *http.Request) {
	entries, err := h.league.HallOfFame(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]hallOfFameView, 0, len(entries))
	for _, e := range entries {
		views = append(views, hallOfFameView{
			Rank:     e.Rank,
			Username: e.Username,
			Points:   e.Points,
			Season:   e.SeasonLabel,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

type thresholdsRequest struct {
	Silver   int `json:"silver"`
	Gold     int `json:"gold"`
	Platinum int `json:"platinum"`
	Diamond  int `json:"diamond"`
}

func (h *leagueHandler) handleSetThresholds(w http.ResponseWriter, r *http.Request) {
	var req thresholdsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	err := h.league.SetThresholds(r.Context(), settings.Thresholds{
		Silver:   req.Silver,
		Gold:     req.Gold,
		Platinum: req.Platinum,
		Diamond:  req.Diamond,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRollover force-closes the running season, labelled with the
// current month.
func (h *leagueHandler) handleRollover(w http.ResponseWriter, r *http.Request) {
	label, err := h.league.CloseSeasonEarly(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"season": label})
}
