package httptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"goodtime/internal/game"
	"goodtime/internal/user"
	dErrors "goodtime/pkg/domain-errors"
	"goodtime/pkg/requestcontext"
)

type userHandler struct {
	users *user.Service
	game  *game.Service
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userView struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Level        int       `json:"level"`
	XP           int       `json:"xp"`
	StreakDays   int       `json:"streak_days"`
	Tier         string    `json:"tier"`
	LeaguePoints int       `json:"league_points"`
	Achievements int       `json:"achievements"`
	RegisteredAt time.Time `json:"registered_at"`
}

func toUserView(u *user.User) userView {
	return userView{
		ID:           u.ID.String(),
		Username:     u.Username,
		Level:        u.Level,
		XP:           u.XP,
		StreakDays:   u.Streak.Count,
		Tier:         string(u.Tier),
		LeaguePoints: u.LeaguePoints,
		Achievements: len(u.Unlocks),
		RegisteredAt: u.RegisteredAt,
	}
}

func (h *userHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.Password) < 8 {
		writeError(w, dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters"))
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password"))
		return
	}
	u, err := h.users.Register(r.Context(), req.Username, req.Email, string(hash))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserView(u))
}

type loginView struct {
	User        userView `json:"user"`
	TasksPurged int      `json:"tasks_purged"`
	Unlocked    []string `json:"unlocked_achievements"`
}

func (h *userHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	res, err := h.game.OnLogin(r.Context(), requestcontext.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	view := loginView{
		User:        toUserView(res.User),
		TasksPurged: res.TasksPurged,
		Unlocked:    make([]string, 0, len(res.Unlocked)),
	}
	for _, a := range res.Unlocked {
		view.Unlocked = append(view.Unlocked, a.ID)
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *userHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), requestcontext.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(u))
}

func (h *userHandler) handleGetByUsername(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(u))
}
