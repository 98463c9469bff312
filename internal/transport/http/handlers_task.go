package httptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"goodtime/internal/game"
	"goodtime/internal/task"
	dErrors "goodtime/pkg/domain-errors"
	"goodtime/pkg/requestcontext"
)

type taskHandler struct {
	tasks *task.Service
	game  *game.Service
}

type createTaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
}

type updateTaskRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Difficulty  *string `json:"difficulty"`
}

type taskView struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	XPReward    int        `json:"xp_reward"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func toTaskView(t *task.Task) taskView {
	return taskView{
		Name:        t.Name,
		Description: t.Description,
		XPReward:    t.XPReward,
		CreatedAt:   t.CreatedAt,
		ExpiresAt:   t.ExpiresAt,
		CompletedAt: t.CompletedAt,
	}
}

func (h *taskHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	t, err := h.tasks.Create(r.Context(), requestcontext.UserID(r.Context()), req.Name, req.Description, req.Difficulty)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskView(t))
}

func (h *taskHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID := requestcontext.UserID(r.Context())
	var (
		tasks []*task.Task
		err   error
	)
	switch status := r.URL.Query().Get("status"); status {
	case "", "pending":
		tasks, err = h.tasks.ListPending(r.Context(), userID)
	case "completed":
		tasks, err = h.tasks.ListCompleted(r.Context(), userID)
	default:
		err = dErrors.Newf(dErrors.CodeValidation, "unknown status %q", status)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, toTaskView(t))
	}
	writeJSON(w, http.StatusOK, views)
}

type completionView struct {
	Task         taskView `json:"task"`
	XPGained     int      `json:"xp_gained"`
	LevelsGained int      `json:"levels_gained"`
	Level        int      `json:"level"`
	XP           int      `json:"xp"`
	StreakDays   int      `json:"streak_days"`
	Tier         string   `json:"tier"`
	Unlocked     []string `json:"unlocked_achievements"`
}

func (h *taskHandler) handleComplete(w http.ResponseWriter, r *http.Request) {
	res, err := h.game.CompleteTask(r.Context(), requestcontext.UserID(r.Context()), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	view := completionView{
		Task:         toTaskView(res.Task),
		XPGained:     res.XPGained,
		LevelsGained: res.LevelsGained,
		Level:        res.Level,
		XP:           res.XP,
		StreakDays:   res.StreakDays,
		Tier:         string(res.Tier),
		Unlocked:     make([]string, 0, len(res.Unlocked)),
	}
	for _, a := range res.Unlocked {
		view.Unlocked = append(view.Unlocked, a.ID)
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *taskHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	t, err := h.tasks.Update(r.Context(), requestcontext.UserID(r.Context()), chi.URLParam(r, "name"), task.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskView(t))
}

func (h *taskHandler) handleCancel(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.Cancel(r.Context(), requestcontext.UserID(r.Context()), chi.URLParam(r, "name")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type suggestionView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
}

func (h *taskHandler) handleRecommended(w http.ResponseWriter, r *http.Request) {
	suggestions := task.RecommendedFor(r.URL.Query().Get("weather"))
	views := make([]suggestionView, 0, len(suggestions))
	for _, sg := range suggestions {
		views = append(views, suggestionView{
			Name:        sg.Name,
			Description: sg.Description,
			Difficulty:  string(sg.Difficulty),
		})
	}
	writeJSON(w, http.StatusOK, views)
}
