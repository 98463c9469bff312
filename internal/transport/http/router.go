package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"goodtime/internal/friendship"
	"goodtime/internal/game"
	"goodtime/internal/league"
	"goodtime/internal/platform/metrics"
	"goodtime/internal/task"
	"goodtime/internal/user"
	"goodtime/pkg/platform/middleware"
)

// Deps bundles everything the router needs. Handlers hold only the slice
// they use.
type Deps struct {
	Users       *user.Service
	Tasks       *task.Service
	Game        *game.Service
	League      *league.Service
	Friendships *friendship.Service
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

// NewRouter wires every endpoint. Registration and the operational
// endpoints are open; everything else requires the user identity header,
// and the admin subtree additionally requires the admin role.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(d.Logger))
	if d.Metrics != nil {
		r.Use(middleware.Latency(d.Metrics))
	}
	r.Use(cors.AllowAll().Handler)

	r.Get("/health", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	users := &userHandler{users: d.Users, game: d.Game}
	r.Post("/users", users.handleRegister)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)

		r.Post("/login", users.handleLogin)
		r.Get("/me", users.handleMe)
		r.Get("/users/{username}", users.handleGetByUsername)

		tasks := &taskHandler{tasks: d.Tasks, game: d.Game}
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", tasks.handleCreate)
			r.Get("/", tasks.handleList)
			r.Get("/recommended", tasks.handleRecommended)
			r.Post("/{name}/complete", tasks.handleComplete)
			r.Patch("/{name}", tasks.handleUpdate)
			r.Delete("/{name}", tasks.handleCancel)
		})

		friends := &friendHandler{friendships: d.Friendships}
		r.Route("/friends", func(r chi.Router) {
			r.Get("/", friends.handleList)
			r.Post("/requests", friends.handleSend)
			r.Get("/requests", friends.handleInbox)
			r.Post("/requests/{id}/respond", friends.handleRespond)
			r.Delete("/{userID}", friends.handleRemove)
		})

		boards := &leagueHandler{league: d.League}
		r.Get("/league/top", boards.handleTop)
		r.Get("/league/hall-of-fame", boards.handleHallOfFame)

		achievements := &achievementHandler{game: d.Game}
		r.Post("/achievements/evaluate", achievements.handleEvaluate)
		r.Get("/achievements/top", achievements.handleTop)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(d.Users, d.Logger))
			r.Put("/league/thresholds", boards.handleSetThresholds)
			r.Post("/season/rollover", boards.handleRollover)
		})
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
