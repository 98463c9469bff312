package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersRegistered      prometheus.Counter
	TasksCreated         prometheus.Counter
	TasksCompleted       prometheus.Counter
	TasksExpired         prometheus.Counter
	LevelsGained         prometheus.Counter
	AchievementsUnlocked prometheus.Counter
	SeasonRollovers      prometheus.Counter
	FriendshipsFormed    prometheus.Counter
	RequestDuration      *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goodtime_users_registered_total",
			Help: "Total number of registered users",
		}),
		TasksCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goodtime_tasks_created_total",
			Help: "Total number of tasks created",
		}),
		TasksCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goodtime_tasks_completed_total",
			Help: "Total number of tasks completed",
		}),
		TasksExpired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goodtime_tasks_expired_total",
			Help: "Total number of pending tasks purged after expiring",
		}),
		LevelsGained: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goodtime_levels_gained_total",
			Help: "Total number of level-ups across all users",
		}),
		AchievementsUnlocked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goodtime_achievements_unlocked_total",
			Help: "Total number of achievement unlocks granted",
		}),
		SeasonRollovers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goodtime_season_rollovers_total",
			Help: "Total number of season resets performed",
		}),
		FriendshipsFormed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "goodtime_friendships_formed_total",
			Help: "Total number of accepted friend requests",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "goodtime_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}
