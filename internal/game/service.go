// Package game orchestrates a player event across the verticals: a task
// completion or a login touches the task store, the streak, the level
// curve, the league standing and the badge catalog, then commits the user
// aggregate once.
package game

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"goodtime/internal/achievement"
	"goodtime/internal/league"
	"goodtime/internal/platform/metrics"
	"goodtime/internal/progression"
	"goodtime/internal/settings"
	"goodtime/internal/task"
	"goodtime/internal/user"
	id "goodtime/pkg/domain"
	dErrors "goodtime/pkg/domain-errors"
	"goodtime/pkg/platform/sentinel"
	"goodtime/pkg/requestcontext"
)

// CompletionResult is everything a client wants to show after finishing a
// task.
type CompletionResult struct {
	Task         *task.Task
	XPGained     int
	LevelsGained int
	Level        int
	XP           int
	StreakDays   int
	Tier         user.Tier
	Unlocked     []achievement.Achievement
}

// LoginResult summarizes the housekeeping done when a player shows up.
type LoginResult struct {
	User        *user.User
	TasksPurged int
	Unlocked    []achievement.Achievement
}

// Service is the single writer of progression state on the user aggregate.
type Service struct {
	users    user.Store
	tasks    *task.Service
	settings *settings.Service
	catalog  *achievement.Catalog
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger.With("component", "game-service") }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(users user.Store, tasks *task.Service, cfg *settings.Service, catalog *achievement.Catalog, opts ...Option) *Service {
	s := &Service{
		users:    users,
		tasks:    tasks,
		settings: cfg,
		catalog:  catalog,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CompleteTask finishes the named pending task and applies every reward in
// one pass: streak, xp and levels, league points and tier, then badges.
// Badge reward xp feeds the same level curve as task xp.
func (s *Service) CompleteTask(ctx context.Context, userID id.UserID, taskName string) (*CompletionResult, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	t, err := s.tasks.Complete(ctx, userID, taskName)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	u.Streak = u.Streak.OnView(now).OnTaskCompleted(now)

	levelBefore := u.Level
	u.Level, u.XP = progression.ApplyXPGain(u.Level, u.XP, t.XPReward)
	league.AddPoints(u, t.XPReward, s.settings.LeagueThresholds(ctx))

	unlocked, rewardXP, err := s.grantBadges(ctx, u, &achievement.Completion{
		CompletedAt: *t.CompletedAt,
		ExpiresAt:   t.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}
	u.Level, u.XP = progression.ApplyXPGain(u.Level, u.XP, rewardXP)

	if err := s.saveUser(ctx, u); err != nil {
		return nil, err
	}

	levelsGained := u.Level - levelBefore
	if s.metrics != nil && levelsGained > 0 {
		s.metrics.LevelsGained.Add(float64(levelsGained))
	}
	s.logger.InfoContext(ctx, "task rewards applied",
		"user_id", userID.String(),
		"task_id", t.ID.String(),
		"xp_gained", t.XPReward+rewardXP,
		"levels_gained", levelsGained,
		"streak", u.Streak.Count,
		"tier", string(u.Tier),
	)

	return &CompletionResult{
		Task:         t,
		XPGained:     t.XPReward + rewardXP,
		LevelsGained: levelsGained,
		Level:        u.Level,
		XP:           u.XP,
		StreakDays:   u.Streak.Count,
		Tier:         u.Tier,
		Unlocked:     unlocked,
	}, nil
}

// OnLogin runs the show-up housekeeping: expired tasks are purged, a
// broken streak is reset, and any badge earned since the last visit is
// granted.
func (s *Service) OnLogin(ctx context.Context, userID id.UserID) (*LoginResult, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	purged, err := s.tasks.PurgeExpired(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.Streak = u.Streak.OnView(requestcontext.Now(ctx))

	unlocked, rewardXP, err := s.grantBadges(ctx, u, nil)
	if err != nil {
		return nil, err
	}
	u.Level, u.XP = progression.ApplyXPGain(u.Level, u.XP, rewardXP)

	if err := s.saveUser(ctx, u); err != nil {
		return nil, err
	}
	return &LoginResult{User: u, TasksPurged: purged, Unlocked: unlocked}, nil
}

// EvaluateAchievements grants any badge whose condition already holds, with
// no triggering completion. Used by the explicit re-check endpoint.
func (s *Service) EvaluateAchievements(ctx context.Context, userID id.UserID) ([]achievement.Achievement, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked, rewardXP, err := s.grantBadges(ctx, u, nil)
	if err != nil {
		return nil, err
	}
	if len(unlocked) == 0 {
		return nil, nil
	}
	u.Level, u.XP = progression.ApplyXPGain(u.Level, u.XP, rewardXP)
	if err := s.saveUser(ctx, u); err != nil {
		return nil, err
	}
	return unlocked, nil
}

// TopByAchievements ranks users by how many badges they hold.
func (s *Service) TopByAchievements(ctx context.Context, limit int) ([]*user.User, error) {
	if limit <= 0 {
		limit = s.settings.TopLimit(ctx)
	}
	all, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	sort.SliceStable(all, func(i, j int) bool {
		if len(all[i].Unlocks) != len(all[j].Unlocks) {
			return len(all[i].Unlocks) > len(all[j].Unlocks)
		}
		return all[i].Username < all[j].Username
	})
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *Service) grantBadges(ctx context.Context, u *user.User, completion *achievement.Completion) ([]achievement.Achievement, int, error) {
	completed, err := s.tasks.ListCompleted(ctx, u.ID)
	if err != nil {
		return nil, 0, err
	}
	snap := achievement.Snapshot{
		Level:          u.Level,
		StreakDays:     u.Streak.Count,
		Tier:           u.Tier,
		CompletedTasks: len(completed),
		JustCompleted:  completion,
	}
	unlocked := s.catalog.Evaluate(u, snap)
	rewardXP := achievement.Unlock(u, unlocked, requestcontext.Now(ctx))
	if s.metrics != nil && len(unlocked) > 0 {
		s.metrics.AchievementsUnlocked.Add(float64(len(unlocked)))
	}
	for _, a := range unlocked {
		s.logger.InfoContext(ctx, "achievement unlocked", "user_id", u.ID.String(), "achievement", a.ID)
	}
	return unlocked, rewardXP, nil
}

func (s *Service) loadUser(ctx context.Context, userID id.UserID) (*user.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return u, nil
}

func (s *Service) saveUser(ctx context.Context, u *user.User) error {
	if err := s.users.Save(ctx, u); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save user")
	}
	return nil
}
