package league

import (
	"context"
	"log/slog"
	"time"

	"goodtime/internal/platform/metrics"
	"goodtime/internal/settings"
	"goodtime/internal/user"
	dErrors "goodtime/pkg/domain-errors"
	"goodtime/pkg/requestcontext"
)

const podiumSize = 3

// Service exposes the ranking board and the season administration used by
// both the HTTP layer and the season worker.
type Service struct {
	users      user.Store
	settings   *settings.Service
	hallOfFame HallOfFameStore
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger.With("component", "league-service") }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(users user.Store, cfg *settings.Service, hallOfFame HallOfFameStore, opts ...Option) *Service {
	s := &Service{
		users:      users,
		settings:   cfg,
		hallOfFame: hallOfFame,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Top returns the ranking board, highest seasonal points first. A
// non-positive limit falls back to the configured display limit.
func (s *Service) Top(ctx context.Context, limit int) ([]*user.User, error) {
	if limit <= 0 {
		limit = s.settings.TopLimit(ctx)
	}
	top, err := s.users.TopByPoints(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load ranking")
	}
	return top, nil
}

// Thresholds returns the active league cutoffs.
func (s *Service) Thresholds(ctx context.Context) settings.Thresholds {
	return s.settings.LeagueThresholds(ctx)
}

// SetThresholds persists new cutoffs and re-derives every user's tier so
// standings reflect the new boundaries immediately.
func (s *Service) SetThresholds(ctx context.Context, t settings.Thresholds) error {
	if err := s.settings.SetLeagueThresholds(ctx, t); err != nil {
		return err
	}
	return s.recalculateTiers(ctx, t)
}

func (s *Service) recalculateTiers(ctx context.Context, t settings.Thresholds) error {
	all, err := s.users.ListAll(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	changed := make([]*user.User, 0, len(all))
	for _, u := range all {
		if tier := TierFor(u.LeaguePoints, t); tier != u.Tier {
			u.Tier = tier
			changed = append(changed, u)
		}
	}
	if len(changed) == 0 {
		return nil
	}
	if err := s.users.SaveAll(ctx, changed); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save recalculated tiers")
	}
	s.logger.InfoContext(ctx, "tiers recalculated", "changed", len(changed))
	return nil
}

// HallOfFame returns the podium of the last finished season.
func (s *Service) HallOfFame(ctx context.Context) ([]HallOfFameEntry, error) {
	entries, err := s.hallOfFame.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load hall of fame")
	}
	return entries, nil
}

// Rollover closes the season named by label: the top three are snapshotted
// into the hall of fame, replacing the previous podium, and every user's
// points move into last-season bookkeeping with the tier reset to Bronze.
// The user batch is committed in one call so a crash cannot leave half a
// season reset.
func (s *Service) Rollover(ctx context.Context, label string) error {
	top, err := s.users.TopByPoints(ctx, podiumSize)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load season podium")
	}
	podium := make([]HallOfFameEntry, 0, len(top))
	for i, u := range top {
		podium = append(podium, HallOfFameEntry{
			Rank:        i + 1,
			Username:    u.Username,
			Points:      u.LeaguePoints,
			SeasonLabel: label,
		})
	}
	if err := s.hallOfFame.Replace(ctx, podium); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store hall of fame")
	}

	all, err := s.users.ListAll(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	for _, u := range all {
		u.ResetSeason()
	}
	if err := s.users.SaveAll(ctx, all); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reset season")
	}

	if s.metrics != nil {
		s.metrics.SeasonRollovers.Inc()
	}
	s.logger.InfoContext(ctx, "season rolled over", "season", label, "users_reset", len(all), "podium", len(podium))
	return nil
}

// CloseSeasonEarly archives the running season now instead of waiting for
// the month boundary. The podium keeps the current month's label and the
// season bookkeeping advances to the next month, so the scheduled rollover
// does not archive the same month a second time over this podium.
func (s *Service) CloseSeasonEarly(ctx context.Context) (string, error) {
	now := requestcontext.Now(ctx)
	label := MonthLabel(now)
	if err := s.Rollover(ctx, label); err != nil {
		return "", err
	}
	next := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	if err := s.settings.SetLastSeasonLabel(ctx, MonthLabel(next)); err != nil {
		return "", err
	}
	return label, nil
}

const seasonLabelLayout = "January 2006"

// MonthLabel names a season after its calendar month, e.g. "October 2025".
func MonthLabel(t time.Time) string {
	return t.Format(seasonLabelLayout)
}
