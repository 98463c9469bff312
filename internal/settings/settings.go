// Package settings is the runtime configuration collaborator: a small
// key-value store holding the league thresholds and the top-list display
// limit, with defaults applied whenever a key is absent or unreadable.
// Admin writes are validated here before they reach the store.
package settings

import (
	"context"
	"strconv"

	dErrors "goodtime/pkg/domain-errors"
)

// Store is the key-value contract. Implementations return
// sentinel.ErrNotFound for missing keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

const (
	keySilver     = "league.silver"
	keyGold       = "league.gold"
	keyPlatinum   = "league.platinum"
	keyDiamond    = "league.diamond"
	keyTopLimit   = "top.limit"
	keyLastSeason = "season.last_label"
)

// Defaults used when nothing has been configured yet.
const (
	DefaultSilver   = 500
	DefaultGold     = 1500
	DefaultPlatinum = 3000
	DefaultDiamond  = 5000
	DefaultTopLimit = 10
)

// Thresholds are the minimum league points for each tier above Bronze.
type Thresholds struct {
	Silver   int
	Gold     int
	Platinum int
	Diamond  int
}

// Validate enforces positive, strictly increasing cutoffs.
func (t Thresholds) Validate() error {
	if t.Silver <= 0 {
		return dErrors.New(dErrors.CodeValidation, "silver threshold must be positive")
	}
	if t.Gold <= t.Silver || t.Platinum <= t.Gold || t.Diamond <= t.Platinum {
		return dErrors.New(dErrors.CodeValidation, "league thresholds must be strictly increasing")
	}
	return nil
}

// Service wraps the store with typed accessors and defaults.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// LeagueThresholds returns the configured cutoffs, falling back to the
// defaults per key. A malformed stored value falls back too rather than
// failing a read path.
func (s *Service) LeagueThresholds(ctx context.Context) Thresholds {
	return Thresholds{
		Silver:   s.intOrDefault(ctx, keySilver, DefaultSilver),
		Gold:     s.intOrDefault(ctx, keyGold, DefaultGold),
		Platinum: s.intOrDefault(ctx, keyPlatinum, DefaultPlatinum),
		Diamond:  s.intOrDefault(ctx, keyDiamond, DefaultDiamond),
	}
}

// SetLeagueThresholds validates and persists new cutoffs.
func (s *Service) SetLeagueThresholds(ctx context.Context, t Thresholds) error {
	if err := t.Validate(); err != nil {
		return err
	}
	pairs := []struct {
		key   string
		value int
	}{
		{keySilver, t.Silver},
		{keyGold, t.Gold},
		{keyPlatinum, t.Platinum},
		{keyDiamond, t.Diamond},
	}
	for _, p := range pairs {
		if err := s.store.Set(ctx, p.key, strconv.Itoa(p.value)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save league thresholds")
		}
	}
	return nil
}

// TopLimit returns how many users the top list shows by default.
func (s *Service) TopLimit(ctx context.Context) int {
	return s.intOrDefault(ctx, keyTopLimit, DefaultTopLimit)
}

// SetTopLimit persists a new top-list limit.
func (s *Service) SetTopLimit(ctx context.Context, limit int) error {
	if limit <= 0 {
		return dErrors.New(dErrors.CodeValidation, "top limit must be positive")
	}
	if err := s.store.Set(ctx, keyTopLimit, strconv.Itoa(limit)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save top limit")
	}
	return nil
}

// LastSeasonLabel returns the label of the last season already rolled over,
// or "" when no rollover has happened yet. The season worker uses it to
// detect month boundaries without a cron dependency.
func (s *Service) LastSeasonLabel(ctx context.Context) string {
	v, err := s.store.Get(ctx, keyLastSeason)
	if err != nil {
		return ""
	}
	return v
}

// SetLastSeasonLabel records that the given season has been processed.
func (s *Service) SetLastSeasonLabel(ctx context.Context, label string) error {
	if err := s.store.Set(ctx, keyLastSeason, label); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save season label")
	}
	return nil
}

func (s *Service) intOrDefault(ctx context.Context, key string, def int) int {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		// Missing and unreadable keys both fall back; reads must not fail.
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
