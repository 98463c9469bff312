package league

import (
	"context"
	"log/slog"
	"time"

	"goodtime/internal/settings"
)

// SeasonWorker watches the calendar and rolls the season over once per
// month. It persists the month it last saw in the settings store, so a
// restart (or downtime across a month boundary) triggers exactly one
// rollover instead of zero or many.
type SeasonWorker struct {
	league   *Service
	settings *settings.Service
	tick     time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

type WorkerOption func(*SeasonWorker)

func WithWorkerLogger(logger *slog.Logger) WorkerOption {
	return func(w *SeasonWorker) { w.logger = logger.With("component", "season-worker") }
}

// WithClock overrides the wall clock in tests.
func WithClock(now func() time.Time) WorkerOption {
	return func(w *SeasonWorker) { w.now = now }
}

func NewSeasonWorker(league *Service, cfg *settings.Service, tick time.Duration, opts ...WorkerOption) *SeasonWorker {
	w := &SeasonWorker{
		league:   league,
		settings: cfg,
		tick:     tick,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks until the context is cancelled, checking for a month change on
// every tick. It always returns nil on shutdown so it composes with an
// errgroup alongside the HTTP server.
func (w *SeasonWorker) Run(ctx context.Context) error {
	w.Check(ctx)
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check performs one calendar comparison. The first run only records the
// current month; there is no finished season to archive yet.
func (w *SeasonWorker) Check(ctx context.Context) {
	now := w.now()
	current := MonthLabel(now)
	last := w.settings.LastSeasonLabel(ctx)
	if last == current {
		return
	}
	if last == "" {
		if err := w.settings.SetLastSeasonLabel(ctx, current); err != nil {
			w.logger.ErrorContext(ctx, "failed to record current season", "error", err)
		}
		return
	}
	// An early season close leaves the bookkeeping one month ahead; that
	// season archives at its own boundary, not before.
	if t, err := time.Parse(seasonLabelLayout, last); err == nil && t.After(now) {
		return
	}
	if err := w.league.Rollover(ctx, last); err != nil {
		w.logger.ErrorContext(ctx, "season rollover failed", "season", last, "error", err)
		return
	}
	if err := w.settings.SetLastSeasonLabel(ctx, current); err != nil {
		w.logger.ErrorContext(ctx, "failed to record current season", "error", err)
	}
}
