package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodtime/internal/settings"
	dErrors "goodtime/pkg/domain-errors"
)

func TestLeagueThresholds(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when nothing is configured", func(t *testing.T) {
		svc := settings.NewService(settings.NewInMemoryStore())
		got := svc.LeagueThresholds(ctx)
		assert.Equal(t, settings.Thresholds{Silver: 500, Gold: 1500, Platinum: 3000, Diamond: 5000}, got)
	})

	t.Run("round-trips configured values", func(t *testing.T) {
		svc := settings.NewService(settings.NewInMemoryStore())
		want := settings.Thresholds{Silver: 100, Gold: 200, Platinum: 300, Diamond: 400}
		require.NoError(t, svc.SetLeagueThresholds(ctx, want))
		assert.Equal(t, want, svc.LeagueThresholds(ctx))
	})

	t.Run("rejects non-increasing cutoffs", func(t *testing.T) {
		svc := settings.NewService(settings.NewInMemoryStore())
		err := svc.SetLeagueThresholds(ctx, settings.Thresholds{Silver: 500, Gold: 500, Platinum: 3000, Diamond: 5000})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects non-positive silver", func(t *testing.T) {
		svc := settings.NewService(settings.NewInMemoryStore())
		err := svc.SetLeagueThresholds(ctx, settings.Thresholds{Silver: 0, Gold: 1500, Platinum: 3000, Diamond: 5000})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("malformed stored value falls back to the default", func(t *testing.T) {
		store := settings.NewInMemoryStore()
		require.NoError(t, store.Set(ctx, "league.silver", "not-a-number"))
		svc := settings.NewService(store)
		assert.Equal(t, settings.DefaultSilver, svc.LeagueThresholds(ctx).Silver)
	})
}

func TestTopLimit(t *testing.T) {
	ctx := context.Background()
	svc := settings.NewService(settings.NewInMemoryStore())

	assert.Equal(t, settings.DefaultTopLimit, svc.TopLimit(ctx))

	require.NoError(t, svc.SetTopLimit(ctx, 25))
	assert.Equal(t, 25, svc.TopLimit(ctx))

	err := svc.SetTopLimit(ctx, 0)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestLastSeasonLabel(t *testing.T) {
	ctx := context.Background()
	svc := settings.NewService(settings.NewInMemoryStore())

	assert.Empty(t, svc.LastSeasonLabel(ctx))
	require.NoError(t, svc.SetLastSeasonLabel(ctx, "October 2025"))
	assert.Equal(t, "October 2025", svc.LastSeasonLabel(ctx))
}
