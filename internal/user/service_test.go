package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodtime/internal/user"
	dErrors "goodtime/pkg/domain-errors"
	"goodtime/pkg/requestcontext"
)

func TestRegister(t *testing.T) {
	now := time.Date(2025, time.October, 14, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	t.Run("starts at level 1 with zero progress", func(t *testing.T) {
		svc := user.NewService(user.NewInMemoryStore())
		u, err := svc.Register(ctx, "alice", "alice@example.com", "hash")
		require.NoError(t, err)
		assert.Equal(t, 1, u.Level)
		assert.Equal(t, 0, u.XP)
		assert.Equal(t, 0, u.LeaguePoints)
		assert.Equal(t, user.TierBronze, u.Tier)
		assert.Equal(t, user.RoleMember, u.Role)
		assert.Equal(t, now, u.RegisteredAt)
		assert.Zero(t, u.Streak.Count)
	})

	t.Run("rejects short username", func(t *testing.T) {
		svc := user.NewService(user.NewInMemoryStore())
		_, err := svc.Register(ctx, "al", "alice@example.com", "hash")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects disallowed username characters", func(t *testing.T) {
		svc := user.NewService(user.NewInMemoryStore())
		_, err := svc.Register(ctx, "bad name!", "alice@example.com", "hash")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		svc := user.NewService(user.NewInMemoryStore())
		_, err := svc.Register(ctx, "alice", "not-an-email", "hash")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		svc := user.NewService(user.NewInMemoryStore())
		_, err := svc.Register(ctx, "alice", "alice@example.com", "hash")
		require.NoError(t, err)
		_, err = svc.Register(ctx, "Alice", "second@example.com", "hash")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func TestGetByUsername(t *testing.T) {
	ctx := context.Background()
	svc := user.NewService(user.NewInMemoryStore())
	_, err := svc.Register(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)

	u, err := svc.GetByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = svc.GetByUsername(ctx, "nobody")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
