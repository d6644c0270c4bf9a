package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glycofit/backend/internal/cache"
	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/testhelpers"
)

func TestLeaderboardCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := cache.NewLeaderboardCache(testhelpers.SetupRedis(t), "", time.Minute)

	_, ok, err := c.Top(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	entries := []models.LeaderboardEntry{
		{ID: "b", Name: "Bee", TotalPoints: 300, CurrentStreak: 2},
		{ID: "a", Name: "Ay", TotalPoints: 250},
	}
	require.NoError(t, c.Store(ctx, entries))

	got, ok, err := c.Top(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, 300, got[0].TotalPoints)
	assert.Equal(t, 2, got[0].CurrentStreak)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Top(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLeaderboardCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := cache.NewLeaderboardCache(testhelpers.SetupRedis(t), "test:leaderboard", time.Second)

	require.NoError(t, c.Store(ctx, []models.LeaderboardEntry{{ID: "a"}}))
	assert.Eventually(t, func() bool {
		_, ok, err := c.Top(ctx)
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}
