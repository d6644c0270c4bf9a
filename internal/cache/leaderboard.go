// Package cache holds Redis-backed read caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glycofit/backend/internal/models"
)

const (
	DefaultLeaderboardKey = "leaderboard:top"
	DefaultLeaderboardTTL = 30 * time.Second
)

// LeaderboardCache stores the ordered top leaderboard entries as one JSON value.
type LeaderboardCache struct {
	redis *redis.Client
	key   string
	ttl   time.Duration
}

func NewLeaderboardCache(client *redis.Client, key string, ttl time.Duration) *LeaderboardCache {
	if key == "" {
		key = DefaultLeaderboardKey
	}
	if ttl <= 0 {
		ttl = DefaultLeaderboardTTL
	}
	return &LeaderboardCache{redis: client, key: key, ttl: ttl}
}

// Top returns the cached entries. ok is false on a cache miss.
func (c *LeaderboardCache) Top(ctx context.Context) ([]models.LeaderboardEntry, bool, error) {
	raw, err := c.redis.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read leaderboard cache: %w", err)
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		// a value we cannot decode is treated as absent
		return nil, false, nil
	}
	return entries, true, nil
}

func (c *LeaderboardCache) Store(ctx context.Context, entries []models.LeaderboardEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode leaderboard: %w", err)
	}
	if err := c.redis.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write leaderboard cache: %w", err)
	}
	return nil
}

func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	if err := c.redis.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate leaderboard cache: %w", err)
	}
	return nil
}
