package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

const (
	statsKey = "stats:platform"
	statsTTL = 30 * time.Second
)

// StatsCache stores the admin dashboard counts in Redis for a short TTL.
// The dashboard tolerates counts a few seconds stale, so a cache hit saves
// three collection counts per request.
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached stats, or (nil, nil) on a cache miss.
func (c *StatsCache) Get(ctx context.Context) (*ports.Stats, error) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats ports.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

// Set caches the stats for statsTTL.
func (c *StatsCache) Set(ctx context.Context, stats *ports.Stats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, statsKey, raw, statsTTL).Err()
}
