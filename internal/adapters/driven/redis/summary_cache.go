package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qwizz-labs/qwizz-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SummaryCache = (*SummaryCache)(nil)

// DefaultSummaryTTL keeps cached sub-summaries just long enough for a
// retried request to reuse them.
const DefaultSummaryTTL = 15 * time.Minute

// SummaryCache implements driven.SummaryCache using Redis with TTL-based
// expiration. Keys are content hashes, so a changed query or corpus never
// hits a stale entry.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a new Redis-backed SummaryCache.
// A non-positive ttl falls back to DefaultSummaryTTL.
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &SummaryCache{client: client, ttl: ttl}
}

// Get returns the cached summary and whether it was present
func (c *SummaryCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get summary: %w", err)
	}

	return value, true, nil
}

// Set stores a summary under key
func (c *SummaryCache) Set(ctx context.Context, key, summary string) error {
	if err := c.client.Set(ctx, key, summary, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set summary: %w", err)
	}

	return nil
}
