package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// TrendingCache counts company lookups in a Redis ZSET
type TrendingCache interface {
	Increment(ctx context.Context, companyID string) error
	Top(ctx context.Context, limit int) ([]TrendingEntry, error)
}

// TrendingEntry is a company with its lookup count
type TrendingEntry struct {
	CompanyID string `json:"companyId"`
	Lookups   int    `json:"lookups"`
	Rank      int    `json:"rank"`
}

type trendingCache struct {
	client *redis.Client
	key    string
}

// NewTrendingCache creates a new trending tracker
func NewTrendingCache(client *redis.Client) TrendingCache {
	return &trendingCache{
		client: client,
		key:    "prep:trending:companies",
	}
}

func (c *trendingCache) Increment(ctx context.Context, companyID string) error {
	return c.client.ZIncrBy(ctx, c.key, 1, companyID).Err()
}

func (c *trendingCache) Top(ctx context.Context, limit int) ([]TrendingEntry, error) {
	if limit <= 0 {
		return []TrendingEntry{}, nil
	}
	results, err := c.client.ZRevRangeWithScores(ctx, c.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]TrendingEntry, len(results))
	for i, z := range results {
		entries[i] = TrendingEntry{
			CompanyID: z.Member.(string),
			Lookups:   int(z.Score),
			Rank:      i + 1,
		}
	}
	return entries, nil
}
