package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yuval-krn/yieldcurve/internal/domain"
)

// latestCurveKey holds the most recent curve as a JSON blob. The value
// is replaced after every ingestion run and read on every latest-curve
// request, so a single key suffices.
const latestCurveKey = "curve:latest"

// CurveCache caches the latest yield curve in Redis. It is a
// read-through cache: the query service consults it before the store
// and fills it on a miss.
type CurveCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCurveCache creates a CurveCache backed by the given Client. A zero
// ttl means entries never expire (they are still replaced on each
// ingestion run).
func NewCurveCache(c *Client, ttl time.Duration) *CurveCache {
	return &CurveCache{rdb: c.Underlying(), ttl: ttl}
}

type cachedCurve struct {
	Date   string              `json:"date"`
	Points []domain.CurvePoint `json:"points"`
}

// GetLatest returns the cached latest curve, or domain.ErrNotFound on a
// cache miss.
func (c *CurveCache) GetLatest(ctx context.Context) (string, []domain.CurvePoint, error) {
	raw, err := c.rdb.Get(ctx, latestCurveKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil, domain.ErrNotFound
		}
		return "", nil, fmt.Errorf("redis: get latest curve: %w", err)
	}

	var cached cachedCurve
	if err := json.Unmarshal(raw, &cached); err != nil {
		return "", nil, fmt.Errorf("redis: decode latest curve: %w", err)
	}
	return cached.Date, cached.Points, nil
}

// SetLatest stores the latest curve.
func (c *CurveCache) SetLatest(ctx context.Context, date string, points []domain.CurvePoint) error {
	raw, err := json.Marshal(cachedCurve{Date: date, Points: points})
	if err != nil {
		return fmt.Errorf("redis: encode latest curve: %w", err)
	}
	if err := c.rdb.Set(ctx, latestCurveKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set latest curve: %w", err)
	}
	return nil
}

// Invalidate drops the cached curve. Called after every ingestion run.
func (c *CurveCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, latestCurveKey).Err(); err != nil {
		return fmt.Errorf("redis: invalidate latest curve: %w", err)
	}
	return nil
}
