package repositories

import (
	"context"
	"time"

	"realty-stream/internal/models"
	"realty-stream/pkg/cache"
	"realty-stream/pkg/metrics"
)

type redisGeocodeCache struct {
	store cache.CacheOperations
	ttl   time.Duration
}

// NewRedisGeocodeCache returns a GeocodeCache that persists entries in Redis
// with the given expiration.
func NewRedisGeocodeCache(store cache.CacheOperations, ttl time.Duration) GeocodeCache {
	return &redisGeocodeCache{store: store, ttl: ttl}
}

func (c *redisGeocodeCache) Get(ctx context.Context, key string) (models.Coordinates, bool, error) {
	var coords models.Coordinates
	err := c.store.Get(ctx, key, &coords)
	if cache.IsMiss(err) {
		metrics.CacheMissesTotal.Inc()
		return models.Coordinates{}, false, nil
	}
	if err != nil {
		metrics.CacheMissesTotal.Inc()
		return models.Coordinates{}, false, err
	}
	metrics.CacheHitsTotal.Inc()
	return coords, true, nil
}

func (c *redisGeocodeCache) Set(ctx context.Context, key string, coords models.Coordinates) error {
	return c.store.Set(ctx, key, coords, c.ttl)
}
