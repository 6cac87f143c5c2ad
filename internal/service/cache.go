package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pageza/mealplanner/backend/internal/model"
)

// ResultCache stores ranked results between identical queries.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]model.ScoredResult, bool)
	Set(ctx context.Context, key string, results []model.ScoredResult) error
}

// CacheKey derives a key from the index fingerprint and the request, so a
// reloaded corpus never serves stale results.
func CacheKey(fingerprint, kind string, request any) (string, error) {
	raw, err := json.Marshal(request)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("recipes:%s:%s:%s", kind, fingerprint, hex.EncodeToString(sum[:16])), nil
}

// RedisCache is a ResultCache backed by Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

var _ ResultCache = (*RedisCache)(nil)

// NewRedisCache creates a cache whose entries expire after ttl.
func NewRedisCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "cache").Logger(),
	}
}

// Get returns cached results. Redis errors count as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]model.ScoredResult, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("cache read failed")
		}
		return nil, false
	}
	var results []model.ScoredResult
	if err := json.Unmarshal(raw, &results); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("discarding corrupt cache entry")
		return nil, false
	}
	return results, true
}

func (c *RedisCache) Set(ctx context.Context, key string, results []model.ScoredResult) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}
