package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"marketpulse/server/internal/models"
)

// ErrCacheMiss is returned when no entry exists for the key.
var ErrCacheMiss = errors.New("cache miss")

// ForecastCache memoizes whole forecast results in Redis with a fixed TTL.
// It is an explicit collaborator owned by the calling layer; the engine itself
// never touches it. Duplicate recomputation on concurrent misses is fine
// because the engine is deterministic over identical input.
type ForecastCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewForecastCache(addr, password string, db int, ttl time.Duration, logger *logrus.Logger) *ForecastCache {
	return &ForecastCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl:    ttl,
		logger: logger,
	}
}

const keyPrefix = "marketpulse:"

// Get loads a cached forecast result, returning ErrCacheMiss when absent.
func (c *ForecastCache) Get(ctx context.Context, key string) (*models.ForecastResult, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var result models.ForecastResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Set stores a forecast result under the key for the cache's TTL.
func (c *ForecastCache) Set(ctx context.Context, key string, result *models.ForecastResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err()
}

// Ping verifies connectivity, used at startup.
func (c *ForecastCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ForecastCache) Close() error {
	return c.client.Close()
}
