package services

import (
	"context"
	"time"
)

// CacheService is the cache contract repositories and services share;
// pkg/cache.RedisCache satisfies it. A nil CacheService disables caching.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}
