package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homehero/internal/config"

	"github.com/redis/go-redis/v9"
)

// HomeServicesKey holds the cached /home-services payload.
const HomeServicesKey = "homehero:home_services"

// RedisListCache keeps pre-encoded list payloads in Redis with a TTL.
//
// Every key has a generation counter next to it. Invalidate bumps the
// counter, and Set only writes when the counter still holds the value the
// caller read before loading the list, so a slow reader can never put back
// a list that an invalidation already dropped.
type RedisListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient builds a client from the redis section of the config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisListCache(client *redis.Client, ttl time.Duration) *RedisListCache {
	return &RedisListCache{
		client: client,
		ttl:    ttl,
	}
}

func generationKey(key string) string {
	return key + ":gen"
}

// Get returns the cached payload. A miss is (nil, false, nil).
func (c *RedisListCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	return val, true, nil
}

// Generation returns the current invalidation counter of key; 0 if never invalidated.
func (c *RedisListCache) Generation(ctx context.Context, key string) (int64, error) {
	if c.client == nil {
		return 0, fmt.Errorf("redis client is nil")
	}
	gen, err := c.client.Get(ctx, generationKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get generation of %s: %w", key, err)
	}
	return gen, nil
}

// Set stores payload if key is still at generation gen. It reports whether it wrote.
func (c *RedisListCache) Set(ctx context.Context, key string, gen int64, payload []byte) (bool, error) {
	if c.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	genKey := generationKey(key)
	stored := false
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, c.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, genKey)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to set %s in redis: %w", key, err)
	}
	return stored, nil
}

// Invalidate drops the payload and bumps the generation in one transaction.
func (c *RedisListCache) Invalidate(ctx context.Context, key string) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(key))
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate %s in redis: %w", key, err)
	}
	return nil
}

// NopListCache is used when Redis is not configured; every read misses.
type NopListCache struct{}

func (NopListCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NopListCache) Generation(context.Context, string) (int64, error)        { return 0, nil }
func (NopListCache) Set(context.Context, string, int64, []byte) (bool, error) { return false, nil }
func (NopListCache) Invalidate(context.Context, string) error                 { return nil }

// Ping checks the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close closes the client; nil is a no-op.
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
