package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisListCache keeps the last list response per resource until the next
// write or until the TTL expires. Every write bumps a per-resource
// generation counter; a fill is stored only if the counter has not moved
// since the reader sampled it.
type RedisListCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisListCache(client *redis.Client, ttl time.Duration) *RedisListCache {
	return &RedisListCache{Client: client, TTL: ttl}
}

func (c *RedisListCache) ListKey(resource string) string {
	return "content:list:" + resource
}

func (c *RedisListCache) GenerationKey(resource string) string {
	return "content:gen:" + resource
}

func (c *RedisListCache) Get(ctx context.Context, resource string, dst any) (bool, error) {
	data, err := c.Client.Get(ctx, c.ListKey(resource)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisListCache) Generation(ctx context.Context, resource string) (int64, error) {
	gen, err := c.Client.Get(ctx, c.GenerationKey(resource)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set stores value only while the generation still equals generation. A
// write that landed in between makes Set a silent no-op.
func (c *RedisListCache) Set(ctx context.Context, resource string, generation int64, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	genKey := c.GenerationKey(resource)
	err = c.Client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.ListKey(resource), data, c.TTL)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisListCache) Invalidate(ctx context.Context, resource string) error {
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.GenerationKey(resource))
		pipe.Del(ctx, c.ListKey(resource))
		return nil
	})
	return err
}
