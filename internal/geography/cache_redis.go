package geography

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"veriadmin/pkg/platform/sentinel"
)

// RedisCache stores option lists as JSON strings with a TTL.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]Option, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	var opts []Option
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, fmt.Errorf("decode cached options %s: %w", key, err)
	}
	return opts, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, options []Option, ttl time.Duration) error {
	if options == nil {
		options = []Option{}
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("encode options %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
