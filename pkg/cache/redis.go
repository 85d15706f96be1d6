package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisPrefix = "cfgfacts:"

// RedisStore stores each key as string "cfgfacts:<key>" which expires
// after TTL.
type RedisStore struct {
	client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:        addr,
			DialTimeout: 2 * time.Second,
			MaxRetries:  1,
		}),
		TTL: ttl,
	}
}

func (s *RedisStore) Load(ctx context.Context, key string, v any) (bool, error) {
	data, err := s.client.Get(ctx, redisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisPrefix+key, data, s.TTL).Err()
}

func (s *RedisStore) Close() error { return s.client.Close() }
