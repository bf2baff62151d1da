package kv

import (
	"context"
	"errors"
	"strings"

	"github.com/go-redis/redis/v8"
)

// RedisStore is a Store backed by go-redis.
type RedisStore struct {
	client   *redis.Client
	maxBytes int
}

// NewRedisStore wraps client. maxBytes > 0 rejects larger values before they
// reach the server.
func NewRedisStore(client *redis.Client, maxBytes int) *RedisStore {
	return &RedisStore{client: client, maxBytes: maxBytes}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value string) error {
	if r.maxBytes > 0 && len(value) > r.maxBytes {
		return ErrQuotaExceeded
	}
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		if isRedisOOM(err) {
			return ErrQuotaExceeded
		}
		return err
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// isRedisOOM matches the reply sent when maxmemory is reached.
func isRedisOOM(err error) bool {
	var rerr redis.Error
	if errors.As(err, &rerr) {
		return strings.HasPrefix(rerr.Error(), "OOM")
	}
	return false
}
