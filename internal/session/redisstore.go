package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "learndash:session:"

// RedisStore implements Backend with one Redis hash per session. Every
// write refreshes the hash TTL, so idle sessions expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to the Redis server at url and verifies the
// connection.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (r *RedisStore) key(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) refresh(ctx context.Context, pipe redis.Pipeliner, id string) {
	if r.ttl > 0 {
		pipe.Expire(ctx, r.key(id), r.ttl)
	}
}

func (r *RedisStore) Touch(ctx context.Context, id string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, r.key(id), "created_at", time.Now().UTC().Format(time.RFC3339))
		r.refresh(ctx, pipe, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("touching session: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id, key string) (int64, error) {
	v, err := r.client.HGet(ctx, r.key(id), key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading session value: %w", err)
	}
	return v, nil
}

func (r *RedisStore) Add(ctx context.Context, id, key string, delta int64) (int64, error) {
	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.HIncrBy(ctx, r.key(id), key, delta)
		r.refresh(ctx, pipe, id)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("adding to session value: %w", err)
	}
	return incr.Val(), nil
}

func (r *RedisStore) Set(ctx context.Context, id, key string, value int64) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.key(id), key, value)
		r.refresh(ctx, pipe, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("setting session value: %w", err)
	}
	return nil
}

func (r *RedisStore) End(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
