package storage

import (
	"context"
	"errors"
	"fmt"
	"placestats/internal/structures"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps each slot as one Redis string under prefix+key.
type RedisBackend struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

func NewRedisClient(conf structures.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Address,
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout(conf.Timeout))
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to connect to redis at %s: %w", conf.Address, err)
	}
	return client, nil
}

func NewRedisBackend(client *redis.Client, prefix string, timeout time.Duration) *RedisBackend {
	return &RedisBackend{
		client:  client,
		prefix:  prefix,
		timeout: redisTimeout(timeout),
	}
}

func redisTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 2 * time.Second
	}
	return d
}

func (r *RedisBackend) Read(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotNotFound
	}
	return data, err
}

func (r *RedisBackend) Write(key string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.client.Set(ctx, r.prefix+key, data, 0).Err()
}

func (r *RedisBackend) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.client.Del(ctx, r.prefix+key).Err()
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}
