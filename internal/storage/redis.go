package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each value under "<prefix>:<id>". A single SET replaces
// the whole value, so readers never observe a partial write.
type RedisStore[T ValidatingSpec] struct {
	client *redis.Client
	prefix string
}

func NewRedisStore[T ValidatingSpec](client *redis.Client, prefix string) *RedisStore[T] {
	return &RedisStore[T]{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisStore[T]) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *RedisStore[T]) Save(ctx context.Context, id string, v T) error {
	jsonData, err := encodeAsset(id, v)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key(id), jsonData, 0).Err(); err != nil {
		slog.Error("redis SET failed", "key", s.key(id), "error", err)
		return fmt.Errorf("redis set failed: %w", err)
	}

	slog.Debug("redis SET successful", "key", s.key(id), "bytes", len(jsonData))
	return nil
}

func (s *RedisStore[T]) Load(ctx context.Context, id string) (T, error) {
	var zero T
	if err := Identifier(id).Validate(); err != nil {
		return zero, err
	}

	jsonData, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("redis get failed: %w", err)
	}

	return decodeAsset[T](id, jsonData)
}

// List returns the ids of every stored value, sorted.
func (s *RedisStore[T]) List(ctx context.Context) ([]string, error) {
	ids := []string{}

	iter := s.client.Scan(ctx, 0, s.key("*"), 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), s.key("")))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan failed: %w", err)
	}
	slices.Sort(ids)

	return ids, nil
}

func (s *RedisStore[T]) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *RedisStore[T]) Close() error {
	return s.client.Close()
}

func (s *RedisStore[T]) key(id string) string {
	return s.prefix + ":" + id
}
