package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/machbazar/storefront/internal/cart/domain"
)

// KeyPrefix namespaces every cart slot
const KeyPrefix = "machbazar:cart:"

// RedisStorage keeps cart snapshots in redis with a sliding TTL
type RedisStorage struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStorage creates a redis-backed cart slot store
func NewRedisStorage(rdb *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{rdb: rdb, ttl: ttl}
}

func (s *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart from redis: %w", err)
	}
	return data, nil
}

func (s *RedisStorage) Put(ctx context.Context, key string, data []byte) error {
	if err := s.rdb.Set(ctx, KeyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart to redis: %w", err)
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, KeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete cart from redis: %w", err)
	}
	return nil
}
