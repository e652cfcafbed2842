package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-store/internal/config"
)

// RedisStorage persists snapshots as a single Redis string value per key.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage connects to Redis using the provided configuration.
// Connectivity problems are logged but not fatal: saves are best-effort
// and a later attempt may succeed.
func NewRedisStorage(cfg config.RedisConfig, logger *zap.Logger) *RedisStorage {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr))
	}

	return &RedisStorage{client: client}
}

// Load fetches the snapshot blob stored under key.
func (r *RedisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// Save overwrites the snapshot blob under key, with no expiry.
func (r *RedisStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close closes the client.
func (r *RedisStorage) Close() error {
	return r.client.Close()
}
