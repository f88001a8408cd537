package cache

import (
	"context"
	"fmt"

	"github.com/erp/posting/internal/domain/shared"
	"github.com/erp/posting/internal/infrastructure/config"
	"go.uber.org/zap"
)

// IdempotencyStoreFactory chooses where Idempotency-Key replays are kept.
// Redis is shared by every replica; the in-memory store is per process.
type IdempotencyStoreFactory struct {
	redis    config.RedisConfig
	log      *zap.Logger
	fallback bool
}

type IdempotencyStoreFactoryOption func(*IdempotencyStoreFactory)

func WithLogger(log *zap.Logger) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) { f.log = log }
}

// WithInMemoryFallback decides whether an unreachable Redis degrades to the
// in-memory store (the default) or fails startup.
func WithInMemoryFallback(allow bool) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) { f.fallback = allow }
}

func NewIdempotencyStoreFactory(cfg config.RedisConfig, opts ...IdempotencyStoreFactoryOption) *IdempotencyStoreFactory {
	f := &IdempotencyStoreFactory{redis: cfg, log: zap.NewNop(), fallback: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *IdempotencyStoreFactory) CreateStore(ctx context.Context) (shared.IdempotencyStore, error) {
	if !f.redis.Enabled {
		f.log.Info("Idempotency store selected", zap.String("backend", "memory"))
		return NewInMemoryIdempotencyStore(0), nil
	}

	addr := f.redis.Addr()
	store, err := NewRedisIdempotencyStore(ctx, RedisConfig{
		Host: f.redis.Host, Port: f.redis.Port, Password: f.redis.Password, DB: f.redis.DB,
	})
	switch {
	case err == nil:
		f.log.Info("Idempotency store selected", zap.String("backend", "redis"), zap.String("addr", addr))
		return store, nil
	case !f.fallback:
		return nil, fmt.Errorf("idempotency store: redis at %s unavailable: %w", addr, err)
	}
	f.log.Warn("Redis unreachable, idempotency keys will not be shared across replicas",
		zap.String("addr", addr), zap.Error(err))
	return NewInMemoryIdempotencyStore(0), nil
}
