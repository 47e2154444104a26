package cache

import (
	"context"

	"github.com/codops/backend/internal/domain/shared"
	"github.com/codops/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore picks the store for the configuration. With
// idempotency.use_redis set it connects to Redis; when that fails and
// fallback is allowed it logs a warning and returns a MemoryStore.
func NewIdempotencyStore(ctx context.Context, cfg *config.Config, allowFallback bool, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if !cfg.Idempotency.UseRedis {
		logger.Info("Using in-memory idempotency store")
		return NewMemoryStore(DefaultSweepInterval), nil
	}

	client, err := NewRedisClient(ctx, cfg.Redis)
	if err == nil {
		logger.Info("Using Redis idempotency store", zap.String("addr", cfg.Redis.Addr()))
		return NewRedisStore(client, ""), nil
	}
	if !allowFallback {
		return nil, err
	}

	logger.Warn("Redis unavailable, falling back to in-memory idempotency store",
		zap.String("addr", cfg.Redis.Addr()),
		zap.Error(err),
	)
	return NewMemoryStore(DefaultSweepInterval), nil
}
