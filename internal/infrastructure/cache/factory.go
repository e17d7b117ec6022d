package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/commerce/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ReportCache is the cache used for sales reports
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// ReportCacheFactory picks a report cache based on configuration
type ReportCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	connect               func(RedisConfig) (ReportCache, error)
}

// FactoryOption configures the factory
type FactoryOption func(*ReportCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *ReportCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to memory
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *ReportCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewReportCacheFactory creates a new factory
func NewReportCacheFactory(cfg config.RedisConfig, opts ...FactoryOption) *ReportCacheFactory {
	f := &ReportCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		connect: func(rc RedisConfig) (ReportCache, error) {
			return NewRedisReportCache(rc)
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a Redis cache when Redis is enabled and reachable, otherwise an
// in-memory cache if fallback is allowed
func (f *ReportCacheFactory) Create() (ReportCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory report cache")
		return NewInMemoryReportCache(time.Minute), nil
	}

	c, err := f.connect(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("Using Redis report cache", zap.String("addr", f.redisConfig.Addr()))
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for report cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory report cache",
		zap.String("addr", f.redisConfig.Addr()),
		zap.Error(err),
	)
	return NewInMemoryReportCache(time.Minute), nil
}
