package cache

import (
	"errors"
	"testing"

	"github.com/commerce/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCacheFactory_RedisDisabled(t *testing.T) {
	f := NewReportCacheFactory(config.RedisConfig{Enabled: false})

	c, err := f.Create()
	require.NoError(t, err)
	defer c.Close()
	assert.IsType(t, &InMemoryReportCache{}, c)
}

func TestReportCacheFactory_Fallback(t *testing.T) {
	f := NewReportCacheFactory(config.RedisConfig{Enabled: true, Host: "redis", Port: 6379})
	f.connect = func(RedisConfig) (ReportCache, error) {
		return nil, errors.New("dial tcp: connection refused")
	}

	c, err := f.Create()
	require.NoError(t, err)
	defer c.Close()
	assert.IsType(t, &InMemoryReportCache{}, c)
}

func TestReportCacheFactory_NoFallback(t *testing.T) {
	f := NewReportCacheFactory(config.RedisConfig{Enabled: true, Host: "redis", Port: 6379}, WithInMemoryFallback(false))
	f.connect = func(RedisConfig) (ReportCache, error) {
		return nil, errors.New("dial tcp: connection refused")
	}

	_, err := f.Create()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestReportCacheFactory_UsesRedis(t *testing.T) {
	redisCache := NewInMemoryReportCache(0)
	var got RedisConfig
	f := NewReportCacheFactory(config.RedisConfig{Enabled: true, Host: "cache", Port: 6380, DB: 2})
	f.connect = func(rc RedisConfig) (ReportCache, error) {
		got = rc
		return redisCache, nil
	}

	c, err := f.Create()
	require.NoError(t, err)
	assert.Same(t, redisCache, c)
	assert.Equal(t, RedisConfig{Host: "cache", Port: 6380, DB: 2}, got)
}
