package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifebook/internal/config"
	"lifebook/internal/gateway/adapters/cache"
	cachePorts "lifebook/internal/gateway/ports/cache"
)

func mockRedisServer(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := &config.RedisConfig{
		Host:            host,
		Port:            port,
		ConnectTimeout:  2 * time.Second,
		ReadTimeout:     1 * time.Second,
		WriteTimeout:    1 * time.Second,
		PoolSize:        5,
		MinIdle:         2,
		IdleTimeout:     30 * time.Second,
		MaxConnLifetime: 5 * time.Minute,
		DefaultTTL:      10 * time.Minute,
	}

	return s, cfg
}

func TestNewRedisCache(t *testing.T) {
	t.Run("successful connection", func(t *testing.T) {
		_, cfg := mockRedisServer(t)

		redisCache, err := cache.NewRedisCache(context.Background(), cfg)

		require.NoError(t, err)
		require.NotNil(t, redisCache)

		_, ok := redisCache.(cachePorts.Cache)
		assert.True(t, ok, "should implement Cache interface")

		assert.NoError(t, redisCache.Close())
	})

	t.Run("connection failure", func(t *testing.T) {
		cfg := &config.RedisConfig{
			Host:           "nonexistent.host",
			Port:           12345,
			ConnectTimeout: 100 * time.Millisecond,
			ReadTimeout:    100 * time.Millisecond,
			WriteTimeout:   100 * time.Millisecond,
		}

		redisCache, err := cache.NewRedisCache(context.Background(), cfg)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to redis")
		assert.Nil(t, redisCache)
	})
}

func TestRedisCacheSetAndGet(t *testing.T) {
	ctx := context.Background()
	s, cfg := mockRedisServer(t)

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, redisCache.Close())
	}()

	t.Run("set applies default ttl", func(t *testing.T) {
		err := redisCache.Set(ctx, "mood-key", "payload", 0)
		require.NoError(t, err)

		value, err := redisCache.Get(ctx, "mood-key")
		require.NoError(t, err)
		assert.Equal(t, "payload", value)

		ttl := s.TTL("mood-key")
		assert.Greater(t, ttl.Seconds(), 0.0)
		assert.LessOrEqual(t, ttl, cfg.DefaultTTL)
	})

	t.Run("set with explicit ttl", func(t *testing.T) {
		err := redisCache.Set(ctx, "short-key", "payload", time.Minute)
		require.NoError(t, err)

		ttl := s.TTL("short-key")
		assert.Greater(t, ttl.Seconds(), 0.0)
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("missing key is not an error", func(t *testing.T) {
		value, err := redisCache.Get(ctx, "missing-key")

		require.NoError(t, err)
		assert.Empty(t, value)
	})
}

func TestRedisCacheDelete(t *testing.T) {
	ctx := context.Background()
	_, cfg := mockRedisServer(t)

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, redisCache.Close())
	}()

	require.NoError(t, redisCache.Set(ctx, "doomed-key", "payload", 0))

	err = redisCache.Delete(ctx, "doomed-key")
	require.NoError(t, err)

	value, err := redisCache.Get(ctx, "doomed-key")
	require.NoError(t, err)
	assert.Empty(t, value)

	// Удаление несуществующего ключа не является ошибкой.
	assert.NoError(t, redisCache.Delete(ctx, "doomed-key"))
}
