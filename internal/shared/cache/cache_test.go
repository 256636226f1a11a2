package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfantasy/toolcat/internal/config"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(2, time.Minute)

	_, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "a", []byte("1")))
	require.NoError(t, c.Set(ctx, "b", []byte("2")))
	require.NoError(t, c.Set(ctx, "c", []byte("3")))

	_, ok, _ = c.Get(ctx, "a")
	assert.False(t, ok, "oldest entry is evicted")

	v, ok, _ := c.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, []byte("3"), v)

	require.NoError(t, c.Purge(ctx))
	_, ok, _ = c.Get(ctx, "c")
	assert.False(t, ok)
}

func TestNewSelectsDriver(t *testing.T) {
	c, err := New(config.CacheConfig{Driver: "memory", Size: 4, TTL: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	c, err = New(config.CacheConfig{Driver: "none"})
	require.NoError(t, err)
	assert.IsType(t, Nop{}, c)

	c, err = New(config.CacheConfig{Driver: "redis", RedisHost: "127.0.0.1", RedisPort: 6379})
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, c)

	_, err = New(config.CacheConfig{Driver: "memcached"})
	assert.Error(t, err)
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("No test redis configured - set TEST_REDIS_ADDR")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	c := NewRedis(rdb, "toolcat-test:", time.Minute)
	require.NoError(t, c.Purge(ctx))

	require.NoError(t, c.Set(ctx, "groups", []byte(`["Фреза"]`)))
	v, ok, err := c.Get(ctx, "groups")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["Фреза"]`, string(v))

	require.NoError(t, c.Purge(ctx))
	_, ok, err = c.Get(ctx, "groups")
	require.NoError(t, err)
	assert.False(t, ok)
}
