package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("REDIS_PASSWORD", "pw")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "15m")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, Config{Host: "cache", Port: "6379", Password: "pw", DB: 2, TTL: 15 * time.Minute}, cfg)
	assert.Equal(t, "cache:6379", cfg.Addr())
}

func TestLoadConfigFromEnv_InvalidNumbersIgnored(t *testing.T) {
	t.Setenv("REDIS_DB", "x")
	t.Setenv("CACHE_TTL", "soon")

	cfg := LoadConfigFromEnv()
	assert.Zero(t, cfg.DB)
	assert.Zero(t, cfg.TTL)
}

func TestNewRedisClient_DisabledWithoutHost(t *testing.T) {
	t.Parallel()

	rdb, err := NewRedisClient(context.Background(), Config{})
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestNewRedisClient_Miniredis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb, err := NewRedisClient(context.Background(), Config{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)
	require.NotNil(t, rdb)
	t.Cleanup(func() { _ = rdb.Close() })

	assert.NoError(t, NewPinger(rdb).Ping(context.Background()))

	mr.Close()
	assert.Error(t, NewPinger(rdb).Ping(context.Background()))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	rdb, err := NewRedisClient(context.Background(), Config{Host: host, Port: port})
	assert.Error(t, err)
	assert.Nil(t, rdb)
}
