package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)

	rdb, err := Connect(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	return mr, rdb
}

func TestRedisLimiter_Allow(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	ctx := context.Background()
	l := NewRedis(rdb, "join", 3, time.Hour)

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i+1)
	}

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "fourth attempt should be limited")

	// Other keys have their own budget
	ok, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, mr.Exists("join:10.0.0.1"))
	assert.Equal(t, time.Hour, mr.TTL("join:10.0.0.1"))
}

func TestRedisLimiter_windowExpires(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	ctx := context.Background()
	l := NewRedis(rdb, "join", 1, time.Minute)

	ok, err := l.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(ctx, "client")
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(time.Minute + time.Second)

	ok, err = l.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_serverDown(t *testing.T) {
	mr, rdb := setupTestRedis(t)
	l := NewRedis(rdb, "join", 1, time.Minute)
	mr.Close()

	_, err := l.Allow(context.Background(), "client")
	assert.Error(t, err)
}

func TestConnect_badURL(t *testing.T) {
	_, err := Connect(context.Background(), "invalid://url")
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var l Limiter = Noop{}
	for i := 0; i < 100; i++ {
		ok, err := l.Allow(context.Background(), "anyone")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
