package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestLimiterEnforcesBudget(t *testing.T) {
	limiter := New(NewMemoryStore(), 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.True(t, limiter.Allow(ctx, "apply:203.0.113.7"))
	}
	require.False(t, limiter.Allow(ctx, "apply:203.0.113.7"))
	require.True(t, limiter.Allow(ctx, "apply:198.51.100.4"), "other keys keep their own budget")
}

type failingStore struct{}

func (failingStore) Increment(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("store unavailable")
}

func TestLimiterFailsOpen(t *testing.T) {
	limiter := New(failingStore{}, 1, time.Minute)
	require.True(t, limiter.Allow(context.Background(), "apply:203.0.113.7"))
}

func TestMemoryStoreWindowExpiry(t *testing.T) {
	store := NewMemoryStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	ctx := context.Background()
	for i := int64(1); i <= 3; i++ {
		count, err := store.Increment(ctx, "key", time.Minute)
		require.NoError(t, err)
		require.Equal(t, i, count)
	}

	current = current.Add(2 * time.Minute)
	count, err := store.Increment(ctx, "key", time.Minute)
	require.NoError(t, err)
	require.Equal(t, int64(1), count, "expired window should reset the counter")
}

func TestRedisStoreCountsWithTTL(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	store := NewRedisStore(client, "club")
	ctx := context.Background()

	for i := int64(1); i <= 2; i++ {
		count, err := store.Increment(ctx, "apply:203.0.113.7", time.Minute)
		require.NoError(t, err)
		require.Equal(t, i, count)
	}

	ttl := client.TTL(ctx, "club:apply:203.0.113.7").Val()
	require.Greater(t, ttl, time.Duration(0))

	server.FastForward(2 * time.Minute)
	count, err := store.Increment(ctx, "apply:203.0.113.7", time.Minute)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}
