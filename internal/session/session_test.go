package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionDirtyTracking(t *testing.T) {
	s := New("abc", map[string]string{"CART-ID": "1"})
	assert.False(t, s.Dirty())

	s.Set("CART-ID", "1")
	assert.False(t, s.Dirty())

	s.Set("CART-ID", "2")
	assert.True(t, s.Dirty())
	v, ok := s.Get("CART-ID")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	values, err := store.Load(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, values)

	in := map[string]string{"CART-ID": "7"}
	require.NoError(t, store.Save(ctx, "visitor", in))
	in["CART-ID"] = "mutated"

	values, err = store.Load(ctx, "visitor")
	require.NoError(t, err)
	assert.Equal(t, "7", values["CART-ID"])

	require.NoError(t, store.Save(ctx, "visitor", nil))
	values, err = store.Load(ctx, "visitor")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	store := NewRedisStore(client, "stockroom-test:", time.Minute)
	require.NoError(t, store.Save(ctx, "visitor", map[string]string{"CART-ID": "3"}))
	t.Cleanup(func() { client.Del(ctx, "stockroom-test:session:visitor") })

	values, err := store.Load(ctx, "visitor")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"CART-ID": "3"}, values)

	ttl, err := client.TTL(ctx, "stockroom-test:session:visitor").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
