package cache

import (
	"context"
	"testing"
	"time"

	"pantry-engine/internal/infrastructure/config"
	"pantry-engine/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, maxSize int, ttl time.Duration) *CacheManager {
	t.Helper()
	m := NewManager(&config.CacheConfig{
		Enabled: true,
		Backend: "memory",
		MaxSize: maxSize,
		TTL:     ttl,
	})
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestKey(t *testing.T) {
	a := Key("rank", "v1", []byte(`{"a":1}`))
	b := Key("rank", "v1", []byte(`{"a":1}`))
	c := Key("cost", "v1", []byte(`{"a":1}`))
	d := Key("rank", "v2", []byte(`{"a":1}`))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Contains(t, a, "pantry:rank:v1:")
}

func TestManagerGetSet(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 10, time.Minute)

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	stats := m.Stats()
	assert.EqualValues(t, 1, stats["hits"])
	assert.EqualValues(t, 1, stats["misses"])
}

func TestManagerExpiry(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 10, 10*time.Millisecond)

	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	time.Sleep(25 * time.Millisecond)

	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
}

func TestManagerEvictsLeastUsed(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 2, time.Minute)

	require.NoError(t, m.Set(ctx, "hot", []byte("1")))
	require.NoError(t, m.Set(ctx, "cold", []byte("2")))
	_, err := m.Get(ctx, "hot")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "new", []byte("3")))

	_, err = m.Get(ctx, "cold")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	_, err = m.Get(ctx, "hot")
	assert.NoError(t, err)
	_, err = m.Get(ctx, "new")
	assert.NoError(t, err)
}

func TestManagerOverwriteAtCapacity(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 1, time.Minute)

	require.NoError(t, m.Set(ctx, "k", []byte("a")))
	require.NoError(t, m.Set(ctx, "k", []byte("b")))

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)
}

func TestNewDisabled(t *testing.T) {
	store, err := New(&config.Config{Cache: config.CacheConfig{Enabled: false}})
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestNewRedisUnreachable(t *testing.T) {
	_, err := NewRedis(
		&config.CacheConfig{TTL: time.Minute},
		&config.RedisConfig{Addr: "127.0.0.1:1"},
	)
	assert.Error(t, err)
}
