package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	s := NewRedisStore[[]string](newTestRedis(t), "test:list", time.Minute)
	s.now = clock.Now

	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, Entry[[]string]{Value: []string{"a", "b"}, CachedAt: clock.Now()}))
	e, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, e.Value)
	assert.True(t, clock.Now().Equal(e.CachedAt))

	clock.Advance(time.Second)
	require.NoError(t, s.Clear(ctx))
	_, ok, _ = s.Load(ctx)
	assert.False(t, ok)
}

func TestRedisStore_ClearRejectsEntriesFetchedBefore(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	s := NewRedisStore[int](newTestRedis(t), "test:key", time.Minute)
	s.now = clock.Now

	started := clock.Now()
	clock.Advance(time.Second)
	require.NoError(t, s.Clear(ctx))
	clock.Advance(time.Second)

	require.NoError(t, s.Save(ctx, Entry[int]{Value: 1, CachedAt: started}))
	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "a fetch that started before the clear is not served")

	require.NoError(t, s.Save(ctx, Entry[int]{Value: 2, CachedAt: clock.Now()}))
	e, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, e.Value)
}

// Two caches over one Redis key stand in for two server processes.
func TestReadThrough_InvalidateAcrossProcesses(t *testing.T) {
	ctx := context.Background()
	client := newTestRedis(t)
	clock := newFakeClock()

	storeA := NewRedisStore[int](client, "shared:key", time.Minute)
	storeA.now = clock.Now
	storeB := NewRedisStore[int](client, "shared:key", time.Minute)
	storeB.now = clock.Now
	procA := NewReadThrough[int](storeA, time.Minute, clock.Now)
	procB := NewReadThrough[int](storeB, time.Minute, clock.Now)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = procB.GetOrFetch(ctx, func(context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
	}()

	<-started
	clock.Advance(time.Second)
	procA.Invalidate(ctx)
	clock.Advance(time.Second)
	close(release)
	<-done

	v, err := procA.GetOrFetch(ctx, func(context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	assert.Equal(t, 2, v, "stale write-back from the other process must not be served")
}
