package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type counter struct {
	calls atomic.Int32
	value atomic.Int32
}

func (c *counter) fetch(context.Context) (int, error) {
	c.calls.Add(1)
	return int(c.value.Load()), nil
}

func TestReadThrough_ServesWithinTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewReadThrough[int](NewMemoryStore[int](), time.Minute, clock.Now)
	src := &counter{}
	src.value.Store(1)
	ctx := context.Background()

	v, err := c.GetOrFetch(ctx, src.fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	src.value.Store(2)
	clock.Advance(59 * time.Second)

	v, err = c.GetOrFetch(ctx, src.fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "stale value is served inside the TTL window")
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestReadThrough_RefetchesAfterTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewReadThrough[int](NewMemoryStore[int](), time.Minute, clock.Now)
	src := &counter{}
	ctx := context.Background()

	_, _ = c.GetOrFetch(ctx, src.fetch)
	src.value.Store(7)
	clock.Advance(time.Minute)

	v, err := c.GetOrFetch(ctx, src.fetch)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestReadThrough_Invalidate(t *testing.T) {
	clock := newFakeClock()
	c := NewReadThrough[int](NewMemoryStore[int](), time.Minute, clock.Now)
	src := &counter{}
	ctx := context.Background()

	_, _ = c.GetOrFetch(ctx, src.fetch)
	src.value.Store(3)
	c.Invalidate(ctx)

	v, err := c.GetOrFetch(ctx, src.fetch)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestReadThrough_ErrorsAreNotCached(t *testing.T) {
	c := NewReadThrough[int](NewMemoryStore[int](), time.Minute, newFakeClock().Now)
	ctx := context.Background()
	boom := errors.New("store down")

	_, err := c.GetOrFetch(ctx, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	v, err := c.GetOrFetch(ctx, func(context.Context) (int, error) { return 5, nil })
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestReadThrough_ConcurrentMissesShareOneFetch(t *testing.T) {
	c := NewReadThrough[int](NewMemoryStore[int](), time.Minute, newFakeClock().Now)
	release := make(chan struct{})
	var calls atomic.Int32

	fetch := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrFetch(context.Background(), fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestReadThrough_InvalidateDuringFetchDropsResult(t *testing.T) {
	c := NewReadThrough[int](NewMemoryStore[int](), time.Minute, newFakeClock().Now)
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan int)
	go func() {
		v, _ := c.GetOrFetch(ctx, func(context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
		done <- v
	}()

	<-started
	c.Invalidate(ctx)
	close(release)
	assert.Equal(t, 1, <-done)

	v, err := c.GetOrFetch(ctx, func(context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	assert.Equal(t, 2, v, "result of a pre-invalidation fetch must not be cached")
}

func TestReadThrough_UnreachableRedisFallsBackToFetch(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewReadThrough[int](NewRedisStore[int](client, "test:key", time.Minute), time.Minute, nil)
	src := &counter{}
	src.value.Store(9)

	v, err := c.GetOrFetch(context.Background(), src.fetch)
	require.NoError(t, err)
	assert.Equal(t, 9, v)

	assert.NotPanics(t, func() { c.Invalidate(context.Background()) })
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore[string]()
	ctx := context.Background()

	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Now()
	require.NoError(t, s.Save(ctx, Entry[string]{Value: "x", CachedAt: at}))
	e, ok, _ := s.Load(ctx)
	assert.True(t, ok)
	assert.Equal(t, "x", e.Value)

	require.NoError(t, s.Clear(ctx))
	_, ok, _ = s.Load(ctx)
	assert.False(t, ok)
}
