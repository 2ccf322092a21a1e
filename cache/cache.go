package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"simpleshop/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Clock func() time.Time

// Entry is a cached value together with the time its fetch started.
type Entry[T any] struct {
	Value    T         `json:"value"`
	CachedAt time.Time `json:"cachedAt"`
}

// Store holds at most one entry.
type Store[T any] interface {
	Load(ctx context.Context) (Entry[T], bool, error)
	Save(ctx context.Context, entry Entry[T]) error
	Clear(ctx context.Context) error
}

// ReadThrough serves a single value from its store while it is younger than
// the TTL and refetches it otherwise. Concurrent misses share one fetch.
type ReadThrough[T any] struct {
	store Store[T]
	ttl   time.Duration
	now   Clock
	group singleflight.Group

	mu         sync.Mutex
	generation uint64
}

func NewReadThrough[T any](store Store[T], ttl time.Duration, now Clock) *ReadThrough[T] {
	if now == nil {
		now = time.Now
	}
	return &ReadThrough[T]{store: store, ttl: ttl, now: now}
}

func (c *ReadThrough[T]) TTL() time.Duration {
	return c.ttl
}

func (c *ReadThrough[T]) GetOrFetch(ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := c.lookup(ctx); ok {
		return v, nil
	}

	// Callers arriving after an invalidation must not join a fetch that
	// started before it, so the flight key carries the generation.
	gen := c.currentGeneration()
	key := strconv.FormatUint(gen, 10)

	res, err, _ := c.group.Do(key, func() (interface{}, error) {
		if v, ok := c.lookup(ctx); ok {
			return v, nil
		}

		started := c.now()
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.save(ctx, gen, Entry[T]{Value: v, CachedAt: started})
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// Invalidate drops the cached entry. A fetch already in flight when
// Invalidate runs does not store its result.
func (c *ReadThrough[T]) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	if err := c.store.Clear(ctx); err != nil {
		logger.FromCtx(ctx).Warn("cache clear failed", zap.Error(err))
	}
}

func (c *ReadThrough[T]) lookup(ctx context.Context) (T, bool) {
	var zero T

	entry, ok, err := c.store.Load(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("cache load failed, reading from store", zap.Error(err))
		return zero, false
	}
	if !ok || c.now().Sub(entry.CachedAt) >= c.ttl {
		return zero, false
	}
	return entry.Value, true
}

func (c *ReadThrough[T]) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *ReadThrough[T]) save(ctx context.Context, gen uint64, entry Entry[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}
	if err := c.store.Save(ctx, entry); err != nil {
		logger.FromCtx(ctx).Warn("cache save failed", zap.Error(err))
	}
}

// MemoryStore is a process-local slot.
type MemoryStore[T any] struct {
	mu    sync.RWMutex
	entry *Entry[T]
}

func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{}
}

func (s *MemoryStore[T]) Load(_ context.Context) (Entry[T], bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.entry == nil {
		return Entry[T]{}, false, nil
	}
	return *s.entry, true, nil
}

func (s *MemoryStore[T]) Save(_ context.Context, entry Entry[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entry = &entry
	return nil
}

func (s *MemoryStore[T]) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entry = nil
	return nil
}
