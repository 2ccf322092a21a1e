package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the entry under one key so several server processes
// share it. The key expires with the TTL; CachedAt is still checked on read.
//
// Clear also records when it ran under key+":cleared". An entry whose fetch
// started at or before the last clear is treated as a miss, so a process
// that was mid-fetch during another process's invalidation cannot bring the
// old list back. Server clocks are assumed to agree to the millisecond range.
type RedisStore[T any] struct {
	client     *redis.Client
	key        string
	clearedKey string
	ttl        time.Duration
	now        Clock
}

func NewRedisStore[T any](client *redis.Client, key string, ttl time.Duration) *RedisStore[T] {
	return &RedisStore[T]{
		client:     client,
		key:        key,
		clearedKey: key + ":cleared",
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *RedisStore[T]) Load(ctx context.Context) (Entry[T], bool, error) {
	vals, err := s.client.MGet(ctx, s.key, s.clearedKey).Result()
	if err != nil {
		return Entry[T]{}, false, fmt.Errorf("redis mget %s: %w", s.key, err)
	}

	data, ok := vals[0].(string)
	if !ok {
		return Entry[T]{}, false, nil
	}

	var entry Entry[T]
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return Entry[T]{}, false, fmt.Errorf("decode cached %s: %w", s.key, err)
	}

	if raw, ok := vals[1].(string); ok {
		cleared, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Entry[T]{}, false, fmt.Errorf("decode %s: %w", s.clearedKey, err)
		}
		if entry.CachedAt.UnixMilli() <= cleared {
			return Entry[T]{}, false, nil
		}
	}
	return entry, true, nil
}

func (s *RedisStore[T]) Save(ctx context.Context, entry Entry[T]) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", s.key, err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Clear drops the entry and stamps the clear time. The stamp only has to
// outlive entries that could still be fresh, so it expires with the TTL.
func (s *RedisStore[T]) Clear(ctx context.Context) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		pipe.Set(ctx, s.clearedKey, s.now().UnixMilli(), s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis clear %s: %w", s.key, err)
	}
	return nil
}

// ConnectRedis accepts either a redis:// URL or a bare host:port. An
// explicit password or db overrides what the URL carries.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}
	opts.PoolSize = 20
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}
