package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter is an expiring integer counter safe for concurrent and
// cross-instance use.
type Counter interface {
	// Incr adds one to key, restarts its TTL and returns the new value.
	// A missing or expired key counts from zero.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Delete(ctx context.Context, key string) error
}

// MemoryCounter is a Counter kept in process.
type MemoryCounter struct {
	m *Memory[int64]
}

// NewMemoryCounter creates a MemoryCounter. It takes the Memory options.
func NewMemoryCounter(opts ...MemoryOption) *MemoryCounter {
	return &MemoryCounter{m: NewMemory[int64](opts...)}
}

// Incr implements Counter.
func (c *MemoryCounter) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	return c.m.update(key, ttl, func(n int64) int64 { return n + 1 }), nil
}

// Delete implements Counter.
func (c *MemoryCounter) Delete(ctx context.Context, key string) error {
	return c.m.Delete(ctx, key)
}

// Len returns the number of stored counters, expired ones included.
func (c *MemoryCounter) Len() int {
	return c.m.Len()
}

// RedisCounter is a Counter shared between instances.
type RedisCounter struct {
	client     redis.UniversalClient
	prefix     string
	defaultTTL time.Duration
}

// NewRedisCounter creates a RedisCounter. It takes the Redis cache options.
func NewRedisCounter(client redis.UniversalClient, opts ...RedisOption) *RedisCounter {
	o := &redisOptions{prefix: "folio:counter", defaultTTL: DefaultTTL}
	for _, opt := range opts {
		opt(o)
	}
	return &RedisCounter{client: client, prefix: o.prefix, defaultTTL: o.defaultTTL}
}

// Incr implements Counter. INCR and EXPIRE run in one MULTI/EXEC.
func (c *RedisCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	k := prefixed(c.prefix, key)

	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Delete implements Counter.
func (c *RedisCounter) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, prefixed(c.prefix, key)).Err()
}

var (
	_ Counter = (*MemoryCounter)(nil)
	_ Counter = (*RedisCounter)(nil)
)
