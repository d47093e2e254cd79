package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL applies when Set is called with a zero TTL.
const DefaultTTL = 5 * time.Minute

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Memory is an in-process cache. Expired entries are dropped lazily on
// access and swept when an entry is written.
type Memory[V any] struct {
	mu         sync.Mutex
	items      map[string]entry[V]
	defaultTTL time.Duration
	maxEntries int
	now        func() time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	defaultTTL time.Duration
	maxEntries int
	now        func() time.Time
}

// WithDefaultTTL sets the TTL used when Set gets zero.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		if d > 0 {
			o.defaultTTL = d
		}
	}
}

// WithMaxEntries bounds the cache size. When full, the entry closest to
// expiry is evicted. Zero means unbounded.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxEntries = max(n, 0)
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewMemory creates an empty Memory cache.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := &memoryOptions{defaultTTL: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return &Memory[V]{
		items:      make(map[string]entry[V]),
		defaultTTL: o.defaultTTL,
		maxEntries: o.maxEntries,
		now:        o.now,
	}
}

// Get implements Cache.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[key]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.items, key)
		var zero V
		return zero, ErrNotFound
	}
	return e.value, nil
}

// Set implements Cache. A negative TTL is treated as zero.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store(key, value, m.now(), ttl)
	return nil
}

// update replaces the value under key with fn applied to the live value,
// or to the zero value when the key is missing or expired, in one critical
// section. The TTL restarts.
func (m *Memory[V]) update(key string, ttl time.Duration, fn func(V) V) V {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var current V
	if e, ok := m.items[key]; ok && now.Before(e.expiresAt) {
		current = e.value
	}
	next := fn(current)
	m.store(key, next, now, ttl)
	return next
}

// store must be called with m.mu held.
func (m *Memory[V]) store(key string, value V, now time.Time, ttl time.Duration) {
	if _, exists := m.items[key]; !exists && m.maxEntries > 0 && len(m.items) >= m.maxEntries {
		m.sweep(now)
		if len(m.items) >= m.maxEntries {
			m.evictSoonest()
		}
	}
	m.items[key] = entry[V]{value: value, expiresAt: now.Add(ttl)}
}

// Delete implements Cache.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Memory[V]) sweep(now time.Time) {
	for k, e := range m.items {
		if !now.Before(e.expiresAt) {
			delete(m.items, k)
		}
	}
}

func (m *Memory[V]) evictSoonest() {
	var (
		victim string
		first  = true
		soon   time.Time
	)
	for k, e := range m.items {
		if first || e.expiresAt.Before(soon) {
			victim, soon, first = k, e.expiresAt, false
		}
	}
	if !first {
		delete(m.items, victim)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
