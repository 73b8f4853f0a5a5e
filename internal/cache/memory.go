package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ololchike/test-app--sub000/internal/tour"
)

type entry[T any] struct {
	value  T
	expiry time.Time
}

// Cache is an in-process TTL map. The clone func, when set, is applied on
// the way in and on the way out.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	clone   func(T) T
	now     func() time.Time
}

func New[T any](clone func(T) T) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		clone:   clone,
		now:     time.Now,
	}
}

func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	if c.now().After(e.expiry) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	return c.cloneValue(e.value), true
}

func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[T]{value: c.cloneValue(value), expiry: c.now().Add(ttl)}
	c.mu.Unlock()
}

func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[T]) cloneValue(value T) T {
	if c.clone == nil {
		return value
	}
	return c.clone(value)
}

// --------------------------------------------------
// Registry store
// --------------------------------------------------

// MemoryStore caches tour registries in process.
type MemoryStore struct {
	c *Cache[*tour.Registry]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: New(func(r *tour.Registry) *tour.Registry { return r.Clone() })}
}

func (s *MemoryStore) Get(ctx context.Context, tourID string) (*tour.Registry, bool) {
	return s.c.Get(tourID)
}

func (s *MemoryStore) Set(ctx context.Context, tourID string, reg *tour.Registry, ttl time.Duration) {
	s.c.Set(tourID, reg, ttl)
}

func (s *MemoryStore) Delete(ctx context.Context, tourID string) {
	s.c.Delete(tourID)
}
