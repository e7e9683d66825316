// Package querycache is an in-process TTL cache for catalog fetch results.
// Entries are served while fresh, refetched once stale and dropped after the
// gc window, so quick back-and-forth navigation reuses data without a network
// round trip. Invalidation is generation-based: a fetch superseded by an
// invalidation never populates the cache.
package querycache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrSuperseded is returned when the entry was invalidated while its fetch
// was in flight; the result is discarded instead of being stored.
var ErrSuperseded = errors.New("querycache: fetch superseded by invalidation")

const (
	// DefaultStaleTime keeps data fresh during a typical browsing session.
	DefaultStaleTime = 5 * time.Minute
	// DefaultGCTime retains stale data for quick back-and-forth navigation.
	DefaultGCTime = 30 * time.Minute
)

type entry[T any] struct {
	value     T
	fetchedAt time.Time
}

type call[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Cache caches values of one type keyed by query key. Concurrent fetches of
// the same key share a single upstream call.
type Cache[T any] struct {
	mu        sync.Mutex
	staleTime time.Duration
	gcTime    time.Duration
	entries   map[string]*entry[T]
	gens      map[string]uint64
	inflight  map[string]*call[T]
	now       func() time.Time
}

// New builds a cache; non-positive durations use the defaults.
func New[T any](staleTime, gcTime time.Duration) *Cache[T] {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	if gcTime <= 0 {
		gcTime = DefaultGCTime
	}
	return &Cache[T]{
		staleTime: staleTime,
		gcTime:    gcTime,
		entries:   make(map[string]*entry[T]),
		gens:      make(map[string]uint64),
		inflight:  make(map[string]*call[T]),
		now:       time.Now,
	}
}

// Fetch returns the cached value for key while fresh; otherwise it invokes
// fn and caches the result. When a refetch fails and a stale entry is still
// within the gc window, the stale value is served instead of the error.
func (c *Cache[T]) Fetch(ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	c.gcLocked()

	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < c.staleTime {
		value := e.value
		c.mu.Unlock()
		return value, nil
	}

	if inflight, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		var zero T
		select {
		case <-inflight.done:
			return inflight.value, inflight.err
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	cl := &call[T]{done: make(chan struct{})}
	c.inflight[key] = cl
	gen := c.gens[key]
	c.mu.Unlock()

	value, err := fn(ctx)

	c.mu.Lock()
	delete(c.inflight, key)
	stale, hasStale := c.entries[key]

	switch {
	case err != nil && hasStale:
		log.Warn().Err(err).Str("key", key).Msg("refetch failed, serving stale cache entry")
		cl.value, cl.err = stale.value, nil
	case err != nil:
		cl.err = err
	case c.gens[key] != gen:
		cl.err = ErrSuperseded
	default:
		c.entries[key] = &entry[T]{value: value, fetchedAt: c.now()}
		cl.value = value
	}
	c.mu.Unlock()

	close(cl.done)
	return cl.value, cl.err
}

// Invalidate drops the entry for key and marks any in-flight fetch of it as
// superseded.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.gens[key]++
}

// Len reports how many entries are currently cached.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[T]) gcLocked() {
	cutoff := c.now().Add(-c.gcTime)
	for key, e := range c.entries {
		if e.fetchedAt.Before(cutoff) {
			delete(c.entries, key)
		}
	}
}
