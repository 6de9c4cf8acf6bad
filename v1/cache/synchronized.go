package cache

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Synchronized guards a Cache with a single mutex so it can be shared
// between goroutines. The index and recency list are always updated together,
// so one lock around the whole cache is enough.
type Synchronized[K comparable, V any] struct {
	mu    sync.Mutex
	cache *Cache[K, V]
	group singleflight.Group

	// flights names the singleflight call of each key being loaded. Names
	// come from a counter so keys only share a call when they are ==.
	flights map[K]*flight
	seq     uint64
}

type flight struct {
	name    string
	callers int
}

// NewSynchronized wraps c. c must not be used directly afterwards.
func NewSynchronized[K comparable, V any](c *Cache[K, V]) *Synchronized[K, V] {
	return &Synchronized[K, V]{cache: c, flights: make(map[K]*flight)}
}

// Get implements Cache.Get under the lock.
func (s *Synchronized[K, V]) Get(ctx context.Context, key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(ctx, key)
}

// Put implements Cache.Put under the lock.
func (s *Synchronized[K, V]) Put(ctx context.Context, key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Put(ctx, key, value)
}

// Stats returns the wrapped cache statistics.
func (s *Synchronized[K, V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Stats()
}

// GetOrLoad returns the cached value for key, calling load on a miss and
// storing its result. Concurrent misses for the same key share one load.
// A failed load stores nothing and its error is returned as is.
//
// The lock is not held while load runs.
func (s *Synchronized[K, V]) GetOrLoad(ctx context.Context, key K, load func(context.Context, K) (V, error)) (V, error) {
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}
	name := s.joinFlight(key)
	defer s.leaveFlight(key)
	res, err, _ := s.group.Do(name, func() (interface{}, error) {
		v, err := load(ctx, key)
		if err != nil {
			return nil, err
		}
		s.Put(ctx, key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	v, _ := res.(V)
	return v, nil
}

func (s *Synchronized[K, V]) joinFlight(key K) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flights[key]
	if !ok {
		s.seq++
		f = &flight{name: strconv.FormatUint(s.seq, 10)}
		s.flights[key] = f
	}
	f.callers++
	return f.name
}

func (s *Synchronized[K, V]) leaveFlight(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.flights[key]; ok {
		if f.callers--; f.callers == 0 {
			delete(s.flights, key)
		}
	}
}
