// Package engine contains the eviction engines a cache can be built on.
//
// LRU is the exact least-recently-used engine built from a capacity.Tracker,
// a recency.List and an index.Index. LFU is an approximate
// least-frequently-used engine backed by ristretto. Neither is safe for
// concurrent use on its own; the LFU engine only tolerates its eviction
// callbacks arriving from ristretto's goroutine.
package engine

// Engine is the contract a cache facade delegates to.
type Engine[K comparable, V any] interface {
	// Get returns the value for key and marks it as used. The boolean is
	// false when the key is absent.
	Get(key K) (V, bool)
	// Put inserts or updates key, evicting an entry when the engine is full.
	Put(key K, value V)
}

// Sizer is implemented by engines able to report their live entry count.
type Sizer interface {
	Len() int
}

// EvictionSource is implemented by engines that report evicted entries.
type EvictionSource[K comparable, V any] interface {
	OnEvict(fn func(key K, value V))
}

// Option configures an engine.
type Option[K comparable, V any] func(*config[K, V])

type config[K comparable, V any] struct {
	onEvict []func(K, V)
}

// WithEvictCallback registers fn to be called for every evicted entry.
func WithEvictCallback[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(c *config[K, V]) {
		if fn != nil {
			c.onEvict = append(c.onEvict, fn)
		}
	}
}

func newConfig[K comparable, V any](opts []Option[K, V]) config[K, V] {
	var cfg config[K, V]
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
