package engine

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dgraph-io/ristretto"

	recerrors "github.com/mirkobrombin/go-recency/v1/errors"
)

// LFU is an engine with an approximate least-frequently-used policy.
//
// It is backed by ristretto, which implements TinyLFU admission and sampled
// eviction, so the evicted entry is not deterministic. Writes are waited on
// before returning so that a Put is visible to the next Get.
//
// Every live key is given a numeric id that ristretto hashes natively, so keys
// compare with == exactly as they would in a map: distinct pointers stay
// distinct whatever they point at.
type LFU[K comparable, V any] struct {
	c *ristretto.Cache

	mu      sync.Mutex
	ids     map[K]uint64
	nextID  uint64
	onEvict []func(K, V)
}

type lfuItem[K comparable, V any] struct {
	key   K
	value V
}

// NewLFU returns an empty LFU engine holding at most size entries.
func NewLFU[K comparable, V any](size int, opts ...Option[K, V]) (*LFU[K, V], error) {
	if size < 1 {
		return nil, fmt.Errorf("lfu capacity %d: %w", size, recerrors.ErrInvalidCapacity)
	}
	cfg := newConfig(opts)
	e := &LFU[K, V]{
		ids:     make(map[K]uint64, size),
		onEvict: cfg.onEvict,
	}
	rc, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        int64(size) * 10, // ten counters per entry, as ristretto recommends.
		MaxCost:            int64(size),
		BufferItems:        64,
		IgnoreInternalCost: true,
		OnEvict:            e.evicted,
		OnReject:           e.rejected,
	})
	if err != nil {
		return nil, fmt.Errorf("lfu: %w", err)
	}
	e.c = rc
	return e, nil
}

// Get implements Engine.Get.
func (e *LFU[K, V]) Get(key K) (V, bool) {
	e.mu.Lock()
	id, ok := e.ids[key]
	e.mu.Unlock()
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := e.c.Get(id)
	if !ok {
		var zero V
		return zero, false
	}
	it, ok := v.(lfuItem[K, V])
	if !ok {
		var zero V
		return zero, false
	}
	return it.value, true
}

// Put implements Engine.Put. The write may be rejected by the admission
// policy when the engine is full.
func (e *LFU[K, V]) Put(key K, value V) {
	e.mu.Lock()
	id, known := e.ids[key]
	if !known {
		e.nextID++
		id = e.nextID
		e.ids[key] = id
	}
	e.mu.Unlock()

	// The lock is released before Wait: ristretto runs the eviction and
	// rejection callbacks, which take it, before Wait returns.
	if !e.c.Set(id, lfuItem[K, V]{key: key, value: value}, 1) && !known {
		e.forget(key, id)
	}
	e.c.Wait()
}

// Len returns the number of keys currently held.
func (e *LFU[K, V]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.ids)
}

// OnEvict implements EvictionSource. Callbacks run on ristretto's goroutine.
func (e *LFU[K, V]) OnEvict(fn func(key K, value V)) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.onEvict = append(e.onEvict, fn)
	e.mu.Unlock()
}

// Close releases the goroutines held by ristretto.
func (e *LFU[K, V]) Close() {
	e.c.Close()
}

func (e *LFU[K, V]) evicted(item *ristretto.Item) {
	it, ok := item.Value.(lfuItem[K, V])
	if !ok {
		return
	}
	e.mu.Lock()
	if e.ids[it.key] == item.Key {
		delete(e.ids, it.key)
	}
	fns := slices.Clone(e.onEvict)
	e.mu.Unlock()
	for _, fn := range fns {
		fn(it.key, it.value)
	}
}

func (e *LFU[K, V]) rejected(item *ristretto.Item) {
	if it, ok := item.Value.(lfuItem[K, V]); ok {
		e.forget(it.key, item.Key)
	}
}

// forget drops the id of key unless the key has been given a new one since.
func (e *LFU[K, V]) forget(key K, id uint64) {
	e.mu.Lock()
	if e.ids[key] == id {
		delete(e.ids, key)
	}
	e.mu.Unlock()
}

var (
	_ Engine[string, int]         = (*LFU[string, int])(nil)
	_ Sizer                       = (*LFU[string, int])(nil)
	_ EvictionSource[string, int] = (*LFU[string, int])(nil)
)
