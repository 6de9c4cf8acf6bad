package engine

import (
	"fmt"

	"github.com/mirkobrombin/go-recency/v1/capacity"
	recerrors "github.com/mirkobrombin/go-recency/v1/errors"
	"github.com/mirkobrombin/go-recency/v1/index"
	"github.com/mirkobrombin/go-recency/v1/recency"
)

// LRU is a fixed-capacity engine evicting the least recently used entry.
//
// Every key in the index has exactly one linked entry in the list and the
// other way round. Get and Put are O(1).
type LRU[K comparable, V any] struct {
	index   *index.Index[K]
	list    *recency.List[K, V]
	slots   *capacity.Tracker
	onEvict []func(K, V)
}

// NewLRU returns an empty LRU engine holding at most size entries.
func NewLRU[K comparable, V any](size int, opts ...Option[K, V]) (*LRU[K, V], error) {
	if size < 1 {
		return nil, fmt.Errorf("lru capacity %d: %w", size, recerrors.ErrInvalidCapacity)
	}
	cfg := newConfig(opts)
	return &LRU[K, V]{
		index:   index.New[K](size),
		list:    recency.New[K, V](size),
		slots:   capacity.New(size),
		onEvict: cfg.onEvict,
	}, nil
}

// Get implements Engine.Get. A hit moves the entry to the most recently used
// position.
func (e *LRU[K, V]) Get(key K) (V, bool) {
	h, ok := e.index.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	e.touch(key, h)
	return e.list.Value(h), true
}

// Put implements Engine.Put. Updating an existing key refreshes its recency
// and never consumes a slot.
func (e *LRU[K, V]) Put(key K, value V) {
	if h, ok := e.index.Get(key); ok {
		e.list.SetValue(h, value)
		e.touch(key, h)
		return
	}

	if e.slots.IsFull() {
		if victim, ok := e.list.EvictHead(); ok {
			e.index.Delete(victim.Key)
			e.notify(victim.Key, victim.Value)
		}
	} else {
		e.slots.Decrease()
	}

	h := e.list.Alloc(key, value)
	e.list.Append(h)
	e.index.Set(key, h)
}

// Peek returns the value for key without changing its recency.
func (e *LRU[K, V]) Peek(key K) (V, bool) {
	h, ok := e.index.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return e.list.Value(h), true
}

// Remove deletes key and frees its slot. It reports whether the key was
// present. Removed entries are not reported to eviction callbacks.
func (e *LRU[K, V]) Remove(key K) bool {
	h, ok := e.index.Get(key)
	if !ok {
		return false
	}
	e.list.Free(h)
	e.index.Delete(key)
	e.slots.Increase()
	return true
}

// OnEvict implements EvictionSource.
func (e *LRU[K, V]) OnEvict(fn func(key K, value V)) {
	if fn != nil {
		e.onEvict = append(e.onEvict, fn)
	}
}

// Len returns the number of live entries.
func (e *LRU[K, V]) Len() int { return e.list.Len() }

// Remaining returns the number of free slots.
func (e *LRU[K, V]) Remaining() int { return e.slots.Remaining() }

// Capacity returns the maximum number of entries.
func (e *LRU[K, V]) Capacity() int { return e.slots.Capacity() }

// Keys returns the live keys from least to most recently used.
func (e *LRU[K, V]) Keys() []K { return e.list.Keys() }

func (e *LRU[K, V]) touch(key K, h recency.Handle) {
	e.list.Unlink(h)
	e.list.Append(h)
	e.index.Set(key, h)
}

func (e *LRU[K, V]) notify(key K, value V) {
	for _, fn := range e.onEvict {
		fn(key, value)
	}
}

var (
	_ Engine[string, int]         = (*LRU[string, int])(nil)
	_ Sizer                       = (*LRU[string, int])(nil)
	_ EvictionSource[string, int] = (*LRU[string, int])(nil)
)
