// Package index maps cache keys to their entries in a recency.List.
package index

import "github.com/mirkobrombin/go-recency/v1/recency"

// Index is a hash map from key to list handle. It does not own the entries
// it points at: whoever frees a handle must delete its key in the same step.
type Index[K comparable] struct {
	m map[K]recency.Handle
}

// New returns an empty Index sized for capacity keys.
func New[K comparable](capacity int) *Index[K] {
	if capacity < 0 {
		capacity = 0
	}
	return &Index[K]{m: make(map[K]recency.Handle, capacity)}
}

// Get returns the handle for key. The boolean is false for unknown keys.
func (i *Index[K]) Get(key K) (recency.Handle, bool) {
	h, ok := i.m[key]
	return h, ok
}

// Set inserts or overwrites the handle for key.
func (i *Index[K]) Set(key K, h recency.Handle) {
	i.m[key] = h
}

// Delete removes key. Unknown keys are ignored.
func (i *Index[K]) Delete(key K) {
	delete(i.m, key)
}

// Len returns the number of indexed keys.
func (i *Index[K]) Len() int { return len(i.m) }
