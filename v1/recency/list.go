// Package recency implements the recency-ordered list used by the LRU engine.
//
// Entries live in an arena and are addressed by Handle. Links between entries
// are handles too, so an index can hold a handle without owning the entry.
// The list is bounded by a head and a tail sentinel: the entry right after
// head is the least recently used, the one right before tail the most recently
// used.
package recency

// Handle addresses an entry slot in a List.
type Handle int32

// None is the handle of no entry.
const None Handle = -1

const (
	head Handle = 0
	tail Handle = 1
)

// Entry is a key/value pair removed from the list.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

type node[K any, V any] struct {
	key   K
	value V
	prev  Handle
	next  Handle
}

// List is a doubly linked list of entries ordered from least to most
// recently used. The zero value is not valid, use New.
//
// List is not safe for concurrent use.
type List[K any, V any] struct {
	nodes []node[K, V]
	free  []Handle
	len   int
}

// New returns an empty list with room for capacity entries before the arena
// has to grow.
func New[K any, V any](capacity int) *List[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	l := &List[K, V]{nodes: make([]node[K, V], 2, capacity+2)}
	l.nodes[head] = node[K, V]{prev: None, next: tail}
	l.nodes[tail] = node[K, V]{prev: head, next: None}
	return l
}

// Alloc stores a new unlinked entry and returns its handle.
func (l *List[K, V]) Alloc(key K, value V) Handle {
	n := node[K, V]{key: key, value: value, prev: None, next: None}
	if last := len(l.free) - 1; last >= 0 {
		h := l.free[last]
		l.free = l.free[:last]
		l.nodes[h] = n
		return h
	}
	l.nodes = append(l.nodes, n)
	return Handle(len(l.nodes) - 1)
}

// Append links h right before the tail sentinel, marking it most recently
// used. Sentinels and entries that are already linked are left untouched.
func (l *List[K, V]) Append(h Handle) {
	if !l.isEntry(h) || l.linked(h) {
		return
	}
	prev := l.nodes[tail].prev
	l.nodes[h].prev = prev
	l.nodes[h].next = tail
	l.nodes[prev].next = h
	l.nodes[tail].prev = h
	l.len++
}

// Unlink removes h from its position and splices its neighbours together.
// The entry keeps its slot and can be appended again.
func (l *List[K, V]) Unlink(h Handle) {
	if !l.isEntry(h) || !l.linked(h) {
		return
	}
	n := &l.nodes[h]
	l.nodes[n.prev].next = n.next
	l.nodes[n.next].prev = n.prev
	n.prev, n.next = None, None
	l.len--
}

// EvictHead removes and destroys the least recently used entry. It returns
// false when the list is empty.
func (l *List[K, V]) EvictHead() (Entry[K, V], bool) {
	h := l.nodes[head].next
	if h == tail {
		return Entry[K, V]{}, false
	}
	e := Entry[K, V]{Key: l.nodes[h].key, Value: l.nodes[h].value}
	l.Free(h)
	return e, true
}

// Free unlinks h if needed and returns its slot to the arena. The handle
// must not be used afterwards.
func (l *List[K, V]) Free(h Handle) {
	if !l.isEntry(h) {
		return
	}
	l.Unlink(h)
	l.nodes[h] = node[K, V]{prev: None, next: None}
	l.free = append(l.free, h)
}

// Key returns the key stored at h.
func (l *List[K, V]) Key(h Handle) K { return l.nodes[h].key }

// Value returns the value stored at h.
func (l *List[K, V]) Value(h Handle) V { return l.nodes[h].value }

// SetValue overwrites the value stored at h without changing its position.
func (l *List[K, V]) SetValue(h Handle, v V) { l.nodes[h].value = v }

// Len returns the number of linked entries.
func (l *List[K, V]) Len() int { return l.len }

// Each calls fn for every linked entry from least to most recently used
// until fn returns false.
func (l *List[K, V]) Each(fn func(key K, value V) bool) {
	for h := l.nodes[head].next; h != tail; h = l.nodes[h].next {
		if !fn(l.nodes[h].key, l.nodes[h].value) {
			return
		}
	}
}

// Keys returns the linked keys from least to most recently used.
func (l *List[K, V]) Keys() []K {
	out := make([]K, 0, l.len)
	l.Each(func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}

func (l *List[K, V]) isEntry(h Handle) bool {
	return h > tail && int(h) < len(l.nodes)
}

func (l *List[K, V]) linked(h Handle) bool {
	return l.nodes[h].prev != None
}
