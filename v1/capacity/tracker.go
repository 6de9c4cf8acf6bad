// Package capacity counts the free slots of a bounded cache.
package capacity

// Tracker counts remaining free slots out of a fixed capacity.
type Tracker struct {
	capacity  int
	remaining int
}

// New returns a Tracker with every slot free.
func New(capacity int) *Tracker {
	if capacity < 0 {
		capacity = 0
	}
	return &Tracker{capacity: capacity, remaining: capacity}
}

// IsFull reports whether no free slot remains.
func (t *Tracker) IsFull() bool {
	return t.remaining == 0
}

// Decrease consumes one free slot. It does nothing when the tracker is full.
func (t *Tracker) Decrease() {
	if t.remaining > 0 {
		t.remaining--
	}
}

// Increase releases one slot. It does nothing when every slot is already free.
func (t *Tracker) Increase() {
	if t.remaining < t.capacity {
		t.remaining++
	}
}

// Remaining returns the number of free slots.
func (t *Tracker) Remaining() int { return t.remaining }

// Capacity returns the total number of slots.
func (t *Tracker) Capacity() int { return t.capacity }
