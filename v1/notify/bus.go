// Package notify streams eviction events to in-process subscribers.
package notify

import (
	"context"
	"sync"
	"time"
)

// Event describes an entry evicted from a cache.
type Event[K any, V any] struct {
	Key      K
	Value    V
	Strategy string
	At       time.Time
}

// Bus fans eviction events out to subscribers. Delivery never blocks the
// publisher: a subscriber whose buffer is full misses the event.
type Bus[K any, V any] struct {
	mu   sync.Mutex
	subs []chan Event[K, V]
	size int
}

// defaultBuffer is the channel capacity handed to each subscriber.
const defaultBuffer = 16

// NewBus returns an empty Bus.
func NewBus[K any, V any]() *Bus[K, V] {
	return &Bus[K, V]{size: defaultBuffer}
}

// Publish sends ev to every subscriber.
func (b *Bus[K, V]) Publish(ctx context.Context, ev Event[K, V]) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel receiving events until ctx is done or
// Unsubscribe is called, after which the channel is closed.
func (b *Bus[K, V]) Subscribe(ctx context.Context) (chan Event[K, V], error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	ch := make(chan Event[K, V], b.size)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	go func() {
		<-ctx.Done()
		_ = b.Unsubscribe(context.Background(), ch)
	}()
	return ch, nil
}

// Unsubscribe stops delivery to ch and closes it. Unknown channels are
// ignored.
func (b *Bus[K, V]) Unsubscribe(ctx context.Context, ch chan Event[K, V]) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.subs {
		if c == ch {
			b.subs[i] = b.subs[len(b.subs)-1]
			b.subs = b.subs[:len(b.subs)-1]
			close(c)
			break
		}
	}
	return nil
}

// Subscribers returns the number of active subscribers.
func (b *Bus[K, V]) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
