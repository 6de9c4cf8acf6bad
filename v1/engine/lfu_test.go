package engine

import (
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	recerrors "github.com/mirkobrombin/go-recency/v1/errors"
)

// newLFU returns an LFU engine closed at the end of the test.
func newLFU[K comparable, V any](t *testing.T, size int, opts ...Option[K, V]) *LFU[K, V] {
	t.Helper()
	e, err := NewLFU[K, V](size, opts...)
	if err != nil {
		t.Fatalf("NewLFU: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestNewLFUInvalidCapacity(t *testing.T) {
	if _, err := NewLFU[string, string](0); !errors.Is(err, recerrors.ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestLFUGetPut(t *testing.T) {
	e := newLFU[string, string](t, 8)

	if _, ok := e.Get("foo"); ok {
		t.Fatal("expected miss on empty engine")
	}
	e.Put("foo", "bar")
	if v, ok := e.Get("foo"); !ok || v != "bar" {
		t.Fatalf("expected bar, got %q ok=%v", v, ok)
	}
	e.Put("foo", "baz")
	if v, ok := e.Get("foo"); !ok || v != "baz" {
		t.Fatalf("expected baz after update, got %q ok=%v", v, ok)
	}
	if n := e.Len(); n != 1 {
		t.Fatalf("expected 1 key, got %d", n)
	}
}

func TestLFUStructKeys(t *testing.T) {
	type point struct{ X, Y int }
	e := newLFU[point, int](t, 4)

	e.Put(point{1, 2}, 12)
	e.Put(point{2, 1}, 21)
	if v, ok := e.Get(point{1, 2}); !ok || v != 12 {
		t.Fatalf("expected 12, got %d ok=%v", v, ok)
	}
	if v, ok := e.Get(point{2, 1}); !ok || v != 21 {
		t.Fatalf("expected 21, got %d ok=%v", v, ok)
	}
}

func TestLFUPointerKeysCompareByIdentity(t *testing.T) {
	type session struct{ ID int }
	e := newLFU[*session, string](t, 4)

	a, b := &session{ID: 1}, &session{ID: 1}
	e.Put(a, "A")
	if v, ok := e.Get(b); ok {
		t.Fatalf("distinct pointer with equal contents must miss, got %q", v)
	}

	a.ID = 2
	if v, ok := e.Get(a); !ok || v != "A" {
		t.Fatalf("mutating the pointee must not lose the entry, got %q ok=%v", v, ok)
	}
}

func TestLFUInterfaceKeysKeepTheirType(t *testing.T) {
	e := newLFU[any, string](t, 4)

	e.Put(int(1), "int")
	e.Put(int64(1), "int64")
	e.Put("1", "string")
	for _, tt := range []struct {
		key  any
		want string
	}{
		{int(1), "int"},
		{int64(1), "int64"},
		{"1", "string"},
	} {
		if v, ok := e.Get(tt.key); !ok || v != tt.want {
			t.Fatalf("key %#v: got %q ok=%v, want %q", tt.key, v, ok, tt.want)
		}
	}
}

func TestLFUEvictCallbackReceivesKeyAndValue(t *testing.T) {
	const (
		size = 2
		keys = 10
	)
	var (
		mu      sync.Mutex
		evicted = map[int]string{}
	)
	e := newLFU(t, size, WithEvictCallback(func(k int, v string) {
		mu.Lock()
		evicted[k] = v
		mu.Unlock()
	}))

	for i := 0; i < keys; i++ {
		e.Put(i, "v"+strconv.Itoa(i))
	}

	// Callbacks run on ristretto's goroutine.
	deadline := time.Now().Add(time.Second)
	for {
		mu.Lock()
		n := len(evicted)
		mu.Unlock()
		if n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(evicted) == 0 {
		t.Fatal("expected evictions after overfilling the engine")
	}
	for k, v := range evicted {
		if k < 0 || k >= keys || v != "v"+strconv.Itoa(k) {
			t.Fatalf("callback got key %d value %q", k, v)
		}
		if _, ok := e.Get(k); ok {
			t.Fatalf("evicted key %d is still readable", k)
		}
	}
	if n := e.Len(); n > size {
		t.Fatalf("engine holds %d keys, capacity is %d", n, size)
	}
}
