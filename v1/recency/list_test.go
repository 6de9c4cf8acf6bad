package recency

import (
	"reflect"
	"testing"
)

func appendAll(l *List[int, string], keys ...int) []Handle {
	hs := make([]Handle, 0, len(keys))
	for _, k := range keys {
		h := l.Alloc(k, "v")
		l.Append(h)
		hs = append(hs, h)
	}
	return hs
}

func TestListAppendOrder(t *testing.T) {
	l := New[int, string](3)
	appendAll(l, 1, 2, 3)
	if got := l.Keys(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("unexpected order %v", got)
	}
	if l.Len() != 3 {
		t.Fatalf("expected len 3, got %d", l.Len())
	}
}

func TestListUnlinkAndReappend(t *testing.T) {
	l := New[int, string](3)
	hs := appendAll(l, 1, 2, 3)

	l.Unlink(hs[0])
	if got := l.Keys(); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Fatalf("unexpected order after unlink %v", got)
	}
	// Unlinking twice is a no-op.
	l.Unlink(hs[0])
	if l.Len() != 2 {
		t.Fatalf("expected len 2, got %d", l.Len())
	}

	l.Append(hs[0])
	if got := l.Keys(); !reflect.DeepEqual(got, []int{2, 3, 1}) {
		t.Fatalf("unexpected order after append %v", got)
	}
	// Appending a linked entry is a no-op.
	l.Append(hs[0])
	if l.Len() != 3 {
		t.Fatalf("expected len 3, got %d", l.Len())
	}
}

func TestListSentinelsAreNotEntries(t *testing.T) {
	l := New[int, string](1)
	appendAll(l, 1)
	l.Unlink(head)
	l.Unlink(tail)
	l.Append(head)
	l.Free(tail)
	l.Unlink(None)
	if got := l.Keys(); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("sentinel operations changed the list: %v", got)
	}
}

func TestListEvictHead(t *testing.T) {
	l := New[int, string](2)
	if _, ok := l.EvictHead(); ok {
		t.Fatal("expected no entry from an empty list")
	}
	appendAll(l, 1, 2)

	e, ok := l.EvictHead()
	if !ok || e.Key != 1 || e.Value != "v" {
		t.Fatalf("expected key 1, got %+v ok=%v", e, ok)
	}
	e, ok = l.EvictHead()
	if !ok || e.Key != 2 {
		t.Fatalf("expected key 2, got %+v ok=%v", e, ok)
	}
	if _, ok := l.EvictHead(); ok {
		t.Fatal("expected list to be empty")
	}
	if l.Len() != 0 {
		t.Fatalf("expected len 0, got %d", l.Len())
	}
}

func TestListReusesFreedSlots(t *testing.T) {
	l := New[int, string](2)
	hs := appendAll(l, 1, 2)
	l.Free(hs[0])

	h := l.Alloc(3, "w")
	if h != hs[0] {
		t.Fatalf("expected freed slot %d to be reused, got %d", hs[0], h)
	}
	if l.Key(h) != 3 || l.Value(h) != "w" {
		t.Fatalf("reused slot holds stale data: %d=%s", l.Key(h), l.Value(h))
	}
	if len(l.nodes) != 4 {
		t.Fatalf("arena grew unexpectedly to %d slots", len(l.nodes))
	}
}

func TestListSetValueKeepsPosition(t *testing.T) {
	l := New[int, string](2)
	hs := appendAll(l, 1, 2)
	l.SetValue(hs[0], "updated")
	if got := l.Keys(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("SetValue moved the entry: %v", got)
	}
	if l.Value(hs[0]) != "updated" {
		t.Fatalf("expected updated value, got %s", l.Value(hs[0]))
	}
}

func TestListEachStopsEarly(t *testing.T) {
	l := New[int, string](3)
	appendAll(l, 1, 2, 3)
	var seen []int
	l.Each(func(k int, _ string) bool {
		seen = append(seen, k)
		return k != 2
	})
	if !reflect.DeepEqual(seen, []int{1, 2}) {
		t.Fatalf("unexpected walk %v", seen)
	}
}
