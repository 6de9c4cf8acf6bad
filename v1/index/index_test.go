package index

import (
	"testing"

	"github.com/mirkobrombin/go-recency/v1/recency"
)

func TestIndexSetGetDelete(t *testing.T) {
	idx := New[string](2)

	if _, ok := idx.Get("missing"); ok {
		t.Fatal("expected miss for a key never inserted")
	}

	idx.Set("a", recency.Handle(2))
	idx.Set("a", recency.Handle(5))
	if h, ok := idx.Get("a"); !ok || h != 5 {
		t.Fatalf("expected overwritten handle 5, got %d ok=%v", h, ok)
	}
	if idx.Len() != 1 {
		t.Fatalf("expected 1 key, got %d", idx.Len())
	}

	idx.Delete("a")
	idx.Delete("a")
	idx.Delete("never")
	if _, ok := idx.Get("a"); ok {
		t.Fatal("expected key to be deleted")
	}
	if idx.Len() != 0 {
		t.Fatalf("expected empty index, got %d", idx.Len())
	}
}
