package capacity

import "testing"

func TestTrackerFillAndRelease(t *testing.T) {
	tr := New(2)
	if tr.IsFull() {
		t.Fatal("new tracker should not be full")
	}
	tr.Decrease()
	if tr.Remaining() != 1 || tr.IsFull() {
		t.Fatalf("expected 1 remaining, got %d", tr.Remaining())
	}
	tr.Decrease()
	if !tr.IsFull() {
		t.Fatal("expected tracker to be full")
	}

	// Decrease at zero is a no-op.
	tr.Decrease()
	if tr.Remaining() != 0 {
		t.Fatalf("remaining went below zero: %d", tr.Remaining())
	}

	tr.Increase()
	tr.Increase()
	tr.Increase()
	if tr.Remaining() != tr.Capacity() {
		t.Fatalf("expected remaining capped at %d, got %d", tr.Capacity(), tr.Remaining())
	}
}

func TestTrackerZeroCapacity(t *testing.T) {
	for _, c := range []int{0, -3} {
		tr := New(c)
		if !tr.IsFull() {
			t.Fatalf("capacity %d: expected full tracker", c)
		}
		if tr.Capacity() != 0 {
			t.Fatalf("capacity %d: expected clamped capacity 0, got %d", c, tr.Capacity())
		}
	}
}
