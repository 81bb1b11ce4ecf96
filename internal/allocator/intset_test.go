package allocator

import "testing"

func TestIntSetInsertOrdersAscending(t *testing.T) {
	var s intSet
	for _, v := range []uintptr{8, 2, 5, 1} {
		s.insert(v)
	}
	want := []uintptr{1, 2, 5, 8}
	if len(s.items) != len(want) {
		t.Fatalf("got %v want %v", s.items, want)
	}
	for i, v := range want {
		if s.items[i] != v {
			t.Errorf("index %d: got %d want %d", i, s.items[i], v)
		}
	}
}

func TestIntSetInsertDuplicateIsNoOp(t *testing.T) {
	var s intSet
	s.insert(4)
	s.insert(4)
	if len(s.items) != 1 {
		t.Errorf("expected duplicate insert to be a no-op, got %v", s.items)
	}
}

func TestIntSetRemove(t *testing.T) {
	var s intSet
	s.insert(1)
	s.insert(2)
	s.insert(3)

	if !s.remove(2) {
		t.Fatal("expected remove(2) to report found")
	}
	if s.contains(2) {
		t.Error("2 should no longer be present")
	}
	if !s.contains(1) || !s.contains(3) {
		t.Error("removing 2 should not disturb 1 or 3")
	}
	if s.remove(99) {
		t.Error("removing an absent value should report false")
	}
}

func TestIntSetAnyAndIsEmpty(t *testing.T) {
	var s intSet
	if !s.isEmpty() {
		t.Error("fresh set should be empty")
	}
	if _, ok := s.any(); ok {
		t.Error("any() on empty set should report false")
	}

	s.insert(42)
	if s.isEmpty() {
		t.Error("set should not be empty after insert")
	}
	v, ok := s.any()
	if !ok || v != 42 {
		t.Errorf("any() = %d,%v want 42,true", v, ok)
	}
}
