package concurrency

import "testing"

func TestCASUint32(t *testing.T) {
	var v uint32 = 0
	if !CASUint32(&v, 0, 1) {
		t.Fatal("expected CAS from 0 to 1 to succeed")
	}
	if CASUint32(&v, 0, 2) {
		t.Fatal("expected CAS with stale old value to fail")
	}
	if LoadUint32(&v) != 1 {
		t.Fatalf("got %d, want 1", v)
	}
}

func TestStoreLoadUint32(t *testing.T) {
	var v uint32
	StoreUint32(&v, 42)
	if LoadUint32(&v) != 42 {
		t.Fatalf("got %d, want 42", v)
	}
}
