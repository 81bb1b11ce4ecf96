//go:build !windows

package runtime

import (
	"testing"

	"github.com/orizon-lang/buddyalloc/internal/allocator"
)

func TestNewAnonymousRegionFeedsHeap(t *testing.T) {
	r, err := NewAnonymousRegion(64 * 1024)
	if err != nil {
		t.Fatalf("NewAnonymousRegion: %v", err)
	}
	defer r.Release()

	if r.Len() < 64*1024 {
		t.Fatalf("region shorter than requested: %d", r.Len())
	}

	h := allocator.NewHeap()
	h.AddToHeap(r.Start, r.End)

	p, err := h.Alloc(allocator.Layout{Size: 4096, Align: 4096})
	if err != nil {
		t.Fatalf("alloc from mapped region: %v", err)
	}
	if p < r.Start || p >= r.End {
		t.Fatalf("allocated pointer %x outside region [%x,%x)", p, r.Start, r.End)
	}
	h.Dealloc(p, allocator.Layout{Size: 4096, Align: 4096})
}

func TestNewAnonymousRegionRejectsNonPositiveSize(t *testing.T) {
	if _, err := NewAnonymousRegion(0); err == nil {
		t.Fatal("expected an error for a zero-size region")
	}
}
