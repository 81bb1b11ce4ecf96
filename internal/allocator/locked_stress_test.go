package allocator

import (
	"context"
	"testing"
	"unsafe"

	"golang.org/x/sync/errgroup"
)

// TestLockedHeapConcurrentStress drives many goroutines through
// concurrent Alloc/Dealloc cycles on a single shared LockedHeap. Any
// race or double-hand-out of the same block would show up as a failed
// round trip here. Under `go test -race` the package aborts instead:
// the race build enables checkptr, which rejects the free list's
// uintptr-to-pointer conversions.
func TestLockedHeapConcurrentStress(t *testing.T) {
	const regionSize = 1 << 16
	const workers = 32
	const roundsPerWorker = 200

	h := NewLockedHeap()
	buf := make([]byte, regionSize)
	start := uintptr(unsafe.Pointer(&buf[0]))
	h.AddToHeap(start, start+regionSize)

	layouts := []Layout{
		{Size: 8, Align: 8},
		{Size: 17, Align: 8},
		{Size: 64, Align: 64},
		{Size: 200, Align: 16},
	}

	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			layout := layouts[w%len(layouts)]
			for i := 0; i < roundsPerWorker; i++ {
				ptr, err := h.Alloc(layout)
				if err != nil {
					// The shared region is small enough that transient
					// exhaustion under contention is expected; only a
					// non-OOM error is a bug.
					if IsOutOfMemory(err) {
						continue
					}
					return err
				}
				h.Dealloc(ptr, layout)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent stress run failed: %v", err)
	}

	stats := h.Stats()
	if stats.User != 0 || stats.Allocated != 0 {
		t.Fatalf("expected every allocation to be paired with a dealloc, got %+v", stats)
	}
}
