// Command buddy-demo exercises the buddy allocator end to end: byte
// heap, frame allocator, locked wrappers, and the NUMA frame pool.
package main

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/orizon-lang/buddyalloc/internal/allocator"
	"github.com/orizon-lang/buddyalloc/internal/numa"
	buddyruntime "github.com/orizon-lang/buddyalloc/internal/runtime"
)

func main() {
	fmt.Println("=== Buddy Allocator Demo ===")

	fmt.Println("\n1. Byte heap over an anonymous mmap region...")
	region, err := buddyruntime.NewAnonymousRegion(4 << 20)
	if err != nil {
		panic(fmt.Sprintf("failed to map region: %v", err))
	}
	defer region.Release()

	h := allocator.NewHeap()
	h.AddToHeap(region.Start, region.End)
	fmt.Printf("✓ mapped %d bytes, heap total=%d\n", region.Len(), h.Stats().Total)

	start := time.Now()
	const allocCount = 1000
	var live []uintptr
	layout := allocator.Layout{Size: 128, Align: 8}
	for i := 0; i < allocCount; i++ {
		ptr, err := h.Alloc(layout)
		if err != nil {
			panic(fmt.Sprintf("allocation %d failed: %v", i, err))
		}
		live = append(live, ptr)
	}
	fmt.Printf("✓ %d allocations completed in %v (avg %v)\n", allocCount, time.Since(start), time.Since(start)/allocCount)
	for _, ptr := range live {
		h.Dealloc(ptr, layout)
	}
	fmt.Printf("✓ after freeing everything: %s\n", allocator.FormatStats(h.Stats()))

	fmt.Println("\n2. Frame allocator over a small pool...")
	frames := allocator.NewFrameAllocator()
	frames.AddFrame(0, 1024)
	f1, ok := frames.Alloc(16)
	if !ok {
		panic("frame allocation failed")
	}
	f2, ok := frames.Alloc(16)
	if !ok {
		panic("frame allocation failed")
	}
	fmt.Printf("✓ reserved frames %d and %d\n", f1, f2)
	frames.Dealloc(f1, 16)
	frames.Dealloc(f2, 16)

	fmt.Println("\n3. LockedHeap under concurrent access...")
	lh := allocator.NewLockedHeap(allocator.WithSpinLock())
	buf := make([]byte, 256*1024)
	lhStart := uintptr(unsafe.Pointer(&buf[0]))
	lh.AddToHeap(lhStart, lhStart+uintptr(len(buf)))

	const workers = 8
	var wg sync.WaitGroup
	start = time.Now()
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			workLayout := allocator.Layout{Size: 64, Align: 8}
			for i := 0; i < 200; i++ {
				p, err := lh.Alloc(workLayout)
				if err != nil {
					continue
				}
				lh.Dealloc(p, workLayout)
			}
		}()
	}
	wg.Wait()
	fmt.Printf("✓ %d workers finished concurrent alloc/dealloc in %v\n", workers, time.Since(start))
	fmt.Printf("✓ final stats: %s\n", allocator.FormatStats(lh.Stats()))

	fmt.Println("\n4. NUMA-aware frame pool with local/remote fallback...")
	pool := numa.NewPool(4)
	for node := 0; node < 4; node++ {
		if err := pool.AddFrames(node, 0, 64); err != nil {
			panic(fmt.Sprintf("failed to seed node %d: %v", node, err))
		}
	}

	var reserved []struct {
		frame, count uintptr
		node         int
	}
	for i := 0; i < 10; i++ {
		frame, node, ok := pool.Alloc(i%4, 8)
		if !ok {
			panic("numa allocation failed")
		}
		reserved = append(reserved, struct {
			frame, count uintptr
			node         int
		}{frame, 8, node})
	}
	stats := pool.Stats()
	fmt.Printf("✓ local=%d remote=%d\n", stats.LocalAllocations, stats.RemoteAllocations)
	for _, r := range reserved {
		_ = pool.Dealloc(r.node, r.frame, r.count)
	}

	fmt.Println("\n=== Demo complete ===")
}
