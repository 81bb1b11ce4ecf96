// Command buddy-stress drives many goroutines through concurrent
// Alloc/Dealloc cycles on a shared LockedHeap and reports throughput,
// the command-line counterpart to the in-process stress test in
// internal/allocator/locked_stress_test.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"
	"unsafe"

	"github.com/orizon-lang/buddyalloc/internal/allocator"
	"golang.org/x/sync/errgroup"
)

func main() {
	workers := flag.Int("workers", 32, "number of concurrent goroutines")
	rounds := flag.Int("rounds", 10000, "alloc/dealloc rounds per worker")
	regionMiB := flag.Int("region-mib", 16, "backing region size in MiB")
	useSpin := flag.Bool("spin", false, "use the CAS spin lock instead of sync.Mutex")
	flag.Parse()

	var opts []allocator.Option
	if *useSpin {
		opts = append(opts, allocator.WithSpinLock())
	}
	h := allocator.NewLockedHeap(opts...)

	buf := make([]byte, *regionMiB<<20)
	start := uintptr(unsafe.Pointer(&buf[0]))
	h.AddToHeap(start, start+uintptr(len(buf)))

	layouts := []allocator.Layout{
		{Size: 8, Align: 8},
		{Size: 64, Align: 64},
		{Size: 512, Align: 16},
	}

	g, _ := errgroup.WithContext(context.Background())
	t0 := time.Now()
	for w := 0; w < *workers; w++ {
		w := w
		g.Go(func() error {
			layout := layouts[w%len(layouts)]
			for i := 0; i < *rounds; i++ {
				ptr, err := h.Alloc(layout)
				if err != nil {
					if allocator.IsOutOfMemory(err) {
						continue
					}
					return fmt.Errorf("worker %d: %w", w, err)
				}
				h.Dealloc(ptr, layout)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Println("stress run failed:", err)
		return
	}

	elapsed := time.Since(t0)
	total := *workers * *rounds
	fmt.Printf("%d workers x %d rounds = %d round trips in %v (%.0f/s)\n",
		*workers, *rounds, total, elapsed, float64(total)/elapsed.Seconds())
	fmt.Printf("final stats: %s\n", allocator.FormatStats(h.Stats()))
}
