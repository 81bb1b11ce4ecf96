//go:build !windows

// Package runtime provides the host-facing memory sources the
// allocator package is handed regions from: anonymous mmap today,
// with room for other backing stores (file-mapped, shared-memory)
// following the same Region contract.
package runtime

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/orizon-lang/buddyalloc/internal/allocator"
)

// Region is a contiguous block of host memory obtained from the
// operating system, described by its address range so it can be
// handed directly to Heap.AddToHeap or FrameAllocator.AddFrame.
type Region struct {
	mem   []byte
	Start uintptr
	End   uintptr
}

// NewAnonymousRegion maps a private, anonymous, read-write region of
// at least size bytes, rounded up to a whole number of pages so
// Region's reported length always matches what was actually mapped
// rather than relying on the kernel's silent rounding. The returned
// Region owns the mapping; call Release when the region is no longer
// needed.
func NewAnonymousRegion(size int) (*Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("runtime: region size must be positive, got %d", size)
	}

	pageSize := uintptr(unix.Getpagesize())
	size = int(allocator.AlignUp(uintptr(size), pageSize))

	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("runtime: mmap anonymous region: %w", err)
	}

	start := uintptr(unsafe.Pointer(&mem[0]))
	return &Region{
		mem:   mem,
		Start: start,
		End:   start + uintptr(len(mem)),
	}, nil
}

// Release unmaps the region. Using the region's address range after
// Release is undefined behavior, exactly as with the backing mmap.
func (r *Region) Release() error {
	if r.mem == nil {
		return nil
	}
	err := unix.Munmap(r.mem)
	r.mem = nil
	return err
}

// Len returns the region's size in bytes.
func (r *Region) Len() int {
	return int(r.End - r.Start)
}
