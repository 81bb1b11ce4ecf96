package allocator

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/orizon-lang/buddyalloc/internal/types"
)

// Locker is satisfied by both sync.Mutex and SpinLock, the two lock
// strategies LockedHeap and LockedFrameAllocator can be configured
// with. This is the runtime stand-in for the original crate's
// compile-time `use_spin` feature flag: Go has no equivalent
// conditional-compilation knob, so the choice is made once, at
// construction, via WithSpinLock.
type Locker interface {
	Lock()
	Unlock()
}

// Config holds construction-time options for the locked allocator
// wrappers.
type Config struct {
	UseSpinLock   bool
	GuardPointers bool
}

// Option configures a Config.
type Option func(*Config)

// WithSpinLock selects the CAS-spin SpinLock over the default
// sync.Mutex. Prefer this only for very short critical sections under
// heavy contention; sync.Mutex is the better default since it parks
// waiters instead of burning CPU.
func WithSpinLock() Option {
	return func(c *Config) { c.UseSpinLock = true }
}

// WithPointerGuard makes GlobalAlloc/GlobalDealloc track every live
// allocation so a double free or a dealloc of a pointer this heap
// never handed out panics instead of corrupting the free list. It
// costs a map entry per live allocation, so it is opt-in.
func WithPointerGuard() Option {
	return func(c *Config) { c.GuardPointers = true }
}

// LockedHeap is a Heap guarded by a Locker, suitable for use as a
// process-wide global allocator. The zero value is a ready-to-use,
// mutex-guarded, empty heap; NewLockedHeap is only needed to opt into
// WithSpinLock or WithPointerGuard.
type LockedHeap struct {
	mu      sync.Mutex
	spin    SpinLock
	useSpin bool
	heap    Heap
	guard   *types.PointerGuard
}

// NewLockedHeap constructs a LockedHeap with the given options.
func NewLockedHeap(opts ...Option) *LockedHeap {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	l := &LockedHeap{useSpin: cfg.UseSpinLock}
	if cfg.GuardPointers {
		l.guard = types.NewPointerGuard()
	}
	return l
}

func (l *LockedHeap) lock() Locker {
	if l.useSpin {
		return &l.spin
	}
	return &l.mu
}

// AddToHeap adds the range [start, end) to the underlying heap.
func (l *LockedHeap) AddToHeap(start, end uintptr) {
	lk := l.lock()
	lk.Lock()
	defer lk.Unlock()
	l.heap.AddToHeap(start, end)
}

// Alloc services a layout request under the lock.
func (l *LockedHeap) Alloc(layout Layout) (uintptr, error) {
	lk := l.lock()
	lk.Lock()
	defer lk.Unlock()
	return l.heap.Alloc(layout)
}

// Dealloc returns a block to the heap under the lock.
func (l *LockedHeap) Dealloc(ptr uintptr, layout Layout) {
	lk := l.lock()
	lk.Lock()
	defer lk.Unlock()
	l.heap.Dealloc(ptr, layout)
}

// Stats returns a snapshot of the heap's counters under the lock.
func (l *LockedHeap) Stats() Stats {
	lk := l.lock()
	lk.Lock()
	defer lk.Unlock()
	return l.heap.Stats()
}

// GlobalAlloc is the host global-allocator entry point: it returns 0
// instead of an error on failure, mirroring the null-pointer-on-OOM
// contract of the GlobalAlloc ABI this type is meant to sit behind
// when embedded as a process-wide allocator.
func (l *LockedHeap) GlobalAlloc(layout Layout) uintptr {
	ptr, err := l.Alloc(layout)
	if err != nil {
		return 0
	}
	if l.guard != nil {
		l.guard.Register(unsafe.Pointer(ptr), layout.Size, time.Now().UnixNano())
	}
	return ptr
}

// GlobalDealloc is the host global-allocator counterpart to
// GlobalAlloc. Calling it with a ptr/layout pair that was not
// produced by GlobalAlloc is a programming error with undefined
// behavior, as in the ABI it mirrors; with WithPointerGuard enabled,
// a double free or an unrecognized pointer panics instead of silently
// corrupting the free list.
func (l *LockedHeap) GlobalDealloc(ptr uintptr, layout Layout) {
	if l.guard != nil {
		if !l.guard.Unregister(unsafe.Pointer(ptr)) {
			panic(fmt.Sprintf("%v", &types.UnsafeOperationError{
				Pointer:   unsafe.Pointer(ptr),
				Operation: "dealloc of unregistered pointer (double free?)",
				Size:      layout.Size,
			}))
		}
	}
	l.Dealloc(ptr, layout)
}

// LockedFrameAllocator is a FrameAllocator guarded by a Locker. The
// zero value is a ready-to-use, mutex-guarded, empty allocator.
type LockedFrameAllocator struct {
	mu      sync.Mutex
	spin    SpinLock
	useSpin bool
	frames  FrameAllocator
}

// NewLockedFrameAllocator constructs a LockedFrameAllocator with the
// given options.
func NewLockedFrameAllocator(opts ...Option) *LockedFrameAllocator {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &LockedFrameAllocator{useSpin: cfg.UseSpinLock}
}

func (l *LockedFrameAllocator) lock() Locker {
	if l.useSpin {
		return &l.spin
	}
	return &l.mu
}

// AddFrame adds the frame range [start, end) under the lock.
func (l *LockedFrameAllocator) AddFrame(start, end uintptr) {
	lk := l.lock()
	lk.Lock()
	defer lk.Unlock()
	l.frames.AddFrame(start, end)
}

// Insert adds a Range under the lock.
func (l *LockedFrameAllocator) Insert(r Range) {
	lk := l.lock()
	lk.Lock()
	defer lk.Unlock()
	l.frames.Insert(r)
}

// Alloc reserves count contiguous frames under the lock.
func (l *LockedFrameAllocator) Alloc(count uintptr) (uintptr, bool) {
	lk := l.lock()
	lk.Lock()
	defer lk.Unlock()
	return l.frames.Alloc(count)
}

// Dealloc returns frames to the allocator under the lock.
func (l *LockedFrameAllocator) Dealloc(frame, count uintptr) {
	lk := l.lock()
	lk.Lock()
	defer lk.Unlock()
	l.frames.Dealloc(frame, count)
}

// Stats returns a snapshot of the allocator's counters under the lock.
func (l *LockedFrameAllocator) Stats() Stats {
	lk := l.lock()
	lk.Lock()
	defer lk.Unlock()
	return l.frames.Stats()
}
