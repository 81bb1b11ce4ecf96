package allocator

import (
	"runtime"

	"github.com/orizon-lang/buddyalloc/internal/runtime/concurrency"
)

// SpinLock is a CAS-spin mutex: the lock-free counterpart to
// sync.Mutex for callers who would rather burn cycles spinning than
// pay for an OS-level parking wait, the same tradeoff the original
// crate's `use_spin` feature flag exposes at compile time. Go has no
// compile-time feature flags, so the choice is made at construction
// time via WithSpinLock instead (see Locker).
//
// The zero value is an unlocked SpinLock.
type SpinLock struct {
	state uint32
}

const (
	spinUnlocked = 0
	spinLocked   = 1
)

// Lock spins until the lock is acquired, yielding the processor
// between attempts so a contending goroutine doesn't starve the one
// holding the lock on a single-core GOMAXPROCS.
func (l *SpinLock) Lock() {
	for !concurrency.CASUint32(&l.state, spinUnlocked, spinLocked) {
		runtime.Gosched()
	}
}

// TryLock attempts to acquire the lock without spinning.
func (l *SpinLock) TryLock() bool {
	return concurrency.CASUint32(&l.state, spinUnlocked, spinLocked)
}

// Unlock releases the lock. Unlocking a lock that is not held is a
// programming error, exactly as with sync.Mutex.
func (l *SpinLock) Unlock() {
	concurrency.StoreUint32(&l.state, spinUnlocked)
}
