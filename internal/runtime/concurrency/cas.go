// Package concurrency holds the small set of lock-free primitives the
// allocator package builds its spin lock on top of.
package concurrency

import "sync/atomic"

// CASUint32 performs an atomic compare-and-swap on a uint32 variable.
func CASUint32(addr *uint32, old, new uint32) bool {
	return atomic.CompareAndSwapUint32(addr, old, new)
}

// LoadUint32 atomically reads addr.
func LoadUint32(addr *uint32) uint32 { return atomic.LoadUint32(addr) }

// StoreUint32 atomically writes v to addr.
func StoreUint32(addr *uint32, v uint32) { atomic.StoreUint32(addr, v) }
