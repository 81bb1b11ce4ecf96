package allocator

import (
	stderrors "errors"
	"fmt"

	orizonerrors "github.com/orizon-lang/buddyalloc/internal/errors"
)

// ErrOutOfMemory is returned by Alloc when no free block of the
// requested class or larger exists. It is the only recoverable
// failure the buddy system raises: the allocator's internal state is
// unchanged when this error is returned.
var ErrOutOfMemory = stderrors.New("allocator: out of memory")

// oomError wraps ErrOutOfMemory with a categorized StandardError so
// callers can inspect the requested size/class via errors.As, while
// errors.Is(err, ErrOutOfMemory) keeps working.
type oomError struct {
	*orizonerrors.StandardError
}

func (e *oomError) Unwrap() []error { return []error{ErrOutOfMemory, e.StandardError} }

func newOutOfMemory(class int, size uintptr) error {
	return &oomError{orizonerrors.OutOfMemory(class, size)}
}

// IsOutOfMemory reports whether err is (or wraps) ErrOutOfMemory.
func IsOutOfMemory(err error) bool {
	return stderrors.Is(err, ErrOutOfMemory)
}

// assertRange panics if start > end, matching the original crate's
// assert!(start <= end): a malformed region is a programming error,
// not a recoverable condition.
func assertRange(start, end uintptr) {
	if start > end {
		panic(fmt.Sprintf("%v", orizonerrors.InvalidRange(start, end)))
	}
}

// assertPowerOfTwoAlign panics if align is not a power of two.
func assertPowerOfTwoAlign(align uintptr) {
	if align == 0 || align&(align-1) != 0 {
		panic(fmt.Sprintf("%v", orizonerrors.InvalidAlignment(align)))
	}
}
