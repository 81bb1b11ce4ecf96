package allocator

import "fmt"

// Stats is the structured debug view both Heap and FrameAllocator
// expose: user (original request sizes), allocated (rounded-up
// sizes), and total (sum of all added region sizes). FrameAllocator
// does not track per-request "user" sizes, so its User field is
// always 0.
type Stats struct {
	User      uintptr
	Allocated uintptr
	Total     uintptr
}

// Fragmentation returns Allocated-User: bytes consumed by rounding
// requests up to the next power of two and the alignment floor.
func (s Stats) Fragmentation() uintptr {
	return s.Allocated - s.User
}

// FormatStats formats allocator statistics for diagnostics.
func FormatStats(s Stats) string {
	return fmt.Sprintf("total=%d allocated=%d user=%d fragmentation=%d",
		s.Total, s.Allocated, s.User, s.Fragmentation())
}
