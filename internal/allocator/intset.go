package allocator

import "sort"

// intSet is an ordered set of frame numbers for one size class. The
// frame allocator cannot thread an intrusive list through its
// elements the way the byte heap does (a frame number has no backing
// store to link through), so each class instead pays for a small
// auxiliary structure.
//
// This is a sorted slice searched with sort.Search: O(log n) lookup,
// O(n) insert/remove. Per-class population stays small in practice,
// since coalescing keeps it short, so the O(n) shift on insert/remove
// is not a practical concern.
type intSet struct {
	items []uintptr
}

func (s *intSet) indexOf(v uintptr) (int, bool) {
	i := sort.Search(len(s.items), func(i int) bool { return s.items[i] >= v })
	return i, i < len(s.items) && s.items[i] == v
}

// insert adds v to the set; a no-op if v is already present.
func (s *intSet) insert(v uintptr) {
	i, found := s.indexOf(v)
	if found {
		return
	}
	s.items = append(s.items, 0)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = v
}

// remove erases v from the set, reporting whether it was present.
func (s *intSet) remove(v uintptr) bool {
	i, found := s.indexOf(v)
	if !found {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

func (s *intSet) contains(v uintptr) bool {
	_, found := s.indexOf(v)
	return found
}

// any returns an arbitrary element of the set; insertion order is
// irrelevant to the buddy algorithm, so the lowest element is
// returned for determinism (useful in tests).
func (s *intSet) any() (uintptr, bool) {
	if len(s.items) == 0 {
		return 0, false
	}
	return s.items[0], true
}

func (s *intSet) isEmpty() bool {
	return len(s.items) == 0
}
