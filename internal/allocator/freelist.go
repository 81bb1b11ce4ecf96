package allocator

import "unsafe"

// freeList is a singly-linked free list whose nodes live inside the
// free memory they represent: the first machine word at a node's
// address stores the address of the next node, or 0 for end-of-list.
// The zero value is an empty list, so an array of 32 of these is
// usable straight out of a zero-initialized struct (no constructor
// needed, matching the const-constructible Heap of the original
// crate).
//
// The list is unordered; no invariant is exposed on traversal order.
type freeList struct {
	head uintptr
}

// push links a onto the front of the list. The caller guarantees a is
// a writable, word-aligned address not already present in any list.
func (l *freeList) push(a uintptr) {
	*(*uintptr)(unsafe.Pointer(a)) = l.head
	l.head = a
}

// pop removes and returns the front node, or reports false if the
// list is empty.
func (l *freeList) pop() (uintptr, bool) {
	if l.head == 0 {
		return 0, false
	}
	a := l.head
	l.head = *(*uintptr)(unsafe.Pointer(a))
	return a, true
}

func (l *freeList) isEmpty() bool {
	return l.head == 0
}

// contains reports whether a is currently linked into the list.
func (l *freeList) contains(a uintptr) bool {
	it := l.iter()
	for it.next() {
		if it.value() == a {
			return true
		}
	}
	return false
}

// removeAddr unlinks a specific address from the list, if present,
// reporting whether it was found. Used by the buddy-coalescing path,
// which already knows the address it's looking for.
func (l *freeList) removeAddr(a uintptr) bool {
	it := l.iter()
	for it.next() {
		if it.value() == a {
			it.remove()
			return true
		}
	}
	return false
}

// iter returns a cursor over the list that supports O(1) amortized
// removal of the node last yielded by next(), via a trailing
// "previous node" pointer.
func (l *freeList) iter() freeListIterator {
	return freeListIterator{list: l}
}

type freeListIterator struct {
	list    *freeList
	prev    uintptr // address of the predecessor of cur; 0 means cur (if any) is/was the head
	cur     uintptr // address of the node last returned by next(); 0 before the first call
	removed bool    // whether remove() was called for cur
}

// next advances the cursor and reports whether a node was found.
func (it *freeListIterator) next() bool {
	var link uintptr
	switch {
	case it.cur == 0, it.removed:
		if it.prev == 0 {
			link = it.list.head
		} else {
			link = *(*uintptr)(unsafe.Pointer(it.prev))
		}
	default:
		it.prev = it.cur
		link = *(*uintptr)(unsafe.Pointer(it.cur))
	}
	it.removed = false
	if link == 0 {
		it.cur = 0
		return false
	}
	it.cur = link
	return true
}

// value returns the address of the node last yielded by next().
func (it *freeListIterator) value() uintptr {
	return it.cur
}

// remove unlinks the node last yielded by next() from the list.
func (it *freeListIterator) remove() {
	if it.cur == 0 {
		return
	}
	next := *(*uintptr)(unsafe.Pointer(it.cur))
	if it.prev == 0 {
		it.list.head = next
	} else {
		*(*uintptr)(unsafe.Pointer(it.prev)) = next
	}
	it.removed = true
}
