package allocator

// Layout describes an allocation request: a size in bytes and a
// power-of-two alignment. The effective block size handed out is
// max(nextPowerOfTwo(Size), Align, word size); requesting Align > Size
// is legal and simply widens the block.
//
// The Layout passed to Dealloc must equal the one passed to the
// corresponding Alloc call, standard allocator discipline. Passing a
// mismatched layout is a programming error with undefined behavior,
// exactly as in the host GlobalAlloc contract this type mirrors.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// Heap is a buddy-system byte allocator over a caller-supplied
// address range. The zero value is an empty, ready-to-use heap (no
// constructor required), so a *Heap can sit in static storage before
// any runtime initialization has run.
type Heap struct {
	freeList  [Order]freeList
	user      uintptr
	allocated uintptr
	total     uintptr
}

// NewHeap creates an empty heap.
func NewHeap() *Heap {
	return &Heap{}
}

// alignmentLimit returns the largest power of two current is known to
// be aligned to. Address 0 is aligned to every power of two, so the
// ordinary current & -current trick (which degenerates to 0 at the
// origin) is replaced with the largest class size, letting the largest
// class act as an unbounded alignment cap at the origin.
func alignmentLimit(current uintptr) uintptr {
	if current == 0 {
		return uintptr(1) << (Order - 1)
	}
	return current & (-current)
}

// AddToHeap adds the half-open byte range [start, end) to the heap.
// The caller asserts the range is exclusively owned by the heap and
// writable; add_to_heap is therefore unsafe in spirit even though Go
// cannot express that in the type system the way the original
// crate's `unsafe fn` does.
//
// The range is decomposed into the unique sequence of maximally
// aligned, maximally sized blocks covering it, so that every free
// block ends up aligned to its own class size.
func (h *Heap) AddToHeap(start, end uintptr) {
	assertRange(start, end)

	current := start
	for current+wordSize <= end {
		size := alignmentLimit(current)
		if rest := prevPowerOfTwo(end - current); rest < size {
			size = rest
		}

		h.freeList[log2(size)].push(current)
		h.total += size
		current += size
	}
}

// Alloc services a layout request, splitting a larger block downward
// when the exact class is empty. It returns ErrOutOfMemory (wrapped)
// if no class in [class, Order) holds a block.
func (h *Heap) Alloc(layout Layout) (uintptr, error) {
	assertPowerOfTwoAlign(layout.Align)

	blockSize, class := sizeClass(layout.Size, layout.Align, wordSize)
	if class >= Order {
		return 0, newOutOfMemory(class, blockSize)
	}

	i := class
	for i < Order && h.freeList[i].isEmpty() {
		i++
	}
	if i == Order {
		return 0, newOutOfMemory(class, blockSize)
	}

	// The scan above already confirmed class i is non-empty; splitting
	// downward from i always succeeds because each iteration populates
	// the class the next iteration pops from, so this cascade can never
	// observe an empty class mid-way. A panic here means the free-list
	// bookkeeping itself is corrupt, not a normal out-of-memory outcome.
	for j := i; j > class; j-- {
		block, ok := h.freeList[j].pop()
		if !ok {
			panic("allocator: split cascade found an unexpectedly empty class")
		}
		half := uintptr(1) << uint(j-1)
		h.freeList[j-1].push(block + half)
		h.freeList[j-1].push(block)
	}

	result, ok := h.freeList[class].pop()
	if !ok {
		panic("allocator: split cascade did not yield a block of the requested class")
	}

	h.user += layout.Size
	h.allocated += blockSize

	return result, nil
}

// Dealloc returns a previously allocated block to the heap, layout
// must match the Alloc call that produced ptr. Buddies are coalesced
// recursively up to the largest class.
func (h *Heap) Dealloc(ptr uintptr, layout Layout) {
	size, class := sizeClass(layout.Size, layout.Align, wordSize)

	h.freeList[class].push(ptr)

	p, c := ptr, class
	for c < Order-1 {
		buddy := p ^ (uintptr(1) << uint(c))
		if !h.freeList[c].removeAddr(buddy) {
			break
		}
		h.freeList[c].removeAddr(p)
		if buddy < p {
			p = buddy
		}
		c++
		h.freeList[c].push(p)
	}

	h.user -= layout.Size
	h.allocated -= size
}

// Stats returns the heap's current user/allocated/total counters.
func (h *Heap) Stats() Stats {
	return Stats{User: h.user, Allocated: h.allocated, Total: h.total}
}
