package mem

import "sync"

// DefaultSlabSize is the arena's slab granularity in bytes.
const DefaultSlabSize = 64 << 10

// Arena is a bump-pointer allocator for transient scratch memory. Alloc
// advances through fixed slabs, appending a new slab when the current ones
// are exhausted; Reset rewinds to the first slab without returning memory to
// the runtime. Individual allocations are never freed. Safe for concurrent
// use.
type Arena struct {
	mu sync.Mutex

	slabs    [][]byte
	slabSize int

	cur int // slab index
	off int // bump offset inside slabs[cur]
}

// NewArena creates an arena with one slab of slabSize bytes; slabSize <= 0
// selects DefaultSlabSize.
func NewArena(slabSize int) *Arena {
	if slabSize <= 0 {
		slabSize = DefaultSlabSize
	}
	return &Arena{
		slabs:    [][]byte{make([]byte, slabSize)},
		slabSize: slabSize,
	}
}

// Alloc returns a zeroed slice of size bytes aligned to align (a power of
// two; 0 means byte alignment). When the current slabs are exhausted a new
// slab is sized to the larger of the arena's slab size and twice the
// request.
func (a *Arena) Alloc(size, align int) []byte {
	if size <= 0 {
		return nil
	}
	if align <= 0 {
		align = 1
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for {
		slab := a.slabs[a.cur]
		off := alignUp(a.off, align)
		if off+size <= len(slab) {
			a.off = off + size
			out := slab[off : off+size : off+size]
			clear(out)
			return out
		}

		if a.cur+1 < len(a.slabs) {
			a.cur++
			a.off = 0
			continue
		}

		next := max(a.slabSize, 2*size)
		a.slabs = append(a.slabs, make([]byte, next))
		a.cur++
		a.off = 0
	}
}

// Reset rewinds the arena to the start of its first slab. Previously
// returned slices become invalid for reuse and will be handed out again.
func (a *Arena) Reset() {
	a.mu.Lock()
	a.cur = 0
	a.off = 0
	a.mu.Unlock()
}

// Used returns the bytes consumed since the last Reset, ignoring alignment
// slack in full slabs.
func (a *Arena) Used() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	total := 0
	for i := 0; i < a.cur; i++ {
		total += len(a.slabs[i])
	}
	return total + a.off
}

// Capacity returns the total bytes held across all slabs.
func (a *Arena) Capacity() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	total := 0
	for _, s := range a.slabs {
		total += len(s)
	}
	return total
}

func alignUp(v, align int) int {
	return (v + align - 1) &^ (align - 1)
}
