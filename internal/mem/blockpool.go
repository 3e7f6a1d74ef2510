// Package mem provides the editor's allocation substrate: fixed-slot block
// pools, reconstructing object pools, and a bump-pointer arena for transient
// per-operation scratch memory.
package mem

import "sync"

// BlockPool hands out fixed-size blocks of T. Freed blocks are zeroed and
// reused LIFO, so the most recently freed block is the next one allocated.
// Safe for concurrent use.
type BlockPool[T any] struct {
	mu   sync.Mutex
	free []*T

	allocated int
}

// NewBlockPool creates a pool with capacity blocks pre-allocated onto the
// free list.
func NewBlockPool[T any](capacity int) *BlockPool[T] {
	p := &BlockPool[T]{}
	for i := 0; i < capacity; i++ {
		p.free = append(p.free, new(T))
	}
	return p
}

// Alloc returns a zeroed block, growing the pool when the free list is
// empty.
func (p *BlockPool[T]) Alloc() *T {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.allocated++
	if n := len(p.free); n > 0 {
		b := p.free[n-1]
		p.free = p.free[:n-1]
		return b
	}
	return new(T)
}

// Free zeroes the block and pushes it onto the free list. nil is a no-op.
func (p *BlockPool[T]) Free(b *T) {
	if b == nil {
		return
	}
	var zero T
	*b = zero

	p.mu.Lock()
	defer p.mu.Unlock()
	p.allocated--
	p.free = append(p.free, b)
}

// FreeCount returns the number of blocks on the free list.
func (p *BlockPool[T]) FreeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// InUse returns the number of outstanding blocks.
func (p *BlockPool[T]) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocated
}
