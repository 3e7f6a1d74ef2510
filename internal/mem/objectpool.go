package mem

import "sync"

// ObjectPool recycles values that need construction rather than zeroing.
// Acquired values come from the free list when possible and are rebuilt in
// place by the constructor, so callers always see a freshly constructed
// value. The pool grows by doubling when drained. Safe for concurrent use.
type ObjectPool[T any] struct {
	mu        sync.Mutex
	free      []*T
	construct func() T

	size int
}

// NewObjectPool creates a pool of capacity constructed values. construct
// must not be nil.
func NewObjectPool[T any](capacity int, construct func() T) *ObjectPool[T] {
	if capacity < 1 {
		capacity = 1
	}
	p := &ObjectPool[T]{construct: construct, size: capacity}
	for i := 0; i < capacity; i++ {
		v := construct()
		p.free = append(p.free, &v)
	}
	return p
}

// Acquire returns a constructed value, doubling the pool when empty.
func (p *ObjectPool[T]) Acquire() *T {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free) == 0 {
		p.grow()
	}
	n := len(p.free)
	v := p.free[n-1]
	p.free = p.free[:n-1]
	*v = p.construct()
	return v
}

// Release returns a value to the free list. nil is a no-op.
func (p *ObjectPool[T]) Release(v *T) {
	if v == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, v)
}

// grow doubles the pool. Caller holds the lock.
func (p *ObjectPool[T]) grow() {
	for i := 0; i < p.size; i++ {
		v := p.construct()
		p.free = append(p.free, &v)
	}
	p.size *= 2
}

// Size returns the total number of values the pool has constructed capacity
// for.
func (p *ObjectPool[T]) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

// FreeCount returns the number of values on the free list.
func (p *ObjectPool[T]) FreeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}
