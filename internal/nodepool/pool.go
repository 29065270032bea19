// Package nodepool implements the free-list arena that backs the piece
// tree: nodes are addressed by stable integer indices rather than
// pointers, so parent/left/right/prev/next links survive tree
// restructuring without invalidating other holders.
package nodepool

// Index addresses a slot in a Pool. NoIndex (-1, not the zero value)
// means "no node" (the analogue of a nil pointer / Option::None).
type Index int

// NoIndex is the sentinel meaning "absent".
const NoIndex Index = -1

// Pool is a generic free-list allocator over a dense slice of T. Handing
// out a slot requires the slot be marked unused; releasing a slot clears
// it and pushes the index onto the free list. Indices are stable across
// release/reuse cycles.
type Pool[T any] struct {
	items []T
	used  []bool
	free  []Index
}

// New creates an empty pool.
func New[T any]() *Pool[T] {
	return &Pool[T]{}
}

// Alloc returns a free index, growing the backing slice if needed, and
// resets *T at that index to the zero value before returning.
func (p *Pool[T]) Alloc() Index {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		var zero T
		p.items[idx] = zero
		p.used[idx] = true
		return idx
	}
	p.items = append(p.items, *new(T))
	p.used = append(p.used, true)
	return Index(len(p.items) - 1)
}

// Release marks idx unused and returns it to the free list. It is a
// programming error to release twice or to use a released index.
func (p *Pool[T]) Release(idx Index) {
	if idx < 0 || int(idx) >= len(p.used) || !p.used[idx] {
		panic("nodepool: release of unused or invalid index")
	}
	p.used[idx] = false
	var zero T
	p.items[idx] = zero
	p.free = append(p.free, idx)
}

// Get returns a pointer to the payload at idx. Callers must only hold
// this pointer transiently: a subsequent Alloc may reuse the slice's
// backing array via append and invalidate it.
func (p *Pool[T]) Get(idx Index) *T {
	if idx < 0 || int(idx) >= len(p.items) {
		return nil
	}
	return &p.items[idx]
}

// Used reports whether idx currently refers to a live node.
func (p *Pool[T]) Used(idx Index) bool {
	return idx >= 0 && int(idx) < len(p.used) && p.used[idx]
}

// Len returns the number of slots ever allocated (used + freed), i.e.
// the size of the dense backing vector.
func (p *Pool[T]) Len() int {
	return len(p.items)
}

// Walk invokes fn for every currently-used index. Used by the debug
// invariant checker (§4.2) to visit every live node exactly once.
func (p *Pool[T]) Walk(fn func(Index)) {
	for i, used := range p.used {
		if used {
			fn(Index(i))
		}
	}
}
