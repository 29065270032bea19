package buffer

import "sync"

// ChangeCounter is Buffer's mutation counter: a trimmed-down descendant
// of the teacher's generic signals.Signal[T], cut back to exactly what
// a single monotonically-bumped int64 needs — no dependency tracking,
// no batching, no derived (Computed) values, since Buffer only ever
// sets and polls one counter and lets observers subscribe to it.
type ChangeCounter struct {
	mu          sync.RWMutex
	value       int64
	subscribers map[int]func(int64)
	nextID      int
}

func newChangeCounter() *ChangeCounter {
	return &ChangeCounter{subscribers: make(map[int]func(int64))}
}

// Peek returns the current count without notifying anyone.
func (c *ChangeCounter) Peek() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set stores v and calls every subscriber with it, outside the lock so
// a subscriber calling back into the counter doesn't deadlock.
func (c *ChangeCounter) Set(v int64) {
	c.mu.Lock()
	c.value = v
	subs := make([]func(int64), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Subscribe registers fn to run on every future Set, returning a func
// that unregisters it. Marks, views, and background indexers use this
// to react to buffer mutations instead of polling NrChanges themselves.
func (c *ChangeCounter) Subscribe(fn func(int64)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}
