package nodepool

import "testing"

func TestAllocReleaseStableIndices(t *testing.T) {
	p := New[int]()
	a := p.Alloc()
	b := p.Alloc()
	if a == b {
		t.Fatalf("expected distinct indices")
	}
	*p.Get(a) = 42
	p.Release(a)
	if p.Used(a) {
		t.Fatalf("released index still marked used")
	}
	c := p.Alloc()
	if c != a {
		t.Fatalf("expected free-list reuse: c=%d a=%d", c, a)
	}
	if *p.Get(c) != 0 {
		t.Fatalf("reused slot not reset")
	}
	_ = b
}

func TestWalkVisitsOnlyUsed(t *testing.T) {
	p := New[int]()
	a := p.Alloc()
	_ = p.Alloc()
	p.Release(a)

	count := 0
	p.Walk(func(Index) { count++ })
	if count != 1 {
		t.Fatalf("Walk visited %d nodes, want 1", count)
	}
}
