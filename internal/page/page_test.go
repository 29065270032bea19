package page

import "testing"

func TestInRamInsertAndRemove(t *testing.T) {
	p := NewInRam([]byte("hello"), 16)
	if p.Free() != 11 {
		t.Fatalf("Free() = %d, want 11", p.Free())
	}
	p.InsertAt(5, []byte(" world"))
	if got := string(p.Slice()); got != "hello world" {
		t.Fatalf("Slice() = %q", got)
	}
	p.RemoveRange(0, 6)
	if got := string(p.Slice()); got != "world" {
		t.Fatalf("Slice() after remove = %q", got)
	}
}

func TestCOWCopyIsIndependent(t *testing.T) {
	p := NewInRam([]byte("abc"), 3)
	cow := p.COWCopy(5)
	cow.InsertAt(3, []byte("d"))
	if string(p.Slice()) != "abc" {
		t.Fatalf("original mutated: %q", p.Slice())
	}
	if string(cow.Slice()) != "abcd" {
		t.Fatalf("cow = %q", cow.Slice())
	}
	if cow.Free() != 4 {
		t.Fatalf("cow.Free() = %d, want 4", cow.Free())
	}
}
