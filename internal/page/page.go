// Package page implements the byte-region abstraction that backs every
// leaf of the piece tree: either a read-only memory map of a slice of an
// on-disk file, or an in-RAM growable buffer produced by copy-on-write
// promotion.
package page

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Kind distinguishes the two Page variants.
type Kind int

const (
	// OnDisk pages are a read-only mmap of a file slice.
	OnDisk Kind = iota
	// InRam pages own their storage and can grow up to Capacity.
	InRam
)

// Page is a byte region with semantics {OnDisk(base, len, skip, fd) |
// InRam(base, len, capacity)}. Pages are shared: multiple nodes may hold
// a reference to the same Page until the last one releases it.
type Page struct {
	Kind Kind

	// OnDisk fields. mapping is the raw mmap result (page-aligned);
	// Skip is the prefix dropped to reach the logical start.
	mapping []byte
	Skip    int

	// InRam fields. data has len() == logical length, cap() == Capacity.
	data []byte
}

// MapOnDisk maps length+skip bytes of fd starting at the page-aligned
// offset base, and returns a Page whose Slice() yields the skip..skip+length
// window. The mapping is private and read-only; callers must Release it.
func MapOnDisk(fd int, base int64, length, skip int) (*Page, error) {
	if length+skip == 0 {
		return &Page{Kind: OnDisk, mapping: nil, Skip: 0}, nil
	}
	m, err := unix.Mmap(fd, base, length+skip, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap fd=%d base=%d len=%d", fd, base, length+skip)
	}
	return &Page{Kind: OnDisk, mapping: m, Skip: skip}, nil
}

// NewInRam allocates an in-RAM page with the given initial content and
// capacity. capacity is clamped up to len(initial).
func NewInRam(initial []byte, capacity int) *Page {
	if capacity < len(initial) {
		capacity = len(initial)
	}
	buf := make([]byte, len(initial), capacity)
	copy(buf, initial)
	return &Page{Kind: InRam, data: buf}
}

// Slice returns the read-only logical byte range owned by the page.
func (p *Page) Slice() []byte {
	switch p.Kind {
	case OnDisk:
		if p.mapping == nil {
			return nil
		}
		return p.mapping[p.Skip:]
	default:
		return p.data
	}
}

// Len returns the logical length of the page.
func (p *Page) Len() int {
	return len(p.Slice())
}

// Capacity returns the growable capacity for InRam pages (0 for OnDisk).
func (p *Page) Capacity() int {
	if p.Kind != InRam {
		return 0
	}
	return cap(p.data)
}

// Free returns the unused capacity available for in-place growth.
func (p *Page) Free() int {
	if p.Kind != InRam {
		return 0
	}
	return cap(p.data) - len(p.data)
}

// InsertAt splices data into the in-RAM page at local offset off, growing
// len() by len(data). Caller must have checked Free() >= len(data).
func (p *Page) InsertAt(off int, data []byte) {
	if p.Kind != InRam {
		panic("page: InsertAt on non-InRam page")
	}
	n := len(p.data)
	p.data = p.data[:n+len(data)]
	copy(p.data[off+len(data):], p.data[off:n])
	copy(p.data[off:], data)
}

// RemoveRange deletes [from, to) from the in-RAM page, shrinking len().
func (p *Page) RemoveRange(from, to int) {
	if p.Kind != InRam {
		panic("page: RemoveRange on non-InRam page")
	}
	p.data = append(p.data[:from], p.data[to:]...)
}

// Release unmaps OnDisk pages and drops the reference to InRam storage.
// It is a no-op to call Release twice.
func (p *Page) Release() error {
	if p.Kind == OnDisk && p.mapping != nil {
		base := p.mapping
		p.mapping = nil
		if err := unix.Munmap(base); err != nil {
			return errors.Wrap(err, "munmap")
		}
		return nil
	}
	p.data = nil
	return nil
}

// COWCopy materialises an in-RAM copy of this page's current bytes,
// reserving extra capacity for future inserts. Used by copy-on-write
// promotion in mappedfile.Node before any byte-level mutation.
func (p *Page) COWCopy(extraCapacity int) *Page {
	src := p.Slice()
	return NewInRam(src, len(src)+extraCapacity)
}
