package mappedfile

import "textcore/internal/nodepool"

// Iterator walks the piece tree one byte at a time, hopping to the next
// leaf via the prev/next list at a leaf boundary. It holds a strong
// reference to the page of the leaf it currently straddles, so that
// leaf's mapping cannot be dropped mid-iteration even if the tree is
// concurrently restructured (§5 "Shared-resource policy").
type Iterator struct {
	mf    *MappedFile
	leaf  nodepool.Index
	local int64 // offset within the current leaf
	off   int64 // absolute offset, for Offset()
	eof   bool
}

// IterFrom resolves offset to a leaf and local offset, maps that leaf
// (establishing the iterator's hold on its page), and returns the
// positioned Iterator. Offsets >= Size() yield an EOF iterator.
func (mf *MappedFile) IterFrom(offset int64) *Iterator {
	it := &Iterator{mf: mf, off: offset}
	leaf, _, local := mf.findNodeByOffset(offset)
	if leaf == nodepool.NoIndex {
		it.eof = true
		return it
	}
	if _, err := mf.leafPage(leaf); err != nil {
		it.eof = true
		return it
	}
	it.leaf = leaf
	it.local = local
	return it
}

// Close releases the iterator's hold on its current leaf's mapping.
func (it *Iterator) Close() {
	if !it.eof {
		it.mf.unmapLeaf(it.leaf)
	}
}

// Offset returns the iterator's current absolute byte offset.
func (it *Iterator) Offset() int64 { return it.off }

// EOF reports whether the iterator has run off the end of the file.
func (it *Iterator) EOF() bool { return it.eof }

// advanceLeaf moves to the next leaf in the doubly-linked list,
// swapping which leaf's page the iterator holds a reference to.
func (it *Iterator) advanceLeaf() bool {
	old := it.leaf
	n := it.mf.pool.Get(old)
	next := n.next
	it.mf.unmapLeaf(old)
	if next == nodepool.NoIndex {
		it.eof = true
		return false
	}
	if _, err := it.mf.leafPage(next); err != nil {
		it.eof = true
		return false
	}
	it.leaf = next
	it.local = 0
	return true
}

// CopyToSlice copies up to n bytes starting at the iterator's position
// into dst (which must have length >= n), advancing the iterator.
// Returns the number of bytes actually copied (less than n at EOF).
func (mf *MappedFile) CopyToSlice(it *Iterator, n int, dst []byte) int {
	copied := 0
	for copied < n && !it.eof {
		leaf := it.mf.pool.Get(it.leaf)
		p := it.mf.heldPage(it.leaf)
		if p == nil {
			return copied
		}
		avail := int(leaf.size - it.local)
		want := n - copied
		if want > avail {
			want = avail
		}
		if want > 0 {
			src := p.Slice()
			copy(dst[copied:copied+want], src[it.local:int(it.local)+want])
		}

		copied += want
		it.local += int64(want)
		it.off += int64(want)
		if it.local >= leaf.size {
			if !it.advanceLeaf() {
				break
			}
		}
	}
	return copied
}

// Read is an alias for CopyToSlice kept to mirror the MappedFile::read
// name used in SPEC_FULL.md §4.2.
func (mf *MappedFile) Read(it *Iterator, n int, dst []byte) int {
	return mf.CopyToSlice(it, n, dst)
}
