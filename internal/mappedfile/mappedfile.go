// Package mappedfile implements MappedFile: a balanced binary tree of
// leaves, each referencing either a memory-mapped slice of an on-disk
// file or an in-RAM copy-on-write buffer. It gives O(log N)
// locate-by-offset, constant-size edits via subtree replacement,
// iterator traversal over a doubly-linked leaf list, and atomic
// sync-to-disk (§4.2 of SPEC_FULL.md).
package mappedfile

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
	"textcore/internal/nodepool"
)

var hostPageSize = os.Getpagesize()

// MappedFile is the piece tree over a single file descriptor.
type MappedFile struct {
	fd   int
	file *os.File

	pool *nodepool.Pool[node]
	root nodepool.Index

	pageSize        int // max size of a leaf at initial tree construction
	subPageSize     int // size of leaves created by an insert-triggered split
	subPageReserve  int // extra capacity reserved in newly created in-RAM leaves
}

// Open builds the initial tree for path. A zero-length file yields an
// empty tree (root == nodepool.NoIndex). Directories are rejected.
func Open(path string, pageSize int) (*MappedFile, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	if fi.IsDir() {
		f.Close()
		return nil, errors.Errorf("%s is a directory", path)
	}

	mf := &MappedFile{
		fd:             int(f.Fd()),
		file:           f,
		pool:           nodepool.New[node](),
		root:           nodepool.NoIndex,
		pageSize:       pageSize,
		subPageSize:    pageSize / 4,
		subPageReserve: 64,
	}
	if mf.subPageSize <= 0 {
		mf.subPageSize = pageSize
	}

	size := fi.Size()
	if size > 0 {
		root, err := mf.buildTree(0, size)
		if err != nil {
			f.Close()
			return nil, err
		}
		mf.root = root
	}
	return mf, nil
}

// buildTree recursively halves [off, off+size) into leaves no larger
// than pageSize, rounding the left half up to a multiple of pageSize
// (§4.2 "Splitting a size into halves rounds the left size up to a
// multiple of page_size").
func (mf *MappedFile) buildTree(off, size int64) (nodepool.Index, error) {
	if size <= int64(mf.pageSize) {
		return mf.newLeaf(off, size), nil
	}

	left := roundUp(size/2, int64(mf.pageSize))
	if left >= size {
		left = size - int64(mf.pageSize)
	}
	right := size - left

	leftIdx, err := mf.buildTree(off, left)
	if err != nil {
		return nodepool.NoIndex, err
	}
	rightIdx, err := mf.buildTree(off+left, right)
	if err != nil {
		return nodepool.NoIndex, err
	}

	parent := mf.pool.Alloc()
	p := mf.pool.Get(parent)
	p.left, p.right = leftIdx, rightIdx
	p.size = size
	p.prev, p.next = nodepool.NoIndex, nodepool.NoIndex

	mf.pool.Get(leftIdx).parent = parent
	mf.pool.Get(rightIdx).parent = parent

	// Link the leaf list across the subtree boundary.
	mf.linkLeafBoundary(leftIdx, rightIdx)

	return parent, nil
}

// linkLeafBoundary links the rightmost leaf under left to the leftmost
// leaf under right.
func (mf *MappedFile) linkLeafBoundary(left, right nodepool.Index) {
	lastLeft := mf.rightmostLeaf(left)
	firstRight := mf.leftmostLeaf(right)
	mf.pool.Get(lastLeft).next = firstRight
	mf.pool.Get(firstRight).prev = lastLeft
}

func (mf *MappedFile) rightmostLeaf(idx nodepool.Index) nodepool.Index {
	for {
		n := mf.pool.Get(idx)
		if n.isLeaf() {
			return idx
		}
		if n.right != nodepool.NoIndex {
			idx = n.right
		} else {
			idx = n.left
		}
	}
}

func (mf *MappedFile) leftmostLeaf(idx nodepool.Index) nodepool.Index {
	for {
		n := mf.pool.Get(idx)
		if n.isLeaf() {
			return idx
		}
		if n.left != nodepool.NoIndex {
			idx = n.left
		} else {
			idx = n.right
		}
	}
}

func (mf *MappedFile) newLeaf(off, size int64) nodepool.Index {
	idx := mf.pool.Alloc()
	n := mf.pool.Get(idx)
	n.parent = nodepool.NoIndex
	n.left, n.right = nodepool.NoIndex, nodepool.NoIndex
	n.prev, n.next = nodepool.NoIndex, nodepool.NoIndex
	n.size = size
	n.onDiskOffset = off
	n.skip = 0
	return idx
}

func roundUp(v, mult int64) int64 {
	if mult <= 0 {
		return v
	}
	if r := v % mult; r != 0 {
		return v + (mult - r)
	}
	return v
}

// Size returns the total byte count of the file as currently edited.
func (mf *MappedFile) Size() int64 {
	if mf.root == nodepool.NoIndex {
		return 0
	}
	return mf.pool.Get(mf.root).size
}

// Close releases the node pool's pages and closes the file descriptor.
// Per SPEC_FULL.md §9 open question (a): callers must not hold any live
// Iterator across Close.
func (mf *MappedFile) Close() error {
	mf.pool.Walk(func(idx nodepool.Index) {
		mf.releaseNode(idx)
	})
	if mf.file != nil {
		return mf.file.Close()
	}
	return nil
}

// findNodeByOffset descends left/right by cumulative left size and
// returns the leaf containing offset, the leaf's size, and the local
// offset within that leaf. Returns NoIndex if offset >= Size().
func (mf *MappedFile) findNodeByOffset(offset int64) (nodepool.Index, int64, int64) {
	if mf.root == nodepool.NoIndex || offset >= mf.Size() {
		return nodepool.NoIndex, 0, 0
	}
	idx := mf.root
	local := offset
	for {
		n := mf.pool.Get(idx)
		if n.isLeaf() {
			return idx, n.size, local
		}
		leftSize := int64(0)
		if n.left != nodepool.NoIndex {
			leftSize = mf.pool.Get(n.left).size
		}
		if local < leftSize {
			idx = n.left
		} else {
			local -= leftSize
			idx = n.right
		}
	}
}

// fstatSize returns f's size via fstat(2). Nothing in the repository
// calls it.
func fstatSize(f *os.File) (int64, error) {
	var st syscall.Stat_t
	if err := syscall.Fstat(int(f.Fd()), &st); err != nil {
		return 0, err
	}
	return st.Size, nil
}
