package mappedfile

import (
	"textcore/internal/nodepool"
	"textcore/internal/page"
)

// noOffset is the sentinel on_disk_offset for internal nodes and for
// leaves that have been copy-on-write promoted to in-RAM storage.
const noOffset = -1

// node is one node of the piece tree. Indices (not pointers) link it to
// its parent/children/siblings so the tree can live in a dense,
// reusable arena (internal/nodepool). A leaf has left == right ==
// nodepool.NoIndex; internal nodes have at least one child.
type node struct {
	parent, left, right nodepool.Index
	prev, next           nodepool.Index // doubly-linked leaf list, left-to-right

	size int64 // bytes in the subtree; for a leaf, the leaf's own byte count

	// Leaf-only fields.
	onDiskOffset int64 // noOffset if in-RAM
	skip         int

	mapped     *page.Page // cached mapping of an OnDisk leaf; nil if unmapped
	mappedRefs int        // iterators currently holding mapped

	cow *page.Page // owning in-RAM page, set iff this leaf was COW-promoted
}

func (n *node) isLeaf() bool {
	return n.left == nodepool.NoIndex && n.right == nodepool.NoIndex
}

// heldPage returns the page a caller already holds a reference to (via
// a prior leafPage call), without adjusting the refcount. It is an error
// to call this before leafPage has established a hold on idx.
func (mf *MappedFile) heldPage(idx nodepool.Index) *page.Page {
	n := mf.pool.Get(idx)
	if n.cow != nil {
		return n.cow
	}
	return n.mapped
}

// leafPage maps (or returns the cached mapping of) the leaf's page and
// registers one more reference held against it. Every call must be
// matched by a later unmapLeaf.
func (mf *MappedFile) leafPage(idx nodepool.Index) (*page.Page, error) {
	n := mf.pool.Get(idx)
	if n.cow != nil {
		return n.cow, nil
	}
	if n.mapped != nil {
		n.mappedRefs++
		return n.mapped, nil
	}
	if n.size == 0 {
		return page.NewInRam(nil, 0), nil
	}
	p, err := page.MapOnDisk(mf.fd, alignDown(n.onDiskOffset+int64(n.skip), int64(hostPageSize)),
		int(n.size), int((n.onDiskOffset+int64(n.skip))%int64(hostPageSize)))
	if err != nil {
		return nil, err
	}
	n.mapped = p
	n.mappedRefs = 1
	return p, nil
}

// unmapLeaf drops one reference to the leaf's cached on-disk mapping,
// releasing the mmap once the last holder is gone. COW pages are owned
// outright by the node and are never released here; they are released
// when the node itself is released.
func (mf *MappedFile) unmapLeaf(idx nodepool.Index) {
	n := mf.pool.Get(idx)
	if n == nil || n.cow != nil || n.mapped == nil {
		return
	}
	n.mappedRefs--
	if n.mappedRefs <= 0 {
		n.mapped.Release()
		n.mapped = nil
		n.mappedRefs = 0
	}
}

// promoteCOW materialises an in-RAM copy of an OnDisk leaf before any
// byte-level mutation (§4.1 copy-on-write promotion). No-op if already
// in-RAM. reserve is extra capacity to absorb a pending insert.
func (mf *MappedFile) promoteCOW(idx nodepool.Index, reserve int) error {
	n := mf.pool.Get(idx)
	if n.cow != nil {
		return nil
	}
	src, err := mf.leafPage(idx)
	if err != nil {
		return err
	}
	n.cow = src.COWCopy(reserve)
	if n.mapped != nil {
		n.mapped.Release()
		n.mapped = nil
		n.mappedRefs = 0
	}
	n.onDiskOffset = noOffset
	n.skip = 0
	return nil
}

// releaseNode drops all pages owned/cached by a node being freed.
func (mf *MappedFile) releaseNode(idx nodepool.Index) {
	n := mf.pool.Get(idx)
	if n == nil {
		return
	}
	if n.cow != nil {
		n.cow.Release()
		n.cow = nil
	}
	if n.mapped != nil {
		n.mapped.Release()
		n.mapped = nil
		n.mappedRefs = 0
	}
}

func alignDown(off int64, align int64) int64 {
	return off - off%align
}
