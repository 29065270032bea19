package mappedfile

import "textcore/internal/nodepool"

// Remove deletes n bytes starting at the iterator's position (§4.2
// "remove"): each touched leaf is COW-promoted, the in-RAM vector is
// drained across the removed region, ancestor sizes are updated, and
// the tree is rebalanced by collapsing emptied leaves and single-child
// chains. The iterator is left positioned at the removal point.
func (mf *MappedFile) Remove(it *Iterator, n int64) error {
	remaining := n
	for remaining > 0 && !it.eof {
		leaf := it.leaf
		if err := mf.promoteCOW(leaf, 0); err != nil {
			return err
		}
		nd := mf.pool.Get(leaf)

		avail := nd.size - it.local
		take := remaining
		if take > avail {
			take = avail
		}
		if take <= 0 {
			if !it.advanceLeaf() {
				break
			}
			continue
		}

		nd.cow.RemoveRange(int(it.local), int(it.local+take))
		nd.size -= take
		mf.bumpAncestors(nd.parent, -take)
		remaining -= take

		if nd.size == 0 {
			next := nd.next
			mf.unlinkEmptyLeaf(leaf)
			if next != nodepool.NoIndex {
				if _, err := mf.leafPage(next); err != nil {
					return err
				}
				it.leaf = next
				it.local = 0
			} else {
				it.eof = true
			}
		}
		// it.local stays put: bytes after the removed range slid down to
		// fill it.local in the COW buffer.
	}
	mf.rebalance()
	mf.checkDebugInvariants()
	return nil
}

// unlinkEmptyLeaf removes a zero-size leaf from the prev/next list,
// detaches it from its parent (collapsing the parent if it becomes a
// single-child chain is handled by rebalance), and releases it.
func (mf *MappedFile) unlinkEmptyLeaf(idx nodepool.Index) {
	n := mf.pool.Get(idx)
	prev, next := n.prev, n.next
	if prev != nodepool.NoIndex {
		mf.pool.Get(prev).next = next
	}
	if next != nodepool.NoIndex {
		mf.pool.Get(next).prev = prev
	}

	parent := n.parent
	mf.releaseNode(idx)
	if parent == nodepool.NoIndex {
		if mf.root == idx {
			mf.root = nodepool.NoIndex
		}
		mf.pool.Release(idx)
		return
	}
	p := mf.pool.Get(parent)
	if p.left == idx {
		p.left = nodepool.NoIndex
	} else if p.right == idx {
		p.right = nodepool.NoIndex
	}
	mf.pool.Release(idx)
}

// rebalance runs a post-order pass that collapses any internal node
// which now has exactly one child, replacing it with that child
// (§4.2 "Rebalancing never re-balances by rotation; it only collapses
// chains of single-child nodes"). Repeated until the tree is stable.
func (mf *MappedFile) rebalance() {
	if mf.root == nodepool.NoIndex {
		return
	}
	for mf.collapseOnce(mf.root) {
	}
}

// collapseOnce performs one post-order sweep, returning true if any
// collapse happened (so the caller can sweep again).
func (mf *MappedFile) collapseOnce(idx nodepool.Index) bool {
	n := mf.pool.Get(idx)
	if n.isLeaf() {
		return false
	}
	changed := false
	if n.left != nodepool.NoIndex {
		changed = mf.collapseOnce(n.left) || changed
	}
	if n.right != nodepool.NoIndex {
		changed = mf.collapseOnce(n.right) || changed
	}

	n = mf.pool.Get(idx)
	var only nodepool.Index = nodepool.NoIndex
	switch {
	case n.left != nodepool.NoIndex && n.right == nodepool.NoIndex:
		only = n.left
	case n.left == nodepool.NoIndex && n.right != nodepool.NoIndex:
		only = n.right
	default:
		return changed
	}

	parent := n.parent
	mf.pool.Get(only).parent = parent
	if parent == nodepool.NoIndex {
		mf.root = only
	} else {
		p := mf.pool.Get(parent)
		if p.left == idx {
			p.left = only
		} else {
			p.right = only
		}
	}
	mf.pool.Release(idx)
	return true
}
