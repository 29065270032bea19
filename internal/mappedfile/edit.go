package mappedfile

import (
	"textcore/internal/nodepool"
	"textcore/internal/page"
)

// bumpAncestors adds delta to the size of idx and every ancestor up to
// the root, keeping the "size == left.size + right.size" invariant.
func (mf *MappedFile) bumpAncestors(idx nodepool.Index, delta int64) {
	for idx != nodepool.NoIndex {
		n := mf.pool.Get(idx)
		n.size += delta
		idx = n.parent
	}
}

// Insert splices data into the tree at the iterator's current position
// (§4.2 "insert"). If the target leaf is in-RAM with enough spare
// capacity the bytes are spliced in place; otherwise a balanced subtree
// replaces the leaf. it is repositioned to just past the end of the
// inserted bytes and remains valid.
func (mf *MappedFile) Insert(it *Iterator, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	var err error
	switch {
	case it.eof:
		// Insert at EOF: append a new leaf at the end of the list.
		err = mf.insertAtEOF(it, data)
	default:
		leaf := it.leaf
		if err = mf.promoteCOW(leaf, mf.subPageReserve); err != nil {
			return err
		}
		n := mf.pool.Get(leaf)

		if n.cow.Free() >= len(data) {
			n.cow.InsertAt(int(it.local), data)
			n.size += int64(len(data))
			mf.bumpAncestors(n.parent, int64(len(data)))
			it.local += int64(len(data))
			it.off += int64(len(data))
		} else {
			err = mf.splitInsert(it, data)
		}
	}
	if err == nil {
		mf.checkDebugInvariants()
	}
	return err
}

// splitInsert builds a fresh balanced subtree holding [before][data][after]
// and splices it in place of the old leaf (§4.2 step 3).
func (mf *MappedFile) splitInsert(it *Iterator, data []byte) error {
	leaf := it.leaf
	n := mf.pool.Get(leaf)
	full := n.cow.Slice()
	before := append([]byte(nil), full[:it.local]...)
	after := append([]byte(nil), full[it.local:]...)

	combined := make([]byte, 0, len(before)+len(data)+len(after))
	combined = append(combined, before...)
	combined = append(combined, data...)
	combined = append(combined, after...)

	newRoot, firstLeaf, err := mf.buildInRamSubtree(combined)
	if err != nil {
		return err
	}

	prev, next := n.prev, n.next
	parent := n.parent

	mf.spliceSubtree(leaf, newRoot, prev, next, parent)
	mf.releaseNode(leaf)
	mf.pool.Release(leaf)

	// Reposition the iterator just past the inserted bytes.
	newOff := it.off + int64(len(data))
	target, _, local := mf.findNodeByOffset(newOff)
	if target == nodepool.NoIndex {
		it.eof = true
	} else {
		if _, err := mf.leafPage(target); err != nil {
			return err
		}
		it.leaf = target
		it.local = local
	}
	it.off = newOff
	_ = firstLeaf
	return nil
}

// buildInRamSubtree builds a balanced tree of in-RAM leaves sized around
// subPageSize (with subPageReserve spare capacity each) holding data,
// returning the subtree root and its leftmost leaf.
func (mf *MappedFile) buildInRamSubtree(data []byte) (nodepool.Index, nodepool.Index, error) {
	chunkSize := mf.subPageSize
	if chunkSize <= 0 {
		chunkSize = len(data)
	}
	var leaves []nodepool.Index
	for off := 0; off < len(data); off += chunkSize {
		end := off + chunkSize
		if end > len(data) {
			end = len(data)
		}
		idx := mf.pool.Alloc()
		n := mf.pool.Get(idx)
		n.parent, n.left, n.right = nodepool.NoIndex, nodepool.NoIndex, nodepool.NoIndex
		n.prev, n.next = nodepool.NoIndex, nodepool.NoIndex
		n.onDiskOffset = noOffset
		n.cow = page.NewInRam(data[off:end], (end-off)+mf.subPageReserve)
		n.size = int64(end - off)
		leaves = append(leaves, idx)
	}
	if len(leaves) == 0 {
		idx := mf.pool.Alloc()
		n := mf.pool.Get(idx)
		n.onDiskOffset = noOffset
		n.cow = page.NewInRam(nil, mf.subPageReserve)
		leaves = append(leaves, idx)
	}
	for i := 0; i+1 < len(leaves); i++ {
		mf.pool.Get(leaves[i]).next = leaves[i+1]
		mf.pool.Get(leaves[i+1]).prev = leaves[i]
	}
	root := mf.buildBalanced(leaves)
	return root, leaves[0], nil
}

// buildBalanced builds a balanced binary tree over already-constructed
// leaf indices (bottom-up pairwise merge).
func (mf *MappedFile) buildBalanced(leaves []nodepool.Index) nodepool.Index {
	level := leaves
	for len(level) > 1 {
		var next []nodepool.Index
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				continue
			}
			parent := mf.pool.Alloc()
			p := mf.pool.Get(parent)
			p.left, p.right = level[i], level[i+1]
			p.prev, p.next = nodepool.NoIndex, nodepool.NoIndex
			lsz := mf.pool.Get(level[i]).size
			rsz := mf.pool.Get(level[i+1]).size
			p.size = lsz + rsz
			mf.pool.Get(level[i]).parent = parent
			mf.pool.Get(level[i+1]).parent = parent
			next = append(next, parent)
		}
		level = next
	}
	return level[0]
}

// spliceSubtree replaces oldLeaf with newRoot in the tree: relinks the
// parent's child pointer, the prev/next leaf-list boundary, and updates
// ancestor sizes by the subtree's net growth.
func (mf *MappedFile) spliceSubtree(oldLeaf, newRoot, prev, next, parent nodepool.Index) {
	oldSize := mf.pool.Get(oldLeaf).size
	newSize := mf.pool.Get(newRoot).size

	newFirst := mf.leftmostLeaf(newRoot)
	newLast := mf.rightmostLeaf(newRoot)

	if prev != nodepool.NoIndex {
		mf.pool.Get(prev).next = newFirst
	}
	mf.pool.Get(newFirst).prev = prev
	if next != nodepool.NoIndex {
		mf.pool.Get(next).prev = newLast
	}
	mf.pool.Get(newLast).next = next

	if parent == nodepool.NoIndex {
		mf.root = newRoot
		mf.pool.Get(newRoot).parent = nodepool.NoIndex
		return
	}
	p := mf.pool.Get(parent)
	if p.left == oldLeaf {
		p.left = newRoot
	} else {
		p.right = newRoot
	}
	mf.pool.Get(newRoot).parent = parent
	mf.bumpAncestors(parent, newSize-oldSize)
}

// insertAtEOF appends data as a new subtree at the end of the file.
func (mf *MappedFile) insertAtEOF(it *Iterator, data []byte) error {
	newRoot, _, err := mf.buildInRamSubtree(data)
	if err != nil {
		return err
	}
	if mf.root == nodepool.NoIndex {
		mf.root = newRoot
		mf.pool.Get(newRoot).parent = nodepool.NoIndex
	} else {
		lastLeaf := mf.rightmostLeaf(mf.root)
		firstNew := mf.leftmostLeaf(newRoot)
		mf.pool.Get(lastLeaf).next = firstNew
		mf.pool.Get(firstNew).prev = lastLeaf

		parent := mf.pool.Alloc()
		p := mf.pool.Get(parent)
		p.left, p.right = mf.root, newRoot
		p.size = mf.pool.Get(mf.root).size + mf.pool.Get(newRoot).size
		p.prev, p.next = nodepool.NoIndex, nodepool.NoIndex
		mf.pool.Get(mf.root).parent = parent
		mf.pool.Get(newRoot).parent = parent
		mf.root = parent
	}

	// The inserted data now occupies [oldOff, oldOff+len(data)); an EOF
	// insert always leaves the iterator at the (new) EOF, just past it.
	it.off += int64(len(data))
	it.eof = true
	return nil
}
