package mappedfile

import (
	"fmt"

	"textcore/internal/nodepool"
)

// DebugChecks turns on a CheckInvariants pass after every tree mutation
// (Insert, Remove, SyncToDisk). It defaults to false since walking the
// whole tree on every edit is O(n); debug builds and tests set it to
// true to catch corruption at the point it's introduced rather than
// whenever it happens to surface.
var DebugChecks = false

// checkDebugInvariants runs CheckInvariants when DebugChecks is set and
// panics on a violation: a corrupt piece tree is unrecoverable, so
// returning the error up through the call stack would just let callers
// keep operating on bad state.
func (mf *MappedFile) checkDebugInvariants() {
	if !DebugChecks {
		return
	}
	if err := mf.CheckInvariants(); err != nil {
		panic(fmt.Sprintf("mappedfile: invariant violation: %v", err))
	}
}

// CheckInvariants walks the tree from the root and verifies §3's
// invariants: every used node is visited exactly once, parent/child
// pointers are mutually consistent, size == left.size+right.size at
// every internal node, and the leaf list (traversed via next) covers
// exactly Size() bytes. Intended for debug builds and tests; a failure
// here indicates piece-tree corruption, which SPEC_FULL.md §7 treats as
// a fatal, unrecoverable condition.
func (mf *MappedFile) CheckInvariants() error {
	if mf.root == nodepool.NoIndex {
		if mf.Size() != 0 {
			return fmt.Errorf("empty root but Size()=%d", mf.Size())
		}
		return nil
	}

	visited := make(map[nodepool.Index]bool)
	var walk func(idx, parent nodepool.Index) (int64, error)
	walk = func(idx, parent nodepool.Index) (int64, error) {
		if visited[idx] {
			return 0, fmt.Errorf("node %d visited twice", idx)
		}
		visited[idx] = true
		n := mf.pool.Get(idx)
		if n.parent != parent {
			return 0, fmt.Errorf("node %d parent=%d want %d", idx, n.parent, parent)
		}
		if n.isLeaf() {
			return n.size, nil
		}
		if n.left == nodepool.NoIndex && n.right == nodepool.NoIndex {
			return 0, fmt.Errorf("internal node %d has no children", idx)
		}
		var total int64
		if n.left != nodepool.NoIndex {
			sz, err := walk(n.left, idx)
			if err != nil {
				return 0, err
			}
			total += sz
		}
		if n.right != nodepool.NoIndex {
			sz, err := walk(n.right, idx)
			if err != nil {
				return 0, err
			}
			total += sz
		}
		if total != n.size {
			return 0, fmt.Errorf("node %d size=%d, computed=%d", idx, n.size, total)
		}
		return total, nil
	}

	total, err := walk(mf.root, nodepool.NoIndex)
	if err != nil {
		return err
	}
	if total != mf.Size() {
		return fmt.Errorf("root size=%d, leaf sum=%d", mf.Size(), total)
	}

	// Leaf list must traverse left-to-right and cover every byte exactly
	// once, with the first leaf having prev==NoIndex and the last next==NoIndex.
	first := mf.leftmostLeaf(mf.root)
	last := mf.rightmostLeaf(mf.root)
	if mf.pool.Get(first).prev != nodepool.NoIndex {
		return fmt.Errorf("first leaf %d has non-nil prev", first)
	}
	if mf.pool.Get(last).next != nodepool.NoIndex {
		return fmt.Errorf("last leaf %d has non-nil next", last)
	}

	var sum int64
	leaf := first
	count := 0
	for leaf != nodepool.NoIndex {
		n := mf.pool.Get(leaf)
		if !n.isLeaf() {
			return fmt.Errorf("non-leaf %d found in leaf list", leaf)
		}
		sum += n.size
		count++
		if count > mf.pool.Len()+1 {
			return fmt.Errorf("leaf list cycle detected")
		}
		leaf = n.next
	}
	if sum != mf.Size() {
		return fmt.Errorf("leaf list sum=%d, Size()=%d", sum, mf.Size())
	}

	var leafErr error
	mf.pool.Walk(func(idx nodepool.Index) {
		if !visited[idx] {
			leafErr = fmt.Errorf("node %d is used but unreachable from root", idx)
		}
	})
	return leafErr
}
