package mappedfile

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"textcore/internal/nodepool"
)

// SyncToDisk writes the current tree content to tmpPath and atomically
// renames it over finalPath (§4.2 "sync_to_disk"). On success every
// OnDisk leaf's on_disk_offset/skip is recomputed against the new file
// and all leaves adopt the new fd; COW leaves lose their OnDisk
// identity entirely (they keep their in-RAM bytes as the source of
// truth until touched again). On any failure the original file is left
// untouched because the rename only happens after a fully successful
// write, and the original fd stays open throughout.
func (mf *MappedFile) SyncToDisk(tmpPath, finalPath string) error {
	tmp, err := os.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, "create %s", tmpPath)
	}

	type span struct {
		leaf nodepool.Index
		off  int64
	}
	var spans []span
	var seq int64

	if mf.root != nodepool.NoIndex {
		leaf := mf.leftmostLeaf(mf.root)
		for leaf != nodepool.NoIndex {
			n := mf.pool.Get(leaf)
			p, err := mf.leafPage(leaf)
			if err != nil {
				tmp.Close()
				return err
			}
			if _, err := tmp.Write(p.Slice()); err != nil {
				mf.unmapLeaf(leaf)
				tmp.Close()
				return errors.Wrapf(err, "write %s", tmpPath)
			}
			mf.unmapLeaf(leaf)
			spans = append(spans, span{leaf: leaf, off: seq})
			seq += n.size
			leaf = n.next
		}
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "fsync tmp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close tmp file")
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		return errors.Wrapf(err, "rename %s -> %s", tmpPath, finalPath)
	}

	newFile, err := os.OpenFile(finalPath, os.O_RDWR, 0)
	if err != nil {
		return errors.Wrapf(err, "reopen %s", finalPath)
	}
	oldFile := mf.file
	mf.file = newFile
	mf.fd = int(newFile.Fd())

	for _, s := range spans {
		n := mf.pool.Get(s.leaf)
		if n.cow != nil {
			// In-RAM leaves remain in-RAM; their bytes are already
			// authoritative, no reason to reassociate with the file.
			continue
		}
		n.onDiskOffset = alignDown(s.off, int64(hostPageSize))
		n.skip = int(s.off % int64(hostPageSize))
	}

	if oldFile != nil {
		oldFile.Close()
	}
	mf.checkDebugInvariants()
	return nil
}

// WriteAll is a convenience used by tests and callers that just want the
// current content without going through SyncToDisk's rename dance.
func (mf *MappedFile) WriteAll(w io.Writer) error {
	if mf.root == nodepool.NoIndex {
		return nil
	}
	leaf := mf.leftmostLeaf(mf.root)
	for leaf != nodepool.NoIndex {
		n := mf.pool.Get(leaf)
		p, err := mf.leafPage(leaf)
		if err != nil {
			return err
		}
		_, err = w.Write(p.Slice())
		mf.unmapLeaf(leaf)
		if err != nil {
			return err
		}
		leaf = n.next
	}
	return nil
}
