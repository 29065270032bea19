// Package buffer implements Buffer (SPEC_FULL.md §4.4): a MappedFile
// wrapped with a single-window read cache, an append-only BufferLog for
// undo/redo, and change notifications for interested observers (marks,
// views, background indexers).
package buffer

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"textcore/internal/bufferlog"
	"textcore/internal/docregistry"
	"textcore/internal/mappedfile"
)

// Mode selects whether mutating methods are permitted.
type Mode int

const (
	ReadWrite Mode = iota
	ReadOnly
)

// BufferBuilder configures and opens a Buffer (§4.4, `BufferBuilder`).
type BufferBuilder struct {
	Name   string
	Path   string
	Mode   Mode
	UseLog bool

	PageSize int // defaults to 4096 when zero or negative
	Logger   *zap.SugaredLogger
}

// Build opens Path via mappedfile.Open and returns a ready Buffer.
func (b BufferBuilder) Build() (*Buffer, error) {
	pageSize := b.PageSize
	if pageSize <= 0 {
		pageSize = 4096
	}
	mf, err := mappedfile.Open(b.Path, pageSize)
	if err != nil {
		return nil, errors.Wrapf(err, "open buffer %s", b.Path)
	}

	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	buf := &Buffer{
		id:       uuid.New(),
		name:     b.Name,
		path:     b.Path,
		mf:       mf,
		readOnly: b.Mode == ReadOnly,
		useLog:    b.UseLog,
		nrChanges: newChangeCounter(),
		logger:    logger.With("buffer", b.Name),
	}
	if buf.useLog {
		buf.log = bufferlog.New()
	}
	buf.lineIndex = &LineIndex{stale: true}
	docregistry.Init(buf.id, func() docregistry.Entry {
		return buf.lineIndex
	})
	return buf, nil
}

// Buffer is a MappedFile plus the bookkeeping layered on top of it: a
// read cache, an operation log, and a change counter observers can poll
// or subscribe to.
type Buffer struct {
	mu sync.RWMutex

	id   uuid.UUID
	name string
	path string

	mf       *mappedfile.MappedFile
	readOnly bool
	useLog   bool
	log      *bufferlog.Log

	cache     readCache
	nrChanges *ChangeCounter
	changed   bool

	lineIndex *LineIndex
	logger    *zap.SugaredLogger
}

// ID returns the buffer's identity, the key into the document metadata
// registry (§9).
func (b *Buffer) ID() uuid.UUID { return b.id }

// Name returns the buffer's display name.
func (b *Buffer) Name() string { return b.name }

// Path returns the backing file path.
func (b *Buffer) Path() string { return b.path }

// Changed reports whether any mutation has happened since open or the
// last successful SyncToDisk.
func (b *Buffer) Changed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.changed
}

// Size returns the current byte length of the buffer's content.
func (b *Buffer) Size() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.mf.Size()
}

// NrChanges returns the mutation counter; callers poll Peek or call
// Subscribe for change notifications.
func (b *Buffer) NrChanges() *ChangeCounter { return b.nrChanges }

// Read serves dst[:n] from offset, using the read cache when it covers
// the range and its revision matches nr_changes, falling through to the
// MappedFile otherwise.
func (b *Buffer) Read(offset int64, n int, dst []byte) int {
	b.mu.RLock()
	if b.cache.valid && b.cache.revision == b.nrChanges.Peek() && b.cache.covers(offset, n) {
		copied := b.cache.copyFrom(offset, n, dst)
		b.mu.RUnlock()
		return copied
	}
	b.mu.RUnlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	it := b.mf.IterFrom(offset)
	defer it.Close()
	return b.mf.Read(it, n, dst)
}

// Insert splices data into the buffer at offset, invalidating the read
// cache, logging an Insert entry (if logging is enabled), and bumping
// nr_changes.
func (b *Buffer) Insert(offset int64, data []byte) error {
	if b.readOnly {
		return errors.Errorf("buffer %s is read-only", b.name)
	}
	if len(data) == 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.rawInsert(offset, data); err != nil {
		return err
	}
	if b.useLog {
		logged := append([]byte(nil), data...)
		b.log.Add(bufferlog.Entry{Op: bufferlog.Insert, Offset: offset, Data: logged})
	}
	b.logger.Debugw("insert", "offset", offset, "size", len(data))
	return nil
}

// Remove deletes n bytes at offset, returning the removed bytes so the
// caller (or the log) can hold onto them.
func (b *Buffer) Remove(offset int64, n int64) ([]byte, error) {
	if b.readOnly {
		return nil, errors.Errorf("buffer %s is read-only", b.name)
	}
	if n <= 0 {
		return nil, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	removed := make([]byte, n)
	it := b.mf.IterFrom(offset)
	got := b.mf.Read(it, int(n), removed)
	it.Close()
	removed = removed[:got]

	if err := b.rawRemove(offset, int64(got)); err != nil {
		return nil, err
	}
	if b.useLog {
		b.log.Add(bufferlog.Entry{Op: bufferlog.Remove, Offset: offset, Data: removed})
	}
	b.logger.Debugw("remove", "offset", offset, "size", got)
	return removed, nil
}

// Tag appends a Tag entry snapshotting markOffsets so a later undo can
// restore cursor state along with buffer bytes (§4.3).
func (b *Buffer) Tag(time int64, markOffsets []int64) {
	if !b.useLog {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log.Add(bufferlog.Entry{Op: bufferlog.Tag, Time: time, MarkOffsets: append([]int64(nil), markOffsets...)})
}

// Undo applies the inverse of the most recent logged entry without
// re-logging it, returning the offset the caller should anchor its main
// mark to.
func (b *Buffer) Undo() (int64, bool, error) {
	if !b.useLog {
		return 0, false, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.log.Undo()
	if !ok {
		return 0, false, nil
	}
	off, err := b.apply(e)
	return off, true, err
}

// Redo applies the next logged entry forward without re-logging it.
func (b *Buffer) Redo() (int64, bool, error) {
	if !b.useLog {
		return 0, false, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.log.Redo()
	if !ok {
		return 0, false, nil
	}
	off, err := b.apply(e)
	return off, true, err
}

// UndoUntilTag replays undo until the previous Tag entry, returning the
// mark offsets from that tag (if any) so the caller can restore cursors.
func (b *Buffer) UndoUntilTag() ([]int64, error) {
	if !b.useLog {
		return nil, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var firstErr error
	b.log.UndoUntilTag(func(e bufferlog.Entry) bool {
		if _, err := b.apply(e); err != nil {
			firstErr = err
			return false
		}
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	offsets, _ := b.log.GetTagOffsets()
	return offsets, nil
}

// RedoUntilTag mirrors UndoUntilTag for redo.
func (b *Buffer) RedoUntilTag() ([]int64, error) {
	if !b.useLog {
		return nil, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var firstErr error
	b.log.RedoUntilTag(func(e bufferlog.Entry) bool {
		if _, err := b.apply(e); err != nil {
			firstErr = err
			return false
		}
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	offsets, _ := b.log.GetTagOffsets()
	return offsets, nil
}

// apply replays a logged entry's effect on the MappedFile without
// touching the log, returning the offset to anchor the main mark at.
// Called with b.mu already held.
func (b *Buffer) apply(e bufferlog.Entry) (int64, error) {
	switch e.Op {
	case bufferlog.Insert:
		if err := b.rawInsert(e.Offset, e.Data); err != nil {
			return 0, err
		}
		return e.Offset + int64(len(e.Data)), nil
	case bufferlog.Remove:
		if err := b.rawRemove(e.Offset, int64(len(e.Data))); err != nil {
			return 0, err
		}
		return e.Offset, nil
	default: // Tag: no buffer mutation
		return e.Offset, nil
	}
}

func (b *Buffer) rawInsert(offset int64, data []byte) error {
	it := b.mf.IterFrom(offset)
	err := b.mf.Insert(it, data)
	it.Close()
	if err != nil {
		return errors.Wrap(err, "buffer insert")
	}
	b.cache.invalidate()
	b.bumpChanges()
	return nil
}

func (b *Buffer) rawRemove(offset, n int64) error {
	it := b.mf.IterFrom(offset)
	err := b.mf.Remove(it, n)
	it.Close()
	if err != nil {
		return errors.Wrap(err, "buffer remove")
	}
	b.cache.invalidate()
	b.bumpChanges()
	return nil
}

func (b *Buffer) bumpChanges() {
	b.changed = true
	b.lineIndex.MarkStale()
	b.nrChanges.Set(b.nrChanges.Peek() + 1)
}

// LineCount returns the indexer's last computed line count and whether
// it is still fresh with respect to the buffer's current content.
func (b *Buffer) LineCount() (int, bool) {
	n, stale := b.lineIndex.LineCount()
	return n, !stale
}

// SetCache primes the read cache with n bytes starting at offset,
// overwriting whatever window it currently holds.
func (b *Buffer) SetCache(offset int64, n int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	data := make([]byte, n)
	it := b.mf.IterFrom(offset)
	got := b.mf.Read(it, n, data)
	it.Close()
	b.cache.set(offset, data[:got], b.nrChanges.Peek())
	return nil
}

// Readahead is an alias for SetCache kept to mirror the
// `Buffer::readahead` name used by SPEC_FULL.md §4.4.
func (b *Buffer) Readahead(offset int64, n int) error {
	return b.SetCache(offset, n)
}

// Find does a linear forward byte-pattern search starting at offset,
// reading in windowed chunks so it never materializes the whole buffer.
// Returns -1 if pattern is not found before EOF.
func (b *Buffer) Find(offset int64, pattern []byte) int64 {
	if len(pattern) == 0 {
		return offset
	}
	const window = 64 * 1024
	buf := make([]byte, window+len(pattern)-1)

	b.mu.RLock()
	size := b.mf.Size()
	b.mu.RUnlock()

	for pos := offset; pos < size; pos += window {
		n := window + len(pattern) - 1
		if int64(n) > size-pos {
			n = int(size - pos)
		}
		got := b.Read(pos, n, buf[:n])
		idx := indexOf(buf[:got], pattern)
		if idx >= 0 {
			return pos + int64(idx)
		}
	}
	return -1
}

func indexOf(haystack, needle []byte) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// Close releases the backing MappedFile and tears down this buffer's
// entry in the document metadata registry (§9).
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	docregistry.Teardown(b.id)
	return b.mf.Close()
}

// SyncToDisk flushes the buffer's content to finalPath via an atomic
// rename through tmpPath (MappedFile::sync_to_disk, §4.2).
func (b *Buffer) SyncToDisk(tmpPath, finalPath string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.mf.SyncToDisk(tmpPath, finalPath); err != nil {
		return err
	}
	b.path = finalPath
	b.changed = false
	return nil
}

// LineIndex is the per-document metadata registered for every buffer
// (§9 "Global mutable state"): a line-count overlay populated lazily by
// the indexer. Left minimal here — it is a hook point, not a full
// line-index implementation.
type LineIndex struct {
	mu        sync.Mutex
	lineCount int
	stale     bool
}

// MarkStale flags the line count as needing recomputation after an edit.
func (li *LineIndex) MarkStale() {
	li.mu.Lock()
	defer li.mu.Unlock()
	li.stale = true
}

// SetLineCount records a freshly computed line count.
func (li *LineIndex) SetLineCount(n int) {
	li.mu.Lock()
	defer li.mu.Unlock()
	li.lineCount = n
	li.stale = false
}

// LineCount returns the last computed line count and whether it is
// stale with respect to the buffer's current content.
func (li *LineIndex) LineCount() (int, bool) {
	li.mu.Lock()
	defer li.mu.Unlock()
	return li.lineCount, li.stale
}
