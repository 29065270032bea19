// Package indexer implements the background line-count indexer (§5
// "two background worker roles: syncer and indexer"): it walks a
// Buffer counting newlines and publishes the result into the
// buffer's LineIndex, yielding the buffer lock periodically while the
// user is actively editing.
package indexer

import (
	"time"

	"go.uber.org/zap"

	"textcore/buffer"
	"textcore/internal/docregistry"
)

// yieldInterval is how long the indexer sleeps after each chunk while
// the user is active, to avoid starving the editor core (§5 "sleeps
// ~16ms when the user is active").
const yieldInterval = 16 * time.Millisecond

// chunkSize is how many bytes the indexer reads per Buffer.Read call.
const chunkSize = 64 * 1024

// Run walks buf counting newlines and calls buf's LineIndex with the
// result, returning early if abort is closed. recentActivity reports
// whether the caller considers the user "active" right now; when true,
// Run sleeps yieldInterval between chunks instead of running flat out.
func Run(buf *buffer.Buffer, abort <-chan struct{}, recentActivity func() bool, logger *zap.SugaredLogger) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	entry, ok := docregistry.Get(buf.ID())
	if !ok {
		return
	}
	li, ok := entry.(*buffer.LineIndex)
	if !ok {
		return
	}

	var lines int
	var offset int64
	size := buf.Size()
	data := make([]byte, chunkSize)

	for offset < size {
		select {
		case <-abort:
			logger.Debugw("indexer aborted", "buffer", buf.Name())
			return
		default:
		}

		n := buf.Read(offset, chunkSize, data)
		if n == 0 {
			break
		}
		for _, b := range data[:n] {
			if b == '\n' {
				lines++
			}
		}
		offset += int64(n)

		if recentActivity != nil && recentActivity() {
			time.Sleep(yieldInterval)
		}
	}

	li.SetLineCount(lines)
	logger.Debugw("indexed line count", "buffer", buf.Name(), "lines", lines)
}
