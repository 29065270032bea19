// Package syncer implements the background sync-to-disk worker (§5
// "two background worker roles: syncer and indexer"): it schedules a
// best-effort periodic flush of a Buffer to disk via the same
// tmp-then-rename path Buffer.SyncToDisk uses.
package syncer

import (
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"textcore/buffer"
)

// Target is one buffer the syncer keeps flushing, with the tmp/final
// paths SyncToDisk needs.
type Target struct {
	Buffer    *buffer.Buffer
	TmpPath   string
	FinalPath string
}

// Worker runs a cron schedule that calls SyncToDisk on every
// registered Target, skipping any buffer that hasn't changed since its
// last flush.
type Worker struct {
	mu      sync.Mutex
	targets map[string]*Target

	cron   *cron.Cron
	logger *zap.SugaredLogger
}

// New returns a Worker on the given cron spec (e.g. "@every 5s"),
// logging via logger (a nop logger if nil).
func New(spec string, logger *zap.SugaredLogger) (*Worker, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	w := &Worker{
		targets: make(map[string]*Target),
		cron:    cron.New(),
		logger:  logger,
	}
	if _, err := w.cron.AddFunc(spec, w.tick); err != nil {
		return nil, err
	}
	return w, nil
}

// Register adds or replaces the sync target for a buffer id.
func (w *Worker) Register(id string, t *Target) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.targets[id] = t
}

// Unregister stops flushing a buffer id.
func (w *Worker) Unregister(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.targets, id)
}

// Start begins the cron schedule in the background.
func (w *Worker) Start() { w.cron.Start() }

// Stop halts the schedule and waits for the in-flight tick to finish.
func (w *Worker) Stop() { <-w.cron.Stop().Done() }

func (w *Worker) tick() {
	w.mu.Lock()
	targets := make([]*Target, 0, len(w.targets))
	for _, t := range w.targets {
		targets = append(targets, t)
	}
	w.mu.Unlock()

	for _, t := range targets {
		if !t.Buffer.Changed() {
			continue
		}
		if err := t.Buffer.SyncToDisk(t.TmpPath, t.FinalPath); err != nil {
			w.logger.Warnw("sync to disk failed", "path", t.FinalPath, "error", err)
			continue
		}
		w.logger.Debugw("synced to disk", "path", t.FinalPath)
	}
}
