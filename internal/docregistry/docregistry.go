// Package docregistry holds the process-wide per-document metadata map
// keyed by buffer id (SPEC_FULL.md §9 "Global mutable state"): line-count
// overlays and similar derived data that outlive any single View but must
// be torn down when the owning buffer closes.
package docregistry

import (
	"sync"

	"github.com/google/uuid"
)

// Entry is whatever per-document metadata a caller wants to attach to a
// buffer id. Kept as an empty interface since the registry itself is
// agnostic to what overlays store there.
type Entry interface{}

var (
	mu      sync.RWMutex
	entries = map[uuid.UUID]Entry{}
)

// Init registers make() as the metadata for id, called once when a
// buffer is opened. A second Init for the same id overwrites the prior
// entry without tearing it down; callers are expected to Teardown first.
func Init(id uuid.UUID, make func() Entry) Entry {
	mu.Lock()
	defer mu.Unlock()
	e := make()
	entries[id] = e
	return e
}

// Get returns the metadata registered for id, if any.
func Get(id uuid.UUID) (Entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e, ok
}

// Teardown removes id's metadata, called when the owning buffer closes.
func Teardown(id uuid.UUID) {
	mu.Lock()
	defer mu.Unlock()
	delete(entries, id)
}
