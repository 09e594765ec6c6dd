package scanner

import (
	"sync"
	"sync/atomic"
)

// Registry is the shared collection of discovered cruft directories.
// The walker appends while the UI snapshots, so the entry slice is only
// touched under the mutex and never handed out directly. The progress
// counters are atomics; the walker bumps them on the hot path without
// taking the lock.
type Registry struct {
	mu      sync.Mutex
	entries []Entry

	scanned  atomic.Int64
	warnings atomic.Int64
	complete atomic.Bool
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Append adds a discovered entry. Only the walker calls this.
func (r *Registry) Append(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

// Snapshot returns a copy of the current entries in discovery order.
func (r *Registry) Snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Remove drops the entry with the given path, reporting whether it was
// present.
func (r *Registry) Remove(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.Path == path {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of entries currently held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) AddScanned(n int64) { r.scanned.Add(n) }

// Scanned returns how many filesystem entries the walk has visited.
func (r *Registry) Scanned() int64 { return r.scanned.Load() }

func (r *Registry) AddWarnings(n int64) { r.warnings.Add(n) }

// Warnings returns how many entries were skipped as unreadable.
func (r *Registry) Warnings() int64 { return r.warnings.Load() }

// MarkComplete records that the walk has finished.
func (r *Registry) MarkComplete() { r.complete.Store(true) }

// Complete reports whether the walk has finished.
func (r *Registry) Complete() bool { return r.complete.Load() }
