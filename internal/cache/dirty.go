package cache

import (
	"sync"

	"PulseBoard/internal/domain/models"
)

// DirtyTracker remembers which cache entries changed since their last
// successful flush. Each mark bumps a per-entry generation; the flusher
// snapshots generations, writes, and clears an entry only if its generation
// is unchanged, so a write that lands mid-flush stays dirty.
type DirtyTracker struct {
	mu    sync.Mutex
	kinds map[models.Kind]map[string]uint64
}

func NewDirtyTracker() *DirtyTracker {
	return &DirtyTracker{kinds: make(map[models.Kind]map[string]uint64)}
}

// MarkDirty flags key under kind. Marking an already-dirty key bumps its
// generation so an in-flight flush will not clear it.
func (d *DirtyTracker) MarkDirty(kind models.Kind, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	entries := d.kinds[kind]
	if entries == nil {
		entries = make(map[string]uint64)
		d.kinds[kind] = entries
	}
	entries[key]++
}

// Snapshot returns the dirty keys of kind with their current generations.
// It does not clear anything.
func (d *DirtyTracker) Snapshot(kind models.Kind) map[string]uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	entries := d.kinds[kind]
	if len(entries) == 0 {
		return nil
	}
	out := make(map[string]uint64, len(entries))
	for key, gen := range entries {
		out[key] = gen
	}
	return out
}

// ClearIfUnchanged removes key from the dirty set only if its generation
// still equals gen. Returns false when the entry was re-marked meanwhile.
func (d *DirtyTracker) ClearIfUnchanged(kind models.Kind, key string, gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	entries := d.kinds[kind]
	if entries == nil {
		return false
	}
	cur, ok := entries[key]
	if !ok || cur != gen {
		return false
	}
	delete(entries, key)
	return true
}

// Depth returns the number of dirty keys under kind.
func (d *DirtyTracker) Depth(kind models.Kind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.kinds[kind])
}
