// control/registry.go
// Author: momentics <momentics@gmail.com>
//
// Registry of live controller-owned threads plus lifecycle counters.
// The thread entry procedure registers itself here before running user
// code and deregisters on the way out, so diagnostics can enumerate
// every live worker by name.

package control

import (
	"sync"
	"time"
)

// ThreadInfo describes one registered thread.
type ThreadInfo struct {
	ID      uint64
	Name    string
	TID     int
	Started time.Time
}

// Counters is a snapshot of lifecycle accounting.
type Counters struct {
	Started  uint64
	Finished uint64
	Killed   uint64
}

// Registry holds live thread records and mutable counters.
type Registry struct {
	mu       sync.RWMutex
	nextID   uint64
	threads  map[uint64]ThreadInfo
	counters Counters
	updated  time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		threads: make(map[uint64]ThreadInfo),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by controllers that were
// not given one explicitly.
func Default() *Registry {
	return defaultRegistry
}

// Register records a live thread and returns its registry id.
func (r *Registry) Register(name string, tid int) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.threads[id] = ThreadInfo{
		ID:      id,
		Name:    name,
		TID:     tid,
		Started: time.Now(),
	}
	r.counters.Started++
	r.updated = time.Now()
	return id
}

// Deregister removes a thread record after its work routine returned.
func (r *Registry) Deregister(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.threads[id]; !ok {
		return
	}
	delete(r.threads, id)
	r.counters.Finished++
	r.updated = time.Now()
}

// MarkKilled removes a thread record after forced termination.
func (r *Registry) MarkKilled(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.threads[id]; !ok {
		return
	}
	delete(r.threads, id)
	r.counters.Killed++
	r.updated = time.Now()
}

// Snapshot returns the currently registered threads.
func (r *Registry) Snapshot() []ThreadInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ThreadInfo, 0, len(r.threads))
	for _, info := range r.threads {
		out = append(out, info)
	}
	return out
}

// GetCounters returns the latest lifecycle counters.
func (r *Registry) GetCounters() Counters {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.counters
}

// Live returns the number of currently registered threads.
func (r *Registry) Live() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.threads)
}
