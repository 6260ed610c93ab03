// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package syncpoint

import (
	"sync"

	"github.com/google/uuid"
)

// Requester is the narrow view the ledger has of a layer that
// registered a dependency. InvalidateTransaction flags the layer as
// owing a transaction-apply re-evaluation; it must be cheap and must
// not call back into the ledger.
type Requester interface {
	InvalidateTransaction()
}

// Registry resolves layer IDs to live requesters. It is the weak side
// of the layer/sync-point relation: a point holds only an ID, and a
// lookup that misses means the layer is gone and the dependency is
// treated as already satisfied.
type Registry struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]Requester
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[uuid.UUID]Requester)}
}

// Register adds or replaces the requester for id.
func (r *Registry) Register(id uuid.UUID, req Requester) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[uuid.UUID]Requester)
	}
	r.entries[id] = req
}

// Unregister removes id. Safe to call for an unknown id.
func (r *Registry) Unregister(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Resolve returns the live requester for id, or nil when the layer has
// been torn down.
func (r *Registry) Resolve(id uuid.UUID) Requester {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[id]
}

// Len returns the number of registered requesters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
