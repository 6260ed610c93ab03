// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package syncpoint

import (
	"sort"
	"sync"
)

// Ledger is a per-layer ordered list of sync points, ascending by
// target frame number.
//
// The composition thread scans it while deciding a latch; transaction
// threads add points concurrently. All operations take the ledger
// mutex only for the duration of one bounded scan.
type Ledger struct {
	registry *Registry

	mu       sync.Mutex
	points   []*Point
	unsorted bool
}

// NewLedger creates an empty ledger resolving requesters through reg.
// reg may be nil when no cross-layer notification is needed.
func NewLedger(reg *Registry) *Ledger {
	return &Ledger{registry: reg}
}

// Add inserts a point, keeping the ledger ordered by target frame.
//
// Callers are expected to add points in ascending target order; a
// duplicate or out-of-order target is a caller bug. Debug builds
// (compositordebug tag) fail fast; release builds record the ledger as
// dirty and re-sort defensively before the next scan.
func (l *Ledger) Add(p *Point) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n := len(l.points); n > 0 && p.TargetFrame() <= l.points[n-1].TargetFrame() {
		assertf(false, "syncpoint: out-of-order insert: target %d after %d",
			p.TargetFrame(), l.points[n-1].TargetFrame())
		l.unsorted = true
	}
	l.points = append(l.points, p)
}

// NotifyFrameAvailable marks every point whose target frame is at or
// below head as available, provided the head fence has signaled and
// the frame's present time is current. Requesters that still resolve
// are flagged for a transaction-apply re-evaluation.
func (l *Ledger) NotifyFrameAvailable(head uint64, fenceSignaled, presentTimeCurrent bool) {
	if !fenceSignaled || !presentTimeCurrent {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensureOrdered()

	for _, p := range l.points {
		if p.TargetFrame() > head {
			break
		}
		p.SetFrameAvailable()
		l.invalidateRequester(p)
	}
}

// AllSatisfiedUpTo scans the points governing the head frame and
// reports whether the latch may proceed.
//
// The first point found with the frame not yet marked available is
// marked available now and the scan aborts: the downstream dependent
// must be unblocked in frame-number order before this layer's own
// buffer advances past it. A point whose frame is available but whose
// transaction has not applied defers the latch as well.
func (l *Ledger) AllSatisfiedUpTo(head uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensureOrdered()

	matched := false
	allApplied := true
	for _, p := range l.points {
		if p.TargetFrame() > head {
			break
		}
		matched = true

		if !p.FrameAvailable() {
			// The dependent has not been told its frame exists yet.
			// Tell it now and abort this latch attempt.
			p.SetFrameAvailable()
			allApplied = false
			break
		}
		allApplied = allApplied && p.TransactionApplied()
	}
	return !matched || allApplied
}

// Prune removes points with target frame at or below frame whose both
// conditions hold. Points added since the latch began keep their place.
func (l *Ledger) Prune(frame uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.points[:0]
	for _, p := range l.points {
		if p.satisfied() && p.TargetFrame() <= frame {
			continue
		}
		kept = append(kept, p)
	}
	clearTail(l.points, len(kept))
	l.points = kept
}

// ForceSatisfyAll marks every remaining point's frame available,
// notifies requesters that still resolve, and removes all points.
//
// Called on producer disconnect. This is the only path that removes
// points without both conditions naturally becoming true; it exists so
// no waiter can block on a layer that will never produce again.
func (l *Ledger) ForceSatisfyAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.points {
		p.SetFrameAvailable()
		l.invalidateRequester(p)
	}
	clearTail(l.points, 0)
	l.points = l.points[:0]
}

// Len returns the number of pending points.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.points)
}

// Snapshot returns the pending points in ledger order.
func (l *Ledger) Snapshot() []*Point {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensureOrdered()
	out := make([]*Point, len(l.points))
	copy(out, l.points)
	return out
}

// invalidateRequester flags the point's requesting layer, if it still
// exists. A failed lookup means the layer is gone; nothing to do.
// Must be called with the ledger mutex held.
func (l *Ledger) invalidateRequester(p *Point) {
	if l.registry == nil {
		return
	}
	if req := l.registry.Resolve(p.Requester()); req != nil {
		req.InvalidateTransaction()
	}
}

// ensureOrdered restores ascending target order after a release-build
// ordering violation. Must be called with the ledger mutex held.
func (l *Ledger) ensureOrdered() {
	if !l.unsorted {
		return
	}
	sort.SliceStable(l.points, func(i, j int) bool {
		return l.points[i].TargetFrame() < l.points[j].TargetFrame()
	})
	l.unsorted = false
}

// clearTail nils the slice tail past n so retired points are not kept
// alive by the backing array.
func clearTail(points []*Point, n int) {
	for i := n; i < len(points); i++ {
		points[i] = nil
	}
}
