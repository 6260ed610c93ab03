// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package syncpoint

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Point is a single cross-layer dependency: the frame the producing
// layer must reach, and the two conditions that must both hold before
// the point can be retired.
//
// The flags only ever transition from false to true.
type Point struct {
	target    uint64
	requester uuid.UUID

	frameAvailable     atomic.Bool
	transactionApplied atomic.Bool
}

// NewPoint creates a point targeting the given frame number on behalf
// of the requesting layer.
func NewPoint(targetFrame uint64, requester uuid.UUID) *Point {
	return &Point{target: targetFrame, requester: requester}
}

// TargetFrame returns the frame number the producing layer must reach.
func (p *Point) TargetFrame() uint64 { return p.target }

// Requester returns the ID of the layer that registered the
// dependency. Resolve it through a Registry; the reference is weak.
func (p *Point) Requester() uuid.UUID { return p.requester }

// FrameAvailable reports whether the target frame has been seen.
func (p *Point) FrameAvailable() bool { return p.frameAvailable.Load() }

// SetFrameAvailable marks the target frame as seen.
func (p *Point) SetFrameAvailable() { p.frameAvailable.Store(true) }

// TransactionApplied reports whether the dependent transaction has
// committed.
func (p *Point) TransactionApplied() bool { return p.transactionApplied.Load() }

// SetTransactionApplied marks the dependent transaction as committed.
func (p *Point) SetTransactionApplied() { p.transactionApplied.Store(true) }

// satisfied reports whether the point can be retired.
func (p *Point) satisfied() bool {
	return p.frameAvailable.Load() && p.transactionApplied.Load()
}
