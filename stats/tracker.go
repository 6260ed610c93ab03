// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stats

import (
	"sync"
	"time"

	"github.com/gogpu/compositor/internal/ring"
)

// Skip reasons reported by the latch path.
const (
	// SkipNoFrame means no new frame was pending.
	SkipNoFrame = "no_frame"

	// SkipCompletionPending means the previous latch has not been
	// consumed by the render backend yet.
	SkipCompletionPending = "completion_pending"

	// SkipFencePending means the head frame's acquire fence had not
	// signaled.
	SkipFencePending = "fence_pending"

	// SkipTransaction means a cross-layer sync point deferred the
	// latch.
	SkipTransaction = "transaction"

	// SkipAcquire means the producer failed to hand over the buffer.
	SkipAcquire = "acquire_failed"
)

// FrameRecord is the timing of one latched frame.
type FrameRecord struct {
	// FrameNumber is the producer's frame number.
	FrameNumber uint64

	// LatchTime is when the compositor adopted the frame.
	LatchTime time.Time

	// DesiredPresent is the producer-requested present time.
	DesiredPresent time.Time

	// FrameReady is when the frame became safe to read: the acquire
	// fence signal time, or DesiredPresent when there was no fence.
	FrameReady time.Time

	// ActualPresent is when the frame was observed on screen. Zero
	// until the present fence fires.
	ActualPresent time.Time
}

// Latency returns how far past its desired present time the frame was
// shown. The second result is false while the actual present time is
// unknown.
func (r FrameRecord) Latency() (time.Duration, bool) {
	if r.ActualPresent.IsZero() || r.DesiredPresent.IsZero() {
		return 0, false
	}
	return r.ActualPresent.Sub(r.DesiredPresent), true
}

// defaultHistory is the number of frame records kept per layer.
const defaultHistory = 128

// Tracker accumulates frame timing for one layer.
//
// The composition thread writes records; any goroutine may read the
// history. A Tracker is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	pending FrameRecord
	open    bool
	history *ring.Buffer[FrameRecord]
	metrics *Metrics

	latches uint64
	skips   map[string]uint64
}

// NewTracker creates a tracker with the default history depth.
func NewTracker() *Tracker {
	return NewTrackerSize(defaultHistory)
}

// NewTrackerSize creates a tracker keeping the given number of frame
// records.
func NewTrackerSize(depth int) *Tracker {
	return &Tracker{
		history: ring.New[FrameRecord](depth),
		skips:   make(map[string]uint64),
	}
}

// SetMetrics attaches Prometheus collectors. Pass nil to detach.
func (t *Tracker) SetMetrics(m *Metrics) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.metrics = m
}

// RecordLatch opens a record for a newly latched frame. An unfinished
// previous record is flushed to history first.
func (t *Tracker) RecordLatch(frameNumber uint64, latchTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open {
		t.flushLocked()
	}
	t.pending = FrameRecord{FrameNumber: frameNumber, LatchTime: latchTime}
	t.open = true
	t.latches++
	if t.metrics != nil {
		t.metrics.latchesTotal.Inc()
	}
}

// SetDesiredPresent records the producer-requested present time for
// the current frame.
func (t *Tracker) SetDesiredPresent(ts time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open {
		t.pending.DesiredPresent = ts
	}
}

// SetFrameReady records when the current frame became safe to read.
func (t *Tracker) SetFrameReady(ts time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open {
		t.pending.FrameReady = ts
	}
}

// SetActualPresent records when the current frame was observed on
// screen.
func (t *Tracker) SetActualPresent(ts time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open {
		t.pending.ActualPresent = ts
	}
}

// AdvanceFrame closes the current record and appends it to history.
func (t *Tracker) AdvanceFrame() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open {
		t.flushLocked()
	}
}

// RecordSkip counts a latch attempt skipped for the given reason.
func (t *Tracker) RecordSkip(reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.skips[reason]++
	if t.metrics != nil {
		t.metrics.skipsTotal.WithLabelValues(reason).Inc()
	}
}

// Latches returns the number of successful latches.
func (t *Tracker) Latches() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latches
}

// Skips returns a copy of the per-reason skip counts.
func (t *Tracker) Skips() map[string]uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]uint64, len(t.skips))
	for k, v := range t.skips {
		out[k] = v
	}
	return out
}

// History returns the closed frame records, oldest first.
func (t *Tracker) History() []FrameRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]FrameRecord, 0, t.history.Len())
	t.history.Do(func(r FrameRecord) { out = append(out, r) })
	return out
}

// AverageLatency returns the mean present latency over the history.
// The second result is false when no record has a known latency.
func (t *Tracker) AverageLatency() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sum time.Duration
	var n int64
	t.history.Do(func(r FrameRecord) {
		if lat, ok := r.Latency(); ok {
			sum += lat
			n++
		}
	})
	if n == 0 {
		return 0, false
	}
	return sum / time.Duration(n), true
}

// flushLocked pushes the pending record into history and observes the
// latency metric. Must be called with the mutex held.
func (t *Tracker) flushLocked() {
	t.history.Push(t.pending)
	if t.metrics != nil {
		if lat, ok := t.pending.Latency(); ok {
			t.metrics.presentLatency.Observe(lat.Seconds())
		}
	}
	t.pending = FrameRecord{}
	t.open = false
}
