package compositor

import (
	"image"
	"sync/atomic"
	"time"

	"github.com/gogpu/compositor/fence"
	"github.com/gogpu/compositor/geometry"
	"github.com/gogpu/compositor/stats"
	"github.com/gogpu/compositor/syncpoint"
)

// engine is the per-layer latch state machine. It owns the latched
// state snapshot and the producer-facing flags; Layer composes it with
// naming, policy, and projection caching.
//
// tryLatch, notifyFrameAvailable, and onCompositionComplete run on the
// composition thread. The sideband setters may run on client threads.
type engine struct {
	producer FrameProducer
	ledger   *syncpoint.Ledger
	opts     layerOptions

	latched           atomic.Pointer[LatchedState]
	completionPending atomic.Bool

	sidebandPending atomic.Pointer[sidebandBox]
	sidebandChanged atomic.Bool
	sideband        atomic.Pointer[sidebandBox]

	// Head fence tracking. Composition thread only: the tracker is
	// re-created whenever the producer presents a different head fence.
	headFence   fence.Fence
	headTracker *fence.Tracker
}

// sidebandBox wraps a SidebandStream for atomic storage.
type sidebandBox struct{ stream SidebandStream }

// tryLatch decides whether the producer's next frame becomes the
// current content. See Layer.TryLatch for the full policy.
func (e *engine) tryLatch(expectedPresent time.Time) LatchResult {
	// Sideband changes bypass the buffer path entirely.
	if e.sidebandChanged.CompareAndSwap(true, false) {
		e.sideband.Store(e.sidebandPending.Load())
		return LatchResult{Latched: true}
	}

	if !e.producer.HasPendingFrame() {
		return LatchResult{}
	}

	// A latch whose composition has not completed yet must not be
	// overwritten; the render backend still owns the last buffer.
	if e.completionPending.Load() {
		e.trackSkip(stats.SkipCompletionPending)
		return LatchResult{}
	}

	head := e.headFrameNumber(expectedPresent)

	if !e.headFenceSignaled() && !e.opts.latchUnsignaled {
		e.trackSkip(stats.SkipFencePending)
		e.requestWake()
		return LatchResult{}
	}

	// Capture the previous state for comparisons after the swap.
	prev := e.latched.Load()
	oldOpaque := e.opaque(prev)

	if !e.ledger.AllSatisfiedUpTo(head) {
		// A dependent transaction still gates this frame. The ledger
		// has already unblocked the dependent in frame-number order.
		e.trackSkip(stats.SkipTransaction)
		e.requestWake()
		return LatchResult{}
	}

	frame, err := e.producer.AcquireNextBuffer(expectedPresent)
	if err != nil {
		e.trackSkip(stats.SkipAcquire)
		Logger().Warn("compositor: buffer acquisition failed",
			"layer", e.opts.name, "error", err)
		return LatchResult{}
	}

	if prev != nil && frame.FrameNumber <= prev.Frame.FrameNumber {
		// Frame numbers must strictly increase per layer. Treat the
		// violation as a transient acquisition failure: no mutation.
		e.trackSkip(stats.SkipAcquire)
		Logger().Warn("compositor: non-monotonic frame number",
			"layer", e.opts.name,
			"frame", frame.FrameNumber,
			"latched", prev.Frame.FrameNumber)
		return LatchResult{}
	}

	now := e.opts.now()
	next := &LatchedState{
		Frame:               frame,
		Ready:               fence.NewTracker(frame.AcquireFence, e.opts.fencePolicy),
		LatchTime:           now,
		FrameLatencyPending: true,
	}
	if frame.AcquireFence == nil {
		// No fence: assume the frame was ready at its desired
		// present time.
		next.FrameReadyTime = frame.DesiredPresent
	}
	e.latched.Store(next)
	e.headFence, e.headTracker = nil, nil

	changed := e.geometryChanged(prev, next, oldOpaque)

	e.ledger.Prune(frame.FrameNumber)
	e.completionPending.Store(true)

	if t := e.opts.tracker; t != nil {
		t.RecordLatch(frame.FrameNumber, now)
		t.SetDesiredPresent(frame.DesiredPresent)
	}
	Logger().Debug("compositor: latched frame",
		"layer", e.opts.name,
		"frame", frame.FrameNumber,
		"geometry_changed", changed)

	return LatchResult{Latched: true, GeometryChanged: changed}
}

// notifyFrameAvailable tells the ledger which sync points are governed
// by the current head frame. Called from the transaction path.
func (e *engine) notifyFrameAvailable(expectedPresent time.Time) {
	head := e.headFrameNumber(expectedPresent)
	e.ledger.NotifyFrameAvailable(head,
		e.headFenceSignaled(),
		e.producer.PresentTimeCurrent(expectedPresent))
}

// onCompositionComplete marks the last latch consumed and closes its
// timing record. presentFence may be nil when the backend reports no
// present timestamp. Returns true when a pending frame was recorded.
func (e *engine) onCompositionComplete(presentFence fence.Fence) bool {
	e.completionPending.Store(false)

	st := e.latched.Load()
	if st == nil || !st.FrameLatencyPending {
		return false
	}

	if t := e.opts.tracker; t != nil {
		if ts, ok := st.Ready.SignalTime(); ok {
			t.SetFrameReady(ts)
		} else {
			t.SetFrameReady(st.FrameReadyTime)
		}
		if presentFence != nil {
			if ts, ok := presentFence.SignalTime(); ok {
				t.SetActualPresent(ts)
			}
		}
		t.AdvanceFrame()
	}

	cleared := *st
	cleared.FrameLatencyPending = false
	e.latched.Store(&cleared)
	return true
}

// headFrameNumber computes the frame number governing the current
// cycle: the producer's next frame when an update is pending, else the
// last latched frame.
func (e *engine) headFrameNumber(expectedPresent time.Time) uint64 {
	if e.producer.HasPendingFrame() {
		return e.producer.NextFrameNumber(expectedPresent)
	}
	return e.currentFrameNumber()
}

// currentFrameNumber returns the last latched frame number, zero when
// nothing has been latched.
func (e *engine) currentFrameNumber() uint64 {
	if st := e.latched.Load(); st != nil {
		return st.Frame.FrameNumber
	}
	return 0
}

// headFenceSignaled polls the head frame's acquire fence without
// blocking, caching the tracker across polls of the same fence.
func (e *engine) headFenceSignaled() bool {
	f := e.producer.HeadFence()
	if f == nil {
		return true
	}
	if f != e.headFence {
		e.headFence = f
		e.headTracker = fence.NewTracker(f, e.opts.fencePolicy)
	}
	return e.headTracker.Signaled()
}

// opaque derives the opacity of the given state under this layer's
// configuration. Without content the layer is translucent regardless
// of the opaque flag.
func (e *engine) opaque(st *LatchedState) bool {
	hasBuffer := st != nil && st.Frame.Buffer != nil
	if !hasBuffer && e.sideband.Load() == nil {
		return false
	}
	if e.opts.explicitOpaque {
		return true
	}
	if !hasBuffer {
		return false
	}
	return opaqueFormat(st.Frame.Buffer.Format())
}

// geometryChanged reports whether the newly latched frame requires the
// visible region to be recomputed.
func (e *engine) geometryChanged(prev, next *LatchedState, oldOpaque bool) bool {
	if prev == nil {
		// First frame ever latched.
		return true
	}
	pf, nf := prev.Frame, next.Frame
	switch {
	case pf.EffectiveCrop() != nf.EffectiveCrop():
		return true
	case pf.Transform != nf.Transform:
		return true
	case e.effectiveScalingMode(pf) != e.effectiveScalingMode(nf):
		return true
	case e.opaque(next) != oldOpaque:
		return true
	case e.displaySize(pf) != e.displaySize(nf):
		return true
	}
	return false
}

// effectiveScalingMode applies the per-layer override, if any.
func (e *engine) effectiveScalingMode(f BufferFrame) geometry.ScalingMode {
	if e.opts.scalingOverride != nil {
		return *e.opts.scalingOverride
	}
	return f.ScalingMode
}

// displaySize returns the buffer dimensions as the display sees them:
// the content transform and, under orientation correction, the output
// rotation both swap width and height.
func (e *engine) displaySize(f BufferFrame) image.Point {
	if f.Buffer == nil {
		return image.Point{}
	}
	sz := f.Buffer.Size()
	w, h := f.Transform.Apply(sz.X, sz.Y)
	if e.opts.orientationCorrection {
		w, h = e.opts.outputTransform.Apply(w, h)
	}
	return image.Pt(w, h)
}

func (e *engine) requestWake() {
	if e.opts.wake != nil {
		e.opts.wake()
	}
}

func (e *engine) trackSkip(reason string) {
	if e.opts.tracker != nil {
		e.opts.tracker.RecordSkip(reason)
	}
}
