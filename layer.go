package compositor

import (
	"image"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/compositor/fence"
	"github.com/gogpu/compositor/geometry"
	"github.com/gogpu/compositor/syncpoint"
)

// Layer is a compositable layer: one producer connection, its latch
// engine, its sync point ledger, and the policy state (bounds, alpha,
// visibility) the window manager controls.
//
// TryLatch, Projection, Damage, and OnCompositionComplete belong to
// the composition thread. The Set* mutators and AddSyncPoint may be
// called from any goroutine.
type Layer struct {
	id   uuid.UUID
	name string

	engine   *engine
	ledger   *syncpoint.Ledger
	registry *syncpoint.Registry

	// Window-manager controlled state.
	hidden atomic.Bool
	alpha  atomic.Uint64 // float64 bits; 1.0 initially
	bounds atomic.Pointer[image.Rectangle]

	// transactionNeeded is set when a sync point targeting another
	// layer unblocks and this layer's pending transaction should be
	// re-evaluated.
	transactionNeeded atomic.Bool

	// Projection cache. Composition thread only.
	projection geometry.Projection
}

// NewLayer creates a layer consuming frames from producer and
// registers it in reg for cross-layer sync point resolution.
// reg may be nil for layers that never participate in transactions.
func NewLayer(producer FrameProducer, reg *syncpoint.Registry, opts ...LayerOption) *Layer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ledger := syncpoint.NewLedger(reg)
	l := &Layer{
		id:       o.id,
		name:     o.name,
		ledger:   ledger,
		registry: reg,
		engine: &engine{
			producer: producer,
			ledger:   ledger,
			opts:     o,
		},
	}
	l.alpha.Store(math.Float64bits(1.0))

	if reg != nil {
		reg.Register(l.id, l)
	}
	Logger().Info("compositor: layer created", "layer", l.name, "id", l.id)
	return l
}

// ID returns the layer identity used in the sync point registry.
func (l *Layer) ID() uuid.UUID { return l.id }

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// TryLatch runs one latch decision for the given expected present
// time. The policy, in order:
//
//  1. A pending sideband change is adopted and the buffer path left
//     untouched.
//  2. Without a pending frame, nothing happens.
//  3. While the previous latch's composition has not completed, the
//     frame is kept for the next cycle.
//  4. The head frame number for the expected present time is derived.
//  5. The head frame's acquire fence is polled without blocking; an
//     unsignaled fence skips the cycle and requests a wake.
//  6. Sync points governed by the head frame gate the latch until
//     their transactions apply; dependents are unblocked in
//     frame-number order first.
//  7. The buffer is acquired from the producer; transient failure
//     aborts with no state mutation.
//  8. The new latched state replaces the previous one atomically.
//
// Must be called on the composition thread, once per refresh cycle.
func (l *Layer) TryLatch(expectedPresent time.Time) LatchResult {
	return l.engine.tryLatch(expectedPresent)
}

// NotifyFrameAvailable marks sync points governed by the current head
// frame as available, unblocking dependent layers in frame-number
// order. Called by the transaction path whenever this layer may have
// advanced.
func (l *Layer) NotifyFrameAvailable(expectedPresent time.Time) {
	l.engine.notifyFrameAvailable(expectedPresent)
}

// OnCompositionComplete tells the layer the render backend has
// consumed the last latched frame. presentFence, when non-nil, carries
// the time the frame became visible and feeds the timing stats.
// Returns true when a newly latched frame was closed out.
func (l *Layer) OnCompositionComplete(presentFence fence.Fence) bool {
	return l.engine.onCompositionComplete(presentFence)
}

// CurrentState returns the current latched state snapshot, nil before
// the first latch. The snapshot is immutable.
func (l *Layer) CurrentState() *LatchedState {
	return l.engine.latched.Load()
}

// CurrentFrameNumber returns the last latched frame number, zero
// before the first latch.
func (l *Layer) CurrentFrameNumber() uint64 {
	return l.engine.currentFrameNumber()
}

// AddSyncPoint registers a cross-layer dependency: the transaction of
// the requesting layer applies only once this layer's buffer reaches
// targetFrame. Points must be added in ascending target order.
func (l *Layer) AddSyncPoint(targetFrame uint64, requester uuid.UUID) *syncpoint.Point {
	p := syncpoint.NewPoint(targetFrame, requester)
	l.ledger.Add(p)
	return p
}

// PendingSyncPoints returns the number of unresolved sync points.
func (l *Layer) PendingSyncPoints() int {
	return l.ledger.Len()
}

// InvalidateTransaction flags the layer as owing a transaction-apply
// re-evaluation. Implements syncpoint.Requester; called when a sync
// point this layer registered on another layer unblocks.
func (l *Layer) InvalidateTransaction() {
	l.transactionNeeded.Store(true)
	if l.engine.opts.wake != nil {
		l.engine.opts.wake()
	}
}

// ConsumeTransactionNeeded reports and clears the re-evaluation flag.
// The window manager polls it when applying pending transactions.
func (l *Layer) ConsumeTransactionNeeded() bool {
	return l.transactionNeeded.Swap(false)
}

// Disconnect tears down the producer connection: every pending sync
// point is force-satisfied and pruned so no dependent blocks forever,
// and the layer leaves the registry.
func (l *Layer) Disconnect() {
	l.ledger.ForceSatisfyAll()
	if l.registry != nil {
		l.registry.Unregister(l.id)
	}
	Logger().Info("compositor: layer disconnected", "layer", l.name, "id", l.id)
}

// SetSideband switches the layer to (or, with nil, away from) a
// sideband content path. The change takes effect on the next TryLatch.
// Safe to call from producer threads.
func (l *Layer) SetSideband(s SidebandStream) {
	if s == nil {
		l.engine.sidebandPending.Store(nil)
	} else {
		l.engine.sidebandPending.Store(&sidebandBox{stream: s})
	}
	l.engine.sidebandChanged.Store(true)
}

// Sideband returns the active sideband stream, nil when the layer is
// on the normal buffer path.
func (l *Layer) Sideband() SidebandStream {
	if b := l.engine.sideband.Load(); b != nil {
		return b.stream
	}
	return nil
}

// SetBounds sets the destination window in display coordinates.
func (l *Layer) SetBounds(r image.Rectangle) {
	l.bounds.Store(&r)
}

// Bounds returns the destination window, the zero rectangle when
// unset.
func (l *Layer) Bounds() image.Rectangle {
	if r := l.bounds.Load(); r != nil {
		return *r
	}
	return image.Rectangle{}
}

// SetAlpha sets the layer opacity in [0, 1].
func (l *Layer) SetAlpha(a float64) {
	l.alpha.Store(math.Float64bits(a))
}

// Alpha returns the layer opacity.
func (l *Layer) Alpha() float64 {
	return math.Float64frombits(l.alpha.Load())
}

// SetHidden hides or shows the layer. Policy state; hidden layers keep
// latching so producers are not blocked.
func (l *Layer) SetHidden(h bool) {
	l.hidden.Store(h)
}

// Visible reports whether the layer contributes to the display: not
// hidden, non-zero alpha, and holding content (a buffer or a sideband
// stream).
func (l *Layer) Visible() bool {
	if l.hidden.Load() || l.Alpha() <= 0 {
		return false
	}
	st := l.engine.latched.Load()
	return (st != nil && st.Frame.Buffer != nil) || l.engine.sideband.Load() != nil
}

// Opaque reports whether the layer is known fully opaque: it has
// content, and either the explicit opaque option or an alpha-free
// buffer format.
func (l *Layer) Opaque() bool {
	return l.engine.opaque(l.engine.latched.Load())
}

// Damage returns the region of the current frame that changed since
// the previous one. With the force-full-damage option, or for a
// sideband layer, the full region is reported.
func (l *Layer) Damage() DamageRegion {
	if l.engine.opts.forceFullDamage || l.engine.sideband.Load() != nil {
		return FullDamage()
	}
	st := l.engine.latched.Load()
	if st == nil {
		return DamageRegion{}
	}
	return st.Frame.Damage
}

// BufferDisplaySize returns the latched buffer dimensions as the
// display sees them, with rotation-induced swaps applied. Sideband
// layers and layers that scale report their bounds size instead, since
// the buffer size is not meaningful there.
func (l *Layer) BufferDisplaySize() image.Point {
	st := l.engine.latched.Load()
	if l.engine.sideband.Load() != nil {
		return l.Bounds().Size()
	}
	if st == nil || st.Frame.Buffer == nil {
		return image.Point{}
	}
	if l.engine.effectiveScalingMode(st.Frame) != geometry.ScalingFreeze {
		return l.Bounds().Size()
	}
	return l.engine.displaySize(st.Frame)
}

// Projection returns the buffer-to-display mapping for the current
// latched state. Malformed geometry keeps the previous valid
// projection, so degenerate values never propagate to the backend.
//
// Composition thread only.
func (l *Layer) Projection() geometry.Projection {
	st := l.engine.latched.Load()
	if st == nil {
		return l.projection
	}

	p, ok := geometry.Project(geometry.ProjectionInput{
		Crop:                  st.Frame.EffectiveCrop(),
		Transform:             st.Frame.Transform,
		ScalingMode:           l.engine.effectiveScalingMode(st.Frame),
		Dest:                  l.Bounds(),
		OrientationCorrection: l.engine.opts.orientationCorrection,
		OutputTransform:       l.engine.opts.outputTransform,
		AncestorTransform:     l.engine.opts.ancestorTransform,
	})
	if !ok {
		Logger().Debug("compositor: malformed geometry, keeping previous projection",
			"layer", l.name)
		return l.projection
	}
	l.projection = p
	return p
}

// Ensure Layer satisfies the requester side of the sync point
// registry.
var _ syncpoint.Requester = (*Layer)(nil)
