package compositor

import (
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/compositor/fence"
	"github.com/gogpu/compositor/geometry"
	"github.com/gogpu/compositor/stats"
)

// LayerOption configures a Layer during creation. The resulting
// configuration is immutable for the life of the layer.
type LayerOption func(*layerOptions)

// layerOptions holds optional configuration for Layer creation.
type layerOptions struct {
	id   uuid.UUID
	name string

	latchUnsignaled       bool
	fencePolicy           fence.ErrorPolicy
	orientationCorrection bool
	outputTransform       geometry.Transform
	ancestorTransform     geometry.Transform
	scalingOverride       *geometry.ScalingMode
	forceFullDamage       bool
	explicitOpaque        bool

	tracker *stats.Tracker
	wake    func()
	now     func() time.Time
}

// defaultOptions returns the default layer options.
func defaultOptions() layerOptions {
	return layerOptions{
		id:  uuid.New(),
		now: time.Now,
	}
}

// WithID sets the layer identity used in the sync point registry.
// Defaults to a random UUID.
func WithID(id uuid.UUID) LayerOption {
	return func(o *layerOptions) { o.id = id }
}

// WithName sets a human-readable layer name used in log output.
func WithName(name string) LayerOption {
	return func(o *layerOptions) { o.name = name }
}

// WithLatchUnsignaled allows latching a frame whose acquire fence has
// not signaled yet. This is an explicit override for producers that
// guarantee ordering some other way; with it set, tearing is the
// caller's problem.
func WithLatchUnsignaled() LayerOption {
	return func(o *layerOptions) { o.latchUnsignaled = true }
}

// WithFenceErrorPolicy selects how fence poll errors are interpreted.
// The default treats a failed poll as signaled so a broken fence never
// stalls composition.
func WithFenceErrorPolicy(p fence.ErrorPolicy) LayerOption {
	return func(o *layerOptions) { o.fencePolicy = p }
}

// WithOrientationCorrection makes the layer render upright regardless
// of the output rotation: output is the display orientation and
// ancestor the accumulated parent transform, both undone during
// projection.
func WithOrientationCorrection(output, ancestor geometry.Transform) LayerOption {
	return func(o *layerOptions) {
		o.orientationCorrection = true
		o.outputTransform = output
		o.ancestorTransform = ancestor
	}
}

// WithScalingModeOverride forces the layer's scaling mode, ignoring
// the per-frame mode supplied by the producer.
func WithScalingModeOverride(m geometry.ScalingMode) LayerOption {
	return func(o *layerOptions) { o.scalingOverride = &m }
}

// WithForceFullDamage makes Damage report the full buffer regardless
// of per-frame damage. Useful for backends that cannot do partial
// updates.
func WithForceFullDamage() LayerOption {
	return func(o *layerOptions) { o.forceFullDamage = true }
}

// WithOpaque marks the layer opaque regardless of its buffer format.
func WithOpaque() LayerOption {
	return func(o *layerOptions) { o.explicitOpaque = true }
}

// WithStats attaches a frame timing tracker.
func WithStats(t *stats.Tracker) LayerOption {
	return func(o *layerOptions) { o.tracker = t }
}

// WithWakeRequester sets the callback invoked when a skipped latch
// wants another attempt on the next refresh cycle. The callback must
// be cheap and non-blocking; it typically schedules the display loop.
func WithWakeRequester(fn func()) LayerOption {
	return func(o *layerOptions) { o.wake = fn }
}

// WithClock overrides the wall clock. Tests use it to drive timing
// deterministically.
func WithClock(now func() time.Time) LayerOption {
	return func(o *layerOptions) { o.now = now }
}
