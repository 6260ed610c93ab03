package backend

import (
	"errors"
	"image"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/fence"
	"github.com/gogpu/compositor/geometry"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is
	// not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when Compose is called before
	// Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// ComposedLayer is one layer's contribution to a composed frame: the
// latched content plus the display policy derived by the compositor
// core. The display loop builds the slice back to front.
type ComposedLayer struct {
	// State is the latched frame snapshot. Nil for sideband-only
	// layers.
	State *compositor.LatchedState

	// Projection maps the latched buffer onto the display.
	Projection geometry.Projection

	// Alpha is the layer opacity in [0, 1].
	Alpha float64

	// Opaque marks a layer known free of translucent pixels; backends
	// may skip blending for it.
	Opaque bool

	// Damage limits the region the backend must redraw.
	Damage compositor.DamageRegion

	// Sideband is the sideband stream for layers bypassing the buffer
	// path, nil otherwise. Only backends that understand the stream
	// type can show it; others render nothing for the layer.
	Sideband compositor.SidebandStream
}

// Backend composes latched layers into display frames.
//
// Compose is called once per refresh cycle on the composition thread.
// The returned fence signals when the composed frame reaches the
// display; a backend without present timing returns nil.
type Backend interface {
	// Name returns the backend identifier (e.g. "headless").
	Name() string

	// Init initializes the backend. Must be called before Compose.
	Init() error

	// Close releases all backend resources. The backend must not be
	// used after Close.
	Close()

	// Compose renders the given layers, back to front, into a frame
	// of the given size and returns the present fence.
	Compose(size image.Point, layers []ComposedLayer) (fence.Fence, error)
}
