// Package headless provides a CPU composition backend.
//
// It composes layers into an in-memory RGBA frame, which makes it the
// backend of choice for tests, screenshots, and environments without
// a display. Importing the package registers it:
//
//	import _ "github.com/gogpu/compositor/backend/headless"
package headless

import (
	"image"
	"image/color"
	"time"

	"golang.org/x/image/draw"

	"github.com/gogpu/compositor/backend"
	"github.com/gogpu/compositor/fence"
)

// ImageSource is the pixel access interface a buffer must satisfy to
// be composed by the headless backend. Buffers without it render
// nothing.
type ImageSource interface {
	RGBA() *image.RGBA
}

// Headless composes layers on the CPU into an in-memory frame.
//
// Not safe for concurrent use; the display loop owns it.
type Headless struct {
	initialized bool
	frame       *image.RGBA
	frameCount  uint64
}

func init() {
	backend.Register(backend.BackendHeadless, func() backend.Backend {
		return New()
	})
}

// New creates a headless backend.
func New() *Headless {
	return &Headless{}
}

// Name returns the backend identifier.
func (h *Headless) Name() string { return backend.BackendHeadless }

// Init initializes the backend.
func (h *Headless) Init() error {
	h.initialized = true
	return nil
}

// Close releases the framebuffer.
func (h *Headless) Close() {
	h.frame = nil
	h.initialized = false
}

// Frame returns the last composed frame, nil before the first
// Compose. The backend reuses the image across cycles; callers that
// keep it must copy.
func (h *Headless) Frame() *image.RGBA { return h.frame }

// FrameCount returns the number of frames composed since Init.
func (h *Headless) FrameCount() uint64 { return h.frameCount }

// Compose renders the layers back to front into an RGBA frame of the
// given size and returns a fence signaled at completion time.
func (h *Headless) Compose(size image.Point, layers []backend.ComposedLayer) (fence.Fence, error) {
	if !h.initialized {
		return nil, backend.ErrNotInitialized
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, backend.ErrBackendNotAvailable
	}

	bounds := image.Rect(0, 0, size.X, size.Y)
	if h.frame == nil || h.frame.Bounds() != bounds {
		h.frame = image.NewRGBA(bounds)
	}
	draw.Draw(h.frame, bounds, image.NewUniform(color.Black), image.Point{}, draw.Src)

	for _, l := range layers {
		h.composeLayer(l)
	}

	h.frameCount++
	return fence.NewSignaled(time.Now()), nil
}

// composeLayer draws one layer onto the frame. Layers without CPU
// pixel access (sideband, GPU-only buffers) are skipped.
func (h *Headless) composeLayer(l backend.ComposedLayer) {
	if l.State == nil || l.State.Frame.Buffer == nil {
		return
	}
	src, ok := l.State.Frame.Buffer.(ImageSource)
	if !ok {
		return
	}
	img := src.RGBA()
	if img == nil {
		return
	}

	dr := l.Projection.DestRect.Intersect(h.frame.Bounds())
	sr := l.Projection.SourceCrop
	if dr.Empty() || sr.Empty() {
		return
	}

	var scaler draw.Scaler = draw.NearestNeighbor
	if l.Projection.Filtering {
		scaler = draw.ApproxBiLinear
	}

	op := draw.Over
	if l.Opaque && l.Alpha >= 1 {
		op = draw.Src
	}

	var opts *draw.Options
	if l.Alpha < 1 {
		opts = &draw.Options{
			SrcMask: image.NewUniform(color.Alpha{A: uint8(l.Alpha * 255)}),
		}
		op = draw.Over
	}

	scaler.Scale(h.frame, dr, img, sr, op, opts)
}

var _ backend.Backend = (*Headless)(nil)
