package headless

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/compositor"
)

// MemoryBuffer is a CPU-backed buffer satisfying both the compositor
// buffer contract and the backend's ImageSource. Producers in tests
// and demos draw into it directly.
type MemoryBuffer struct {
	img *image.RGBA
}

// NewMemoryBuffer allocates a buffer of the given size.
func NewMemoryBuffer(w, h int) *MemoryBuffer {
	return &MemoryBuffer{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Size returns the buffer dimensions in pixels.
func (b *MemoryBuffer) Size() image.Point {
	return b.img.Bounds().Size()
}

// Format reports RGBA8. MemoryBuffer stores nothing else.
func (b *MemoryBuffer) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// RGBA exposes the backing image for composition and drawing.
func (b *MemoryBuffer) RGBA() *image.RGBA { return b.img }

// Fill paints the whole buffer with c.
func (b *MemoryBuffer) Fill(c color.Color) {
	draw.Draw(b.img, b.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

var (
	_ compositor.Buffer = (*MemoryBuffer)(nil)
	_ ImageSource       = (*MemoryBuffer)(nil)
)
