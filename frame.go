package compositor

import (
	"image"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/compositor/fence"
	"github.com/gogpu/compositor/geometry"
)

// Buffer is the opaque pixel resource handle a producer attaches to a
// frame. The compositor never touches pixel data; backends that need
// CPU or GPU access type-assert for richer interfaces.
type Buffer interface {
	// Size returns the buffer dimensions in pixels.
	Size() image.Point

	// Format returns the buffer pixel format.
	Format() gputypes.TextureFormat
}

// ColorSpace tags the color encoding of a frame's pixel values.
type ColorSpace uint32

const (
	// ColorSpaceUnknown means the producer did not tag the frame.
	ColorSpaceUnknown ColorSpace = iota

	// ColorSpaceSRGB is the sRGB transfer function over BT.709
	// primaries.
	ColorSpaceSRGB

	// ColorSpaceSRGBLinear is linear light over BT.709 primaries.
	ColorSpaceSRGBLinear

	// ColorSpaceDisplayP3 is the Display P3 gamut.
	ColorSpaceDisplayP3

	// ColorSpaceBT601_625 is SD video, 625-line variant.
	ColorSpaceBT601_625

	// ColorSpaceBT601_525 is SD video, 525-line variant.
	ColorSpaceBT601_525

	// ColorSpaceBT709 is HD video.
	ColorSpaceBT709

	// ColorSpaceBT2020 is UHD video, standard dynamic range.
	ColorSpaceBT2020

	// ColorSpaceBT2020PQ is UHD video with the PQ transfer function,
	// used for HDR content.
	ColorSpaceBT2020PQ
)

// Legacy colorspace tags still emitted by old producers. Normalize
// maps them onto the canonical values above.
const (
	ColorSpaceLegacySRGB ColorSpace = 0x100 + iota
	ColorSpaceLegacySRGBLinear
	ColorSpaceLegacyBT601_625
	ColorSpaceLegacyBT601_525
	ColorSpaceLegacyBT709
)

// Normalize maps legacy colorspace tags to their canonical values.
// Canonical values pass through unchanged.
func (c ColorSpace) Normalize() ColorSpace {
	switch c {
	case ColorSpaceLegacySRGB:
		return ColorSpaceSRGB
	case ColorSpaceLegacySRGBLinear:
		return ColorSpaceSRGBLinear
	case ColorSpaceLegacyBT601_625:
		return ColorSpaceBT601_625
	case ColorSpaceLegacyBT601_525:
		return ColorSpaceBT601_525
	case ColorSpaceLegacyBT709:
		return ColorSpaceBT709
	default:
		return c
	}
}

// HDRMetadata carries the mastering and content light levels attached
// to an HDR frame. Values are in nits.
type HDRMetadata struct {
	MaxDisplayLuminance float64
	MinDisplayLuminance float64
	MaxContentLightLevel float64
	MaxFrameAverageLightLevel float64
}

// DamageRegion describes which part of a buffer changed since the
// previous frame. The zero value means no damage.
type DamageRegion struct {
	full  bool
	rects []image.Rectangle
}

// FullDamage returns a region covering the entire buffer.
func FullDamage() DamageRegion {
	return DamageRegion{full: true}
}

// DamageRects returns a region made of the given rectangles.
func DamageRects(rects ...image.Rectangle) DamageRegion {
	return DamageRegion{rects: rects}
}

// Full reports whether the whole buffer is damaged.
func (d DamageRegion) Full() bool { return d.full }

// Empty reports whether nothing is damaged.
func (d DamageRegion) Empty() bool { return !d.full && len(d.rects) == 0 }

// Rects returns the damaged rectangles. Meaningless when Full.
func (d DamageRegion) Rects() []image.Rectangle { return d.rects }

// BufferFrame is one unit of producer output: the pixel resource plus
// everything the compositor needs to decide when and how to show it.
type BufferFrame struct {
	// FrameNumber is monotonic and unique per layer.
	FrameNumber uint64

	// Buffer is the opaque pixel resource.
	Buffer Buffer

	// AcquireFence signals when the buffer contents are safe to read.
	// nil means the frame is ready immediately.
	AcquireFence fence.Fence

	// Crop is the valid source region in buffer pixels. An empty crop
	// means the whole buffer; see EffectiveCrop.
	Crop image.Rectangle

	// Transform is the producer-applied content transform.
	Transform geometry.Transform

	// ScalingMode selects how the crop is fitted to the layer bounds.
	ScalingMode geometry.ScalingMode

	// ColorSpace tags the pixel encoding.
	ColorSpace ColorSpace

	// DesiredPresent is the wall-clock time the producer wants the
	// frame on screen.
	DesiredPresent time.Time

	// HDR carries HDR mastering metadata, nil for SDR content.
	HDR *HDRMetadata

	// Damage is the region that changed since the previous frame.
	Damage DamageRegion
}

// EffectiveCrop returns the crop rectangle that applies to the buffer:
// the explicit crop when set, otherwise the whole buffer, otherwise an
// empty rectangle when there is no buffer.
func (f BufferFrame) EffectiveCrop() image.Rectangle {
	if f.Crop.Dx() > 0 && f.Crop.Dy() > 0 {
		return f.Crop
	}
	if f.Buffer != nil {
		sz := f.Buffer.Size()
		return image.Rect(0, 0, sz.X, sz.Y)
	}
	return image.Rectangle{}
}

// IsHDR reports whether the frame carries HDR content: a BT.2020 PQ
// colorspace with mastering metadata attached.
func (f BufferFrame) IsHDR() bool {
	return f.ColorSpace.Normalize() == ColorSpaceBT2020PQ && f.HDR != nil
}

// LatchedState is the most recently accepted frame plus derived
// bookkeeping. Instances are immutable once published; Layer replaces
// the current state atomically.
type LatchedState struct {
	// Frame is the latched producer frame.
	Frame BufferFrame

	// Ready tracks the frame's acquire fence. For frames without a
	// fence it reports no signal time and FrameReadyTime applies.
	Ready *fence.Tracker

	// FrameReadyTime is the fallback readiness time for fenceless
	// frames: the desired present time.
	FrameReadyTime time.Time

	// LatchTime is when the compositor adopted the frame.
	LatchTime time.Time

	// FrameLatencyPending is true between the latch and the
	// completion callback that records the frame's timing.
	FrameLatencyPending bool
}

// LatchResult is the outcome of one TryLatch call.
type LatchResult struct {
	// Latched is true when a new frame (or sideband change) was
	// adopted this cycle.
	Latched bool

	// GeometryChanged is true when the new frame's geometry differs
	// from the previous one and the visible region must be recomputed.
	GeometryChanged bool
}

// opaqueFormat reports whether a pixel format has no alpha channel,
// making a layer opaque regardless of its content.
func opaqueFormat(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureFormatBGRA8Unorm:
		return false
	default:
		// Formats without alpha (and unknown formats) do not blend.
		return true
	}
}
