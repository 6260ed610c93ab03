// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import "image"

// ScalingMode selects how a buffer is fitted to its destination
// rectangle.
type ScalingMode uint32

const (
	// ScalingFreeze presents the buffer at its own size with no
	// scaling; the destination only positions it.
	ScalingFreeze ScalingMode = iota

	// ScalingScaleToWindow stretches the crop to fill the destination.
	ScalingScaleToWindow

	// ScalingScaleCrop scales uniformly to cover the destination,
	// cropping the overflow.
	ScalingScaleCrop
)

// String returns the scaling mode name.
func (m ScalingMode) String() string {
	switch m {
	case ScalingFreeze:
		return "FREEZE"
	case ScalingScaleToWindow:
		return "SCALE_TO_WINDOW"
	case ScalingScaleCrop:
		return "SCALE_CROP"
	default:
		return "UNKNOWN"
	}
}

// ProjectionInput carries everything Project needs. All fields are
// plain values; the zero value of the optional transform fields means
// "no transform".
type ProjectionInput struct {
	// Crop is the valid source region in buffer pixel coordinates.
	Crop image.Rectangle

	// Transform is the producer-applied content transform.
	Transform Transform

	// ScalingMode selects how the crop is fitted to Dest.
	ScalingMode ScalingMode

	// Dest is the destination window in display coordinates.
	Dest image.Rectangle

	// OrientationCorrection requests that the buffer render upright
	// regardless of the output rotation: the output's own orientation
	// and any ancestor transform are undone before the crop mapping.
	OrientationCorrection bool

	// OutputTransform is the display orientation, undone when
	// OrientationCorrection is set.
	OutputTransform Transform

	// AncestorTransform is the accumulated parent transform, undone
	// when OrientationCorrection is set.
	AncestorTransform Transform
}

// Projection is the derived buffer-to-display mapping handed to the
// render backend.
type Projection struct {
	// Matrix maps buffer-normalized coordinates (the crop as the unit
	// square) to display coordinates.
	Matrix Mat4

	// Filtering is true when the crop and destination dimensions
	// differ, meaning a non-integer scale will occur and the backend
	// should sample with filtering enabled.
	Filtering bool

	// SourceCrop is the source region in buffer pixels.
	SourceCrop image.Rectangle

	// DestRect is the destination window in display coordinates.
	DestRect image.Rectangle
}

// Project computes the buffer-to-display projection.
//
// The composition order is fixed:
//
//  1. When orientation correction is requested, undo the output's own
//     orientation transform, then undo the ancestor transform.
//  2. Apply the producer's content transform, then the scale and
//     translate mapping the crop onto the destination window.
//  3. Apply a vertical-axis flip, expressed in normalized space, to
//     match the target rendering convention.
//
// Project is deterministic: identical inputs produce bit-identical
// matrices.
//
// Malformed geometry (zero-area or inverted crop, or an empty
// destination) yields ok == false; callers keep their previous valid
// projection in that case.
func Project(in ProjectionInput) (Projection, bool) {
	if in.Crop.Dx() <= 0 || in.Crop.Dy() <= 0 {
		return Projection{}, false
	}
	if in.Dest.Dx() <= 0 || in.Dest.Dy() <= 0 {
		return Projection{}, false
	}

	tr := Identity()

	// Step 1: orientation correction.
	if in.OrientationCorrection {
		if inv, ok := inverseOrientation(in.OutputTransform); ok {
			tr = Mul(tr, inv)
		}
		if inv, ok := inverseOrientation(in.AncestorTransform); ok {
			tr = Mul(tr, inv)
		}
	}

	// Step 2: content transform, then crop onto destination. A 90
	// degree rotation swaps the crop dimensions the destination sees.
	tr = Mul(in.Transform.matrix(), tr)

	cropW, cropH := in.Transform.Apply(in.Crop.Dx(), in.Crop.Dy())
	destW, destH := in.Dest.Dx(), in.Dest.Dy()

	outW, outH := float64(destW), float64(destH)
	if in.ScalingMode == ScalingFreeze {
		// No scaling: the destination only positions the buffer.
		outW, outH = float64(cropW), float64(cropH)
	}

	// Step 3: vertical flip in normalized space, then place.
	tr = Mul(flipVMatrix(), tr)
	tr = Mul(Scale(outW, outH), tr)
	tr = Mul(Translate(float64(in.Dest.Min.X), float64(in.Dest.Min.Y)), tr)

	return Projection{
		Matrix:     tr,
		Filtering:  cropW != destW || cropH != destH,
		SourceCrop: in.Crop,
		DestRect:   in.Dest,
	}, true
}
