// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import "strings"

// Transform is a bitmask describing the rotation and flips a producer
// applied to its buffer content. Flips are applied before the rotation.
type Transform uint32

const (
	// FlipH mirrors the buffer around the vertical axis.
	FlipH Transform = 1 << iota

	// FlipV mirrors the buffer around the horizontal axis.
	FlipV

	// Rot90 rotates the buffer 90 degrees clockwise.
	Rot90
)

const (
	// TransformNone leaves the buffer untouched.
	TransformNone Transform = 0

	// Rot180 is the composite of both flips.
	Rot180 = FlipH | FlipV

	// Rot270 is a 270 degree clockwise rotation.
	Rot270 = Rot180 | Rot90
)

// SwapsDimensions reports whether the transform exchanges width and
// height, i.e. contains a 90 degree rotation component.
func (t Transform) SwapsDimensions() bool {
	return t&Rot90 != 0
}

// Apply returns the buffer dimensions as seen after the transform.
func (t Transform) Apply(w, h int) (int, int) {
	if t.SwapsDimensions() {
		return h, w
	}
	return w, h
}

// String returns a human-readable form such as "FLIP_H|ROT_90".
func (t Transform) String() string {
	if t == TransformNone {
		return "NONE"
	}
	var parts []string
	if t&FlipH != 0 {
		parts = append(parts, "FLIP_H")
	}
	if t&FlipV != 0 {
		parts = append(parts, "FLIP_V")
	}
	if t&Rot90 != 0 {
		parts = append(parts, "ROT_90")
	}
	return strings.Join(parts, "|")
}

// matrix returns the transform as a 4x4 matrix acting on coordinates
// normalized to the unit square, keeping the result inside the square.
func (t Transform) matrix() Mat4 {
	tr := Identity()
	if t&Rot90 != 0 {
		tr = Mul(tr, rot90Matrix())
	}
	if t&FlipH != 0 {
		tr = Mul(tr, flipHMatrix())
	}
	if t&FlipV != 0 {
		tr = Mul(tr, flipVMatrix())
	}
	return tr
}

// inverseOrientation returns the matrix that undoes the given
// orientation transform on the unit square. Used to keep buffer content
// upright regardless of the output rotation.
func inverseOrientation(t Transform) (Mat4, bool) {
	return Invert(t.matrix())
}
