// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geometry computes the buffer-to-display projection used by
// the compositor.
//
// The package is a pure leaf: Project is a deterministic function from
// a frame's crop, transform and scaling mode plus the destination
// rectangle to a 4x4 matrix and a filtering flag. It performs no I/O,
// holds no state and is safe for concurrent use.
//
// Matrices use golang.org/x/image/math/f64.Mat4 in row-major order
// with the translation in the last column.
package geometry
