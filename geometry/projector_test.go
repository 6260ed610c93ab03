// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import (
	"image"
	"testing"
)

func TestProjectMapsCropOntoDest(t *testing.T) {
	p, ok := Project(ProjectionInput{
		Crop:        image.Rect(0, 0, 100, 50),
		ScalingMode: ScalingScaleToWindow,
		Dest:        image.Rect(10, 20, 210, 120),
	})
	if !ok {
		t.Fatal("Project returned ok = false for valid input")
	}

	// Normalized origin lands at the destination top-left column; the
	// vertical flip sends v=0 to the bottom edge.
	x, y := Apply(p.Matrix, 0, 0)
	if x != 10 || y != 120 {
		t.Errorf("corner (0,0) = (%v, %v), want (10, 120)", x, y)
	}
	x, y = Apply(p.Matrix, 1, 1)
	if x != 210 || y != 20 {
		t.Errorf("corner (1,1) = (%v, %v), want (210, 20)", x, y)
	}
}

func TestProjectFiltering(t *testing.T) {
	tests := []struct {
		name string
		crop image.Rectangle
		tr   Transform
		dest image.Rectangle
		want bool
	}{
		{"exact", image.Rect(0, 0, 200, 100), TransformNone, image.Rect(0, 0, 200, 100), false},
		{"scaled", image.Rect(0, 0, 200, 100), TransformNone, image.Rect(0, 0, 400, 200), true},
		{"offset_same_size", image.Rect(10, 10, 210, 110), TransformNone, image.Rect(50, 50, 250, 150), false},
		{"rot90_swapped_match", image.Rect(0, 0, 200, 100), Rot90, image.Rect(0, 0, 100, 200), false},
		{"rot90_mismatch", image.Rect(0, 0, 200, 100), Rot90, image.Rect(0, 0, 200, 100), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Project(ProjectionInput{
				Crop:        tt.crop,
				Transform:   tt.tr,
				ScalingMode: ScalingScaleToWindow,
				Dest:        tt.dest,
			})
			if !ok {
				t.Fatal("Project returned ok = false for valid input")
			}
			if p.Filtering != tt.want {
				t.Errorf("Filtering = %v, want %v", p.Filtering, tt.want)
			}
		})
	}
}

func TestProjectMalformedGeometry(t *testing.T) {
	tests := []struct {
		name string
		crop image.Rectangle
		dest image.Rectangle
	}{
		{"zero_area_crop", image.Rect(10, 10, 10, 50), image.Rect(0, 0, 100, 100)},
		{"inverted_crop", image.Rectangle{Min: image.Pt(50, 50), Max: image.Pt(10, 10)}, image.Rect(0, 0, 100, 100)},
		{"empty_dest", image.Rect(0, 0, 100, 100), image.Rect(0, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Project(ProjectionInput{
				Crop:        tt.crop,
				ScalingMode: ScalingScaleToWindow,
				Dest:        tt.dest,
			}); ok {
				t.Error("Project accepted malformed geometry")
			}
		})
	}
}

func TestProjectDeterministic(t *testing.T) {
	in := ProjectionInput{
		Crop:                  image.Rect(3, 7, 403, 307),
		Transform:             Rot270,
		ScalingMode:           ScalingScaleToWindow,
		Dest:                  image.Rect(0, 0, 1920, 1080),
		OrientationCorrection: true,
		OutputTransform:       Rot90,
		AncestorTransform:     FlipH,
	}

	a, okA := Project(in)
	b, okB := Project(in)
	if !okA || !okB {
		t.Fatal("Project returned ok = false for valid input")
	}
	if a.Matrix != b.Matrix {
		t.Error("identical inputs produced different matrices")
	}
	if a.Filtering != b.Filtering || a.SourceCrop != b.SourceCrop || a.DestRect != b.DestRect {
		t.Error("identical inputs produced different projections")
	}
}

func TestProjectRotationSwapsAxes(t *testing.T) {
	// Under a 90 degree rotation the horizontal buffer axis must land
	// on the vertical display axis.
	square := image.Rect(0, 0, 100, 100)
	p0, ok := Project(ProjectionInput{
		Crop:        square,
		ScalingMode: ScalingScaleToWindow,
		Dest:        square,
	})
	if !ok {
		t.Fatal("Project failed for identity case")
	}
	p90, ok := Project(ProjectionInput{
		Crop:        square,
		Transform:   Rot90,
		ScalingMode: ScalingScaleToWindow,
		Dest:        square,
	})
	if !ok {
		t.Fatal("Project failed for rot90 case")
	}
	if p0.Matrix == p90.Matrix {
		t.Error("rotation did not change the projection matrix")
	}

	// Moving along u must move the output along y under rot90.
	x0, y0 := Apply(p90.Matrix, 0, 0.5)
	x1, y1 := Apply(p90.Matrix, 1, 0.5)
	if y0 == y1 {
		t.Errorf("rot90: u axis did not map to y axis: (%v,%v) -> (%v,%v)", x0, y0, x1, y1)
	}
	if x0 != x1 {
		t.Errorf("rot90: u axis leaked into x: %v != %v", x0, x1)
	}
}

func TestProjectFreezeIgnoresDestSize(t *testing.T) {
	p, ok := Project(ProjectionInput{
		Crop:        image.Rect(0, 0, 64, 32),
		ScalingMode: ScalingFreeze,
		Dest:        image.Rect(100, 100, 500, 500),
	})
	if !ok {
		t.Fatal("Project returned ok = false for valid input")
	}

	// The buffer keeps its own size, anchored at the destination
	// origin.
	x0, _ := Apply(p.Matrix, 0, 0)
	x1, _ := Apply(p.Matrix, 1, 0)
	if x1-x0 != 64 {
		t.Errorf("frozen width = %v, want 64", x1-x0)
	}
}
