// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import "testing"

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name  string
		tr    Transform
		w, h  int
		wantW int
		wantH int
	}{
		{"none", TransformNone, 640, 480, 640, 480},
		{"flip_h", FlipH, 640, 480, 640, 480},
		{"flip_v", FlipV, 640, 480, 640, 480},
		{"rot90", Rot90, 640, 480, 480, 640},
		{"rot180", Rot180, 640, 480, 640, 480},
		{"rot270", Rot270, 640, 480, 480, 640},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.tr.Apply(tt.w, tt.h)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Apply(%d, %d) = (%d, %d), want (%d, %d)",
					tt.w, tt.h, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestTransformString(t *testing.T) {
	tests := []struct {
		tr   Transform
		want string
	}{
		{TransformNone, "NONE"},
		{FlipH, "FLIP_H"},
		{FlipV, "FLIP_V"},
		{Rot90, "ROT_90"},
		{Rot180, "FLIP_H|FLIP_V"},
		{Rot270, "FLIP_H|FLIP_V|ROT_90"},
	}

	for _, tt := range tests {
		if got := tt.tr.String(); got != tt.want {
			t.Errorf("Transform(%d).String() = %q, want %q", tt.tr, got, tt.want)
		}
	}
}

func TestTransformMatrixStaysInUnitSquare(t *testing.T) {
	// Every transform must map the unit square corners onto unit
	// square corners.
	corners := [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	transforms := []Transform{
		TransformNone, FlipH, FlipV, Rot90, Rot180, Rot270,
	}

	for _, tr := range transforms {
		m := tr.matrix()
		for _, c := range corners {
			x, y := Apply(m, c[0], c[1])
			if x < 0 || x > 1 || y < 0 || y > 1 {
				t.Errorf("%v maps (%v, %v) outside unit square: (%v, %v)",
					tr, c[0], c[1], x, y)
			}
		}
	}
}

func TestInverseOrientationRoundTrip(t *testing.T) {
	transforms := []Transform{
		TransformNone, FlipH, FlipV, Rot90, Rot180, Rot270,
	}

	for _, tr := range transforms {
		inv, ok := inverseOrientation(tr)
		if !ok {
			t.Fatalf("inverseOrientation(%v) not invertible", tr)
		}
		id := Mul(tr.matrix(), inv)
		want := Identity()
		for i := range id {
			if diff := id[i] - want[i]; diff > 1e-12 || diff < -1e-12 {
				t.Errorf("%v: matrix * inverse differs from identity at %d: %v", tr, i, id[i])
				break
			}
		}
	}
}
