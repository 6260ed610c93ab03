package compositor

import (
	"image"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestColorSpaceNormalize(t *testing.T) {
	tests := []struct {
		in, want ColorSpace
	}{
		{ColorSpaceLegacySRGB, ColorSpaceSRGB},
		{ColorSpaceLegacySRGBLinear, ColorSpaceSRGBLinear},
		{ColorSpaceLegacyBT601_625, ColorSpaceBT601_625},
		{ColorSpaceLegacyBT601_525, ColorSpaceBT601_525},
		{ColorSpaceLegacyBT709, ColorSpaceBT709},
		{ColorSpaceSRGB, ColorSpaceSRGB},
		{ColorSpaceBT2020PQ, ColorSpaceBT2020PQ},
		{ColorSpaceUnknown, ColorSpaceUnknown},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("Normalize(%#x) = %#x, want %#x", uint32(tt.in), uint32(got), uint32(tt.want))
		}
	}
}

func TestEffectiveCrop(t *testing.T) {
	buf := newTestBuffer(640, 480)

	f := BufferFrame{Buffer: buf, Crop: image.Rect(10, 20, 110, 120)}
	if got, want := f.EffectiveCrop(), image.Rect(10, 20, 110, 120); got != want {
		t.Errorf("explicit crop: got %v, want %v", got, want)
	}

	f = BufferFrame{Buffer: buf}
	if got, want := f.EffectiveCrop(), image.Rect(0, 0, 640, 480); got != want {
		t.Errorf("empty crop falls back to buffer: got %v, want %v", got, want)
	}

	f = BufferFrame{}
	if got := f.EffectiveCrop(); got != (image.Rectangle{}) {
		t.Errorf("no buffer: got %v, want empty", got)
	}
}

func TestIsHDR(t *testing.T) {
	meta := &HDRMetadata{MaxDisplayLuminance: 1000}
	tests := []struct {
		name string
		cs   ColorSpace
		hdr  *HDRMetadata
		want bool
	}{
		{"pq with metadata", ColorSpaceBT2020PQ, meta, true},
		{"pq without metadata", ColorSpaceBT2020PQ, nil, false},
		{"srgb with metadata", ColorSpaceSRGB, meta, false},
		{"bt2020 sdr", ColorSpaceBT2020, meta, false},
	}
	for _, tt := range tests {
		f := BufferFrame{ColorSpace: tt.cs, HDR: tt.hdr}
		if got := f.IsHDR(); got != tt.want {
			t.Errorf("%s: IsHDR() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDamageRegion(t *testing.T) {
	var zero DamageRegion
	if !zero.Empty() || zero.Full() {
		t.Error("zero value must be empty and not full")
	}

	full := FullDamage()
	if !full.Full() || full.Empty() {
		t.Error("FullDamage must be full and not empty")
	}

	r := DamageRects(image.Rect(0, 0, 5, 5), image.Rect(10, 10, 20, 20))
	if r.Full() || r.Empty() {
		t.Error("rect damage must be neither full nor empty")
	}
	if len(r.Rects()) != 2 {
		t.Errorf("Rects() = %d entries, want 2", len(r.Rects()))
	}
}

func TestOpaqueFormat(t *testing.T) {
	tests := []struct {
		format gputypes.TextureFormat
		want   bool
	}{
		{gputypes.TextureFormatRGBA8Unorm, false},
		{gputypes.TextureFormatBGRA8Unorm, false},
		{gputypes.TextureFormatR8Unorm, true},
		{gputypes.TextureFormatUndefined, true},
	}
	for _, tt := range tests {
		if got := opaqueFormat(tt.format); got != tt.want {
			t.Errorf("opaqueFormat(%v) = %v, want %v", tt.format, got, tt.want)
		}
	}
}
