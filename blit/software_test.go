// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/hwc/geom"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func filled(w, h int, c color.RGBA) Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return Image{Width: w, Height: h, Pixels: img}
}

func pixel(img Image, x, y int) color.RGBA {
	return img.Pixels.(*image.RGBA).RGBAAt(x, y)
}

func TestSoftwareStretch(t *testing.T) {
	s := NewSoftware()
	src := filled(4, 4, red)
	dst := filled(16, 16, blue)

	if err := s.Stretch(dst, src, geom.XYWH(0, 0, 8, 8), geom.XYWH(0, 0, 4, 4), nil); err != nil {
		t.Fatal(err)
	}
	if got := pixel(dst, 4, 4); got != red {
		t.Errorf("inside = %v, want red", got)
	}
	if got := pixel(dst, 12, 12); got != blue {
		t.Errorf("outside = %v, want untouched blue", got)
	}
}

func TestSoftwareClip(t *testing.T) {
	s := NewSoftware()
	src := filled(8, 8, red)
	dst := filled(8, 8, blue)

	clip := []geom.Rect{geom.XYWH(0, 0, 4, 8)}
	if err := s.Stretch(dst, src, geom.XYWH(0, 0, 8, 8), geom.XYWH(0, 0, 8, 8), clip); err != nil {
		t.Fatal(err)
	}
	if got := pixel(dst, 1, 4); got != red {
		t.Errorf("clipped in = %v, want red", got)
	}
	if got := pixel(dst, 6, 4); got != blue {
		t.Errorf("clipped out = %v, want blue", got)
	}
}

func TestSoftwareFramebufferBounds(t *testing.T) {
	s := NewSoftware()
	_ = s.SetParameter(ParamFramebufferWidth, 4)
	_ = s.SetParameter(ParamFramebufferHeight, 8)
	src := filled(8, 8, red)
	dst := filled(8, 8, blue)

	if err := s.Stretch(dst, src, geom.XYWH(0, 0, 8, 8), geom.XYWH(0, 0, 8, 8), nil); err != nil {
		t.Fatal(err)
	}
	if got := pixel(dst, 6, 1); got != blue {
		t.Errorf("beyond framebuffer = %v, want blue", got)
	}
}

func TestSoftwarePlaneAlpha(t *testing.T) {
	s := NewSoftware()
	if err := s.SetParameter(ParamPlaneAlpha, 128); err != nil {
		t.Fatal(err)
	}
	src := filled(4, 4, red)
	dst := filled(4, 4, blue)
	if err := s.Stretch(dst, src, geom.XYWH(0, 0, 4, 4), geom.XYWH(0, 0, 4, 4), nil); err != nil {
		t.Fatal(err)
	}
	got := pixel(dst, 2, 2)
	if got.R == 0 || got.B == 0 {
		t.Errorf("blended = %v, want a mix of red and blue", got)
	}
}

func TestSoftwareRotate(t *testing.T) {
	s := NewSoftware()
	if err := s.SetParameter(ParamTransform, int(geom.Rot90)); err != nil {
		t.Fatal(err)
	}
	// Left half red, right half blue.
	src := filled(8, 4, red)
	for y := 0; y < 4; y++ {
		for x := 4; x < 8; x++ {
			src.Pixels.(*image.RGBA).SetRGBA(x, y, blue)
		}
	}
	dst := filled(4, 8, color.RGBA{})

	if err := s.Stretch(dst, src, geom.XYWH(0, 0, 4, 8), geom.XYWH(0, 0, 8, 4), nil); err != nil {
		t.Fatal(err)
	}
	// A clockwise quarter turn moves the left edge to the top.
	if top := pixel(dst, 2, 1); top.R < top.B {
		t.Errorf("top = %v, want red", top)
	}
	if bottom := pixel(dst, 2, 6); bottom.B < bottom.R {
		t.Errorf("bottom = %v, want blue", bottom)
	}
}

func TestSoftwareErrors(t *testing.T) {
	s := NewSoftware()
	if err := s.SetParameter(Param(99), 1); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("SetParameter(99) = %v", err)
	}
	if err := s.Stretch(Image{}, filled(1, 1, red), geom.XYWH(0, 0, 1, 1), geom.XYWH(0, 0, 1, 1), nil); !errors.Is(err, ErrNoPixels) {
		t.Errorf("Stretch without pixels = %v", err)
	}
	if _, err := s.Alloc(0, 4, 0); !errors.Is(err, ErrDegenerate) {
		t.Errorf("Alloc(0, 4) = %v", err)
	}
}

func TestSoftwareTwoPassDraw(t *testing.T) {
	s := NewSoftware()
	src := filled(2, 2, red)
	dst := filled(64, 64, blue)
	r := Request{
		Src:        src,
		SrcCrop:    geom.XYWH(0, 0, 2, 2),
		Dst:        dst,
		DstRect:    geom.XYWH(0, 0, 20, 20),
		PlaneAlpha: PlaneAlphaNone,
	}
	if err := Draw(s, s, r); err != nil {
		t.Fatal(err)
	}
	if got := pixel(dst, 10, 10); got != red {
		t.Errorf("scaled = %v, want red", got)
	}
	if got := pixel(dst, 40, 40); got != blue {
		t.Errorf("outside = %v, want blue", got)
	}
}
