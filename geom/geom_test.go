// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import "testing"

func TestRectWithin(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"inside", Rect{0, 0, 480, 800}, true},
		{"touching edges", Rect{10, 10, 480, 800}, true},
		{"negative left", Rect{-1, 0, 100, 100}, false},
		{"past right", Rect{0, 0, 481, 800}, false},
		{"past bottom", Rect{0, 0, 480, 801}, false},
		{"degenerate", Rect{10, 10, 10, 20}, false},
		{"inverted", Rect{20, 20, 10, 10}, false},
		{"outside entirely", Rect{500, 0, 600, 100}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Within(480, 800); got != tt.want {
				t.Errorf("%v.Within(480, 800) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{0, 0, 100, 100}
	if got := a.Intersect(Rect{50, 50, 150, 150}); got != (Rect{50, 50, 100, 100}) {
		t.Errorf("Intersect = %v", got)
	}
	if got := a.Intersect(Rect{200, 200, 300, 300}); got != (Rect{}) {
		t.Errorf("disjoint Intersect = %v, want zero", got)
	}
}

func TestRectArea(t *testing.T) {
	if got := XYWH(5, 5, 10, 20).Area(); got != 200 {
		t.Errorf("Area = %d, want 200", got)
	}
	if got := (Rect{10, 10, 0, 0}).Area(); got != 0 {
		t.Errorf("inverted Area = %d, want 0", got)
	}
}

func TestClampCropInside(t *testing.T) {
	crop := Rect{0, 0, 100, 100}
	dst := Rect{10, 10, 110, 110}
	gotCrop, gotDst, ok := ClampCrop(crop, dst, 480, 800)
	if !ok {
		t.Fatal("ClampCrop reported failure for an in-bounds destination")
	}
	if gotCrop != crop || gotDst != dst {
		t.Errorf("in-bounds rects changed: crop %v dst %v", gotCrop, gotDst)
	}
}

func TestClampCropLeftOverflow(t *testing.T) {
	// 2:1 downscale, 50 destination pixels hang off the left edge.
	crop := Rect{0, 0, 200, 100}
	dst := Rect{-50, 0, 50, 50}
	gotCrop, gotDst, ok := ClampCrop(crop, dst, 480, 800)
	if !ok {
		t.Fatal("ClampCrop failed")
	}
	if gotDst != (Rect{0, 0, 50, 50}) {
		t.Errorf("dst = %v, want [0,0,50,50]", gotDst)
	}
	if gotCrop.Left != 100 || gotCrop.Right != 200 {
		t.Errorf("crop = %v, want left 100 right 200", gotCrop)
	}
}

func TestClampCropRightAndBottomOverflow(t *testing.T) {
	crop := Rect{0, 0, 100, 100}
	dst := Rect{430, 750, 530, 850}
	gotCrop, gotDst, ok := ClampCrop(crop, dst, 480, 800)
	if !ok {
		t.Fatal("ClampCrop failed")
	}
	if gotDst != (Rect{430, 750, 480, 800}) {
		t.Errorf("dst = %v", gotDst)
	}
	if gotCrop != (Rect{0, 0, 50, 50}) {
		t.Errorf("crop = %v, want [0,0,50,50]", gotCrop)
	}
}

func TestClampCropOutsideFramebuffer(t *testing.T) {
	tests := []struct {
		name string
		dst  Rect
	}{
		{"left beyond width", Rect{480, 0, 580, 100}},
		{"far right", Rect{1000, 0, 1100, 100}},
		{"above top", Rect{0, -200, 100, -100}},
		{"left of origin", Rect{-200, 0, -100, 100}},
		{"degenerate", Rect{10, 10, 10, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := ClampCrop(Rect{0, 0, 100, 100}, tt.dst, 480, 800)
			if ok {
				t.Errorf("ClampCrop(%v) = ok, want failure", tt.dst)
			}
		})
	}
}

func TestEvenOut(t *testing.T) {
	for in, want := range map[int]int{0: 0, 1: 0, 2: 2, 7: 6, 101: 100} {
		if got := EvenOut(in); got != want {
			t.Errorf("EvenOut(%d) = %d, want %d", in, got, want)
		}
	}
}
