// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"errors"
	"testing"

	"github.com/gogpu/hwc/buffer"
	"github.com/gogpu/hwc/geom"
)

type stretchCall struct {
	dst, src         Image
	dstRect, srcRect geom.Rect
	params           map[Param]int
}

// recordingEngine records stretches with the parameters in effect.
type recordingEngine struct {
	limit    int
	params   map[Param]int
	calls    []stretchCall
	failCall int // 1-based stretch call to fail, 0 for none
}

func newRecordingEngine(limit int) *recordingEngine {
	return &recordingEngine{limit: limit, params: make(map[Param]int)}
}

func (e *recordingEngine) SetParameter(p Param, v int) error {
	e.params[p] = v
	return nil
}

func (e *recordingEngine) Get(Limit) int { return e.limit }

func (e *recordingEngine) Stretch(dst, src Image, dr, sr geom.Rect, _ []geom.Rect) error {
	snap := make(map[Param]int, len(e.params))
	for k, v := range e.params {
		snap[k] = v
	}
	e.calls = append(e.calls, stretchCall{dst, src, dr, sr, snap})
	if len(e.calls) == e.failCall {
		return errors.New("stretch failed")
	}
	return nil
}

type countingAllocator struct {
	allocs, frees int
	w, h          int
}

func (a *countingAllocator) Alloc(w, h int, f buffer.Format) (Image, error) {
	a.allocs++
	a.w, a.h = w, h
	return Image{Width: w, Height: h, Format: f}, nil
}

func (a *countingAllocator) Free(Image) { a.frees++ }

func TestDrawSinglePass(t *testing.T) {
	e := newRecordingEngine(4)
	alloc := &countingAllocator{}
	r := Request{
		SrcCrop:           geom.XYWH(0, 0, 100, 100),
		DstRect:           geom.XYWH(10, 10, 200, 150),
		Transform:         geom.FlipH | 0x100,
		PlaneAlpha:        200,
		Premultiplied:     true,
		Dither:            true,
		FramebufferWidth:  480,
		FramebufferHeight: 800,
	}
	if err := Draw(e, alloc, r); err != nil {
		t.Fatal(err)
	}
	if len(e.calls) != 1 || alloc.allocs != 0 {
		t.Fatalf("stretches = %d, allocs = %d, want 1, 0", len(e.calls), alloc.allocs)
	}
	got := e.calls[0].params
	want := map[Param]int{
		ParamFramebufferWidth:   480,
		ParamFramebufferHeight:  800,
		ParamTransform:          int(geom.FlipH),
		ParamPlaneAlpha:         200,
		ParamPremultipliedAlpha: Enable,
		ParamDither:             Enable,
	}
	for p, v := range want {
		if got[p] != v {
			t.Errorf("param %d = %d, want %d", p, got[p], v)
		}
	}
}

func TestDrawRejects(t *testing.T) {
	tests := []struct {
		name    string
		crop    geom.Rect
		dst     geom.Rect
		t       geom.Transform
		wantErr error
	}{
		{"empty crop", geom.Rect{}, geom.XYWH(0, 0, 10, 10), 0, ErrDegenerate},
		{"empty dst", geom.XYWH(0, 0, 10, 10), geom.XYWH(5, 5, 0, 10), 0, ErrDegenerate},
		{"upscale beyond limit squared", geom.XYWH(0, 0, 10, 10), geom.XYWH(0, 0, 170, 10), 0, ErrScaleOutOfRange},
		{"downscale beyond limit squared", geom.XYWH(0, 0, 1700, 100), geom.XYWH(0, 0, 100, 100), 0, ErrScaleOutOfRange},
		// Rotated, the 10x170 destination is a 170x10 screen.
		{"rotation swaps extents", geom.XYWH(0, 0, 10, 170), geom.XYWH(0, 0, 10, 170), geom.Rot90, ErrScaleOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newRecordingEngine(4)
			err := Draw(e, nil, Request{SrcCrop: tt.crop, DstRect: tt.dst, Transform: tt.t})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Draw() = %v, want %v", err, tt.wantErr)
			}
			if len(e.calls) != 0 {
				t.Errorf("rejected request stretched %d times", len(e.calls))
			}
		})
	}
}

func TestDrawTwoPass(t *testing.T) {
	tests := []struct {
		name         string
		crop, dst    geom.Rect
		wantW, wantH int
	}{
		{"upscale", geom.XYWH(0, 0, 11, 10), geom.XYWH(0, 0, 110, 100), 40, 40},
		{"downscale", geom.XYWH(0, 0, 1000, 802), geom.XYWH(0, 0, 100, 80), 250, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newRecordingEngine(4)
			alloc := &countingAllocator{}
			r := Request{SrcCrop: tt.crop, DstRect: tt.dst, Transform: geom.Rot180, PlaneAlpha: PlaneAlphaNone}
			if err := Draw(e, alloc, r); err != nil {
				t.Fatal(err)
			}
			if alloc.allocs != 1 || alloc.frees != 1 {
				t.Errorf("allocs/frees = %d/%d, want 1/1", alloc.allocs, alloc.frees)
			}
			if alloc.w != tt.wantW || alloc.h != tt.wantH {
				t.Errorf("temporary = %dx%d, want %dx%d", alloc.w, alloc.h, tt.wantW, tt.wantH)
			}
			if len(e.calls) != 2 {
				t.Fatalf("stretches = %d, want 2", len(e.calls))
			}
			first, second := e.calls[0], e.calls[1]
			if first.params[ParamTransform] != 0 {
				t.Error("first pass must not transform")
			}
			if second.params[ParamTransform] != int(geom.Rot180) {
				t.Errorf("second pass transform = %d", second.params[ParamTransform])
			}
			if second.srcRect != geom.XYWH(0, 0, tt.wantW, tt.wantH) {
				t.Errorf("second pass source = %v", second.srcRect)
			}
		})
	}
}

func TestDrawFirstPassFailureFrees(t *testing.T) {
	e := newRecordingEngine(4)
	e.failCall = 1
	alloc := &countingAllocator{}
	r := Request{SrcCrop: geom.XYWH(0, 0, 10, 10), DstRect: geom.XYWH(0, 0, 100, 100)}
	if err := Draw(e, alloc, r); err == nil {
		t.Fatal("expected first pass error")
	}
	if alloc.frees != alloc.allocs {
		t.Errorf("leaked temporary: allocs %d frees %d", alloc.allocs, alloc.frees)
	}
}

func TestDrawWithoutAllocator(t *testing.T) {
	e := newRecordingEngine(4)
	r := Request{SrcCrop: geom.XYWH(0, 0, 10, 10), DstRect: geom.XYWH(0, 0, 100, 100)}
	if err := Draw(e, nil, r); err != nil {
		t.Fatal(err)
	}
	if len(e.calls) != 1 {
		t.Errorf("stretches = %d, want a single attempt", len(e.calls))
	}
}
