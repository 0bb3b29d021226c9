// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"fmt"

	"github.com/gogpu/hwc/geom"
)

// Request is one layer to blit into the render buffer.
type Request struct {
	Src     Image
	SrcCrop geom.Rect

	Dst     Image
	DstRect geom.Rect
	Clip    []geom.Rect

	Transform geom.Transform

	// PlaneAlpha is the layer alpha, or PlaneAlphaNone for opaque layers.
	PlaneAlpha    int
	Premultiplied bool
	Dither        bool

	FramebufferWidth  int
	FramebufferHeight int
}

// Draw blits r with e. alloc may be nil, in which case requests needing two
// passes are attempted in one.
func Draw(e Engine, alloc Allocator, r Request) error {
	t := r.Transform.Final()

	screenW, screenH := r.DstRect.Width(), r.DstRect.Height()
	if t == geom.Rot90 || t == geom.Rot270 {
		screenW, screenH = screenH, screenW
	}
	cropW, cropH := r.SrcCrop.Width(), r.SrcCrop.Height()
	if screenW <= 0 || screenH <= 0 || cropW <= 0 || cropH <= 0 {
		return fmt.Errorf("%w: dst %dx%d crop %dx%d", ErrDegenerate, screenW, screenH, cropW, cropH)
	}

	maxScale := limit(e, LimitMagnification)
	minScale := limit(e, LimitMinification)
	dsdx := float32(screenW) / float32(cropW)
	dtdy := float32(screenH) / float32(cropH)

	maxTwice, minTwice := maxScale*maxScale, minScale*minScale
	if dsdx > maxTwice || dtdy > maxTwice || dsdx < 1/minTwice || dtdy < 1/minTwice {
		return fmt.Errorf("%w: %.3fx%.3f", ErrScaleOutOfRange, dsdx, dtdy)
	}

	src, srcRect := r.Src, r.SrcCrop
	upscale := dsdx > maxScale || dtdy > maxScale
	downscale := dsdx < 1/minScale || dtdy < 1/minScale
	if (upscale || downscale) && alloc != nil {
		tmp, tmpRect, err := firstPass(e, alloc, r, upscale, maxScale, minScale)
		if err != nil {
			return err
		}
		defer alloc.Free(tmp)
		src, srcRect = tmp, tmpRect
	} else if upscale || downscale {
		slogger().Warn("blit: no allocator for two-pass stretch", "dsdx", dsdx, "dtdy", dtdy)
	}

	params := []struct {
		p Param
		v int
	}{
		{ParamFramebufferWidth, r.FramebufferWidth},
		{ParamFramebufferHeight, r.FramebufferHeight},
		{ParamTransform, int(t)},
		{ParamPlaneAlpha, r.PlaneAlpha},
		{ParamPremultipliedAlpha, flag(r.Premultiplied)},
		{ParamDither, flag(r.Dither)},
	}
	for _, p := range params {
		if err := e.SetParameter(p.p, p.v); err != nil {
			return fmt.Errorf("blit: set parameter %d: %w", p.p, err)
		}
	}
	if err := e.Stretch(r.Dst, src, r.DstRect, srcRect, r.Clip); err != nil {
		return fmt.Errorf("blit: stretch: %w", err)
	}
	return nil
}

// firstPass scales the source crop by the engine's single-pass limit into a
// temporary image, untransformed.
func firstPass(e Engine, alloc Allocator, r Request, upscale bool, maxScale, minScale float32) (Image, geom.Rect, error) {
	// The driver evens out extents, which skews the ratio unless the crop is
	// even too.
	cropW := geom.EvenOut(r.SrcCrop.Width())
	cropH := geom.EvenOut(r.SrcCrop.Height())
	srcRect := geom.XYWH(r.SrcCrop.Left, r.SrcCrop.Top, cropW, cropH)

	var tmpW, tmpH int
	if upscale {
		tmpW = int(float32(cropW) * maxScale)
		tmpH = int(float32(cropH) * maxScale)
	} else {
		tmpW = geom.EvenOut(int(float32(cropW) / minScale))
		tmpH = geom.EvenOut(int(float32(cropH) / minScale))
	}
	slogger().Debug("blit: two-pass stretch", "tmp_w", tmpW, "tmp_h", tmpH)

	tmp, err := alloc.Alloc(tmpW, tmpH, r.Dst.Format)
	if err != nil {
		return Image{}, geom.Rect{}, fmt.Errorf("blit: temporary buffer: %w", err)
	}
	tmpRect := geom.XYWH(0, 0, tmpW, tmpH)

	if err := e.SetParameter(ParamTransform, 0); err != nil {
		alloc.Free(tmp)
		return Image{}, geom.Rect{}, fmt.Errorf("blit: set parameter %d: %w", ParamTransform, err)
	}
	if err := e.SetParameter(ParamPlaneAlpha, r.PlaneAlpha); err != nil {
		alloc.Free(tmp)
		return Image{}, geom.Rect{}, fmt.Errorf("blit: set parameter %d: %w", ParamPlaneAlpha, err)
	}
	if err := e.Stretch(tmp, r.Src, tmpRect, srcRect, []geom.Rect{tmpRect}); err != nil {
		alloc.Free(tmp)
		return Image{}, geom.Rect{}, fmt.Errorf("blit: first pass: %w", err)
	}
	return tmp, tmpRect, nil
}

func limit(e Engine, l Limit) float32 {
	if v := e.Get(l); v > 0 {
		return float32(v)
	}
	return 1
}

func flag(b bool) int {
	if b {
		return Enable
	}
	return Disable
}
