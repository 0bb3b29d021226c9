// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/hwc/buffer"
	"github.com/gogpu/hwc/geom"
)

// SoftwareName is the registry name of the software engine.
const SoftwareName = "software"

// softwareScaleLimit matches the per-pass limits of the display
// controller's blitter so both take the same passes.
const softwareScaleLimit = 4

// Software is a CPU blit engine over Image.Pixels. It also allocates its
// own temporary images.
type Software struct {
	interp draw.Interpolator

	transform     geom.Transform
	planeAlpha    int
	premultiplied bool
	dither        bool
	fbW, fbH      int
}

// NewSoftware returns a software engine using bilinear filtering.
func NewSoftware() *Software {
	return &Software{interp: draw.ApproxBiLinear, planeAlpha: PlaneAlphaNone}
}

// SetParameter implements Engine.
func (s *Software) SetParameter(p Param, v int) error {
	switch p {
	case ParamTransform:
		s.transform = geom.Transform(v).Final()
	case ParamPlaneAlpha:
		s.planeAlpha = v
	case ParamPremultipliedAlpha:
		s.premultiplied = v == Enable
	case ParamDither:
		// RGBA destinations have nothing to dither.
		s.dither = v == Enable
	case ParamFramebufferWidth:
		s.fbW = v
	case ParamFramebufferHeight:
		s.fbH = v
	default:
		return fmt.Errorf("%w: %d", ErrUnknownParam, p)
	}
	return nil
}

// Get implements Engine.
func (s *Software) Get(l Limit) int {
	switch l {
	case LimitMagnification, LimitMinification:
		return softwareScaleLimit
	}
	return 0
}

// Stretch implements Engine.
func (s *Software) Stretch(dst, src Image, dstRect, srcRect geom.Rect, clip []geom.Rect) error {
	if dst.Pixels == nil || src.Pixels == nil {
		return ErrNoPixels
	}
	if dstRect.Empty() || srcRect.Empty() {
		return ErrDegenerate
	}
	dr, sr := toImageRect(dstRect), toImageRect(srcRect)

	op := draw.Src
	opts := &draw.Options{}
	if s.planeAlpha != PlaneAlphaNone {
		op = draw.Over
		opts.SrcMask = image.NewUniform(color.Alpha{A: uint8(s.planeAlpha)})
	}

	bounds := dr
	if s.fbW > 0 && s.fbH > 0 {
		bounds = bounds.Intersect(image.Rect(0, 0, s.fbW, s.fbH))
	}
	regions := clip
	if len(regions) == 0 {
		regions = []geom.Rect{dstRect}
	}

	s2d := srcToDst(sr, dr, s.transform)
	for _, c := range regions {
		area := toImageRect(c).Intersect(bounds)
		if area.Empty() {
			continue
		}
		opts.DstMask = area
		if s.transform == 0 {
			s.interp.Scale(dst.Pixels, dr, src.Pixels, sr, op, opts)
		} else {
			s.interp.Transform(dst.Pixels, s2d, src.Pixels, sr, op, opts)
		}
	}
	return nil
}

// Alloc implements Allocator with an RGBA image.
func (s *Software) Alloc(w, h int, f buffer.Format) (Image, error) {
	if w <= 0 || h <= 0 {
		return Image{}, fmt.Errorf("%w: %dx%d", ErrDegenerate, w, h)
	}
	return Image{
		Width:  w,
		Height: h,
		Format: f,
		Pixels: image.NewRGBA(image.Rect(0, 0, w, h)),
	}, nil
}

// Free implements Allocator.
func (s *Software) Free(Image) {}

func toImageRect(r geom.Rect) image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// srcToDst maps sr onto dr, flipping first and then rotating a quarter turn
// clockwise.
func srcToDst(sr, dr image.Rectangle, t geom.Transform) f64.Aff3 {
	sw, sh := float64(sr.Dx()), float64(sr.Dy())
	m := f64.Aff3{
		1 / sw, 0, -float64(sr.Min.X) / sw,
		0, 1 / sh, -float64(sr.Min.Y) / sh,
	}
	if t&geom.FlipH != 0 {
		m = mul(f64.Aff3{-1, 0, 1, 0, 1, 0}, m)
	}
	if t&geom.FlipV != 0 {
		m = mul(f64.Aff3{1, 0, 0, 0, -1, 1}, m)
	}
	if t&geom.Rot90 != 0 {
		m = mul(f64.Aff3{0, -1, 1, 1, 0, 0}, m)
	}
	scale := f64.Aff3{
		float64(dr.Dx()), 0, float64(dr.Min.X),
		0, float64(dr.Dy()), float64(dr.Min.Y),
	}
	return mul(scale, m)
}

// mul returns a∘b, the transform applying b first.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}
