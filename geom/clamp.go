// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

// ClampCrop clips dst to the [0,w) x [0,h) framebuffer and removes the
// matching portion of the source crop.
//
// For every edge that overflows, the amount cut from the crop is the
// overflow multiplied by crop extent / destination extent, both measured
// before that edge is clamped. Arithmetic is single precision and the result
// is truncated toward zero; exact rounding at odd pixels is not a contract.
//
// ok is false when either input is degenerate or when nothing of dst is left
// on screen. The returned rectangles are meaningless in that case.
func ClampCrop(crop, dst Rect, w, h int) (Rect, Rect, bool) {
	if crop.Empty() || dst.Empty() || w <= 0 || h <= 0 {
		return crop, dst, false
	}

	if dst.Left < 0 {
		scale := float32(crop.Width()) / float32(dst.Width())
		crop.Left += int(scale * float32(-dst.Left))
		dst.Left = 0
	}
	if dst.Right > w && dst.Width() > 0 {
		scale := float32(crop.Width()) / float32(dst.Width())
		crop.Right = int(float32(crop.Right) - scale*float32(dst.Right-w))
		dst.Right = w
	}
	if dst.Top < 0 {
		scale := float32(crop.Height()) / float32(dst.Height())
		crop.Top += int(scale * float32(-dst.Top))
		dst.Top = 0
	}
	if dst.Bottom > h && dst.Height() > 0 {
		scale := float32(crop.Height()) / float32(dst.Height())
		crop.Bottom = int(float32(crop.Bottom) - scale*float32(dst.Bottom-h))
		dst.Bottom = h
	}

	if dst.Empty() || crop.Empty() {
		return crop, dst, false
	}
	return crop, dst, true
}

// EvenOut rounds v down to the nearest even number.
func EvenOut(v int) int {
	return v &^ 1
}
