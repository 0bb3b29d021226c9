// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom provides the integer rectangle math used by the composition
// engine: destination validation against the framebuffer and proportional
// source-crop clamping for destinations that overflow it.
package geom

import "fmt"

// Rect is an edge-based rectangle. Right and Bottom are exclusive.
type Rect struct {
	Left, Top, Right, Bottom int
}

// XYWH builds a Rect from an origin and a size.
func XYWH(x, y, w, h int) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns Right - Left. It may be negative for malformed input.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns Bottom - Top. It may be negative for malformed input.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Empty reports whether r has no positive area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Area returns the pixel count of r, or 0 when r is empty.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width() * r.Height()
}

// Intersect returns the largest rectangle contained in both r and s.
// The result is the zero Rect if they do not overlap.
func (r Rect) Intersect(s Rect) Rect {
	out := Rect{
		Left:   max(r.Left, s.Left),
		Top:    max(r.Top, s.Top),
		Right:  min(r.Right, s.Right),
		Bottom: min(r.Bottom, s.Bottom),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Within reports whether r is non-degenerate, has no negative edge and lies
// entirely inside a w x h framebuffer.
func (r Rect) Within(w, h int) bool {
	if r.Left < 0 || r.Top < 0 || r.Right < 0 || r.Bottom < 0 {
		return false
	}
	if r.Empty() {
		return false
	}
	return r.Right <= w && r.Bottom <= h
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d,%d,%d](%dx%d)", r.Left, r.Top, r.Right, r.Bottom, r.Width(), r.Height())
}
