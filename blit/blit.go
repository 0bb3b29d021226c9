// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"errors"

	"golang.org/x/image/draw"

	"github.com/gogpu/hwc/buffer"
	"github.com/gogpu/hwc/geom"
)

// Param names an engine parameter.
type Param int

const (
	ParamTransform Param = iota + 1
	ParamPlaneAlpha
	ParamPremultipliedAlpha
	ParamDither
	ParamFramebufferWidth
	ParamFramebufferHeight
)

// Values for boolean parameters.
const (
	Disable = 0
	Enable  = 1
)

// PlaneAlphaNone disables plane alpha: the source is copied opaque.
const PlaneAlphaNone = -1

// Limit names a scaling limit reported by Engine.Get.
type Limit int

const (
	// LimitMagnification is the largest upscale factor of one pass.
	LimitMagnification Limit = iota + 1

	// LimitMinification is the largest downscale divisor of one pass.
	LimitMinification
)

// Image is a blit source or destination.
type Image struct {
	Width, Height int
	Format        buffer.Format

	// Handle is the buffer the engine reads or writes. Hardware engines use
	// it; it may be nil for temporary images.
	Handle *buffer.Handle

	// Pixels is the CPU view used by software engines.
	Pixels draw.Image
}

// Engine is a 2D blit engine.
type Engine interface {
	SetParameter(p Param, value int) error
	Get(l Limit) int

	// Stretch scales srcRect of src into dstRect of dst, touching only the
	// parts of dstRect inside clip. An empty clip means all of dstRect.
	Stretch(dst, src Image, dstRect, srcRect geom.Rect, clip []geom.Rect) error
}

// Allocator provides temporary images for two-pass stretches.
type Allocator interface {
	Alloc(w, h int, f buffer.Format) (Image, error)
	Free(img Image)
}

// Mapper resolves a buffer to an Image. Hosts using a software engine map
// buffer memory here; hardware engines only need Image.Handle.
type Mapper interface {
	Map(h *buffer.Handle) (Image, error)
}

// HandleImage describes h without pixels.
func HandleImage(h *buffer.Handle) Image {
	if h == nil {
		return Image{}
	}
	return Image{Width: h.Width, Height: h.Height, Format: h.Format, Handle: h}
}

// Errors.
var (
	// ErrDegenerate is returned when the source crop or destination is empty.
	ErrDegenerate = errors.New("blit: degenerate rectangle")

	// ErrScaleOutOfRange is returned when even two passes cannot reach the
	// requested scale.
	ErrScaleOutOfRange = errors.New("blit: scale out of range")

	// ErrUnknownParam is returned by engines for parameters they do not know.
	ErrUnknownParam = errors.New("blit: unknown parameter")

	// ErrNoPixels is returned by software engines for images without Pixels.
	ErrNoPixels = errors.New("blit: image has no pixels")
)
