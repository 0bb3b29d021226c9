package hwc

import (
	"fmt"

	"github.com/gogpu/hwc/buffer"
	"github.com/gogpu/hwc/geom"
)

// Composition is how a layer reaches the screen.
type Composition uint8

const (
	// CompositionGeneric leaves the layer to the host's renderer.
	CompositionGeneric Composition = iota

	// CompositionOverlay scans the layer out on an overlay pipe.
	CompositionOverlay

	// CompositionBlit copies the layer into the render buffer with the
	// 2D blit engine.
	CompositionBlit
)

func (c Composition) String() string {
	switch c {
	case CompositionGeneric:
		return "generic"
	case CompositionOverlay:
		return "overlay"
	case CompositionBlit:
		return "blit"
	default:
		return fmt.Sprintf("Composition(%d)", uint8(c))
	}
}

// LayerFlags are set by the host before Prepare.
type LayerFlags uint32

const (
	// FlagSkip asks for the renderer; hwc must not touch the layer.
	FlagSkip LayerFlags = 1 << iota

	// FlagDoNotOverlay keeps a video layer off the overlay pipes.
	FlagDoNotOverlay

	// FlagNotUpdating marks content unchanged since the last frame.
	FlagNotUpdating

	// FlagAsynchronous marks a producer that does not wait for vsync.
	FlagAsynchronous

	// FlagOriginalResolution shows the buffer full screen, unscaled by the
	// layer's display frame.
	FlagOriginalResolution
)

// Hints are written by Prepare for the renderer.
type Hints uint32

const (
	// HintClearFramebuffer asks the renderer to clear the layer's area so
	// the overlay below shows through.
	HintClearFramebuffer Hints = 1 << iota

	// HintS3DSideBySide asks the renderer to draw the layer twice, side by
	// side.
	HintS3DSideBySide

	// HintS3DTopBottom asks the renderer to draw the layer twice, top and
	// bottom.
	HintS3DTopBottom
)

// Blending is the layer's blend mode.
type Blending uint8

const (
	BlendingNone Blending = iota
	BlendingPremultiplied
	BlendingCoverage
)

// Binding is an optional slot index. The zero value is unbound.
type Binding struct {
	v uint8
}

// Bound returns a Binding to slot i.
func Bound(i int) Binding {
	if i < 0 || i > 254 {
		return Binding{}
	}
	return Binding{v: uint8(i) + 1}
}

// Index returns the bound slot.
func (b Binding) Index() (int, bool) {
	if b.v == 0 {
		return 0, false
	}
	return int(b.v) - 1, true
}

// IsBound reports whether b holds a slot.
func (b Binding) IsBound() bool { return b.v != 0 }

func (b Binding) String() string {
	if i, ok := b.Index(); ok {
		return fmt.Sprintf("#%d", i)
	}
	return "-"
}

// Layer is one surface of a frame.
type Layer struct {
	// Buffer is nil for layers without content, such as dim layers.
	Buffer *buffer.Handle

	SourceCrop    geom.Rect
	DisplayFrame  geom.Rect
	VisibleRegion []geom.Rect

	Transform geom.Transform
	Blending  Blending
	Alpha     uint8
	Flags     LayerFlags

	// Written by Prepare.
	Composition Composition
	Hints       Hints

	// Pipe is the bypass pipe driving this layer, if any.
	Pipe Binding
}

// ListFlags describe a whole frame.
type ListFlags uint32

const (
	// ListSkipComposition tells the host the renderer has nothing to do.
	ListSkipComposition ListFlags = 1 << iota
)

// LayerList is one frame's layers, back to front.
type LayerList struct {
	Flags  ListFlags
	Layers []Layer
}
