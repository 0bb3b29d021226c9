// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hwctest

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/hwc"
	"github.com/gogpu/hwc/blit"
	"github.com/gogpu/hwc/buffer"
)

// Event is one framebuffer notification.
type Event struct {
	Kind  hwc.FramebufferEvent
	Value int
}

// Framebuffer is a fake framebuffer device recording its events.
type Framebuffer struct {
	W, H   int
	Events []Event
}

// NewFramebuffer returns a w x h framebuffer.
func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{W: w, H: h}
}

func (f *Framebuffer) Width() int  { return f.W }
func (f *Framebuffer) Height() int { return f.H }

func (f *Framebuffer) Perform(e hwc.FramebufferEvent, value int) error {
	f.Events = append(f.Events, Event{Kind: e, Value: value})
	return nil
}

// Count returns how many events of kind e were received.
func (f *Framebuffer) Count(e hwc.FramebufferEvent) int {
	n := 0
	for _, ev := range f.Events {
		if ev.Kind == e {
			n++
		}
	}
	return n
}

// Last returns the last event of kind e.
func (f *Framebuffer) Last(e hwc.FramebufferEvent) (Event, bool) {
	for i := len(f.Events) - 1; i >= 0; i-- {
		if f.Events[i].Kind == e {
			return f.Events[i], true
		}
	}
	return Event{}, false
}

// Renderer is a fake renderer with one RGBA render buffer.
type Renderer struct {
	Buffer *image.RGBA
	Format buffer.Format

	Swaps   int
	SwapErr error
}

// NewRenderer returns a renderer with a w x h RGBA_8888 render buffer.
func NewRenderer(w, h int) *Renderer {
	return &Renderer{
		Buffer: image.NewRGBA(image.Rect(0, 0, w, h)),
		Format: buffer.FormatRGBA8888,
	}
}

func (r *Renderer) RenderBuffer(dpy hwc.Display, sur hwc.Surface) (blit.Image, error) {
	b := r.Buffer.Bounds()
	return blit.Image{Width: b.Dx(), Height: b.Dy(), Format: r.Format, Pixels: r.Buffer}, nil
}

func (r *Renderer) SwapBuffers(dpy hwc.Display, sur hwc.Surface) error {
	if r.SwapErr != nil {
		return r.SwapErr
	}
	r.Swaps++
	return nil
}

// Procs counts invalidations. It is safe for concurrent use.
type Procs struct {
	n atomic.Int64

	// C, when non-nil, receives a value per invalidation without blocking.
	C chan struct{}
}

// NewProcs returns Procs with a buffered notification channel.
func NewProcs() *Procs {
	return &Procs{C: make(chan struct{}, 16)}
}

func (p *Procs) Invalidate() {
	p.n.Add(1)
	if p.C != nil {
		select {
		case p.C <- struct{}{}:
		default:
		}
	}
}

// Invalidations returns the number of calls so far.
func (p *Procs) Invalidations() int { return int(p.n.Load()) }

// Mapper serves RGBA images for buffers by ID.
type Mapper struct {
	Images map[buffer.ID]*image.RGBA
}

// NewMapper returns an empty Mapper.
func NewMapper() *Mapper {
	return &Mapper{Images: make(map[buffer.ID]*image.RGBA)}
}

// Add registers img as the pixels of h.
func (m *Mapper) Add(h *buffer.Handle, img *image.RGBA) {
	m.Images[h.ID] = img
}

func (m *Mapper) Map(h *buffer.Handle) (blit.Image, error) {
	img, ok := m.Images[h.ID]
	if !ok {
		return blit.Image{}, fmt.Errorf("hwctest: no pixels for buffer %d", h.ID)
	}
	im := blit.HandleImage(h)
	im.Pixels = img
	return im, nil
}

var (
	_ hwc.Framebuffer = (*Framebuffer)(nil)
	_ hwc.Renderer    = (*Renderer)(nil)
	_ hwc.Procs       = (*Procs)(nil)
	_ blit.Mapper     = (*Mapper)(nil)
)
