package hwc

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/hwc/blit"
)

// Display and Surface are the host's opaque presentation handles. Zero means
// none.
type (
	Display uintptr
	Surface uintptr
)

// FramebufferEvent is a notification sent to the framebuffer device.
type FramebufferEvent uint8

const (
	// FBOverlayStateChange brackets overlay state changes. The value is
	// StateChangeStart or StateChangeEnd.
	FBOverlayStateChange FramebufferEvent = iota + 1

	// FBVideoOverlay reports the video overlay status: VideoOverlayEnded,
	// Video2DOverlayStarted or Video3DOverlayStarted.
	FBVideoOverlay

	// FBExternalDisplay attaches (value = overlay.ExternalDisplay) or
	// detaches (0) the external display.
	FBExternalDisplay

	// FBResetPostBuffer and FBWaitPostBuffer bracket a swap that must not
	// return before the framebuffer has posted.
	FBResetPostBuffer
	FBWaitPostBuffer
)

func (e FramebufferEvent) String() string {
	switch e {
	case FBOverlayStateChange:
		return "overlay-state-change"
	case FBVideoOverlay:
		return "video-overlay"
	case FBExternalDisplay:
		return "external-display"
	case FBResetPostBuffer:
		return "reset-post-buffer"
	case FBWaitPostBuffer:
		return "wait-post-buffer"
	default:
		return fmt.Sprintf("FramebufferEvent(%d)", uint8(e))
	}
}

// Values of FBOverlayStateChange.
const (
	StateChangeStart = 0
	StateChangeEnd   = 1
)

// Values of FBVideoOverlay.
const (
	VideoOverlayEnded     = 0
	Video2DOverlayStarted = 1
	Video3DOverlayStarted = 2
)

// Framebuffer is the primary display's framebuffer device.
type Framebuffer interface {
	Width() int
	Height() int
	Perform(event FramebufferEvent, value int) error
}

// Renderer is the host's generic renderer for the display surface.
type Renderer interface {
	// RenderBuffer returns the buffer the next swap will post.
	RenderBuffer(dpy Display, sur Surface) (blit.Image, error)

	SwapBuffers(dpy Display, sur Surface) error
}

// Procs are the host callbacks registered with RegisterProcs.
type Procs interface {
	// Invalidate asks the host for a new Prepare/Set cycle. It is called
	// from the idle timer's goroutine.
	Invalidate()
}

// ProcsFunc adapts a function to Procs.
type ProcsFunc func()

// Invalidate calls f.
func (f ProcsFunc) Invalidate() { f() }

// Event is a host event passed to Perform.
type Event int

const (
	// EventExternalDisplay reports an external display change. The value is
	// an overlay.ExternalDisplay.
	EventExternalDisplay Event = iota + 1
)

// procsBox lets an interface value live in an atomic.Pointer.
type procsBox struct{ p Procs }

type procsHolder struct {
	ptr atomic.Pointer[procsBox]
}

func (h *procsHolder) store(p Procs) {
	if p == nil {
		h.ptr.Store(nil)
		return
	}
	h.ptr.Store(&procsBox{p: p})
}

func (h *procsHolder) load() Procs {
	if b := h.ptr.Load(); b != nil {
		return b.p
	}
	return nil
}

// fbNotifier brackets overlay state changes through the framebuffer so it
// holds its own overlay lock while the pipes are rebuilt.
type fbNotifier struct{ fb Framebuffer }

func (n fbNotifier) StateChangeStart() {
	if err := n.fb.Perform(FBOverlayStateChange, StateChangeStart); err != nil {
		slogger().Warn("hwc: state change start", "err", err)
	}
}

func (n fbNotifier) StateChangeEnd() {
	if err := n.fb.Perform(FBOverlayStateChange, StateChangeEnd); err != nil {
		slogger().Warn("hwc: state change end", "err", err)
	}
}
