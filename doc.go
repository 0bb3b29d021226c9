// Package hwc decides, once per display frame, how each layer of a frame is
// composed, and manages the hardware used to do it.
//
// # Overview
//
// A host display framework drives a Device with two calls per frame:
//
//	dev.Prepare(list)        // classify every layer
//	dev.Set(dpy, sur, list)  // drive the hardware, post the frame
//
// Prepare writes a Composition into every layer:
//   - CompositionOverlay: an overlay pipe scans the buffer out directly
//   - CompositionBlit: the 2D blit engine copies it into the render buffer
//   - CompositionGeneric: the host's renderer draws it
//
// When the frame's only change is a video layer on an overlay pipe, Prepare
// also sets ListSkipComposition and the renderer pass is skipped entirely.
//
// # Bypass
//
// When enabled, up to overlay.MaxPipes UI layers are each given their own
// pipe so the renderer has nothing to draw. An idle timer forces one
// rendered frame after the pipes go quiet so the framebuffer never goes
// stale.
//
// # Hardware
//
// Nothing here touches hardware directly. The host supplies the overlay
// driver (overlay.Pipes), the framebuffer device (Framebuffer), the buffer
// lock primitive (buffer.Locker), a blit engine (blit.Engine) and the
// renderer (Renderer). hwc RECEIVES these from the host, it does not create
// them; the hwctest package provides fakes for all of them.
//
// # Threading
//
// Prepare and Set must be called from one goroutine, strictly alternating.
// The idle timer runs on its own goroutine and only requests a redraw
// through Procs.
package hwc
