package hwc

import (
	"fmt"

	"github.com/gogpu/hwc/blit"
	"github.com/gogpu/hwc/buffer"
	"github.com/gogpu/hwc/overlay"
	"github.com/gogpu/hwc/props"
)

// Set executes the decisions of the preceding Prepare: it queues overlay
// and bypass buffers, blits, posts the render buffer and hands buffer locks
// over to the next frame. Per-layer failures are logged and do not fail
// the frame; only a failed swap is returned.
//
// dpy and sur may be zero, in which case nothing is posted.
func (d *Device) Set(dpy Display, sur Surface, list *LayerList) error {
	if d.closed {
		return ErrClosed
	}
	fc := d.fc
	d.frames++

	if list != nil {
		dump := props.Bool(d.props, props.KeyDumpLayers, false)
		for i := range list.Layers {
			l := &list.Layers[i]
			if dump {
				dumpLayer(list.Flags, i, l)
			}
			switch {
			case l.Flags&FlagSkip != 0:
			case l.Pipe.IsBound():
				d.idle.MarkForSleep()
				d.drawBypass(l, i)
			case l.Composition == CompositionOverlay:
				d.drawOverlay(l, i)
			case list.Flags&ListSkipComposition != 0:
			case l.Composition == CompositionBlit:
				d.drawBlit(dpy, sur, l, i)
			}
		}
	} else {
		// Suspended: every pipe goes.
		fc.pipesUsed = 0
		d.closeChannel()
	}

	// Pipes leaving bypass keep scanning out until the framebuffer has
	// posted the frame that replaces them.
	pending := fc.bypass == bypassOffPending
	if !pending {
		d.bypassBookkeeping()
	}

	var err error
	skip := list != nil && list.Flags&ListSkipComposition != 0
	if dpy != 0 && sur != 0 && !skip {
		wait := fc.channel != channelClosed || fc.pipesUsed > 0 || pending
		err = d.flip(dpy, sur, wait)
	}

	if pending {
		d.bypassBookkeeping()
		if d.manager.State().BypassLayers() > 0 {
			if err := d.manager.SetState(overlay.StateClosed); err != nil {
				slogger().Warn("hwc: close bypass state", "err", err)
			}
		}
		fc.bypass = bypassOff
	}

	if fc.pendingExternal {
		d.attachExternal()
	}

	d.closeOverlayChannels()
	// The overlay has finished reading the previous buffer once channels
	// are closed.
	d.rotateOverlayBuffer()
	return err
}

// flip posts the render buffer. With wait set, it returns only after the
// framebuffer has posted so pipes and locks can be released safely.
func (d *Device) flip(dpy Display, sur Surface, wait bool) error {
	if d.renderer == nil {
		slogger().Debug("hwc: no renderer, frame not posted")
		return nil
	}
	if wait {
		d.notify(FBResetPostBuffer, 0)
	}
	if err := d.renderer.SwapBuffers(dpy, sur); err != nil {
		return fmt.Errorf("%w: %w", ErrSwapFailed, err)
	}
	if wait {
		d.notify(FBWaitPostBuffer, 0)
	}
	return nil
}

// attachExternal reports a connected external display after the frame that
// the renderer drew for it, then asks for one more composed frame.
func (d *Device) attachExternal() {
	fc := d.fc
	d.notify(FBExternalDisplay, int(fc.external))
	fc.pendingExternal = false

	p := d.procs.load()
	if p == nil {
		slogger().Warn("hwc: external display attached without registered procs")
		return
	}
	fc.forceComposition = true
	p.Invalidate()
}

// closeOverlayChannels finishes closing the video channel.
func (d *Device) closeOverlayChannels() {
	fc := d.fc
	if fc.channel != channelPrepareToClose {
		return
	}
	state := overlay.StateClosed
	if fc.externalAttached() {
		state = overlay.StateUIMirror
	}
	if err := d.manager.SetState(state); err != nil {
		slogger().Warn("hwc: close overlay channel", "err", err)
	}
	d.notify(FBVideoOverlay, VideoOverlayEnded)
	fc.channel = channelClosed
}

// drawBypass queues l on its bypass pipe. The buffer is locked only when the
// producer waits for vsync.
func (d *Device) drawBypass(l *Layer, i int) {
	fc := d.fc
	s := fc.slot(l.Pipe)
	if s == nil || l.Buffer == nil {
		slogger().Warn("hwc: bypass layer without pipe or buffer", "layer", i, "pipe", l.Pipe)
		return
	}
	h := l.Buffer
	s.cur, s.lock = nil, slotUnlocked

	if fc.swapInterval > 0 {
		if err := d.locks.Acquire(h); err != nil {
			slogger().Warn("hwc: bypass lock failed", "layer", i, "err", err)
			return
		}
		s.lock = slotLocked
	}

	if err := s.pipe.Enqueue(h); err != nil {
		slogger().Warn("hwc: bypass enqueue failed", "layer", i, "err", err)
		if s.lock == slotLocked {
			if err := d.locks.Release(h); err != nil {
				slogger().Warn("hwc: bypass unlock failed", "layer", i, "err", err)
			}
		}
		s.lock = slotUnlocked
		return
	}
	s.cur = h
}

// drawOverlay queues l on the single-overlay pipes. The buffer stays locked
// until the next frame's buffer has replaced it.
func (d *Device) drawOverlay(l *Layer, i int) {
	fc := d.fc
	h := l.Buffer
	if h == nil {
		slogger().Warn("hwc: overlay layer without buffer", "layer", i)
		return
	}
	if err := d.locks.Acquire(h); err != nil {
		slogger().Warn("hwc: overlay lock failed", "layer", i, "err", err)
		return
	}
	if err := d.manager.Play(h); err != nil {
		slogger().Warn("hwc: overlay play failed", "layer", i, "err", err)
		if err := d.locks.Release(h); err != nil {
			slogger().Warn("hwc: overlay unlock failed", "layer", i, "err", err)
		}
		return
	}
	// One current buffer per frame; an earlier one is off screen now.
	if fc.current != nil {
		if err := d.locks.Release(fc.current); err != nil {
			slogger().Warn("hwc: overlay unlock failed", "buffer", fc.current, "err", err)
		}
	}
	fc.current = h
}

// drawBlit copies l into the render buffer.
func (d *Device) drawBlit(dpy Display, sur Surface, l *Layer, i int) {
	h := l.Buffer
	if h == nil || d.blitter == nil || d.renderer == nil {
		slogger().Warn("hwc: cannot blit layer", "layer", i,
			"buffer", h != nil, "blitter", d.blitter != nil, "renderer", d.renderer != nil)
		return
	}
	if err := d.locks.Acquire(h); err != nil {
		slogger().Warn("hwc: blit lock failed", "layer", i, "err", err)
		return
	}
	defer func() {
		if err := d.locks.Release(h); err != nil {
			slogger().Warn("hwc: blit unlock failed", "layer", i, "err", err)
		}
	}()

	dst, err := d.renderer.RenderBuffer(dpy, sur)
	if err != nil {
		slogger().Warn("hwc: no render buffer", "err", err)
		return
	}
	src, err := d.sourceImage(l)
	if err != nil {
		slogger().Warn("hwc: map blit source", "layer", i, "err", err)
		return
	}

	alpha := blit.PlaneAlphaNone
	if l.Blending != BlendingNone {
		alpha = int(l.Alpha)
	}
	err = blit.Draw(d.blitter, d.alloc, blit.Request{
		Src:               src,
		SrcCrop:           l.SourceCrop,
		Dst:               dst,
		DstRect:           l.DisplayFrame,
		Clip:              l.VisibleRegion,
		Transform:         l.Transform.Final(),
		PlaneAlpha:        alpha,
		Premultiplied:     l.Blending == BlendingPremultiplied,
		Dither:            d.dither(dst),
		FramebufferWidth:  dst.Width,
		FramebufferHeight: dst.Height,
	})
	if err != nil {
		slogger().Warn("hwc: blit failed", "layer", i, "err", err)
	}
}

func (d *Device) sourceImage(l *Layer) (blit.Image, error) {
	if d.mapper == nil {
		return blit.HandleImage(l.Buffer), nil
	}
	return d.mapper.Map(l.Buffer)
}

// dither reports whether blits into dst are dithered: 16-bit render
// buffers are, and so are surfaces the GPU device reports as not 32-bit.
func (d *Device) dither(dst blit.Image) bool {
	if dst.Format != 0 {
		return dst.Format.Color() == buffer.FormatRGB565
	}
	return framebufferDither(d.device.SurfaceFormat())
}
