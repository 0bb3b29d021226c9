package hwc

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/hwc/blit"
	"github.com/gogpu/hwc/buffer"
	"github.com/gogpu/hwc/idle"
	"github.com/gogpu/hwc/overlay"
	"github.com/gogpu/hwc/props"
)

// Device is an open composition engine for one primary display.
//
// Prepare and Set must be called alternately from a single goroutine, the
// frame thread. Perform, RegisterProcs and Close belong to the same thread.
// Only the idle timer runs elsewhere; it touches nothing but an atomic
// request flag and the registered Procs.
type Device struct {
	fb       Framebuffer
	manager  *overlay.Manager
	locks    *buffer.Registry
	blitter  blit.Engine
	alloc    blit.Allocator
	mapper   blit.Mapper
	renderer Renderer
	props    props.Store
	caps     Capabilities
	device   DeviceHandle

	idle         *idle.Invalidator
	procs        procsHolder
	forceRequest atomic.Bool

	fc     *frameContext
	frames uint64
	closed bool
}

// Open creates a Device over the framebuffer and overlay driver.
func Open(fb Framebuffer, pipes overlay.Pipes, opts ...Option) (*Device, error) {
	if fb == nil {
		return nil, ErrNoFramebuffer
	}
	if pipes == nil {
		return nil, ErrNoPipes
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	blitter := o.blitter
	if blitter == nil && o.blitBackend != "" {
		var err error
		if o.blitBackend == bestBackend {
			blitter, err = blit.OpenBest()
		} else {
			blitter, err = blit.Open(o.blitBackend)
		}
		if err != nil {
			return nil, fmt.Errorf("hwc: open blitter: %w", err)
		}
	}
	alloc := o.allocator
	if alloc == nil {
		alloc, _ = blitter.(blit.Allocator)
	}

	d := &Device{
		fb:       fb,
		manager:  overlay.NewManager(pipes, fbNotifier{fb: fb}),
		locks:    buffer.NewRegistry(o.locker, o.validator),
		blitter:  blitter,
		alloc:    alloc,
		mapper:   o.mapper,
		renderer: o.renderer,
		props:    o.props,
		caps:     o.caps,
		device:   o.device,
	}
	d.fc = newFrameContext(d.manager, o.maxBypass)

	interval := props.Millis(o.props, props.KeyIdleTime, idle.DefaultInterval)
	d.idle = idle.New(interval, d.onIdle)

	slogger().Info("hwc: open",
		"fb", fmt.Sprintf("%dx%d", fb.Width(), fb.Height()),
		"bypassPipes", len(d.fc.slots),
		"blit", blitter != nil,
		"idle", d.idle.Interval())
	return d, nil
}

// onIdle runs on the idle timer's goroutine.
func (d *Device) onIdle() {
	p := d.procs.load()
	if p == nil {
		slogger().Warn("hwc: idle timeout without registered procs")
		return
	}
	d.forceRequest.Store(true)
	p.Invalidate()
}

// RegisterProcs sets the host callbacks. Pass nil to unregister.
func (d *Device) RegisterProcs(p Procs) {
	d.procs.store(p)
}

// Perform handles a host event.
func (d *Device) Perform(event Event, value int) {
	switch event {
	case EventExternalDisplay:
		d.enableExternal(overlay.ExternalDisplay(value))
	default:
		slogger().Warn("hwc: unknown event", "event", int(event), "value", value)
	}
}

// enableExternal records the external display. A connect is acted on after
// the next framebuffer post, so bypass draws to the framebuffer once first;
// a disconnect is reported at once.
func (d *Device) enableExternal(ext overlay.ExternalDisplay) {
	if !d.caps.ExternalDisplay {
		slogger().Warn("hwc: external display not supported", "type", ext)
		return
	}
	fc := d.fc
	slogger().Info("hwc: external display", "from", fc.external, "to", ext)
	if ext != overlay.ExternalNone && fc.externalAttached() && ext != fc.external {
		d.notify(FBExternalDisplay, int(overlay.ExternalNone))
	}
	fc.external = ext
	if ext != overlay.ExternalNone {
		fc.pendingExternal = true
		return
	}
	d.notify(FBExternalDisplay, int(ext))
}

// notify sends a framebuffer event. Failures are logged.
func (d *Device) notify(e FramebufferEvent, value int) {
	if err := d.fb.Perform(e, value); err != nil {
		slogger().Warn("hwc: framebuffer event failed", "event", e, "value", value, "err", err)
	}
}

// Close stops the idle timer, releases every buffer the engine holds and
// closes the overlay pipes.
func (d *Device) Close() error {
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	d.idle.Stop()

	fc := d.fc
	// Twice: the previous overlay buffer, then the current one.
	d.rotateOverlayBuffer()
	d.rotateOverlayBuffer()
	d.releaseBypassBuffers()

	var errs []error
	for i := range fc.slots {
		s := &fc.slots[i]
		if s.configured {
			if err := s.pipe.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		*s = pipeSlot{pipe: s.pipe}
	}
	if err := d.manager.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := d.locks.ReleaseAll(); err != nil {
		errs = append(errs, err)
	}

	slogger().Info("hwc: close", "frames", d.frames)
	return errors.Join(errs...)
}

// Stats is a snapshot of the engine's state.
type Stats struct {
	// Frames is the number of Set calls.
	Frames uint64

	OverlayState overlay.State

	// Channel is the video overlay channel: closed, open or
	// prepare-to-close.
	Channel string

	// Bypass is the bypass state: off, on or off-pending.
	Bypass    string
	PipesUsed int

	// LockedBuffers counts distinct buffers locked for hardware read.
	LockedBuffers int

	SkipComposition bool
	VideoCount      int

	External        overlay.ExternalDisplay
	PendingExternal bool

	// IdleInvalidations counts idle timer expiries.
	IdleInvalidations uint64
}

// Stats returns a snapshot. It must be called from the frame thread.
func (d *Device) Stats() Stats {
	fc := d.fc
	return Stats{
		Frames:            d.frames,
		OverlayState:      d.manager.State(),
		Channel:           fc.channel.String(),
		Bypass:            fc.bypass.String(),
		PipesUsed:         fc.pipesUsed,
		LockedBuffers:     d.locks.Len(),
		SkipComposition:   fc.skipComposition,
		VideoCount:        fc.videoCount,
		External:          fc.external,
		PendingExternal:   fc.pendingExternal,
		IdleInvalidations: d.idle.Fired(),
	}
}

// overlayCaps returns the state machine's view of the platform. The 3D
// panel may also be declared through persist.user.panel3D.
func (d *Device) overlayCaps() overlay.Capabilities {
	return overlay.Capabilities{
		TV3D:          d.caps.TV3D,
		Panel3D:       d.caps.Panel3D || props.Bool(d.props, props.KeyPanel3D, false),
		TrueMirroring: d.caps.TrueMirroring,
	}
}
