package hwc

import (
	"github.com/gogpu/hwc/blit"
	"github.com/gogpu/hwc/buffer"
	"github.com/gogpu/hwc/overlay"
	"github.com/gogpu/hwc/props"
)

// Option configures a Device during Open.
//
// Example:
//
//	dev, err := hwc.Open(fb, pipes,
//	    hwc.WithLocker(locker),
//	    hwc.WithRenderer(egl),
//	    hwc.WithProperties(props.Env{Prefix: "HWC_"}),
//	)
type Option func(*options)

// options holds optional configuration for Open.
type options struct {
	locker      buffer.Locker
	validator   buffer.Validator
	blitter     blit.Engine
	blitBackend string
	allocator   blit.Allocator
	mapper      blit.Mapper
	renderer    Renderer
	props       props.Store
	caps        Capabilities
	device      DeviceHandle
	maxBypass   int
}

// defaultOptions returns the default Open options.
func defaultOptions() options {
	return options{
		validator: buffer.AlwaysValid,
		props:     props.Empty,
		caps:      DefaultCapabilities(),
		device:    NullDeviceHandle{},
		maxBypass: overlay.MaxPipes,
	}
}

// WithLocker sets the buffer lock primitive. Without one, buffers are
// tracked but never locked.
func WithLocker(l buffer.Locker) Option {
	return func(o *options) {
		o.locker = l
	}
}

// WithValidator sets the handle validator. The default accepts every
// non-nil handle; buffer.FDValidator checks the file descriptor.
func WithValidator(v buffer.Validator) Option {
	return func(o *options) {
		if v != nil {
			o.validator = v
		}
	}
}

// WithBlitter sets the 2D blit engine. Without a blitter, layers are never
// classified CompositionBlit.
func WithBlitter(e blit.Engine) Option {
	return func(o *options) {
		o.blitter = e
	}
}

// WithBlitBackend opens the named backend from the blit registry. An
// explicit WithBlitter takes precedence. Use "" for the best available
// backend.
//
// Example:
//
//	dev, err := hwc.Open(fb, pipes, hwc.WithBlitBackend(blit.SoftwareName))
func WithBlitBackend(name string) Option {
	return func(o *options) {
		if name == "" {
			name = bestBackend
		}
		o.blitBackend = name
	}
}

// bestBackend asks Open for blit.OpenBest.
const bestBackend = "\x00best"

// WithAllocator sets the allocator for two-pass blits. When unset, a
// blitter that also implements blit.Allocator is used.
func WithAllocator(a blit.Allocator) Option {
	return func(o *options) {
		o.allocator = a
	}
}

// WithMapper sets how layer buffers become blit images.
func WithMapper(m blit.Mapper) Option {
	return func(o *options) {
		o.mapper = m
	}
}

// WithRenderer sets the host renderer that owns the display surface.
func WithRenderer(r Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithProperties sets the property store polled for runtime switches.
func WithProperties(s props.Store) Option {
	return func(o *options) {
		if s != nil {
			o.props = s
		}
	}
}

// WithCapabilities replaces DefaultCapabilities.
func WithCapabilities(c Capabilities) Option {
	return func(o *options) {
		o.caps = c
	}
}

// WithDeviceHandle sets the host GPU device.
func WithDeviceHandle(h DeviceHandle) Option {
	return func(o *options) {
		if h != nil {
			o.device = h
		}
	}
}

// WithMaxBypassLayers caps the pipes used for bypass. Values outside
// [0, overlay.MaxPipes] are clamped; 0 disables bypass.
func WithMaxBypassLayers(n int) Option {
	return func(o *options) {
		o.maxBypass = max(0, min(n, overlay.MaxPipes))
	}
}
