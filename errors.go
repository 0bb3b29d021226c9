package hwc

import "errors"

// Errors.
var (
	// ErrNoFramebuffer is returned by Open without a framebuffer device.
	ErrNoFramebuffer = errors.New("hwc: no framebuffer")

	// ErrNoPipes is returned by Open without an overlay driver.
	ErrNoPipes = errors.New("hwc: no overlay pipes")

	// ErrClosed is returned by calls on a closed Device.
	ErrClosed = errors.New("hwc: device closed")

	// ErrSwapFailed is returned by Set when the renderer failed to post.
	ErrSwapFailed = errors.New("hwc: swap buffers failed")

	// ErrNoBuffer is returned when a pipe is asked to show a layer without a
	// buffer.
	ErrNoBuffer = errors.New("hwc: layer has no buffer")

	// ErrNonContiguous is returned when a bypass layer's memory cannot be
	// read by the pipes.
	ErrNonContiguous = errors.New("hwc: buffer memory is not contiguous")

	// ErrOffScreen is returned when nothing of a layer lies on screen.
	ErrOffScreen = errors.New("hwc: layer is off screen")
)
