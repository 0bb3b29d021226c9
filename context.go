package hwc

import (
	"fmt"

	"github.com/gogpu/hwc/buffer"
	"github.com/gogpu/hwc/overlay"
)

// channelStatus tracks the single-overlay (video) channel.
type channelStatus uint8

const (
	channelClosed channelStatus = iota
	channelOpen
	channelPrepareToClose
)

func (c channelStatus) String() string {
	switch c {
	case channelClosed:
		return "closed"
	case channelOpen:
		return "open"
	case channelPrepareToClose:
		return "prepare-to-close"
	default:
		return fmt.Sprintf("channelStatus(%d)", uint8(c))
	}
}

// bypassState is the UI-bypass state machine.
//
//	Off -> On          bypass set up this frame
//	On -> OffPending   bypass not used this frame; pipes still scanning out
//	OffPending -> Off  after the framebuffer has posted
type bypassState uint8

const (
	bypassOff bypassState = iota
	bypassOn
	bypassOffPending
)

func (b bypassState) String() string {
	switch b {
	case bypassOff:
		return "off"
	case bypassOn:
		return "on"
	case bypassOffPending:
		return "off-pending"
	default:
		return fmt.Sprintf("bypassState(%d)", uint8(b))
	}
}

// slotLock is whether a slot's buffer was locked this frame.
type slotLock uint8

const (
	slotUnlocked slotLock = iota
	slotLocked
)

// pipeSlot is one bypass pipe.
type pipeSlot struct {
	pipe *overlay.Pipe

	// layer is the index of the layer bound to this slot this frame.
	layer Binding

	// cur is the buffer enqueued this frame and lock its lock state.
	cur  *buffer.Handle
	lock slotLock

	// prev is the buffer locked through this slot on the previous frame.
	// It is still being scanned out until this frame's buffer replaces it.
	prev *buffer.Handle

	// configured is set while the pipe's channel is open.
	configured bool
}

// frameContext is the state carried between frames. Only the frame thread
// touches it.
type frameContext struct {
	// From the last classified frame.
	videoCount  int
	notUpdating int
	layerCount  int
	s3dFormat   buffer.Format

	// prevLayerCount is -1 when the next video frame must be composed.
	prevLayerCount  int
	skipComposition bool

	channel   channelStatus
	bypass    bypassState
	pipesUsed int
	slots     []pipeSlot

	// Single-overlay buffers. current is locked by this frame's Play;
	// previous is still on screen until current replaces it.
	current  *buffer.Handle
	previous *buffer.Handle

	forceComposition bool

	external        overlay.ExternalDisplay
	pendingExternal bool

	swapInterval int
}

func newFrameContext(m *overlay.Manager, n int) *frameContext {
	fc := &frameContext{
		prevLayerCount: -1,
		swapInterval:   1,
		slots:          make([]pipeSlot, n),
	}
	for i := range fc.slots {
		fc.slots[i].pipe = m.Pipe(i)
	}
	return fc
}

// slot returns the slot bound by b, or nil.
func (fc *frameContext) slot(b Binding) *pipeSlot {
	i, ok := b.Index()
	if !ok || i >= len(fc.slots) {
		return nil
	}
	return &fc.slots[i]
}

// externalAttached reports whether an external display is connected.
func (fc *frameContext) externalAttached() bool {
	return fc.external != overlay.ExternalNone
}
