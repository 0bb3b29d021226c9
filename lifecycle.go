package hwc

import (
	"errors"

	"github.com/gogpu/hwc/buffer"
)

// releaseBypassBuffers unlocks the buffers the bypass pipes scanned out on
// the previous frame. A slot whose unlock fails keeps its buffer and is
// retried next time; a stale handle is forgotten.
func (d *Device) releaseBypassBuffers() {
	for i := range d.fc.slots {
		d.releaseSlot(i)
	}
}

func (d *Device) releaseSlot(i int) {
	s := &d.fc.slots[i]
	if s.prev == nil {
		return
	}
	err := d.locks.Release(s.prev)
	switch {
	case err == nil:
		s.prev = nil
	case errors.Is(err, buffer.ErrStaleHandle):
		slogger().Warn("hwc: dropping stale bypass buffer", "pipe", i, "buffer", s.prev)
		s.prev = nil
	default:
		slogger().Warn("hwc: bypass buffer unlock failed", "pipe", i, "err", err)
	}
}

// storeBypassLocks makes this frame's locked buffers the ones to release
// next frame.
func (d *Device) storeBypassLocks() {
	fc := d.fc
	for i := 0; i < fc.pipesUsed && i < len(fc.slots); i++ {
		s := &fc.slots[i]
		if s.lock == slotLocked {
			s.prev = s.cur
		} else {
			s.prev = nil
		}
	}
}

// resetSlotLocks forgets this frame's lock states once they are stored.
func (d *Device) resetSlotLocks() {
	for i := range d.fc.slots {
		s := &d.fc.slots[i]
		s.cur, s.lock = nil, slotUnlocked
	}
}

// closeExtraPipes releases and closes every slot past the pipes in use.
// Unused pipes always sit above the used ones in z-order.
func (d *Device) closeExtraPipes() {
	fc := d.fc
	for i := fc.pipesUsed; i < len(fc.slots); i++ {
		d.releaseSlot(i)
		s := &fc.slots[i]
		if s.prev == nil {
			s.lock = slotUnlocked
		}
		if s.configured {
			if err := s.pipe.Close(); err != nil {
				slogger().Warn("hwc: close pipe", "pipe", i, "err", err)
			}
			s.configured = false
		}
		s.layer = Binding{}
	}
}

// bypassBookkeeping runs the per-frame slot hand-off.
func (d *Device) bypassBookkeeping() {
	d.releaseBypassBuffers()
	d.storeBypassLocks()
	d.resetSlotLocks()
	d.closeExtraPipes()
}

// rotateOverlayBuffer releases the previous single-overlay buffer and makes
// the current one previous. When both are the same buffer its second hold
// keeps it locked.
func (d *Device) rotateOverlayBuffer() {
	fc := d.fc
	if fc.previous != nil {
		if err := d.locks.Release(fc.previous); err != nil {
			slogger().Warn("hwc: overlay buffer unlock failed", "buffer", fc.previous, "err", err)
		}
	}
	fc.previous, fc.current = fc.current, nil
}
