package hwc

import (
	"github.com/gogpu/hwc/geom"
	"github.com/gogpu/hwc/overlay"
)

// configureOverlay sets up the single-overlay pipes for l. Any bypass in
// progress is torn down first since both use the same pipes.
func (d *Device) configureOverlay(l *Layer) error {
	fc := d.fc
	if fc.bypass != bypassOff {
		fc.pipesUsed = 0
		d.closeExtraPipes()
		fc.bypass = bypassOff
	}

	h := l.Buffer
	if h == nil {
		return ErrNoBuffer
	}

	state := overlay.Target(d.manager.State(), 0, h.Format, fc.external, d.overlayCaps())
	if err := d.manager.SetState(state); err != nil {
		return err
	}

	// Video goes to the primary and the external pipe when mirroring the UI.
	dest := overlay.DestAll
	if state == overlay.State2DTrueUIMirror {
		dest = overlay.DestPipe0 | overlay.DestPipe1
	}

	if err := d.manager.ResetReconfiguration(); err != nil {
		slogger().Debug("hwc: reset reconfiguration", "err", err)
	}

	var flags overlay.MDPFlags
	if h.Secure {
		flags |= overlay.FlagSecureSession
	}

	pos := overlay.DimOf(l.DisplayFrame)
	if l.Flags&FlagOriginalResolution != 0 {
		pos = overlay.Dim{W: d.fb.Width(), H: d.fb.Height()}
	}

	return d.manager.Configure(dest, overlay.PipeConfig{
		Args: overlay.PipeArgs{
			Flags:       flags,
			Orientation: l.Transform.Final(),
			Source:      overlay.WhfOf(h),
			Wait:        fc.skipComposition,
			Foreground:  fc.layerCount == 1,
		},
		Crop:     overlay.DimOf(l.SourceCrop),
		Position: pos,
	})
}

// configureBypassPipe sets up slot idx to scan out l. The destination is
// clamped to the framebuffer with the crop shrunk to match.
func (d *Device) configureBypassPipe(l *Layer, idx int, vsync, foreground bool) error {
	h := l.Buffer
	if h == nil {
		return ErrNoBuffer
	}
	if h.NonContiguous {
		return ErrNonContiguous
	}

	w, ht := d.fb.Width(), d.fb.Height()
	crop, dst := l.SourceCrop, l.DisplayFrame
	if dst.Left < 0 || dst.Top < 0 || dst.Right > w || dst.Bottom > ht {
		var ok bool
		if crop, dst, ok = geom.ClampCrop(crop, dst, w, ht); !ok {
			return ErrOffScreen
		}
	}
	pos := overlay.DimOf(dst)
	if pos.W > w || pos.H > ht {
		pos.W, pos.H = w, ht
	}

	s := &d.fc.slots[idx]
	err := s.pipe.Configure(overlay.PipeConfig{
		Args: overlay.PipeArgs{
			Orientation: l.Transform,
			Source:      overlay.WhfOf(h),
			Wait:        vsync,
			ZOrder:      idx,
			Foreground:  foreground,
		},
		Crop:     overlay.DimOf(crop),
		Position: pos,
	})
	if err != nil {
		return err
	}
	s.configured = true
	return nil
}
