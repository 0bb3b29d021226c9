package hwc

import (
	"errors"

	"github.com/gogpu/hwc/buffer"
	"github.com/gogpu/hwc/overlay"
)

// Prepare classifies every layer of list and decides whether the renderer
// can skip the frame. A nil list means the display is suspended: buffers
// held from the previous frame are released and nothing else happens.
func (d *Device) Prepare(list *LayerList) error {
	if d.closed {
		return ErrClosed
	}
	fc := d.fc
	if d.forceRequest.Swap(false) {
		fc.forceComposition = true
	}
	defer func() { fc.forceComposition = false }()

	if list == nil {
		d.releaseBypassBuffers()
		d.resetSlotLocks()
		d.rotateOverlayBuffer()
		return nil
	}

	blitArea := d.blitAreaFits(list)
	d.statCount(list)
	fc.skipComposition = d.canSkipComposition()

	if fc.videoCount == 0 && fc.channel == channelOpen {
		fc.channel = channelPrepareToClose
	}
	stereo := fc.s3dFormat != 0 && d.caps.stereoComposition()

	skipPresent := false
	for i := range list.Layers {
		l := &list.Layers[i]
		h := l.Buffer
		l.Composition, l.Hints, l.Pipe = CompositionGeneric, 0, Binding{}

		switch {
		case l.Flags&FlagSkip != 0:
			skipPresent = true
			fc.skipComposition = false
			// Compose once more after the animation ends.
			fc.prevLayerCount = -1
			if h.IsVideo() {
				d.closeChannel()
			}
			if stereo {
				d.markStereo(l)
			}
			d.markForGeneric(list, i)

		case h != nil && !d.locks.Valid(h):
			slogger().Warn("hwc: invalid buffer", "layer", i, "buffer", h)
			// The renderer has to draw it.
			fc.skipComposition = false
			fc.prevLayerCount = -1

		case h.IsVideo() && fc.videoCount == 1 && l.Flags&FlagDoNotOverlay == 0:
			d.prepareVideo(l, i)

		case h != nil && h.Format.Input3D() != 0:
			d.notifyVideoStarted(d.caps.TV3D)
			if err := d.configureOverlay(l); err != nil {
				slogger().Debug("hwc: 3D layer not on overlay", "layer", i, "err", err)
				break
			}
			l.Composition = CompositionOverlay
			l.Hints |= HintClearFramebuffer
			fc.channel = channelOpen

		case stereo:
			d.markStereo(l)

		default:
			if l.Flags&FlagOriginalResolution != 0 && d.prepareOriginalResolution(l, i) {
				break
			}
			if h == nil {
				slogger().Debug("hwc: layer without buffer", "layer", i)
			}
			d.classifyBlit(l, blitArea)
		}
		slogger().Debug("hwc: layer", "index", i, "composition", l.Composition, "hints", l.Hints)
	}

	if fc.skipComposition {
		list.Flags |= ListSkipComposition
	} else {
		list.Flags &^= ListSkipComposition
	}

	d.prepareBypass(list, skipPresent)
	return nil
}

var errOffFramebuffer = errors.New("hwc: destination outside framebuffer")

// prepareVideo puts the frame's only video layer on the overlay.
func (d *Device) prepareVideo(l *Layer, i int) {
	fc := d.fc
	d.notifyVideoStarted(fc.s3dFormat != 0 && d.caps.TV3D)

	w, h := d.fb.Width(), d.fb.Height()
	switch err := d.configureOverlayIfOnScreen(l, w, h); {
	case errors.Is(err, errOffFramebuffer):
		// Usually the last frames of an animation.
		slogger().Debug("hwc: video outside framebuffer", "layer", i, "frame", l.DisplayFrame)
		fc.prevLayerCount = -1
		d.closeChannel()
	case err == nil:
		l.Composition = CompositionOverlay
		l.Hints |= HintClearFramebuffer
		fc.channel = channelOpen
	default:
		slogger().Warn("hwc: video overlay failed", "layer", i, "err", err)
		if fc.channel == channelOpen {
			fc.channel = channelPrepareToClose
		} else if err := d.manager.SetState(overlay.StateClosed); err != nil {
			slogger().Warn("hwc: reset overlay state", "err", err)
		}
		if d.blitter != nil && l.Buffer != nil && d.caps.blitAllowed() {
			l.Composition = CompositionBlit
		}
	}
	if l.Composition != CompositionOverlay {
		fc.skipComposition = false
	}
}

func (d *Device) configureOverlayIfOnScreen(l *Layer, w, h int) error {
	if !l.DisplayFrame.Within(w, h) {
		return errOffFramebuffer
	}
	return d.configureOverlay(l)
}

// prepareOriginalResolution shows l full screen on the overlay. It reports
// false when the pipes refused, leaving l to the remaining rules.
func (d *Device) prepareOriginalResolution(l *Layer, i int) bool {
	if err := d.configureOverlay(l); err != nil {
		slogger().Debug("hwc: original resolution layer not on overlay", "layer", i, "err", err)
		return false
	}
	l.Composition = CompositionOverlay
	l.Hints |= HintClearFramebuffer
	d.fc.channel = channelOpen
	return true
}

// classifyBlit decides between the blit engine and the renderer.
func (d *Device) classifyBlit(l *Layer, areaFits bool) {
	if d.blitter == nil || l.Buffer == nil {
		l.Composition = CompositionGeneric
		return
	}
	switch {
	case d.caps.blitAllowed():
		l.Composition = CompositionBlit
	case d.caps.CompositionType&CompositionTypeDyn != 0 && areaFits:
		l.Composition = CompositionBlit
	default:
		l.Composition = CompositionGeneric
	}
}

// markForGeneric hands layers [0, limit) back to the renderer, except 3D
// content, which keeps its overlay.
func (d *Device) markForGeneric(list *LayerList, limit int) {
	for i := range limit {
		l := &list.Layers[i]
		if l.Buffer != nil && l.Buffer.Format.Input3D() != 0 {
			continue
		}
		l.Composition = CompositionGeneric
		l.Hints &^= HintClearFramebuffer
	}
}

// markStereo asks the renderer to draw a UI layer for a 3D sink.
func (d *Device) markStereo(l *Layer) {
	l.Composition = CompositionGeneric
	switch d.fc.s3dFormat {
	case buffer.In3DSideBySideLR, buffer.In3DSideBySideRL:
		l.Hints |= HintS3DSideBySide
	case buffer.In3DTopBottom:
		l.Hints |= HintS3DTopBottom
	default:
		slogger().Warn("hwc: unknown 3D input format", "format", d.fc.s3dFormat)
	}
}

// closeChannel starts closing an open video channel. It is finished at the
// end of Set.
func (d *Device) closeChannel() {
	if d.fc.channel == channelOpen {
		d.fc.channel = channelPrepareToClose
	}
}

func (d *Device) notifyVideoStarted(is3D bool) {
	v := Video2DOverlayStarted
	if is3D {
		v = Video3DOverlayStarted
	}
	d.notify(FBVideoOverlay, v)
}

// statCount records the frame's counts in the frame context.
func (d *Device) statCount(list *LayerList) {
	fc := d.fc
	fc.videoCount, fc.notUpdating, fc.s3dFormat = 0, 0, 0
	for i := range list.Layers {
		l := &list.Layers[i]
		h := l.Buffer
		if h == nil {
			continue
		}
		if h.IsVideo() {
			if l.Flags&FlagDoNotOverlay == 0 {
				fc.videoCount++
			}
		} else if l.Flags&FlagNotUpdating != 0 {
			fc.notUpdating++
		}
		if fc.s3dFormat == 0 {
			fc.s3dFormat = h.Format.Input3D()
		}
	}
	fc.layerCount = len(list.Layers)
}

// blitAreaFits reports whether the frame's destinations cover at most two
// framebuffers.
func (d *Device) blitAreaFits(list *LayerList) bool {
	area := 0
	for i := range list.Layers {
		area += list.Layers[i].DisplayFrame.Area()
	}
	return area <= 2*d.fb.Width()*d.fb.Height()
}

// canSkipComposition applies skipDecision unless composition is forced.
func (d *Device) canSkipComposition() bool {
	fc := d.fc
	if fc.forceComposition || d.caps.cpuOnly() {
		return false
	}
	skip, prev := skipDecision(fc.videoCount, fc.layerCount, fc.notUpdating, fc.prevLayerCount)
	fc.prevLayerCount = prev
	return skip
}

// skipDecision decides whether a frame can skip the renderer: with exactly
// one video layer on the overlay, a frame whose layer count is unchanged
// and whose other layers are all static needs no composition. A changed
// count composes once and is remembered; anything but one video forgets it.
func skipDecision(videoCount, layerCount, notUpdating, prevCount int) (skip bool, nextPrev int) {
	if videoCount != 1 {
		return false, -1
	}
	if layerCount != prevCount {
		return false, layerCount
	}
	return layerCount == 1 || layerCount-1 == notUpdating, prevCount
}
