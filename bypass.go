package hwc

import (
	"fmt"

	"github.com/gogpu/hwc/overlay"
	"github.com/gogpu/hwc/props"
)

// prepareBypass tries to put every UI layer on its own pipe so the renderer
// has nothing to draw. It runs once per frame after classification.
func (d *Device) prepareBypass(list *LayerList, skipPresent bool) {
	fc := d.fc
	used := false
	if !skipPresent && d.bypassDoable(list) {
		if err := d.setupBypass(list); err != nil {
			slogger().Debug("hwc: bypass setup failed", "err", err)
			for i := range fc.slots {
				fc.slots[i].layer = Binding{}
			}
			// The attempt may already have changed the state.
			if err := d.manager.SetState(overlay.StateClosed); err != nil {
				slogger().Warn("hwc: reset overlay state", "err", err)
			}
		} else {
			d.setBypassLayerFlags(list)
			fc.bypass = bypassOn
			used = true
		}
	}

	if used {
		return
	}
	fc.pipesUsed = 0
	for i := range list.Layers {
		list.Layers[i].Pipe = Binding{}
	}
	if fc.bypass == bypassOn {
		fc.bypass = bypassOffPending
	}
}

// bypassEnabled polls the runtime switch.
func (d *Device) bypassEnabled() bool {
	return d.caps.Bypass && len(d.fc.slots) > 0 &&
		props.Int(d.props, props.KeyBypassEnable, 0) == 1
}

// bypassDoable reports whether this frame may use bypass.
func (d *Device) bypassDoable(list *LayerList) bool {
	fc := d.fc
	if !d.bypassEnabled() || len(list.Layers) < 1 {
		return false
	}
	if fc.externalAttached() || fc.pendingExternal || fc.forceComposition {
		return false
	}

	fc.swapInterval = props.Int(d.props, props.KeySwapInterval, 1)

	// Rotation and asynchronous producers are cheaper on the renderer.
	for i := range list.Layers {
		l := &list.Layers[i]
		if l.Transform.Final() != 0 {
			return false
		}
		if l.Flags&FlagAsynchronous != 0 && fc.swapInterval > 0 {
			return false
		}
	}

	return fc.videoCount == 0 && fc.channel == channelClosed && len(list.Layers) <= len(fc.slots)
}

// setupBypass binds layers front to back to free pipes. It fails as a
// whole: the caller drops every claim on error.
func (d *Device) setupBypass(list *LayerList) error {
	fc := d.fc
	n := len(list.Layers)

	// Claims from an earlier, longer frame must not survive.
	for i := range fc.slots {
		fc.slots[i].layer = Binding{}
	}

	state := overlay.Target(d.manager.State(), n, 0, fc.external, d.overlayCaps())
	if err := d.manager.SetState(state); err != nil {
		return err
	}

	avail := len(fc.slots)
	for i := 0; i < n && avail > 0; i++ {
		l := &list.Layers[i]
		idx := len(fc.slots) - avail
		l.Pipe = Binding{}

		// Only the last pipe waits for vsync; z-order 0 is foreground.
		if err := d.configureBypassPipe(l, idx, idx == n-1, i == 0); err != nil {
			return fmt.Errorf("hwc: bypass layer %d on pipe %d: %w", i, idx, err)
		}
		fc.slots[idx].layer = Bound(i)
		l.Pipe = Bound(idx)
		avail--
	}
	fc.pipesUsed = len(fc.slots) - avail
	return nil
}

// setBypassLayerFlags writes the claims into the layers. The renderer is
// skipped only when every layer was claimed.
func (d *Device) setBypassLayerFlags(list *LayerList) {
	fc := d.fc
	for i := 0; i < fc.pipesUsed && i < len(fc.slots); i++ {
		li, ok := fc.slots[i].layer.Index()
		if !ok || li >= len(list.Layers) {
			continue
		}
		l := &list.Layers[li]
		l.Composition = CompositionOverlay
		l.Hints |= HintClearFramebuffer
		l.Pipe = Bound(i)
	}
	fc.skipComposition = len(list.Layers) <= fc.pipesUsed
	if fc.skipComposition {
		list.Flags |= ListSkipComposition
	} else {
		list.Flags &^= ListSkipComposition
	}
}
