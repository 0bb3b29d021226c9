// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"fmt"

	"github.com/gogpu/hwc/buffer"
)

// State is the display topology the overlay pipes are set up for.
type State uint8

const (
	StateClosed State = iota
	State2DVideoOnPanel
	State2DVideoOnPanelTV
	State3DVideoOn2DPanel
	State3DVideoOn3DPanel
	State3DVideoOn3DTV
	State3DVideoOn2DPanel2DTV
	StateUIMirror
	State2DTrueUIMirror
	StateBypass1Layer
	StateBypass2Layer
	StateBypass3Layer
)

var stateNames = [...]string{
	StateClosed:               "Closed",
	State2DVideoOnPanel:       "2DVideoOnPanel",
	State2DVideoOnPanelTV:     "2DVideoOnPanelTV",
	State3DVideoOn2DPanel:     "3DVideoOn2DPanel",
	State3DVideoOn3DPanel:     "3DVideoOn3DPanel",
	State3DVideoOn3DTV:        "3DVideoOn3DTV",
	State3DVideoOn2DPanel2DTV: "3DVideoOn2DPanel2DTV",
	StateUIMirror:             "UIMirror",
	State2DTrueUIMirror:       "2DTrueUIMirror",
	StateBypass1Layer:         "Bypass1Layer",
	StateBypass2Layer:         "Bypass2Layer",
	StateBypass3Layer:         "Bypass3Layer",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Mirrored reports whether video in state s goes to both the panel and an
// external display.
func (s State) Mirrored() bool {
	switch s {
	case State2DVideoOnPanelTV, State3DVideoOn2DPanel2DTV, State2DTrueUIMirror:
		return true
	}
	return false
}

// BypassLayers returns the number of layers a bypass state drives, or 0.
func (s State) BypassLayers() int {
	if s >= StateBypass1Layer && s <= StateBypass3Layer {
		return int(s-StateBypass1Layer) + 1
	}
	return 0
}

// BypassState returns the bypass state driving n layers.
func BypassState(n int) (State, bool) {
	if n < 1 || n > MaxPipes {
		return StateClosed, false
	}
	return StateBypass1Layer + State(n-1), true
}

// ExternalDisplay is the kind of secondary display attached.
type ExternalDisplay uint8

const (
	ExternalNone ExternalDisplay = iota
	ExternalHDMI
	ExternalWiFi
)

func (e ExternalDisplay) String() string {
	switch e {
	case ExternalNone:
		return "none"
	case ExternalHDMI:
		return "hdmi"
	case ExternalWiFi:
		return "wifi"
	default:
		return fmt.Sprintf("ExternalDisplay(%d)", uint8(e))
	}
}

// Capabilities are the 3D and mirroring features Target may choose from.
type Capabilities struct {
	TV3D          bool
	Panel3D       bool
	TrueMirroring bool
}

// Target returns the state the pipes should be in for the next frame.
//
// A bypass request wins when no external display is attached. Otherwise the
// choice follows the content's format: RGB content gives no hint and keeps
// current, 3D content picks a 3D-capable sink when one exists. Unsupported
// external display types keep current.
func Target(current State, bypassLayers int, f buffer.Format, ext ExternalDisplay, caps Capabilities) State {
	if bypassLayers > 0 {
		if ext != ExternalNone {
			return current
		}
		if s, ok := BypassState(bypassLayers); ok {
			return s
		}
		return current
	}
	if f == 0 || f.IsRGB() {
		return current
	}
	is3D := f.S3D() != 0

	switch ext {
	case ExternalHDMI:
		switch {
		case is3D && caps.TV3D:
			return State3DVideoOn3DTV
		case is3D:
			return State3DVideoOn2DPanel2DTV
		case caps.TrueMirroring:
			return State2DTrueUIMirror
		default:
			return State2DVideoOnPanelTV
		}
	case ExternalNone:
		switch {
		case is3D && caps.Panel3D:
			return State3DVideoOn3DPanel
		case is3D:
			return State3DVideoOn2DPanel
		default:
			return State2DVideoOnPanel
		}
	default:
		slogger().Warn("overlay: unsupported external display", "type", ext)
		return current
	}
}
