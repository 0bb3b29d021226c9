// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"fmt"

	"github.com/gogpu/hwc/buffer"
	"github.com/gogpu/hwc/geom"
)

// MaxPipes is the number of physical overlay pipes.
const MaxPipes = 3

// Dest addresses one or more pipes.
type Dest uint32

const (
	DestPipe0 Dest = 1 << iota
	DestPipe1
	DestPipe2

	// DestAll addresses every pipe. Pipes that are not in use ignore it.
	DestAll = DestPipe0 | DestPipe1 | DestPipe2
)

// DestFor returns the destination of pipe i, or DestAll when i is out of
// range.
func DestFor(i int) Dest {
	if i < 0 || i >= MaxPipes {
		return DestAll
	}
	return Dest(1) << i
}

func (d Dest) String() string {
	switch d {
	case DestPipe0:
		return "pipe0"
	case DestPipe1:
		return "pipe1"
	case DestPipe2:
		return "pipe2"
	case DestAll:
		return "all"
	default:
		return fmt.Sprintf("pipes(%#x)", uint32(d))
	}
}

// MDPFlags are per-session flags passed with the source.
type MDPFlags uint32

const (
	FlagsNone MDPFlags = 0

	// FlagSecureSession routes the buffer through a protected session.
	FlagSecureSession MDPFlags = 1 << 0
)

// Whf is a buffer's width, height, format and byte size.
type Whf struct {
	W, H   int
	Format buffer.Format
	Size   int
}

// WhfOf describes h.
func WhfOf(h *buffer.Handle) Whf {
	return Whf{W: h.Width, H: h.Height, Format: h.Format, Size: h.Size}
}

// Dim is an origin/size rectangle with an output orientation.
type Dim struct {
	X, Y, W, H int
	O          int
}

// DimOf converts an edge rectangle.
func DimOf(r geom.Rect) Dim {
	return Dim{X: r.Left, Y: r.Top, W: r.Width(), H: r.Height()}
}

// PipeArgs describe the source a pipe reads from.
type PipeArgs struct {
	Flags       MDPFlags
	Orientation geom.Transform
	Source      Whf

	// Wait makes the driver block on vsync when a buffer is queued.
	Wait bool

	ZOrder int

	// Foreground marks the pipe as covering everything below it.
	Foreground bool
}

// ParamOp names a pipe parameter.
type ParamOp uint8

const (
	ParamTransform ParamOp = iota + 1
)

// Params is a single parameter update.
type Params struct {
	Op    ParamOp
	Value int
}

// ReconfArgs drives an in-place pipe reconfiguration. The zero value resets
// any pending reconfiguration.
type ReconfArgs struct {
	Enable      bool
	Source      Whf
	Crop        Dim
	Position    Dim
	FD          int
	Offset      uint32
	Orientation geom.Transform
}

// PipeConfig is everything Configure programs into a pipe.
type PipeConfig struct {
	Args     PipeArgs
	Crop     Dim
	Position Dim
}
