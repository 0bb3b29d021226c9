// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import "fmt"

// Pipes is the overlay hardware driver. Every call addresses the pipes
// selected by dest; implementations ignore pipes that are not open.
type Pipes interface {
	SetSource(args PipeArgs, dest Dest) error
	SetParameter(p Params, dest Dest) error
	SetCrop(d Dim, dest Dest) error
	SetPosition(d Dim, dest Dest) error
	Commit(dest Dest) error

	// SetMemoryID selects the buffer memory used by the next QueueBuffer.
	SetMemoryID(fd int, dest Dest)
	QueueBuffer(offset uint32, dest Dest) error
	WaitForVsync(dest Dest) error

	Reconfigure(args ReconfArgs) error

	// SetState tears down and re-opens pipes for a new display topology.
	SetState(s State) error
	CloseChannel(dest Dest) error
	Close() error
}

// PipeError reports which step of a pipe operation failed.
type PipeError struct {
	Op   string
	Dest Dest
	Err  error
}

func (e *PipeError) Error() string {
	return fmt.Sprintf("overlay: %s on %s: %v", e.Op, e.Dest, e.Err)
}

func (e *PipeError) Unwrap() error { return e.Err }
