// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package buffer describes graphics buffers as the composition engine sees
// them and tracks which of them are locked for hardware read.
//
// The actual lock primitive and buffer allocation belong to the host; this
// package only consumes them through the Locker and Validator interfaces.
package buffer

import "fmt"

// ID identifies a buffer for the lifetime of its allocation.
type ID uint64

// Type tells what kind of producer filled the buffer.
type Type uint8

const (
	// TypeUI is a buffer rendered by an application or the UI toolkit.
	TypeUI Type = iota

	// TypeVideo is a decoder or camera buffer, usually YUV.
	TypeVideo
)

func (t Type) String() string {
	switch t {
	case TypeUI:
		return "ui"
	case TypeVideo:
		return "video"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Handle is the buffer descriptor the engine reads. Only ID participates in
// identity; the remaining fields are what the allocator reported.
type Handle struct {
	ID     ID
	Width  int
	Height int
	Format Format
	Size   int

	// FD and Offset locate the pixels for the overlay driver.
	FD     int
	Offset uint32

	// Secure buffers must only be scanned out through a secure session.
	Secure bool

	Type Type

	// NonContiguous buffers cannot be read by the overlay pipes.
	NonContiguous bool
}

// IsVideo reports whether h is non-nil and holds video content.
func (h *Handle) IsVideo() bool {
	return h != nil && h.Type == TypeVideo
}

func (h *Handle) String() string {
	if h == nil {
		return "<nil>"
	}
	return fmt.Sprintf("buf#%d(%dx%d %v fd=%d)", h.ID, h.Width, h.Height, h.Format, h.FD)
}
