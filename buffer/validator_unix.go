// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build unix

package buffer

import "golang.org/x/sys/unix"

// FDValidator treats a handle as live while its file descriptor is open.
// Freeing an allocation closes its descriptor.
type FDValidator struct{}

// Valid reports whether h's descriptor is still open.
func (FDValidator) Valid(h *Handle) bool {
	if h == nil || h.FD < 0 {
		return false
	}
	_, err := unix.FcntlInt(uintptr(h.FD), unix.F_GETFD, 0)
	return err == nil
}
