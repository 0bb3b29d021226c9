// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !unix

package buffer

// FDValidator treats a handle as live while it has a non-negative descriptor.
// Descriptor liveness cannot be queried on this platform.
type FDValidator struct{}

// Valid reports whether h carries a descriptor.
func (FDValidator) Valid(h *Handle) bool {
	return h != nil && h.FD >= 0
}
