// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package blit composes layers into the render buffer with a 2D blit engine.
//
// Engines are reached through the Engine interface. Draw applies the
// stretch policy shared by all engines: destination extents are swapped for
// quarter-turn rotations, scales beyond the engine's limit squared are
// refused, and scales beyond a single pass go through a temporary buffer
// obtained from an Allocator.
//
// Engines register themselves by name and priority in a Registry. The
// built-in "software" engine scales on the CPU with golang.org/x/image/draw.
package blit
