// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package overlay drives the display controller's overlay pipes.
//
// The hardware itself is reached through the Pipes interface supplied by the
// host. On top of it this package provides:
//
//   - Pipe: a handle for one physical pipe (configure, enqueue, close)
//   - State: the display topology the pipes are currently serving
//   - Target: the pure transition function choosing the next State
//   - Manager: the single writer of State, bracketing every topology change
//     with start/end notifications so buffer-lock owners never race it
//
// # Configuration order
//
// A pipe is always programmed in the same order: source, transform
// parameter, crop, position, commit. Buffers are queued separately, once per
// frame, after a successful commit.
//
// # Thread Safety
//
// Manager and Pipe are used from the frame thread only.
package overlay
