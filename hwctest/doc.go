// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package hwctest provides fake collaborators for driving an hwc.Device
// without hardware: overlay pipes, a buffer locker, a framebuffer, a
// renderer with an in-memory render buffer, host procs, and builders for
// buffers and layers.
//
// The fakes record what the engine asked of them so tests can assert on
// the exact call sequence. They are safe for use from the frame thread
// only, except Procs, which the idle timer calls from its goroutine.
package hwctest
