// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

// Transform is a rotation/flip bitmask applied when a buffer is shown.
// Rotations are composed from the three primitive bits.
type Transform uint32

const (
	FlipH  Transform = 0x1
	FlipV  Transform = 0x2
	Rot90  Transform = 0x4
	Rot180 Transform = FlipH | FlipV
	Rot270 Transform = Rot180 | Rot90

	// FinalMask selects the bits the display hardware understands. Higher
	// bits carry the producer's own buffer transform.
	FinalMask Transform = 0x7
)

// Final returns t restricted to FinalMask.
func (t Transform) Final() Transform { return t & FinalMask }

// SwapsAxes reports whether t turns width into height.
func (t Transform) SwapsAxes() bool { return t&Rot90 != 0 }
