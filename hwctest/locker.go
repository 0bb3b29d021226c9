// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hwctest

import (
	"fmt"
	"time"

	"github.com/gogpu/hwc/buffer"
)

// Locker is a fake lock primitive that counts locks per buffer.
type Locker struct {
	held map[buffer.ID]int

	// FailLock and FailUnlock make the next calls for a buffer fail.
	FailLock   map[buffer.ID]bool
	FailUnlock map[buffer.ID]bool

	Locks   int
	Unlocks int
}

// NewLocker returns a Locker that holds nothing.
func NewLocker() *Locker {
	return &Locker{
		held:       make(map[buffer.ID]int),
		FailLock:   make(map[buffer.ID]bool),
		FailUnlock: make(map[buffer.ID]bool),
	}
}

func (l *Locker) Lock(h *buffer.Handle, mode buffer.Mode, timeout time.Duration) error {
	if l.FailLock[h.ID] {
		return fmt.Errorf("%w: lock %d", ErrInjected, h.ID)
	}
	l.held[h.ID]++
	l.Locks++
	return nil
}

func (l *Locker) Unlock(h *buffer.Handle) error {
	if l.FailUnlock[h.ID] {
		return fmt.Errorf("%w: unlock %d", ErrInjected, h.ID)
	}
	if l.held[h.ID] == 0 {
		return fmt.Errorf("hwctest: unlock of unlocked buffer %d", h.ID)
	}
	l.held[h.ID]--
	if l.held[h.ID] == 0 {
		delete(l.held, h.ID)
	}
	l.Unlocks++
	return nil
}

// Held returns the number of locks held on id.
func (l *Locker) Held(id buffer.ID) int { return l.held[id] }

// Outstanding returns the total number of locks held.
func (l *Locker) Outstanding() int {
	n := 0
	for _, c := range l.held {
		n += c
	}
	return n
}

var _ buffer.Locker = (*Locker)(nil)
