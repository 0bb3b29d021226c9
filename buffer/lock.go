// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package buffer

import (
	"errors"
	"fmt"
	"time"
)

// MaxTimeout is the lock timeout used for hardware reads. It bounds the
// frame thread's wait on a producer still writing the buffer.
const MaxTimeout = 1000 * time.Millisecond

// Mode selects the kind of advisory lock requested from the Locker.
type Mode uint8

const (
	// ReadLock is taken by hardware that scans the buffer out.
	ReadLock Mode = iota + 1

	// WriteLock is taken by producers. The engine never requests it.
	WriteLock
)

// Locker is the host's advisory buffer lock primitive.
type Locker interface {
	// Lock blocks for at most timeout waiting for the lock.
	Lock(h *Handle, mode Mode, timeout time.Duration) error

	// Unlock releases one lock previously acquired through Lock.
	Unlock(h *Handle) error
}

// Validator reports whether a handle still refers to a live allocation.
type Validator interface {
	Valid(h *Handle) bool
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(h *Handle) bool

// Valid calls f(h).
func (f ValidatorFunc) Valid(h *Handle) bool { return f(h) }

// AlwaysValid accepts every non-nil handle.
var AlwaysValid Validator = ValidatorFunc(func(h *Handle) bool { return h != nil })

// Errors.
var (
	// ErrNilHandle is returned when an operation receives a nil handle.
	ErrNilHandle = errors.New("buffer: nil handle")

	// ErrStaleHandle is returned when a handle failed validation. The
	// registry forgets such buffers without touching the lock primitive.
	ErrStaleHandle = errors.New("buffer: stale handle")

	// ErrLockFailed wraps lock primitive failures.
	ErrLockFailed = errors.New("buffer: lock failed")

	// ErrUnlockFailed wraps unlock primitive failures.
	ErrUnlockFailed = errors.New("buffer: unlock failed")
)

// LockState is the engine's view of a buffer.
type LockState uint8

const (
	// Free means the engine holds no hardware-read lock on the buffer.
	Free LockState = iota

	// Locked means at least one hardware-read lock is held by the engine.
	Locked
)

func (s LockState) String() string {
	if s == Locked {
		return "locked"
	}
	return "free"
}

type entry struct {
	handle *Handle
	holds  int
}

// Registry records every buffer this engine has locked for hardware read.
//
// A buffer can be held more than once at a time: when the same buffer is
// presented on two consecutive frames, the newer hold is taken before the
// older one is dropped. The registry therefore counts holds and issues one
// Unlock per Release.
//
// Registry is owned by the frame thread and is not safe for concurrent use.
type Registry struct {
	locker    Locker
	validator Validator
	entries   map[ID]*entry
}

// NewRegistry creates a registry over the given primitive. A nil validator
// is replaced by AlwaysValid.
func NewRegistry(locker Locker, validator Validator) *Registry {
	if validator == nil {
		validator = AlwaysValid
	}
	return &Registry{
		locker:    locker,
		validator: validator,
		entries:   make(map[ID]*entry),
	}
}

// Valid reports whether h passes the registry's validator.
func (r *Registry) Valid(h *Handle) bool {
	return h != nil && r.validator.Valid(h)
}

// Acquire takes a hardware-read lock on h. On failure the lock is not owned
// and nothing is recorded.
func (r *Registry) Acquire(h *Handle) error {
	if h == nil {
		return ErrNilHandle
	}
	if r.locker != nil {
		if err := r.locker.Lock(h, ReadLock, MaxTimeout); err != nil {
			return fmt.Errorf("%w: %v: %w", ErrLockFailed, h, err)
		}
	}
	e, ok := r.entries[h.ID]
	if !ok {
		e = &entry{handle: h}
		r.entries[h.ID] = e
	}
	e.holds++
	return nil
}

// Release drops one hold on h. Releasing a buffer the registry does not hold
// is a no-op, so repeated calls are safe. A handle that fails validation is
// forgotten and ErrStaleHandle returned.
func (r *Registry) Release(h *Handle) error {
	if h == nil {
		return nil
	}
	e, ok := r.entries[h.ID]
	if !ok {
		return nil
	}
	if !r.validator.Valid(h) {
		delete(r.entries, h.ID)
		slogger().Warn("buffer: dropping invalid handle", "buffer", h.ID)
		return fmt.Errorf("%w: %v", ErrStaleHandle, h)
	}
	if r.locker != nil {
		if err := r.locker.Unlock(h); err != nil {
			return fmt.Errorf("%w: %v: %w", ErrUnlockFailed, h, err)
		}
	}
	e.holds--
	if e.holds <= 0 {
		delete(r.entries, h.ID)
	}
	return nil
}

// State returns the lock state of the buffer with the given identity.
func (r *Registry) State(id ID) LockState {
	if e, ok := r.entries[id]; ok && e.holds > 0 {
		return Locked
	}
	return Free
}

// Holds returns how many hardware-read locks are held on id.
func (r *Registry) Holds(id ID) int {
	if e, ok := r.entries[id]; ok {
		return e.holds
	}
	return 0
}

// Len returns the number of distinct locked buffers.
func (r *Registry) Len() int {
	return len(r.entries)
}

// ReleaseAll drops every hold. Buffers whose unlock fails are forgotten
// anyway; the first such error is returned.
func (r *Registry) ReleaseAll() error {
	var first error
	for id, e := range r.entries {
		for e.holds > 0 {
			if err := r.Release(e.handle); err != nil {
				if first == nil {
					first = err
				}
				slogger().Warn("buffer: release on teardown failed", "buffer", id, "err", err)
				break
			}
		}
		delete(r.entries, id)
	}
	return first
}
