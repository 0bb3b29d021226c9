// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"errors"
	"fmt"

	"github.com/gogpu/hwc/buffer"
)

// Notifier is told before and after every state change so that whoever
// scans out the framebuffer can hold off while the pipes are rebuilt.
type Notifier interface {
	StateChangeStart()
	StateChangeEnd()
}

// Manager owns the overlay pipes and is the only writer of their State.
type Manager struct {
	pipes  Pipes
	notify Notifier
	state  State
	handle [MaxPipes]*Pipe
}

// NewManager wraps the driver. notify may be nil.
func NewManager(p Pipes, notify Notifier) *Manager {
	m := &Manager{pipes: p, notify: notify}
	for i := range m.handle {
		m.handle[i] = &Pipe{m: m, index: i, dest: DestFor(i)}
	}
	return m
}

// State returns the current state.
func (m *Manager) State() State { return m.state }

// SetState moves the pipes to s. Changing to the current state does
// nothing. On failure the recorded state is unchanged.
func (m *Manager) SetState(s State) error {
	if s == m.state {
		return nil
	}
	if m.notify != nil {
		m.notify.StateChangeStart()
		defer m.notify.StateChangeEnd()
	}
	if err := m.pipes.SetState(s); err != nil {
		return fmt.Errorf("overlay: set state %s: %w", s, err)
	}
	slogger().Debug("overlay: state", "from", m.state, "to", s)
	m.state = s
	return nil
}

// Configure programs dest with cfg and commits it.
func (m *Manager) Configure(dest Dest, cfg PipeConfig) error {
	if err := m.pipes.SetSource(cfg.Args, dest); err != nil {
		return &PipeError{Op: "setSource", Dest: dest, Err: err}
	}
	p := Params{Op: ParamTransform, Value: int(cfg.Args.Orientation.Final())}
	if err := m.pipes.SetParameter(p, dest); err != nil {
		return &PipeError{Op: "setParameter", Dest: dest, Err: err}
	}
	if err := m.pipes.SetCrop(cfg.Crop, dest); err != nil {
		return &PipeError{Op: "setCrop", Dest: dest, Err: err}
	}
	if err := m.pipes.SetPosition(cfg.Position, dest); err != nil {
		return &PipeError{Op: "setPosition", Dest: dest, Err: err}
	}
	if err := m.pipes.Commit(dest); err != nil {
		return &PipeError{Op: "commit", Dest: dest, Err: err}
	}
	return nil
}

// ResetReconfiguration cancels any pending in-place reconfiguration.
func (m *Manager) ResetReconfiguration() error {
	if err := m.pipes.Reconfigure(ReconfArgs{}); err != nil {
		return &PipeError{Op: "reconfigure", Dest: DestAll, Err: err}
	}
	return nil
}

// Play queues h on the single-overlay pipes. In mirrored states the buffer
// goes to the external pipe first, then the panel pipe, and the call waits
// for the external display's vsync.
func (m *Manager) Play(h *buffer.Handle) error {
	if h == nil {
		return buffer.ErrNilHandle
	}
	if !m.state.Mirrored() {
		m.pipes.SetMemoryID(h.FD, DestAll)
		if err := m.pipes.QueueBuffer(h.Offset, DestAll); err != nil {
			return &PipeError{Op: "queueBuffer", Dest: DestAll, Err: err}
		}
		return nil
	}

	var errs []error
	m.pipes.SetMemoryID(h.FD, DestPipe0|DestPipe1)
	if err := m.pipes.QueueBuffer(h.Offset, DestPipe1); err != nil {
		errs = append(errs, &PipeError{Op: "queueBuffer", Dest: DestPipe1, Err: err})
	}
	if err := m.pipes.QueueBuffer(h.Offset, DestPipe0); err != nil {
		errs = append(errs, &PipeError{Op: "queueBuffer", Dest: DestPipe0, Err: err})
	}
	if err := m.pipes.WaitForVsync(DestPipe1); err != nil {
		errs = append(errs, &PipeError{Op: "waitForVsync", Dest: DestPipe1, Err: err})
	}
	return errors.Join(errs...)
}

// Pipe returns the handle for pipe i, or nil when i is out of range.
func (m *Manager) Pipe(i int) *Pipe {
	if i < 0 || i >= MaxPipes {
		return nil
	}
	return m.handle[i]
}

// Close returns the pipes to StateClosed and closes the driver.
func (m *Manager) Close() error {
	err := m.SetState(StateClosed)
	return errors.Join(err, m.pipes.Close())
}

// Pipe is one physical overlay pipe.
type Pipe struct {
	m     *Manager
	index int
	dest  Dest
}

// Index returns the pipe's position, which is also its z-order.
func (p *Pipe) Index() int { return p.index }

// Dest returns the destination addressing only this pipe.
func (p *Pipe) Dest() Dest { return p.dest }

// Configure programs the pipe.
func (p *Pipe) Configure(cfg PipeConfig) error {
	return p.m.Configure(p.dest, cfg)
}

// Enqueue queues h for scan-out on this pipe.
func (p *Pipe) Enqueue(h *buffer.Handle) error {
	if h == nil {
		return buffer.ErrNilHandle
	}
	p.m.pipes.SetMemoryID(h.FD, p.dest)
	if err := p.m.pipes.QueueBuffer(h.Offset, p.dest); err != nil {
		return &PipeError{Op: "queueBuffer", Dest: p.dest, Err: err}
	}
	return nil
}

// WaitForVsync blocks until the pipe's display reaches vsync.
func (p *Pipe) WaitForVsync() error {
	if err := p.m.pipes.WaitForVsync(p.dest); err != nil {
		return &PipeError{Op: "waitForVsync", Dest: p.dest, Err: err}
	}
	return nil
}

// Close closes the pipe's channel.
func (p *Pipe) Close() error {
	if err := p.m.pipes.CloseChannel(p.dest); err != nil {
		return &PipeError{Op: "closeChannel", Dest: p.dest, Err: err}
	}
	return nil
}
