// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hwctest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/hwc/overlay"
)

// ErrInjected is returned by fakes for failures requested by a test.
var ErrInjected = errors.New("hwctest: injected failure")

// Pipes is a fake overlay driver. Every call is recorded as "op:dest".
type Pipes struct {
	Calls []string

	// Fail makes the named operation fail. A zero Dest fails it on every
	// destination; otherwise only calls whose destination overlaps.
	Fail map[string]overlay.Dest

	// Open holds the destinations with a committed, unclosed channel.
	Open overlay.Dest

	// States lists every state the driver was moved to.
	States []overlay.State

	// Configs holds the last committed configuration per pipe index.
	Configs [overlay.MaxPipes]overlay.PipeConfig

	// Queued counts QueueBuffer calls per pipe index.
	Queued [overlay.MaxPipes]int

	Closed bool

	pending map[overlay.Dest]overlay.PipeConfig
}

// NewPipes returns a fake driver that accepts everything.
func NewPipes() *Pipes {
	return &Pipes{
		Fail:    make(map[string]overlay.Dest),
		pending: make(map[overlay.Dest]overlay.PipeConfig),
	}
}

// FailOn makes op fail on dest (0 for every destination).
func (p *Pipes) FailOn(op string, dest overlay.Dest) {
	p.Fail[op] = dest
}

// Heal removes every injected failure.
func (p *Pipes) Heal() {
	clear(p.Fail)
}

// Reset forgets the recorded calls.
func (p *Pipes) Reset() {
	p.Calls = p.Calls[:0]
}

// Count returns how many recorded calls start with prefix.
func (p *Pipes) Count(prefix string) int {
	n := 0
	for _, c := range p.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (p *Pipes) call(op string, dest overlay.Dest) error {
	p.Calls = append(p.Calls, fmt.Sprintf("%s:%v", op, dest))
	if d, ok := p.Fail[op]; ok && (d == 0 || d&dest != 0) {
		return fmt.Errorf("%w: %s on %v", ErrInjected, op, dest)
	}
	return nil
}

func (p *Pipes) SetSource(args overlay.PipeArgs, dest overlay.Dest) error {
	if err := p.call("setSource", dest); err != nil {
		return err
	}
	c := p.pending[dest]
	c.Args = args
	p.pending[dest] = c
	return nil
}

func (p *Pipes) SetParameter(prm overlay.Params, dest overlay.Dest) error {
	return p.call("setParameter", dest)
}

func (p *Pipes) SetCrop(d overlay.Dim, dest overlay.Dest) error {
	if err := p.call("setCrop", dest); err != nil {
		return err
	}
	c := p.pending[dest]
	c.Crop = d
	p.pending[dest] = c
	return nil
}

func (p *Pipes) SetPosition(d overlay.Dim, dest overlay.Dest) error {
	if err := p.call("setPosition", dest); err != nil {
		return err
	}
	c := p.pending[dest]
	c.Position = d
	p.pending[dest] = c
	return nil
}

func (p *Pipes) Commit(dest overlay.Dest) error {
	if err := p.call("commit", dest); err != nil {
		return err
	}
	c := p.pending[dest]
	delete(p.pending, dest)
	for i := range overlay.MaxPipes {
		if dest&overlay.DestFor(i) != 0 {
			p.Configs[i] = c
		}
	}
	p.Open |= dest
	return nil
}

func (p *Pipes) SetMemoryID(fd int, dest overlay.Dest) {
	p.Calls = append(p.Calls, fmt.Sprintf("setMemoryID:%v", dest))
}

func (p *Pipes) QueueBuffer(offset uint32, dest overlay.Dest) error {
	if err := p.call("queueBuffer", dest); err != nil {
		return err
	}
	for i := range overlay.MaxPipes {
		if dest&overlay.DestFor(i) != 0 {
			p.Queued[i]++
		}
	}
	return nil
}

func (p *Pipes) WaitForVsync(dest overlay.Dest) error {
	return p.call("waitForVsync", dest)
}

func (p *Pipes) Reconfigure(args overlay.ReconfArgs) error {
	return p.call("reconfigure", overlay.DestAll)
}

func (p *Pipes) SetState(s overlay.State) error {
	if err := p.call("setState", overlay.DestAll); err != nil {
		return err
	}
	p.States = append(p.States, s)
	if s == overlay.StateClosed {
		p.Open = 0
	}
	return nil
}

// State returns the last state set, or StateClosed.
func (p *Pipes) State() overlay.State {
	if len(p.States) == 0 {
		return overlay.StateClosed
	}
	return p.States[len(p.States)-1]
}

func (p *Pipes) CloseChannel(dest overlay.Dest) error {
	if err := p.call("closeChannel", dest); err != nil {
		return err
	}
	p.Open &^= dest
	return nil
}

func (p *Pipes) Close() error {
	if err := p.call("close", overlay.DestAll); err != nil {
		return err
	}
	p.Closed = true
	p.Open = 0
	return nil
}

var _ overlay.Pipes = (*Pipes)(nil)
