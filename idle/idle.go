// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package idle fires a handler once the display has gone quiet.
//
// Every frame that keeps the composition hardware busy calls MarkForSleep.
// A background goroutine sleeps for the interval and, if another frame was
// marked meanwhile, sleeps again; otherwise it calls the handler once and
// exits. The next MarkForSleep starts a new goroutine.
package idle

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is used when New is given a non-positive interval.
const DefaultInterval = 2 * time.Second

// Invalidator runs handler after interval without a MarkForSleep.
type Invalidator struct {
	interval time.Duration
	handler  func()

	sleepAgain atomic.Bool
	fired      atomic.Uint64

	mu      sync.Mutex
	running bool
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New returns a stopped-until-marked Invalidator.
func New(interval time.Duration, handler func()) *Invalidator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Invalidator{
		interval: interval,
		handler:  handler,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Interval returns the sleep interval.
func (i *Invalidator) Interval() time.Duration { return i.interval }

// MarkForSleep records activity and starts the timer goroutine if it is not
// already running. It is safe to call from any goroutine.
func (i *Invalidator) MarkForSleep() {
	i.sleepAgain.Store(true)

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.running || i.stopped {
		return
	}
	i.running = true
	i.wg.Add(1)
	go i.loop()
}

// Running reports whether the timer goroutine is active.
func (i *Invalidator) Running() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.running
}

// Fired returns how many times the handler has run.
func (i *Invalidator) Fired() uint64 { return i.fired.Load() }

// Stop cancels the timer and waits for the goroutine and any running
// handler. The handler must not call Stop.
func (i *Invalidator) Stop() {
	i.mu.Lock()
	i.stopped = true
	i.cancel()
	i.mu.Unlock()

	i.wg.Wait()
}

func (i *Invalidator) loop() {
	defer i.wg.Done()

	t := time.NewTimer(i.interval)
	defer t.Stop()

	for {
		select {
		case <-i.ctx.Done():
			i.setRunning(false)
			return
		case <-t.C:
		}

		if i.sleepAgain.CompareAndSwap(true, false) {
			t.Reset(i.interval)
			continue
		}

		i.setRunning(false)
		slogger().Debug("idle: firing", "interval", i.interval)
		i.fired.Add(1)
		if i.handler != nil {
			i.handler()
		}
		return
	}
}

func (i *Invalidator) setRunning(v bool) {
	i.mu.Lock()
	i.running = v
	i.mu.Unlock()
}
