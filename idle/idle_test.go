// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package idle

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestFiresOnceAfterIdle(t *testing.T) {
	done := make(chan struct{}, 4)
	inv := New(10*time.Millisecond, func() { done <- struct{}{} })
	defer inv.Stop()

	inv.MarkForSleep()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not fire")
	}

	// Only one firing per mark.
	select {
	case <-done:
		t.Fatal("handler fired twice")
	case <-time.After(60 * time.Millisecond):
	}
	if inv.Fired() != 1 {
		t.Errorf("Fired() = %d, want 1", inv.Fired())
	}
	if inv.Running() {
		t.Error("goroutine should have exited after firing")
	}
}

func TestKeepsSleepingWhileMarked(t *testing.T) {
	var fired atomic.Int32
	inv := New(50*time.Millisecond, func() { fired.Add(1) })
	defer inv.Stop()

	deadline := time.Now().Add(150 * time.Millisecond)
	for time.Now().Before(deadline) {
		inv.MarkForSleep()
		time.Sleep(5 * time.Millisecond)
	}
	if n := fired.Load(); n != 0 {
		t.Fatalf("fired %d times during activity", n)
	}

	time.Sleep(300 * time.Millisecond)
	if n := fired.Load(); n != 1 {
		t.Errorf("fired %d times after activity stopped, want 1", n)
	}
}

func TestRestartsAfterFiring(t *testing.T) {
	done := make(chan struct{}, 4)
	inv := New(5*time.Millisecond, func() { done <- struct{}{} })
	defer inv.Stop()

	for round := 0; round < 2; round++ {
		inv.MarkForSleep()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("round %d: handler did not fire", round)
		}
		for inv.Running() {
			time.Sleep(time.Millisecond)
		}
	}
	if inv.Fired() != 2 {
		t.Errorf("Fired() = %d, want 2", inv.Fired())
	}
}

func TestStopCancels(t *testing.T) {
	var fired atomic.Int32
	inv := New(time.Hour, func() { fired.Add(1) })

	inv.MarkForSleep()
	if !inv.Running() {
		t.Fatal("MarkForSleep should start the goroutine")
	}
	inv.Stop()

	if inv.Running() {
		t.Error("Stop should end the goroutine")
	}
	inv.MarkForSleep()
	if inv.Running() {
		t.Error("MarkForSleep after Stop should not restart")
	}
	if fired.Load() != 0 {
		t.Error("handler ran after Stop")
	}
}

func TestDefaultInterval(t *testing.T) {
	inv := New(0, nil)
	defer inv.Stop()
	if inv.Interval() != DefaultInterval {
		t.Errorf("Interval() = %v, want %v", inv.Interval(), DefaultInterval)
	}
}
