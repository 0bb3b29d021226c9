// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"errors"
	"testing"
)

func softwareFactory() (Engine, error) { return NewSoftware(), nil }

// TestRegistryRegister tests backend registration.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 50, softwareFactory, nil)

	b, ok := r.Get("test")
	if !ok {
		t.Fatal("registered backend not found")
	}
	if b.Name != "test" || b.Priority != 50 {
		t.Errorf("backend = %s/%d, want test/50", b.Name, b.Priority)
	}
	if !b.Available() {
		t.Error("backend should be available (nil Available func)")
	}

	r.Unregister("test")
	if _, ok := r.Get("test"); ok {
		t.Error("backend should not exist after unregister")
	}
}

// TestRegistryOrder tests priority ordering and availability filtering.
func TestRegistryOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, softwareFactory, nil)
	r.Register("high", 100, softwareFactory, nil)
	r.Register("off", 200, softwareFactory, func() bool { return false })
	r.Register("mid", 50, softwareFactory, nil)

	list := r.List()
	want := []string{"off", "high", "mid", "low"}
	if len(list) != len(want) {
		t.Fatalf("List() = %v, want %v", list, want)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, list[i], want[i])
		}
	}

	avail := r.Available()
	if len(avail) != 3 || avail[0] != "high" {
		t.Errorf("Available() = %v", avail)
	}
}

// TestRegistryOpen tests opening backends by name.
func TestRegistryOpen(t *testing.T) {
	r := NewRegistry()
	r.Register("unavailable", 50, softwareFactory, func() bool { return false })

	_, err := r.Open("nonexistent")
	var notFound *BackendNotFoundError
	if !errors.As(err, &notFound) || notFound.Name != "nonexistent" {
		t.Errorf("Open(nonexistent) = %v, want BackendNotFoundError", err)
	}

	_, err = r.Open("unavailable")
	var unavailable *BackendUnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("Open(unavailable) = %v, want BackendUnavailableError", err)
	}
}

// TestRegistryOpenBest tests falling back past failing backends.
func TestRegistryOpenBest(t *testing.T) {
	r := NewRegistry()
	if _, err := r.OpenBest(); !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("empty OpenBest() = %v, want ErrNoBackendAvailable", err)
	}

	r.Register("broken", 100, func() (Engine, error) {
		return nil, errors.New("no device")
	}, nil)
	r.Register("soft", 10, softwareFactory, nil)

	e, err := r.OpenBest()
	if err != nil {
		t.Fatalf("OpenBest() = %v", err)
	}
	if _, ok := e.(*Software); !ok {
		t.Errorf("OpenBest() = %T, want *Software", e)
	}
}

// TestDefaultRegistry tests that the software engine is built in.
func TestDefaultRegistry(t *testing.T) {
	e, err := Open(SoftwareName)
	if err != nil {
		t.Fatalf("Open(%q) = %v", SoftwareName, err)
	}
	if _, ok := e.(Allocator); !ok {
		t.Error("software engine should allocate its own temporaries")
	}
	found := false
	for _, name := range Available() {
		if name == SoftwareName {
			found = true
		}
	}
	if !found {
		t.Errorf("Available() = %v, missing %s", Available(), SoftwareName)
	}
}
