// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"errors"
	"sort"
	"sync"
)

// Factory creates an engine instance.
type Factory func() (Engine, error)

// Backend is a registered engine.
type Backend struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 100: dedicated 2D hardware (C2D, MDP blitter)
	//   - 10: software engines
	Priority int

	Factory Factory

	// Available reports whether the backend can be used on this system.
	Available func() bool
}

var defaultRegistry = &Registry{}

// Registry holds blit backends by name.
//
// Hardware backends register themselves from an init function:
//
//	func init() {
//	    blit.Register("c2d", 100, newC2D, c2dPresent)
//	}
type Registry struct {
	mu       sync.RWMutex
	backends map[string]*Backend
}

// NewRegistry creates a new empty registry.
// Most code should use the default registry via Register and Open.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]*Backend)}
}

// Register adds a backend to the default registry. A nil available means
// always available; registering an existing name replaces it.
func Register(name string, priority int, factory Factory, available func() bool) {
	defaultRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the default registry.
func Unregister(name string) { defaultRegistry.Unregister(name) }

// List returns the registered backend names by priority, highest first.
func List() []string { return defaultRegistry.List() }

// Available returns the available backend names by priority.
func Available() []string { return defaultRegistry.Available() }

// Open creates an engine from the named backend of the default registry.
func Open(name string) (Engine, error) { return defaultRegistry.Open(name) }

// OpenBest creates an engine from the best available backend.
func OpenBest() (Engine, error) { return defaultRegistry.OpenBest() }

// Register adds a backend to r.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backends == nil {
		r.backends = make(map[string]*Backend)
	}
	if available == nil {
		available = func() bool { return true }
	}
	r.backends[name] = &Backend{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from r.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.backends, name)
}

// List returns all backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns the names of available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns a copy of the named backend.
func (r *Registry) Get(name string) (*Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.backends[name]
	if !ok {
		return nil, false
	}
	c := *b
	return &c, true
}

// Open creates an engine from the named backend.
func (r *Registry) Open(name string) (Engine, error) {
	r.mu.RLock()
	b, ok := r.backends[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !b.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	return b.Factory()
}

// OpenBest tries the available backends in priority order and returns the
// first engine created.
func (r *Registry) OpenBest() (Engine, error) {
	r.mu.RLock()
	names := r.sortedNames(true)
	r.mu.RUnlock()

	var lastErr error
	for _, name := range names {
		e, err := r.Open(name)
		if err == nil {
			slogger().Debug("blit: selected backend", "name", name)
			return e, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoBackendAvailable
}

// sortedNames returns backend names by priority, highest first, ties by
// name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.backends) == 0 {
		return nil
	}

	list := make([]*Backend, 0, len(r.backends))
	for _, b := range r.backends {
		if onlyAvailable && !b.Available() {
			continue
		}
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Priority != list[j].Priority {
			return list[i].Priority > list[j].Priority
		}
		return list[i].Name < list[j].Name
	})

	names := make([]string, len(list))
	for i, b := range list {
		names[i] = b.Name
	}
	return names
}

// ErrNoBackendAvailable is returned when no blit backend is registered or
// available.
var ErrNoBackendAvailable = errors.New("blit: no backend available")

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "blit: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "blit: backend unavailable: " + e.Name
}

// init registers the built-in software engine.
func init() {
	Register(SoftwareName, 10, func() (Engine, error) {
		return NewSoftware(), nil
	}, nil)
}
