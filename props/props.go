// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package props reads the host's system properties.
//
// Properties are polled: callers read them when they need a value and never
// subscribe to changes. Keys use the dotted form, e.g.
// "debug.compbypass.enable".
package props

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Well-known keys.
const (
	KeyBypassEnable = "debug.compbypass.enable"
	KeyIdleTime     = "debug.bypass.idletime"
	KeySwapInterval = "debug.egl.swapinterval"
	KeyPanel3D      = "persist.user.panel3D"
	KeyDumpLayers   = "debug.hwc.dumplayers"
)

// Store is a read-only property source.
type Store interface {
	Get(key string) (string, bool)
}

// Map is an in-memory Store. The zero value is empty and ready to use.
type Map struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMap returns a Map holding kv.
func NewMap(kv map[string]string) *Map {
	m := &Map{m: make(map[string]string, len(kv))}
	for k, v := range kv {
		m.m[k] = v
	}
	return m
}

// Get implements Store.
func (m *Map) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.m[key]
	return v, ok
}

// Set stores a value.
func (m *Map) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.m == nil {
		m.m = make(map[string]string)
	}
	m.m[key] = value
}

// Env reads properties from environment variables. The variable name is
// Prefix followed by the key upper-cased with dots replaced by underscores:
// with Prefix "HWC_", "debug.egl.swapinterval" is HWC_DEBUG_EGL_SWAPINTERVAL.
type Env struct {
	Prefix string
}

// Get implements Store.
func (e Env) Get(key string) (string, bool) {
	return os.LookupEnv(e.Name(key))
}

// Name returns the environment variable read for key.
func (e Env) Name(key string) string {
	return e.Prefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Empty is a Store with no properties.
var Empty Store = NewMap(nil)

// Int returns the integer value of key, or def when it is unset or not a
// number.
func Int(s Store, key string, def int) int {
	if s == nil {
		return def
	}
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// Bool returns the boolean value of key. Anything strconv.ParseBool accepts
// is understood; other values give def.
func Bool(s Store, key string, def bool) bool {
	if s == nil {
		return def
	}
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

// Millis returns key read as a number of milliseconds.
func Millis(s Store, key string, def time.Duration) time.Duration {
	n := Int(s, key, -1)
	if n < 0 {
		return def
	}
	return time.Duration(n) * time.Millisecond
}
