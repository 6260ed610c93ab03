// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fence

import (
	"sync"
	"time"
)

// Manual is a fence signaled explicitly by the caller. Producers that
// hand over CPU-rendered buffers use it, and tests drive latch
// scenarios with it.
type Manual struct {
	mu         sync.Mutex
	signaled   bool
	signalTime time.Time
	err        error
}

// NewManual returns an unsignaled manual fence.
func NewManual() *Manual {
	return &Manual{}
}

// NewSignaled returns a fence that fired at t.
func NewSignaled(t time.Time) *Manual {
	return &Manual{signaled: true, signalTime: t}
}

// Signal marks the fence as fired at t. Signaling twice is a no-op;
// the first timestamp wins.
func (m *Manual) Signal(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.signaled {
		return
	}
	m.signaled = true
	m.signalTime = t
}

// Fail makes subsequent polls return err. Used by tests exercising the
// error policy.
func (m *Manual) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Signaled reports whether Signal has been called.
func (m *Manual) Signaled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signaled
}

// Poll reports the fence state, or the error configured via Fail.
func (m *Manual) Poll() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	return m.signaled, nil
}

// SignalTime returns the timestamp passed to Signal.
func (m *Manual) SignalTime() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.signaled {
		return time.Time{}, false
	}
	return m.signalTime, true
}

// Ensure Manual implements the fence interfaces.
var (
	_ Fence  = (*Manual)(nil)
	_ Poller = (*Manual)(nil)
)
