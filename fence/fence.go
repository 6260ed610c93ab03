// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fence

import (
	"sync"
	"time"
)

// Fence is an opaque handle signaling when a resource written by a
// producer is safe to read.
//
// Implementations must make Signaled non-blocking: the composition
// thread polls fences once per refresh cycle and is never allowed to
// wait on one.
type Fence interface {
	// Signaled reports whether the fence has fired.
	Signaled() bool

	// SignalTime returns the time the fence fired. The second result
	// is false while the fence is pending.
	SignalTime() (time.Time, bool)
}

// Poller is an optional Fence extension for backends whose signal
// query can fail (a dead driver connection, a closed handle). The
// Tracker maps poll errors according to its ErrorPolicy.
type Poller interface {
	Poll() (bool, error)
}

// ErrorPolicy decides how a fence poll error is interpreted.
type ErrorPolicy int

const (
	// ErrorPolicySignaled treats a failed poll as signaled. This
	// trades correctness for availability: a broken fence never stalls
	// composition indefinitely.
	ErrorPolicySignaled ErrorPolicy = iota

	// ErrorPolicyUnsignaled treats a failed poll as unsignaled, for
	// callers that require strict correctness over liveness.
	ErrorPolicyUnsignaled
)

// Tracker wraps a fence handle and answers readiness queries without
// blocking. A nil fence is considered always signaled, matching the
// producer convention that a frame without a fence is ready at its
// desired present time.
//
// Tracker caches the first observed signal time so later queries
// return a stable timestamp. It is safe for concurrent use.
type Tracker struct {
	fence  Fence
	policy ErrorPolicy

	mu         sync.Mutex
	signaled   bool
	signalTime time.Time
	haveTime   bool
}

// NewTracker wraps f with the given error policy.
func NewTracker(f Fence, policy ErrorPolicy) *Tracker {
	return &Tracker{fence: f, policy: policy}
}

// Signaled polls the wrapped fence without blocking.
func (t *Tracker) Signaled() bool {
	if t == nil || t.fence == nil {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.signaled {
		return true
	}

	fired, err := poll(t.fence)
	if err != nil {
		fired = t.policy == ErrorPolicySignaled
	}
	if fired {
		t.signaled = true
		if ts, ok := t.fence.SignalTime(); ok {
			t.signalTime = ts
			t.haveTime = true
		}
	}
	return t.signaled
}

// SignalTime returns the cached signal time. The second result is
// false while the fence is pending or when the backend reported no
// timestamp.
func (t *Tracker) SignalTime() (time.Time, bool) {
	if t == nil || t.fence == nil {
		return time.Time{}, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.haveTime {
		// The fence may have fired since the last poll.
		if ts, ok := t.fence.SignalTime(); ok {
			t.signalTime = ts
			t.haveTime = true
		}
	}
	return t.signalTime, t.haveTime
}

// poll queries f, preferring the error-aware Poller form.
func poll(f Fence) (bool, error) {
	if p, ok := f.(Poller); ok {
		return p.Poll()
	}
	return f.Signaled(), nil
}

// Signaled reports whether f has fired, treating a nil fence as
// signaled.
func Signaled(f Fence) bool {
	if f == nil {
		return true
	}
	return f.Signaled()
}
