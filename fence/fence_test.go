// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fence

import (
	"errors"
	"testing"
	"time"
)

func TestTrackerNilFenceAlwaysSignaled(t *testing.T) {
	tr := NewTracker(nil, ErrorPolicySignaled)
	if !tr.Signaled() {
		t.Error("nil fence should report signaled")
	}
	if _, ok := tr.SignalTime(); ok {
		t.Error("nil fence should report no signal time")
	}
}

func TestTrackerSignalTransition(t *testing.T) {
	f := NewManual()
	tr := NewTracker(f, ErrorPolicySignaled)

	if tr.Signaled() {
		t.Fatal("fence reported signaled before Signal")
	}

	at := time.Unix(100, 0)
	f.Signal(at)

	if !tr.Signaled() {
		t.Fatal("fence did not report signaled after Signal")
	}
	ts, ok := tr.SignalTime()
	if !ok {
		t.Fatal("no signal time after Signal")
	}
	if !ts.Equal(at) {
		t.Errorf("SignalTime() = %v, want %v", ts, at)
	}
}

func TestTrackerSignalTimeStable(t *testing.T) {
	f := NewManual()
	tr := NewTracker(f, ErrorPolicySignaled)

	at := time.Unix(42, 0)
	f.Signal(at)
	if !tr.Signaled() {
		t.Fatal("fence should be signaled")
	}

	// Second Signal must not move the cached timestamp.
	f.Signal(at.Add(time.Second))
	ts, ok := tr.SignalTime()
	if !ok || !ts.Equal(at) {
		t.Errorf("SignalTime() = %v, %v; want %v, true", ts, ok, at)
	}
}

func TestTrackerErrorPolicy(t *testing.T) {
	tests := []struct {
		name   string
		policy ErrorPolicy
		want   bool
	}{
		{"availability", ErrorPolicySignaled, true},
		{"strict", ErrorPolicyUnsignaled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewManual()
			f.Fail(errors.New("handle closed"))

			tr := NewTracker(f, tt.policy)
			if got := tr.Signaled(); got != tt.want {
				t.Errorf("Signaled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignaledHelper(t *testing.T) {
	if !Signaled(nil) {
		t.Error("Signaled(nil) = false, want true")
	}
	f := NewManual()
	if Signaled(f) {
		t.Error("Signaled(unsignaled) = true, want false")
	}
	f.Signal(time.Now())
	if !Signaled(f) {
		t.Error("Signaled(signaled) = false, want true")
	}
}

func TestNewSignaled(t *testing.T) {
	at := time.Unix(7, 0)
	f := NewSignaled(at)
	if !f.Signaled() {
		t.Error("NewSignaled fence not signaled")
	}
	ts, ok := f.SignalTime()
	if !ok || !ts.Equal(at) {
		t.Errorf("SignalTime() = %v, %v; want %v, true", ts, ok, at)
	}
}
