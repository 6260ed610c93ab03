// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package fence provides non-blocking readiness tracking for
// producer-supplied synchronization fences.
//
// A fence tells the compositor when a buffer written by a producer is
// safe to read. The composition thread only ever polls; blocking waits
// are forbidden on that thread, so an unsignaled fence causes the
// layer to be skipped for the current refresh cycle instead.
//
// Poll errors are a policy decision: the default maps them to
// "signaled" so a broken fence cannot stall composition forever. See
// ErrorPolicy.
package fence
