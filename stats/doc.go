// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package stats records per-layer frame timing.
//
// A Tracker accumulates one record per latched frame: the desired
// present time the producer asked for, the moment the frame actually
// became ready (its fence signal time, or the desired present time
// when no fence existed), and the observed present time. Records live
// in a fixed-size history ring.
//
// Trackers optionally feed Prometheus collectors; metrics are off by
// default and never registered by the library itself.
package stats
