// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build compositordebug

package syncpoint

import "fmt"

// assertf panics when cond is false. Active only under the
// compositordebug build tag; release builds recover defensively
// instead of failing fast.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
