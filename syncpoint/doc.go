// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package syncpoint tracks cross-layer frame dependencies.
//
// A sync point records that a transaction on one layer may only apply
// after another layer's buffer reaches a target frame number. The
// Ledger keeps a layer's points ordered by target frame and is shared
// between the composition thread and transaction-registration threads;
// every operation holds a narrow lock for a bounded scan (ledgers are
// tens of entries at most).
//
// Requesting layers are referenced weakly, by ID through a Registry,
// so a torn-down layer can never be kept alive by the points that
// target it. A failed lookup is treated as already satisfied.
package syncpoint
