// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ring provides a fixed-capacity ring buffer that overwrites
// the oldest element when full. It is not safe for concurrent use;
// callers synchronize externally.
package ring

// Buffer is a fixed-capacity ring buffer of T.
type Buffer[T any] struct {
	items []T
	head  int
	size  int
}

// New creates a buffer holding at most capacity elements.
// Capacity must be positive.
func New[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("ring: capacity must be positive")
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

// Push appends v, evicting the oldest element when full.
func (b *Buffer[T]) Push(v T) {
	idx := (b.head + b.size) % len(b.items)
	b.items[idx] = v
	if b.size < len(b.items) {
		b.size++
	} else {
		b.head = (b.head + 1) % len(b.items)
	}
}

// Len returns the number of stored elements.
func (b *Buffer[T]) Len() int { return b.size }

// Cap returns the buffer capacity.
func (b *Buffer[T]) Cap() int { return len(b.items) }

// At returns the i-th element, oldest first.
func (b *Buffer[T]) At(i int) T {
	if i < 0 || i >= b.size {
		panic("ring: index out of range")
	}
	return b.items[(b.head+i)%len(b.items)]
}

// Last returns the most recently pushed element. The second result is
// false when the buffer is empty.
func (b *Buffer[T]) Last() (T, bool) {
	if b.size == 0 {
		var zero T
		return zero, false
	}
	return b.At(b.size - 1), true
}

// Do calls fn for each element, oldest first.
func (b *Buffer[T]) Do(fn func(T)) {
	for i := 0; i < b.size; i++ {
		fn(b.At(i))
	}
}
