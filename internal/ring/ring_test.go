// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ring

import "testing"

func TestBufferPushAndAt(t *testing.T) {
	b := New[int](3)
	if b.Len() != 0 || b.Cap() != 3 {
		t.Fatalf("Len, Cap = %d, %d; want 0, 3", b.Len(), b.Cap())
	}

	b.Push(1)
	b.Push(2)
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if b.At(0) != 1 || b.At(1) != 2 {
		t.Errorf("At = %d, %d; want 1, 2", b.At(0), b.At(1))
	}
}

func TestBufferEviction(t *testing.T) {
	b := New[int](3)
	for i := 1; i <= 5; i++ {
		b.Push(i)
	}
	if b.Len() != 3 {
		t.Fatalf("Len = %d, want 3", b.Len())
	}
	want := []int{3, 4, 5}
	for i, w := range want {
		if b.At(i) != w {
			t.Errorf("At(%d) = %d, want %d", i, b.At(i), w)
		}
	}
}

func TestBufferLast(t *testing.T) {
	b := New[string](2)
	if _, ok := b.Last(); ok {
		t.Error("Last on empty buffer reported ok")
	}
	b.Push("a")
	b.Push("b")
	b.Push("c")
	if v, ok := b.Last(); !ok || v != "c" {
		t.Errorf("Last = %q, %v; want \"c\", true", v, ok)
	}
}

func TestBufferDo(t *testing.T) {
	b := New[int](4)
	for i := 0; i < 6; i++ {
		b.Push(i)
	}
	var got []int
	b.Do(func(v int) { got = append(got, v) })
	want := []int{2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("Do visited %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Do order = %v, want %v", got, want)
			break
		}
	}
}

func TestNewInvalidCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(0) did not panic")
		}
	}()
	New[int](0)
}
