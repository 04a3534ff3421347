// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: console/editbuf.go
// Summary: Fixed-capacity circular edit buffer with read, commit and edit indices.
//
// The three indices are unwrapped counters that only ever grow (the edit
// index may retreat back to the commit index). They are reduced modulo the
// capacity only when the backing array is touched, and every comparison is
// done on unsigned differences so wraparound of the counters themselves is
// harmless.

package console

import "fmt"

// DefaultInputSize is the edit buffer capacity used when none is configured.
const DefaultInputSize = 128

// EditBuffer holds the line being typed plus committed lines not yet read.
// It is not safe for concurrent use; the Console serialises access.
type EditBuffer struct {
	buf []byte
	r   uint // next byte handed to a reader
	w   uint // end of the last committed line
	e   uint // end of the line being edited
}

// NewEditBuffer returns an empty buffer holding up to size bytes.
func NewEditBuffer(size int) *EditBuffer {
	if size <= 0 {
		size = DefaultInputSize
	}
	return &EditBuffer{buf: make([]byte, size)}
}

// Cap returns the capacity C.
func (b *EditBuffer) Cap() int { return len(b.buf) }

func (b *EditBuffer) slot(i uint) int { return int(i % uint(len(b.buf))) }

// Full reports whether no further byte can be inserted.
func (b *EditBuffer) Full() bool { return b.e-b.r >= uint(len(b.buf)) }

// Room returns how many bytes can still be inserted.
func (b *EditBuffer) Room() int { return len(b.buf) - int(b.e-b.r) }

// Insert appends c to the line being edited. It reports false, leaving the
// buffer untouched, when the buffer is full.
func (b *EditBuffer) Insert(c byte) bool {
	if b.Full() {
		return false
	}
	b.buf[b.slot(b.e)] = c
	b.e++
	return true
}

// EraseLast drops the last uncommitted byte. Committed bytes are never erased.
func (b *EditBuffer) EraseLast() bool {
	if b.e == b.w {
		return false
	}
	b.e--
	return true
}

// Last returns the byte before the edit index.
func (b *EditBuffer) Last() byte { return b.buf[b.slot(b.e-1)] }

// Commit makes everything up to the edit index visible to readers.
func (b *EditBuffer) Commit() { b.w = b.e }

// ResetEdit discards uncommitted content.
func (b *EditBuffer) ResetEdit() { b.e = b.w }

// Pending returns the number of uncommitted bytes.
func (b *EditBuffer) Pending() int { return int(b.e - b.w) }

// Readable reports whether committed bytes are waiting for a reader.
func (b *EditBuffer) Readable() bool { return b.r != b.w }

// Line returns a copy of the uncommitted bytes.
func (b *EditBuffer) Line() []byte {
	out := make([]byte, 0, b.e-b.w)
	for i := b.w; i != b.e; i++ {
		out = append(out, b.buf[b.slot(i)])
	}
	return out
}

// Consume returns the next committed byte and advances the read index.
// Callers must check Readable first.
func (b *EditBuffer) Consume() byte {
	c := b.buf[b.slot(b.r)]
	b.r++
	return c
}

// Unconsume steps the read index back over the byte just consumed.
func (b *EditBuffer) Unconsume() { b.r-- }

// Indices returns the raw read, commit and edit counters.
func (b *EditBuffer) Indices() (r, w, e uint) { return b.r, b.w, b.e }

// Check verifies r <= w <= e <= r+C.
func (b *EditBuffer) Check() error {
	committed, edited := b.w-b.r, b.e-b.r
	if committed > edited || edited > uint(len(b.buf)) {
		return fmt.Errorf("input index corrupt: r=%d w=%d e=%d cap=%d", b.r, b.w, b.e, len(b.buf))
	}
	return nil
}
