// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: console/sink.go
// Summary: Output and input collaborator interfaces.

package console

// Backspace is the out-of-band character passed to Sink.PutChar to erase the
// character before the cursor.
const Backspace = 0x100

// Sink receives every character the console echoes or writes.
type Sink interface {
	// PutChar outputs a byte value, or Backspace.
	PutChar(c int)
}

// Flusher is implemented by sinks that buffer output. Console flushes after
// each interrupt batch and each write.
type Flusher interface {
	Flush()
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(c int)

// PutChar calls f(c).
func (f SinkFunc) PutChar(c int) { f(c) }

// InterruptHandler consumes the codes collected by one interrupt.
type InterruptHandler interface {
	Interrupt(src CodeSource)
}

// InterruptSource is an input device that, once enabled, calls its handler
// for every batch of decoded input.
type InterruptSource interface {
	Enable(h InterruptHandler) error
}

// Halter stops the machine after a panic has been printed.
type Halter interface {
	Halt(reason string)
}

// HaltFunc adapts a function to Halter.
type HaltFunc func(reason string)

// Halt calls f(reason).
func (f HaltFunc) Halt(reason string) { f(reason) }
