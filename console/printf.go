// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: console/printf.go
// Summary: Kernel-style formatted printing and panic through the console.

package console

import (
	"fmt"
	"runtime"
)

// charWriter feeds bytes to the console output path one at a time.
type charWriter struct{ c *Console }

func (w charWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		w.c.putc(int(b))
	}
	return len(p), nil
}

// Printf formats to the console. It takes the console lock unless a panic
// has disabled locking.
func (c *Console) Printf(format string, args ...any) {
	if c.locking.Load() {
		c.mu.Lock()
		defer c.mu.Unlock()
	}
	fmt.Fprintf(charWriter{c}, format, args...)
	c.flush()
}

// Panic prints msg and the caller PCs, freezes all console output and halts.
// It is safe to call with the console lock held.
func (c *Console) Panic(msg string) {
	c.locking.Store(false)
	c.Printf("panic: %s\n", msg)
	var pcs [10]uintptr
	n := runtime.Callers(2, pcs[:])
	for _, pc := range pcs[:n] {
		c.Printf(" %#x", pc)
	}
	c.Printf("\n")
	c.panicked.Store(true)
	c.haltOnce.Do(func() { close(c.halted) })
	c.halter.Halt(msg)
}
