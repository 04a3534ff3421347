// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: serial/stdio.go
// Summary: Uses the process's own terminal as the console serial line.

package serial

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Stdio returns a port reading in and writing out. When in is a terminal it
// is switched to raw mode; restore undoes that and must be called on exit.
func Stdio(in, out *os.File) (port *Port, restore func(), err error) {
	restore = func() {}
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return nil, nil, fmt.Errorf("raw stdin: %w", err)
		}
		restore = func() { term.Restore(fd, state) }
	}
	return NewPort(in, &crlfWriter{w: out}), restore, nil
}

// crlfWriter expands "\n" to "\r\n"; a raw terminal does not do it for us.
type crlfWriter struct {
	w   io.Writer
	buf []byte
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	c.buf = c.buf[:0]
	for _, b := range p {
		if b == '\n' {
			c.buf = append(c.buf, '\r')
		}
		c.buf = append(c.buf, b)
	}
	if _, err := c.w.Write(c.buf); err != nil {
		return 0, err
	}
	return len(p), nil
}
