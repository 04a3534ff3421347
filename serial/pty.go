// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: serial/pty.go
// Summary: Exposes the console serial line as a pseudo-terminal.
// Usage: OpenPTY, then attach a terminal program to Name(), e.g.
// `screen /dev/pts/7`.

package serial

import (
	"fmt"
	"log"
	"os"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// PTY is a serial line backed by the master side of a pseudo-terminal.
type PTY struct {
	*Port
	master *os.File
	slave  *os.File
}

// OpenPTY allocates a pseudo-terminal. The slave side is put in raw mode so
// line editing and echo happen in the console, not in the host tty driver.
func OpenPTY() (*PTY, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("open pty: %w", err)
	}
	if _, err := term.MakeRaw(int(slave.Fd())); err != nil {
		master.Close()
		slave.Close()
		return nil, fmt.Errorf("raw pty: %w", err)
	}
	if EchoEnabled(slave) {
		log.Printf("Serial: %s still echoes after raw mode", slave.Name())
	}
	return &PTY{Port: NewPort(master, master), master: master, slave: slave}, nil
}

// Name returns the path of the slave device.
func (p *PTY) Name() string { return p.slave.Name() }

// Slave returns the slave side, for callers that attach in-process.
func (p *PTY) Slave() *os.File { return p.slave }

// Close releases both sides and stops the receive loop.
func (p *PTY) Close() error {
	p.markClosed()
	serr := p.slave.Close()
	merr := p.master.Close()
	if merr != nil {
		return merr
	}
	return serr
}
