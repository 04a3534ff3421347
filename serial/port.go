// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: serial/port.go
// Summary: UART-style console collaborator over an io.Reader/io.Writer pair.
// Usage: Add the Port as a console sink and pass it to Console.Init as an
// interrupt source; each read from the line becomes one interrupt.

package serial

import (
	"errors"
	"io"
	"log"
	"os"
	"sync"

	"github.com/framegrace/texelcons/console"
)

// Port is a serial line. Output is buffered until Flush.
type Port struct {
	r io.Reader
	w io.Writer

	mu      sync.Mutex
	pending []byte
	werr    error

	closed chan struct{}
	once   sync.Once
	done   chan struct{}
}

// NewPort returns a port reading input from r and writing output to w.
// Either may be nil for a one-directional line.
func NewPort(r io.Reader, w io.Writer) *Port {
	return &Port{r: r, w: w, closed: make(chan struct{}), done: make(chan struct{})}
}

// PutChar implements console.Sink. Backspace is sent as "\b \b" so the
// terminal on the other end erases the character.
func (p *Port) PutChar(c int) {
	p.mu.Lock()
	if c == console.Backspace {
		p.pending = append(p.pending, '\b', ' ', '\b')
	} else {
		p.pending = append(p.pending, byte(c))
	}
	p.mu.Unlock()
}

// Flush implements console.Flusher. The first write error is logged and
// output is dropped from then on.
func (p *Port) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pending) == 0 || p.w == nil || p.werr != nil {
		p.pending = p.pending[:0]
		return
	}
	if _, err := p.w.Write(p.pending); err != nil {
		p.werr = err
		log.Printf("Serial: write failed, dropping output: %v", err)
	}
	p.pending = p.pending[:0]
}

// Enable implements console.InterruptSource by starting the receive loop.
func (p *Port) Enable(h console.InterruptHandler) error {
	if p.r == nil {
		close(p.done)
		return nil
	}
	go p.receive(h)
	return nil
}

func (p *Port) receive(h console.InterruptHandler) {
	defer close(p.done)
	var dec Decoder
	buf := make([]byte, 256)
	codes := make([]console.Code, 0, len(buf))
	for {
		n, err := p.r.Read(buf)
		if n > 0 {
			codes = dec.Decode(codes[:0], buf[:n])
			if len(codes) > 0 {
				h.Interrupt(console.Codes(codes...))
			}
		}
		if err != nil {
			select {
			case <-p.closed:
			default:
				if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
					log.Printf("Serial: receive stopped: %v", err)
				}
			}
			return
		}
	}
}

// Done is closed when the receive loop has stopped.
func (p *Port) Done() <-chan struct{} { return p.done }

// markClosed records that the line is being shut down deliberately.
func (p *Port) markClosed() {
	p.once.Do(func() { close(p.closed) })
}
