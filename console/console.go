// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: console/console.go
// Summary: Console device: interrupt-side line editing, blocking line reads,
// writes and the history query, all serialised by one mutex.
// Usage: Build with New, then Init to register in a devsw.Table and enable
// the keyboard/serial interrupt sources.

package console

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/framegrace/texelcons/devsw"
)

// Options configures a Console.
type Options struct {
	// InputSize is the edit buffer capacity. Default: 128.
	InputSize int
	// HistorySize is the number of remembered lines. Default: 16.
	HistorySize int
	// Sinks receive echoed and written output, in order.
	Sinks []Sink
	// ProcDump runs the diagnostics listing requested by ^P. It is called
	// without the console lock held and may print to the console.
	ProcDump func()
	// Halter is invoked after a panic. Default: log and exit(2).
	Halter Halter
}

// Console is one console device instance.
type Console struct {
	mu     sync.Mutex
	buf    *EditBuffer
	hist   *History
	editor lineEditor
	sinks  []Sink

	// readable is closed and replaced whenever a line is committed.
	readable chan struct{}

	procdump func()
	halter   Halter
	locking  atomic.Bool
	panicked atomic.Bool
	halted   chan struct{}
	haltOnce sync.Once
}

// New returns a console with empty buffers.
func New(opts Options) *Console {
	buf := NewEditBuffer(opts.InputSize)
	c := &Console{
		buf:      buf,
		hist:     NewHistory(opts.HistorySize, buf.Cap()-1),
		sinks:    append([]Sink(nil), opts.Sinks...),
		readable: make(chan struct{}),
		halted:   make(chan struct{}),
		procdump: opts.ProcDump,
		halter:   opts.Halter,
	}
	if c.halter == nil {
		c.halter = HaltFunc(func(reason string) {
			log.Printf("Console: halted: %s", reason)
			os.Exit(2)
		})
	}
	c.editor = lineEditor{buf: c.buf, hist: c.hist, echo: c.putc}
	c.locking.Store(true)
	return c
}

// Init registers the console in tab under devsw.Console, clears the history
// and enables each interrupt source.
func (c *Console) Init(tab *devsw.Table, sources ...InterruptSource) error {
	c.mu.Lock()
	c.hist.Reset()
	c.mu.Unlock()

	if err := tab.Register(devsw.Console, c); err != nil {
		return fmt.Errorf("register console: %w", err)
	}
	for _, src := range sources {
		if err := src.Enable(c); err != nil {
			return fmt.Errorf("enable input source: %w", err)
		}
	}
	log.Printf("Console: registered as device %d (input %d bytes, history %d lines)",
		devsw.Console, c.buf.Cap(), c.hist.Cap())
	return nil
}

// AddSink attaches another output collaborator.
func (c *Console) AddSink(s Sink) {
	c.mu.Lock()
	c.sinks = append(c.sinks, s)
	c.mu.Unlock()
}

func (c *Console) putc(ch int) {
	if c.panicked.Load() {
		return
	}
	for _, s := range c.sinks {
		s.PutChar(ch)
	}
}

func (c *Console) flush() {
	for _, s := range c.sinks {
		if f, ok := s.(Flusher); ok {
			f.Flush()
		}
	}
}

// Interrupt processes every code src yields under a single lock acquisition.
// A requested process listing runs after the lock is released.
func (c *Console) Interrupt(src CodeSource) {
	if c.panicked.Load() {
		return
	}
	var pending effect

	c.mu.Lock()
	for code, ok := src.Next(); ok; code, ok = src.Next() {
		eff := c.editor.apply(Decode(code))
		if err := c.buf.Check(); err != nil {
			c.Panic(err.Error())
			c.mu.Unlock()
			return
		}
		if eff&effCommit != 0 {
			close(c.readable)
			c.readable = make(chan struct{})
		}
		pending |= eff
	}
	c.flush()
	c.mu.Unlock()

	if pending&effProcDump != 0 && c.procdump != nil {
		c.procdump()
	}
}

// OnInputCode processes a single input code.
func (c *Console) OnInputCode(code Code) {
	c.Interrupt(Codes(code))
}

// ReadLine blocks until committed input is available and copies it into dst.
// It stops after a newline (which is copied), before an EOF marker (which is
// consumed, or left for the next call when bytes were already copied so that
// call returns 0), or when dst is full. A line committed because the buffer
// filled up is followed by further waiting. If ctx is cancelled while waiting,
// the bytes taken so far are pushed back and ErrInterrupted is returned.
func (c *Console) ReadLine(ctx context.Context, dst []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for n < len(dst) {
		if !c.buf.Readable() {
			if err := c.wait(ctx); err != nil {
				for ; n > 0; n-- {
					c.buf.Unconsume()
				}
				return 0, err
			}
			continue
		}
		ch := c.buf.Consume()
		if ch == byte(CodeEOF) {
			if n > 0 {
				c.buf.Unconsume()
			}
			break
		}
		dst[n] = ch
		n++
		if ch == '\n' {
			break
		}
	}
	return n, nil
}

// wait releases the lock until the next commit or until ctx is done. The lock
// is held again on return.
func (c *Console) wait(ctx context.Context) error {
	if c.panicked.Load() {
		return ErrHalted
	}
	if ctx.Err() != nil {
		return ErrInterrupted
	}
	ready := c.readable
	c.mu.Unlock()
	var err error
	select {
	case <-ready:
	case <-ctx.Done():
		err = ErrInterrupted
	case <-c.halted:
		err = ErrHalted
	}
	c.mu.Lock()
	return err
}

// WriteLine sends src to every sink and returns len(src).
func (c *Console) WriteLine(src []byte) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range src {
		c.putc(int(b))
	}
	c.flush()
	return len(src)
}

// Read implements devsw.Device.
func (c *Console) Read(ctx context.Context, dst []byte) (int, error) {
	return c.ReadLine(ctx, dst)
}

// Write implements devsw.Device and io.Writer.
func (c *Console) Write(src []byte) (int, error) {
	if c.panicked.Load() {
		return 0, ErrHalted
	}
	return c.WriteLine(src), nil
}

// History copies the line at displacement id (0 is the most recent) into
// dst, clearing dst first. dst is left untouched unless the status is OK.
func (c *Console) History(dst []byte, id int) HistoryStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	line, err := c.hist.Fetch(id)
	if err != nil {
		return StatusOf(err)
	}
	clear(dst)
	copy(dst, line)
	return HistoryOK
}

// HistoryLen returns the number of remembered lines.
func (c *Console) HistoryLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.Len()
}

// Pending returns a copy of the line currently being edited.
func (c *Console) Pending() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Line()
}

// Panicked reports whether Panic has run.
func (c *Console) Panicked() bool { return c.panicked.Load() }

// InputSize returns the edit buffer capacity.
func (c *Console) InputSize() int { return c.buf.Cap() }
