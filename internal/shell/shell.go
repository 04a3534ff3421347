// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/shell/shell.go
// Summary: Line-oriented shell reading commands from the console device.
// Usage: Run blocks until exit, EOF at an empty prompt, or ctx cancellation.

package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/framegrace/texelcons/console"
	"github.com/framegrace/texelcons/devsw"
	"github.com/framegrace/texelcons/internal/proc"
)

// HistorySource is the history query surface: copy entry id into dst.
type HistorySource interface {
	History(dst []byte, id int) console.HistoryStatus
}

// Options configures a Shell.
type Options struct {
	Devices *devsw.Table
	History HistorySource
	Proc    *proc.Proc
	// Procs is listed by the ps builtin. Optional.
	Procs  *proc.Table
	Prompt string
	// LineMax sizes the read and history buffers. Default: 128.
	LineMax int
}

// Shell runs builtins against the console device.
type Shell struct {
	opts Options
	out  io.Writer
}

// New returns a shell bound to the console device in opts.Devices.
func New(opts Options) *Shell {
	if opts.LineMax <= 0 {
		opts.LineMax = console.DefaultInputSize
	}
	return &Shell{opts: opts, out: opts.Devices.Writer(devsw.Console)}
}

var errExit = errors.New("exit")

// Run is the read-eval loop. It returns nil on exit or end of input and
// console.ErrInterrupted when ctx is cancelled while waiting for a line.
func (s *Shell) Run(ctx context.Context) error {
	buf := make([]byte, s.opts.LineMax)
	var line bytes.Buffer
	for {
		if line.Len() == 0 {
			if _, err := io.WriteString(s.out, s.opts.Prompt); err != nil {
				return err
			}
		}
		s.setState(proc.Sleeping)
		n, err := s.opts.Devices.Read(ctx, devsw.Console, buf)
		s.setState(proc.Running)
		if err != nil {
			return err
		}
		if n == 0 {
			if line.Len() == 0 {
				return nil
			}
			// EOF after partial input submits what was typed.
			line.WriteByte('\n')
		} else {
			line.Write(buf[:n])
			if buf[n-1] != '\n' {
				continue
			}
		}
		cmd := strings.TrimSpace(line.String())
		line.Reset()
		if err := s.exec(cmd); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
	}
}

func (s *Shell) setState(st proc.State) {
	if s.opts.Proc != nil {
		s.opts.Proc.SetState(st)
	}
}

func (s *Shell) exec(cmd string) error {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return nil
	}
	var err error
	switch fields[0] {
	case "history":
		err = s.history()
	case "echo":
		_, err = fmt.Fprintln(s.out, strings.Join(fields[1:], " "))
	case "ps":
		if s.opts.Procs != nil {
			err = s.opts.Procs.Dump(s.out)
		}
	case "help":
		_, err = io.WriteString(s.out, "builtins: echo history ps help exit\n"+
			"keys: ^H/DEL erase, ^U kill line, up/down recall, ^D end of input, ^P process list\n")
	case "exit":
		return errExit
	default:
		_, err = fmt.Fprintf(s.out, "exec %s failed\n", fields[0])
	}
	return err
}

// history prints every recorded entry, most recent first.
func (s *Shell) history() error {
	if s.opts.History == nil {
		return nil
	}
	buf := make([]byte, s.opts.LineMax)
	for id := 0; ; id++ {
		if s.opts.History.History(buf, id) != console.HistoryOK {
			return nil
		}
		entry := buf
		if i := bytes.IndexByte(entry, 0); i >= 0 {
			entry = entry[:i]
		}
		if _, err := fmt.Fprintf(s.out, "%d: %s\n", id, entry); err != nil {
			return err
		}
	}
}
