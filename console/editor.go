// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: console/editor.go
// Summary: Line editor state machine driving the edit buffer and history ring.
//
// The editor owns no lock. Console calls apply with its mutex held and acts on
// the returned effects after the call.

package console

// effect is a set of follow-ups requested by one event.
type effect uint8

const (
	effCommit   effect = 1 << iota // a line became readable
	effProcDump                    // run diagnostics once the lock is released
)

type lineEditor struct {
	buf  *EditBuffer
	hist *History
	echo func(c int)
}

func (le *lineEditor) apply(ev Event) effect {
	switch ev.Kind {
	case EventProcDump:
		return effProcDump
	case EventKill:
		le.killLine()
	case EventErase:
		if le.buf.EraseLast() {
			le.echo(Backspace)
		}
	case EventOlder:
		if le.hist.Cursor() < le.hist.Len()-1 {
			le.killLine()
			le.buf.ResetEdit()
			line, _ := le.hist.Older()
			le.show(line)
		}
	case EventNewer:
		if le.hist.Cursor() < 0 {
			break
		}
		le.killLine()
		line, _ := le.hist.Newer()
		le.buf.ResetEdit()
		le.show(line)
	case EventInsert:
		return le.insert(ev.Char)
	}
	return 0
}

// killLine erases the uncommitted part of the current line, on screen and in
// the buffer.
func (le *lineEditor) killLine() {
	for le.buf.Pending() > 0 && le.buf.Last() != '\n' {
		le.buf.EraseLast()
		le.echo(Backspace)
	}
}

// show copies a recalled line to the screen and into the buffer as new
// uncommitted content. One byte of room is always left for the terminator.
func (le *lineEditor) show(line []byte) {
	for _, c := range line {
		if le.buf.Room() <= 1 || !le.buf.Insert(c) {
			break
		}
		le.echo(int(c))
	}
}

func (le *lineEditor) insert(c byte) effect {
	if !le.buf.Insert(c) {
		return 0
	}
	le.echo(int(c))
	if c != '\n' && c != byte(CodeEOF) && !le.buf.Full() {
		return 0
	}
	line := le.buf.Line()
	if n := len(line); n > 0 && (line[n-1] == '\n' || line[n-1] == byte(CodeEOF)) {
		line = line[:n-1]
	}
	le.hist.Save(line)
	le.buf.Commit()
	return effCommit
}
