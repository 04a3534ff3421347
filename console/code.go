// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: console/code.go
// Summary: Input codes delivered by the keyboard and serial collaborators and
// their decoding into line editor events.

package console

// Code is one decoded input code: an ASCII byte, a control byte, or one of
// the out-of-band navigation codes.
type Code int

// Control and navigation codes understood by the line editor.
const (
	CodeEOF       Code = 'D' - '@' // ^D
	CodeBackspace Code = 'H' - '@' // ^H
	CodeKill      Code = 'U' - '@' // ^U
	CodeProcDump  Code = 'P' - '@' // ^P
	CodeDelete    Code = 0x7f

	// CodeUp and CodeDown sit above the ASCII range, where the keyboard
	// decoder places the arrow keys.
	CodeUp   Code = 0xE2
	CodeDown Code = 0xE3
)

// EventKind is the closed set of editor actions an input code can map to.
type EventKind int

const (
	EventIgnore EventKind = iota
	EventInsert
	EventErase
	EventKill
	EventOlder
	EventNewer
	EventProcDump
)

func (k EventKind) String() string {
	switch k {
	case EventInsert:
		return "insert"
	case EventErase:
		return "erase"
	case EventKill:
		return "kill"
	case EventOlder:
		return "older"
	case EventNewer:
		return "newer"
	case EventProcDump:
		return "procdump"
	default:
		return "ignore"
	}
}

// Event is a decoded input code. Char is only meaningful for EventInsert.
type Event struct {
	Kind EventKind
	Char byte
}

// Decode maps an input code onto an editor event. Carriage returns are
// delivered as newlines; NUL and codes outside the byte range are ignored.
func Decode(c Code) Event {
	switch c {
	case CodeProcDump:
		return Event{Kind: EventProcDump}
	case CodeKill:
		return Event{Kind: EventKill}
	case CodeBackspace, CodeDelete:
		return Event{Kind: EventErase}
	case CodeUp:
		return Event{Kind: EventOlder}
	case CodeDown:
		return Event{Kind: EventNewer}
	}
	if c <= 0 || c > 0xff {
		return Event{Kind: EventIgnore}
	}
	if c == '\r' {
		c = '\n'
	}
	return Event{Kind: EventInsert, Char: byte(c)}
}

// CodeSource yields the input codes gathered by one interrupt.
type CodeSource interface {
	// Next returns the next pending code, or false once drained.
	Next() (Code, bool)
}

type codeQueue struct {
	codes []Code
}

func (q *codeQueue) Next() (Code, bool) {
	if len(q.codes) == 0 {
		return 0, false
	}
	c := q.codes[0]
	q.codes = q.codes[1:]
	return c, true
}

// Codes returns a CodeSource that yields the given codes in order.
func Codes(codes ...Code) CodeSource {
	return &codeQueue{codes: codes}
}

// Typed returns a CodeSource yielding every byte of s, as if typed.
func Typed(s string) CodeSource {
	codes := make([]Code, len(s))
	for i := 0; i < len(s); i++ {
		codes[i] = Code(s[i])
	}
	return &codeQueue{codes: codes}
}
