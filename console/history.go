// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: console/history.go
// Summary: Fixed-capacity ring of previously committed lines with recall cursor.
//
// Records never move. Saving steps the most-recent slot one position down
// the ring (Euclidean modulo), so the record at displacement d lives at
// (last+d) mod H: displacement 0 is the newest, growing displacements are
// older. Once the ring is full, the next save lands on the oldest slot.

package console

// DefaultHistorySize is the history capacity used when none is configured.
const DefaultHistorySize = 16

// History is the command history ring. Like EditBuffer it relies on the
// Console for serialisation.
type History struct {
	records [][]byte
	lineMax int
	last    int // slot of the most recent record
	count   int
	cursor  int // recall displacement, -1 when not browsing
}

// NewHistory returns an empty ring of size records, each holding at most
// lineMax bytes.
func NewHistory(size, lineMax int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	if lineMax <= 0 {
		lineMax = DefaultInputSize - 1
	}
	h := &History{records: make([][]byte, size), lineMax: lineMax}
	for i := range h.records {
		h.records[i] = make([]byte, 0, lineMax)
	}
	h.Reset()
	return h
}

// Reset forgets every record.
func (h *History) Reset() {
	h.last = 0
	h.count = 0
	h.cursor = -1
}

// Cap returns the ring capacity H.
func (h *History) Cap() int { return len(h.records) }

// Len returns the number of valid records.
func (h *History) Len() int { return h.count }

// Cursor returns the recall displacement, -1 when not browsing.
func (h *History) Cursor() int { return h.cursor }

func (h *History) slot(displacement int) int {
	n := len(h.records)
	return ((h.last+displacement)%n + n) % n
}

// Save stores line as the most recent record and ends any browsing. Blank
// lines are ignored; lines longer than the record size are truncated.
func (h *History) Save(line []byte) {
	if len(line) == 0 {
		return
	}
	if len(line) > h.lineMax {
		line = line[:h.lineMax]
	}
	h.cursor = -1
	if h.count < len(h.records) {
		h.count++
	}
	h.last = h.slot(-1)
	h.records[h.last] = append(h.records[h.last][:0], line...)
}

// Older moves the cursor one record back in time and returns that record.
// It reports false at the oldest record; there is no wraparound.
func (h *History) Older() ([]byte, bool) {
	if h.cursor >= h.count-1 {
		return nil, false
	}
	h.cursor++
	return h.records[h.slot(h.cursor)], true
}

// Newer moves the cursor one record forward. Stepping past the newest record
// yields the blank line: moved is true and line is nil. When not browsing,
// moved is false.
func (h *History) Newer() (line []byte, moved bool) {
	switch {
	case h.cursor < 0:
		return nil, false
	case h.cursor == 0:
		h.cursor = -1
		return nil, true
	default:
		h.cursor--
		return h.records[h.slot(h.cursor)], true
	}
}

// Fetch returns the record at the given displacement.
func (h *History) Fetch(displacement int) ([]byte, error) {
	if displacement < 0 || displacement >= len(h.records) {
		return nil, ErrInvalidIndex
	}
	if displacement >= h.count {
		return nil, ErrNotYetRecorded
	}
	return h.records[h.slot(displacement)], nil
}
