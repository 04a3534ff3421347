// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: display/cga.go
// Summary: 80x25 text-mode screen the console echoes to, mirrored onto a tcell screen.
// Usage: Pass a *CGA as a console.Sink; Flush pushes changed cells to tcell.

package display

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelcons/console"
)

// Screen geometry. The bottom row is never written; output scrolls once the
// cursor reaches it.
const (
	Cols = 80
	Rows = 25

	scrollRow = Rows - 1
)

// CGA is a character cell display with a linear cursor position.
type CGA struct {
	mu     sync.Mutex
	cells  [Rows * Cols]byte
	pos    int
	dirty  bool
	screen tcell.Screen
	style  tcell.Style

	// Fault is called when the cursor leaves the screen. The console wires it
	// to Panic.
	Fault func(msg string)
}

// New returns a blank display. screen may be nil for a headless display.
func New(screen tcell.Screen) *CGA {
	d := &CGA{
		screen: screen,
		style:  tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
		dirty:  true,
	}
	for i := range d.cells {
		d.cells[i] = ' '
	}
	return d
}

// PutChar implements console.Sink.
func (d *CGA) PutChar(c int) {
	d.mu.Lock()
	fault := d.put(c)
	d.mu.Unlock()
	if fault != "" && d.Fault != nil {
		d.Fault(fault)
	}
}

func (d *CGA) put(c int) string {
	pos := d.pos
	switch c {
	case '\n':
		pos += Cols - pos%Cols
	case console.Backspace:
		if pos > 0 {
			pos--
		}
	default:
		d.cells[pos] = byte(c)
		pos++
	}
	d.dirty = true

	if pos < 0 || pos > Rows*Cols {
		d.pos = 0
		return fmt.Sprintf("pos under/overflow: %d", pos)
	}
	if pos/Cols >= scrollRow {
		copy(d.cells[:], d.cells[Cols:scrollRow*Cols])
		pos -= Cols
		for i := pos; i < scrollRow*Cols; i++ {
			d.cells[i] = ' '
		}
	}
	d.pos = pos
	d.cells[pos] = ' '
	return ""
}

// Cursor returns the cursor column and row.
func (d *CGA) Cursor() (col, row int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pos % Cols, d.pos / Cols
}

// Row returns the text of row y with trailing blanks removed.
func (d *CGA) Row(y int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if y < 0 || y >= Rows {
		return ""
	}
	row := d.cells[y*Cols : (y+1)*Cols]
	end := len(row)
	for end > 0 && row[end-1] == ' ' {
		end--
	}
	return string(row[:end])
}

// Flush implements console.Flusher.
func (d *CGA) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.dirty || d.screen == nil {
		return
	}
	d.draw()
	d.dirty = false
}

// Redraw repaints every cell, for example after a resize.
func (d *CGA) Redraw() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.screen == nil {
		return
	}
	d.screen.Clear()
	d.draw()
	d.dirty = false
}

func (d *CGA) draw() {
	for i, b := range d.cells {
		d.screen.SetContent(i%Cols, i/Cols, glyph(b), nil, d.style)
	}
	d.screen.ShowCursor(d.pos%Cols, d.pos/Cols)
	d.screen.Show()
}

// glyph maps a stored byte to the rune drawn for it.
func glyph(b byte) rune {
	if b < 0x20 || b >= 0x7f {
		return ' '
	}
	return rune(b)
}
