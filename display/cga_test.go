// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package display

import (
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelcons/console"
)

func putString(d *CGA, s string) {
	for i := 0; i < len(s); i++ {
		d.PutChar(int(s[i]))
	}
}

func TestCGA_NewlineAndBackspace(t *testing.T) {
	d := New(nil)
	putString(d, "ls\n$ ab")
	d.PutChar(console.Backspace)

	assert.Equal(t, "ls", d.Row(0))
	assert.Equal(t, "$ a", d.Row(1))
	col, row := d.Cursor()
	assert.Equal(t, 3, col)
	assert.Equal(t, 1, row)
}

func TestCGA_BackspaceAtOrigin(t *testing.T) {
	d := New(nil)
	d.PutChar(console.Backspace)
	col, row := d.Cursor()
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)
}

func TestCGA_Scrolls(t *testing.T) {
	d := New(nil)
	for i := 0; i < scrollRow+2; i++ {
		putString(d, fmt.Sprintf("line %d\n", i))
	}
	_, row := d.Cursor()
	assert.Equal(t, scrollRow-1, row)
	assert.Equal(t, "line 3", d.Row(0))
	assert.Equal(t, fmt.Sprintf("line %d", scrollRow+1), d.Row(scrollRow-2))
	assert.Equal(t, "", d.Row(scrollRow))
}

func TestCGA_LongLineWraps(t *testing.T) {
	d := New(nil)
	for i := 0; i < Cols+3; i++ {
		d.PutChar('x')
	}
	col, row := d.Cursor()
	assert.Equal(t, 3, col)
	assert.Equal(t, 1, row)
}

func TestCGA_FlushRendersToTcell(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(Cols, Rows)

	d := New(screen)
	putString(d, "hi\x01")
	d.Flush()

	for x, want := range "hi " {
		got, _, _, _ := screen.GetContent(x, 0)
		assert.Equal(t, want, got, "column %d", x)
	}
	x, y, visible := screen.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 3, x)
	assert.Equal(t, 0, y)
}

func TestCGA_AsConsoleSink(t *testing.T) {
	d := New(nil)
	c := console.New(console.Options{
		Sinks:  []console.Sink{d},
		Halter: console.HaltFunc(func(string) {}),
	})
	c.Interrupt(console.Typed("echo x"))
	c.OnInputCode(console.CodeKill)
	c.Interrupt(console.Typed("pwd"))
	assert.Equal(t, "pwd", d.Row(0))
}
