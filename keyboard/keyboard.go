// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: keyboard/keyboard.go
// Summary: Translates tcell key events into console input codes.
// Usage: The event loop owning the tcell screen calls HandleKey/HandlePaste;
// the Keyboard forwards them to the console once enabled.

package keyboard

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelcons/console"
)

// Translate maps a key event to an input code. It reports false for keys the
// console has no use for, including non-ASCII runes.
func Translate(ev *tcell.EventKey) (console.Code, bool) {
	switch key := ev.Key(); key {
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			switch {
			case r >= 'a' && r <= 'z':
				return console.Code(r - 'a' + 1), true
			case r >= '@' && r <= '_':
				return console.Code(r - '@'), true
			}
		}
		if r <= 0 || r >= 0x80 {
			return 0, false
		}
		return console.Code(r), true
	case tcell.KeyUp:
		return console.CodeUp, true
	case tcell.KeyDown:
		return console.CodeDown, true
	case tcell.KeyBackspace2:
		return console.CodeDelete, true
	default:
		// Ctrl-letter keys may arrive as the letter with ModCtrl set.
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			switch {
			case key >= '@' && key <= '_':
				return console.Code(key - '@'), true
			case key >= 'a' && key <= 'z':
				return console.Code(key - 'a' + 1), true
			}
		}
		if key > 0 && key < 0x20 {
			return console.Code(key), true
		}
		return 0, false
	}
}

// Keyboard is the console's keyboard interrupt source.
type Keyboard struct {
	mu      sync.Mutex
	handler console.InterruptHandler
}

// New returns a keyboard that drops input until enabled.
func New() *Keyboard { return &Keyboard{} }

// Enable implements console.InterruptSource.
func (k *Keyboard) Enable(h console.InterruptHandler) error {
	k.mu.Lock()
	k.handler = h
	k.mu.Unlock()
	return nil
}

func (k *Keyboard) deliver(codes []console.Code) {
	k.mu.Lock()
	h := k.handler
	k.mu.Unlock()
	if h == nil || len(codes) == 0 {
		return
	}
	h.Interrupt(console.Codes(codes...))
}

// HandleKey delivers one key press.
func (k *Keyboard) HandleKey(ev *tcell.EventKey) {
	if code, ok := Translate(ev); ok {
		k.deliver([]console.Code{code})
	}
}

// HandlePaste delivers pasted text as a single interrupt.
func (k *Keyboard) HandlePaste(text []byte) {
	codes := make([]console.Code, 0, len(text))
	for _, b := range text {
		if b < 0x80 {
			codes = append(codes, console.Code(b))
		}
	}
	k.deliver(codes)
}
