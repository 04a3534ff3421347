// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: serial/decode.go
// Summary: Turns bytes received on a serial line into console input codes.

package serial

import "github.com/framegrace/texelcons/console"

type decodeState int

const (
	stateGround decodeState = iota
	stateEsc
	stateCSI // after ESC [ or ESC O
)

// Decoder recognises cursor up/down escape sequences and passes every other
// ASCII byte through. Bytes >= 0x80 are dropped so UTF-8 text cannot alias
// the recall codes. It keeps state across calls so a sequence may be split
// between reads.
type Decoder struct {
	state decodeState
}

// Decode appends the codes for p to dst and returns the extended slice.
func (d *Decoder) Decode(dst []console.Code, p []byte) []console.Code {
	for _, b := range p {
		switch d.state {
		case stateEsc:
			if b == '[' || b == 'O' {
				d.state = stateCSI
				continue
			}
			d.state = stateGround
		case stateCSI:
			// Parameter and intermediate bytes run until a final byte.
			if b >= 0x20 && b < 0x40 {
				continue
			}
			d.state = stateGround
			switch b {
			case 'A':
				dst = append(dst, console.CodeUp)
			case 'B':
				dst = append(dst, console.CodeDown)
			}
			continue
		}
		if b == 0x1b {
			d.state = stateEsc
			continue
		}
		if b >= 0x80 {
			continue
		}
		dst = append(dst, console.Code(b))
	}
	return dst
}
