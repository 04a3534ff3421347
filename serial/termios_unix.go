//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package serial

import (
	"log"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// EchoEnabled reports whether the tty driver behind f echoes input.
func EchoEnabled(f *os.File) bool {
	var mode unix.Termios
	if err := termios.Tcgetattr(f.Fd(), &mode); err != nil {
		log.Printf("Serial: tcgetattr %s: %v", f.Name(), err)
		return false
	}
	return mode.Lflag&unix.ECHO != 0
}
