//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package serial

import "os"

// EchoEnabled always reports false where termios is unavailable.
func EchoEnabled(f *os.File) bool { return false }
