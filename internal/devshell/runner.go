// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Runs the console on a local tcell screen or on a serial line.

package devshell

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelcons/config"
	"github.com/framegrace/texelcons/console"
	"github.com/framegrace/texelcons/serial"
)

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// shellExited and halted are posted to the tcell event queue.
type shellExited struct{ err error }
type halted struct{ reason string }

// Run boots the console described by cfg and blocks until the shell exits,
// the user presses Ctrl-C on the display, or the console halts.
func Run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	line, err := openSerial(cfg)
	if err != nil {
		return err
	}
	defer line.close()

	if !cfg.Display.Enabled {
		return runSerial(cfg, line.port)
	}
	return runDisplay(cfg, line)
}

// serialLine is the attached serial port, if any.
type serialLine struct {
	port  *serial.Port
	name  string
	close func()
}

func openSerial(cfg config.Config) (serialLine, error) {
	switch cfg.Serial.Mode {
	case config.SerialPTY:
		pty, err := serial.OpenPTY()
		if err != nil {
			return serialLine{}, err
		}
		log.Printf("Serial: line attached at %s", pty.Name())
		return serialLine{port: pty.Port, name: pty.Name(), close: func() { pty.Close() }}, nil
	case config.SerialStdio:
		port, restore, err := serial.Stdio(os.Stdin, os.Stdout)
		if err != nil {
			return serialLine{}, err
		}
		return serialLine{port: port, name: os.Stdin.Name(), close: restore}, nil
	default:
		return serialLine{close: func() {}}, nil
	}
}

func runDisplay(cfg config.Config, line serialLine) error {
	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnablePaste()

	halter := console.HaltFunc(func(reason string) {
		screen.PostEvent(tcell.NewEventInterrupt(halted{reason}))
	})
	m, err := NewMachine(cfg, screen, line.port, halter)
	if err != nil {
		return err
	}
	if line.port != nil {
		m.Console.Printf("serial line on %s\n", line.name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := m.StartShell(ctx)
	go func() {
		err := <-done
		screen.PostEvent(tcell.NewEventInterrupt(shellExited{err}))
	}()

	var pasteBuffer []byte
	var inPaste bool

	for {
		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			switch data := tev.Data().(type) {
			case shellExited:
				if errors.Is(data.err, console.ErrInterrupted) {
					return nil
				}
				return data.err
			case halted:
				return fmt.Errorf("console halted: %s", data.reason)
			}
		case *tcell.EventResize:
			screen.Sync()
			m.Display.Redraw()
		case *tcell.EventPaste:
			if tev.Start() {
				inPaste = true
				pasteBuffer = nil
			} else if tev.End() {
				inPaste = false
				m.Keyboard.HandlePaste(pasteBuffer)
				pasteBuffer = nil
			}
		case *tcell.EventKey:
			if isQuit(tev) {
				// The shell returns ErrInterrupted and posts shellExited.
				cancel()
				continue
			}
			if inPaste {
				if tev.Key() == tcell.KeyRune {
					pasteBuffer = append(pasteBuffer, []byte(string(tev.Rune()))...)
				} else if tev.Key() == tcell.KeyEnter || tev.Key() == 10 {
					pasteBuffer = append(pasteBuffer, '\n')
				}
			} else {
				m.Keyboard.HandleKey(tev)
			}
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C')
}

func runSerial(cfg config.Config, port *serial.Port) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	haltCh := make(chan string, 1)
	halter := console.HaltFunc(func(reason string) {
		select {
		case haltCh <- reason:
		default:
		}
	})
	m, err := NewMachine(cfg, nil, port, halter)
	if err != nil {
		return err
	}

	done := m.StartShell(ctx)
	select {
	case err := <-done:
		if errors.Is(err, console.ErrInterrupted) {
			return nil
		}
		return err
	case reason := <-haltCh:
		return fmt.Errorf("console halted: %s", reason)
	}
}
