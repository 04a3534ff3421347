// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/machine.go
// Summary: Wires a console to its display, keyboard and serial collaborators
// and runs the shell on the console device.

package devshell

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelcons/config"
	"github.com/framegrace/texelcons/console"
	"github.com/framegrace/texelcons/devsw"
	"github.com/framegrace/texelcons/display"
	"github.com/framegrace/texelcons/internal/proc"
	"github.com/framegrace/texelcons/internal/shell"
	"github.com/framegrace/texelcons/keyboard"
	"github.com/framegrace/texelcons/serial"
)

// Machine is a booted console with its devices.
type Machine struct {
	Console  *console.Console
	Devices  *devsw.Table
	Procs    *proc.Table
	Display  *display.CGA       // nil without a screen
	Keyboard *keyboard.Keyboard // nil without a screen
	Serial   *serial.Port       // nil without a serial line

	prompt string
}

// NewMachine boots a console. screen and port are both optional, but at least
// one output must be present.
func NewMachine(cfg config.Config, screen tcell.Screen, port *serial.Port, halter console.Halter) (*Machine, error) {
	m := &Machine{
		Devices: devsw.NewTable(),
		Procs:   proc.NewTable(),
		Serial:  port,
		prompt:  cfg.Shell.Prompt,
	}

	var (
		sinks   []console.Sink
		sources []console.InterruptSource
	)
	if screen != nil {
		m.Display = display.New(screen)
		m.Keyboard = keyboard.New()
		sinks = append(sinks, m.Display)
		sources = append(sources, m.Keyboard)
	}
	if port != nil {
		sinks = append(sinks, port)
		sources = append(sources, port)
	}
	if len(sinks) == 0 {
		return nil, fmt.Errorf("boot: no output device")
	}

	m.Console = console.New(console.Options{
		InputSize:   cfg.Console.InputBuffer,
		HistorySize: cfg.Console.HistorySize,
		Sinks:       sinks,
		Halter:      halter,
		ProcDump: func() {
			m.Procs.Dump(m.Console)
		},
	})
	if m.Display != nil {
		m.Display.Fault = m.Console.Panic
		m.Display.Redraw()
	}
	m.Procs.Spawn("init").SetState(proc.Running)

	if err := m.Console.Init(m.Devices, sources...); err != nil {
		return nil, fmt.Errorf("boot: %w", err)
	}
	return m, nil
}

// StartShell runs a shell on the console device. The returned channel yields
// its exit error once.
func (m *Machine) StartShell(ctx context.Context) <-chan error {
	p := m.Procs.Spawn("sh")
	sh := shell.New(shell.Options{
		Devices: m.Devices,
		History: m.Console,
		Proc:    p,
		Procs:   m.Procs,
		Prompt:  m.prompt,
		LineMax: m.Console.InputSize(),
	})
	done := make(chan error, 1)
	go func() {
		err := sh.Run(ctx)
		m.Procs.Exit(p)
		done <- err
	}()
	return done
}
