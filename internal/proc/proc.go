// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/proc/proc.go
// Summary: Minimal process table listed by the console's ^P diagnostics.

package proc

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-runewidth"
)

// State is a process scheduling state.
type State int32

const (
	Unused State = iota
	Embryo
	Sleeping
	Runnable
	Running
	Zombie
)

var stateNames = [...]string{
	Unused:   "unused",
	Embryo:   "embryo",
	Sleeping: "sleep",
	Runnable: "runble",
	Running:  "run",
	Zombie:   "zombie",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "???"
	}
	return stateNames[s]
}

// Proc is one table entry.
type Proc struct {
	PID   int
	Name  string
	state atomic.Int32
}

// State returns the current state.
func (p *Proc) State() State { return State(p.state.Load()) }

// SetState records a state change.
func (p *Proc) SetState(s State) { p.state.Store(int32(s)) }

// NameWidth is the number of display columns a process name may occupy.
const NameWidth = 16

// Table tracks live processes.
type Table struct {
	mu    sync.Mutex
	procs map[int]*Proc
	next  int
}

// NewTable returns an empty table; the first PID handed out is 1.
func NewTable() *Table {
	return &Table{procs: make(map[int]*Proc), next: 1}
}

// Spawn adds a runnable process. The name is cut to NameWidth columns.
func (t *Table) Spawn(name string) *Proc {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := &Proc{PID: t.next, Name: runewidth.Truncate(name, NameWidth, "")}
	p.SetState(Runnable)
	t.procs[p.PID] = p
	t.next++
	return p
}

// Exit removes p from the table.
func (t *Table) Exit(p *Proc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p.SetState(Unused)
	delete(t.procs, p.PID)
}

// Dump writes one line per live process, ordered by PID.
func (t *Table) Dump(w io.Writer) error {
	t.mu.Lock()
	procs := make([]*Proc, 0, len(t.procs))
	for _, p := range t.procs {
		procs = append(procs, p)
	}
	t.mu.Unlock()
	sort.Slice(procs, func(i, j int) bool { return procs[i].PID < procs[j].PID })

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, p := range procs {
		state := runewidth.FillRight(p.State().String(), 6)
		if _, err := fmt.Fprintf(w, "%d %s %s\n", p.PID, state, p.Name); err != nil {
			return err
		}
	}
	return nil
}
