// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: devsw/devsw.go
// Summary: Device switch table mapping major numbers to device read/write.

package devsw

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Console is the major number of the console device.
const Console = 1

var (
	// ErrNoDevice is returned for a major number with no registered device.
	ErrNoDevice = errors.New("devsw: no such device")
	// ErrBusy is returned when registering over an existing device.
	ErrBusy = errors.New("devsw: major number in use")
)

// Device is the pair of operations a character device exposes.
type Device interface {
	Read(ctx context.Context, dst []byte) (int, error)
	Write(src []byte) (int, error)
}

// Table is a device switch. The zero value is ready to use.
type Table struct {
	mu   sync.RWMutex
	devs map[int]Device
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{devs: make(map[int]Device)}
}

// Register binds dev to major.
func (t *Table) Register(major int, dev Device) error {
	if dev == nil {
		return fmt.Errorf("register major %d: nil device", major)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.devs == nil {
		t.devs = make(map[int]Device)
	}
	if _, ok := t.devs[major]; ok {
		return fmt.Errorf("register major %d: %w", major, ErrBusy)
	}
	t.devs[major] = dev
	return nil
}

// Unregister removes the device bound to major, if any.
func (t *Table) Unregister(major int) {
	t.mu.Lock()
	delete(t.devs, major)
	t.mu.Unlock()
}

// Lookup returns the device bound to major.
func (t *Table) Lookup(major int) (Device, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	dev, ok := t.devs[major]
	if !ok {
		return nil, fmt.Errorf("major %d: %w", major, ErrNoDevice)
	}
	return dev, nil
}

// Read dispatches to the device's Read.
func (t *Table) Read(ctx context.Context, major int, dst []byte) (int, error) {
	dev, err := t.Lookup(major)
	if err != nil {
		return 0, err
	}
	return dev.Read(ctx, dst)
}

// Write dispatches to the device's Write.
func (t *Table) Write(major int, src []byte) (int, error) {
	dev, err := t.Lookup(major)
	if err != nil {
		return 0, err
	}
	return dev.Write(src)
}

// Writer returns an io.Writer bound to major.
func (t *Table) Writer(major int) *DeviceWriter {
	return &DeviceWriter{t: t, major: major}
}

// DeviceWriter writes to a device through the table.
type DeviceWriter struct {
	t     *Table
	major int
}

func (w *DeviceWriter) Write(p []byte) (int, error) {
	return w.t.Write(w.major, p)
}
