// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import "errors"

var (
	// ErrInterrupted is returned by a blocked read whose context was cancelled.
	// No input has been consumed.
	ErrInterrupted = errors.New("console: read interrupted")

	// ErrNotYetRecorded reports a history slot that holds no line yet.
	ErrNotYetRecorded = errors.New("console: history entry not yet recorded")

	// ErrInvalidIndex reports a history id outside the ring.
	ErrInvalidIndex = errors.New("console: invalid history index")

	// ErrHalted is returned once the console has panicked.
	ErrHalted = errors.New("console: halted")
)

// HistoryStatus is the status code of a history query.
type HistoryStatus int

const (
	HistoryOK             HistoryStatus = 0
	HistoryNotYetRecorded HistoryStatus = 1
	HistoryInvalidIndex   HistoryStatus = 2
)

func (s HistoryStatus) String() string {
	switch s {
	case HistoryOK:
		return "ok"
	case HistoryNotYetRecorded:
		return "not yet recorded"
	case HistoryInvalidIndex:
		return "invalid index"
	default:
		return "unknown"
	}
}

// StatusOf maps a Fetch error onto its status code.
func StatusOf(err error) HistoryStatus {
	switch {
	case err == nil:
		return HistoryOK
	case errors.Is(err, ErrNotYetRecorded):
		return HistoryNotYetRecorded
	default:
		return HistoryInvalidIndex
	}
}
