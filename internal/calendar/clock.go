/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/factoryops/reflow/internal/document"
)

// maxClockIterations bounds the shift-window walk so that contradictory
// calendars fail instead of looping forever.
const maxClockIterations = 1000

// ErrNoShiftsDefined is returned when a work center has no shifts at all.
var ErrNoShiftsDefined = errors.New("work center has no shifts defined")

// ErrClockIterations is returned when the working-time clock exhausts its
// iteration budget before consuming the requested duration.
var ErrClockIterations = errors.New("working-time clock exceeded iteration limit")

// AddWorkingMinutes returns the instant at which exactly durationMinutes of
// in-shift, non-maintenance time have elapsed since start, rolling across
// shift and day boundaries as needed. A non-positive duration returns start
// unchanged.
func AddWorkingMinutes(start time.Time, durationMinutes int, wc WorkCenter) (time.Time, error) {
	if durationMinutes <= 0 {
		return start, nil
	}
	if len(wc.Shifts) == 0 {
		return time.Time{}, fmt.Errorf("%w: work center %s", ErrNoShiftsDefined, wc.ID)
	}

	cursor := start.UTC()
	remaining := durationMinutes

	for i := 0; i < maxClockIterations; i++ {
		window, ok := FindNextShiftWindow(cursor, wc)
		if !ok {
			return time.Time{}, fmt.Errorf("%w: nothing within %d days of %s on work center %s",
				ErrNoAvailableShift, MaxLookaheadDays, document.FormatTimestamp(cursor), wc.ID)
		}

		for _, segment := range SplitByMaintenance(window, wc) {
			available := segment.Minutes()
			if remaining <= available {
				return segment.Start.Add(time.Duration(remaining) * time.Minute), nil
			}
			remaining -= available
		}

		cursor = window.End
	}

	return time.Time{}, fmt.Errorf("%w: %d minutes left after %d iterations on work center %s",
		ErrClockIterations, remaining, maxClockIterations, wc.ID)
}
