/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

// Package calendar implements availability arithmetic for work centers:
// weekly shift queries, maintenance blackout handling, and the working-time
// clock that converts a duration of available time into an end timestamp.
//
// All computation is in UTC. Shifts repeat weekly; maintenance windows are
// absolute intervals. Neither is required to be sorted or non-overlapping in
// the input.
package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/factoryops/reflow/internal/document"
)

// MaxLookaheadDays bounds forward searches for shift availability.
const MaxLookaheadDays = 14

// ErrNoAvailableShift is returned when no in-shift, non-maintenance instant
// exists within the lookahead horizon.
var ErrNoAvailableShift = errors.New("no available shift within lookahead horizon")

// Shift is a recurring weekly availability window. DayOfWeek is 0=Sunday ..
// 6=Saturday, matching time.Weekday. The window is [StartHour:00, EndHour:00)
// in UTC clock time.
type Shift struct {
	DayOfWeek int
	StartHour int
	EndHour   int
}

// Window is an absolute blackout interval with an optional reason.
type Window struct {
	Start  time.Time
	End    time.Time
	Reason string
}

// WorkCenter is the resolved calendar of a single work center: parsed
// maintenance windows, with any recurring entries already expanded.
type WorkCenter struct {
	ID          string
	Name        string
	Shifts      []Shift
	Maintenance []Window
}

// Interval is a half-open time interval [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the interval length in whole minutes, truncated.
func (iv Interval) Minutes() int {
	return int(iv.End.Sub(iv.Start).Minutes())
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// FromDocument resolves a workCenter document into a WorkCenter, parsing
// maintenance timestamps and expanding recurring maintenance over
// [horizonStart, horizonStart + MaxLookaheadDays).
func FromDocument(id string, data document.WorkCenterData, horizonStart time.Time) (WorkCenter, error) {
	wc := WorkCenter{ID: id, Name: data.Name}

	for _, s := range data.Shifts {
		wc.Shifts = append(wc.Shifts, Shift{DayOfWeek: s.DayOfWeek, StartHour: s.StartHour, EndHour: s.EndHour})
	}

	for _, mw := range data.MaintenanceWindows {
		start, err := document.ParseTimestamp(mw.StartDate)
		if err != nil {
			return WorkCenter{}, fmt.Errorf("work center %s: maintenance window: %w", id, err)
		}
		end, err := document.ParseTimestamp(mw.EndDate)
		if err != nil {
			return WorkCenter{}, fmt.Errorf("work center %s: maintenance window: %w", id, err)
		}
		if !end.After(start) {
			// Degenerate windows carry no blackout time.
			continue
		}
		wc.Maintenance = append(wc.Maintenance, Window{Start: start, End: end, Reason: mw.Reason})
	}

	expanded, err := ExpandRecurring(data.RecurringMaintenance, horizonStart)
	if err != nil {
		return WorkCenter{}, fmt.Errorf("work center %s: %w", id, err)
	}
	wc.Maintenance = append(wc.Maintenance, expanded...)

	return wc, nil
}

func atHour(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
}

// IsWithinShift reports whether the instant falls inside the shift's weekly
// window: same UTC weekday, clock time in [StartHour:00, EndHour:00).
func IsWithinShift(t time.Time, shift Shift) bool {
	t = t.UTC()
	if int(t.Weekday()) != shift.DayOfWeek {
		return false
	}
	start := atHour(t, shift.StartHour)
	end := atHour(t, shift.EndHour)
	return !t.Before(start) && t.Before(end)
}

// ShiftsForDay returns the work center's shifts on the given weekday, ordered
// by ascending start hour.
func ShiftsForDay(wc WorkCenter, day time.Weekday) []Shift {
	var shifts []Shift
	for _, s := range wc.Shifts {
		if s.DayOfWeek == int(day) {
			shifts = append(shifts, s)
		}
	}
	sort.SliceStable(shifts, func(i, j int) bool { return shifts[i].StartHour < shifts[j].StartHour })
	return shifts
}

// IsDuringMaintenance reports whether the instant lies in [w.Start, w.End).
func IsDuringMaintenance(t time.Time, w Window) bool {
	t = t.UTC()
	return !t.Before(w.Start) && t.Before(w.End)
}

// maintenanceOverlapping returns the maintenance windows intersecting the
// interval, ordered by ascending start.
func maintenanceOverlapping(wc WorkCenter, iv Interval) []Window {
	var windows []Window
	for _, w := range wc.Maintenance {
		if iv.Overlaps(Interval{Start: w.Start, End: w.End}) {
			windows = append(windows, w)
		}
	}
	sort.SliceStable(windows, func(i, j int) bool { return windows[i].Start.Before(windows[j].Start) })
	return windows
}

// FindNextShiftWindow scans forward day by day for the earliest shift window
// ending strictly after t. If t lies inside the window, the returned start is
// clipped to t. The second return value is false when no shift exists within
// the lookahead horizon.
func FindNextShiftWindow(t time.Time, wc WorkCenter) (Interval, bool) {
	base := t.UTC()
	for i := 0; i <= MaxLookaheadDays; i++ {
		day := base.AddDate(0, 0, i)
		for _, shift := range ShiftsForDay(wc, day.Weekday()) {
			start := atHour(day, shift.StartHour)
			end := atHour(day, shift.EndHour)
			if base.After(start) {
				start = base
			}
			if !end.After(start) {
				continue
			}
			return Interval{Start: start, End: end}, true
		}
	}
	return Interval{}, false
}

// SplitByMaintenance removes every overlapping maintenance window from the
// interval and returns the remaining sub-intervals in chronological order.
// Zero-length remainders are dropped.
func SplitByMaintenance(iv Interval, wc WorkCenter) []Interval {
	if !iv.End.After(iv.Start) {
		return nil
	}

	blocks := maintenanceOverlapping(wc, iv)
	if len(blocks) == 0 {
		return []Interval{iv}
	}

	var segments []Interval
	cursor := iv.Start
	for _, block := range blocks {
		if block.Start.After(cursor) {
			segments = append(segments, Interval{Start: cursor, End: block.Start})
		}
		if block.End.After(cursor) {
			cursor = block.End
		}
	}
	if cursor.Before(iv.End) {
		segments = append(segments, Interval{Start: cursor, End: iv.End})
	}
	return segments
}

// HasWorkingTime reports whether any in-shift, non-maintenance time exists
// inside the interval.
func HasWorkingTime(iv Interval, wc WorkCenter) bool {
	cursor := iv.Start
	for i := 0; i < maxClockIterations; i++ {
		window, ok := FindNextShiftWindow(cursor, wc)
		if !ok || !window.Start.Before(iv.End) {
			return false
		}
		if window.End.After(iv.End) {
			window.End = iv.End
		}
		if len(SplitByMaintenance(window, wc)) > 0 {
			return true
		}
		cursor = window.End
	}
	return false
}

// NextShiftStart returns the earliest instant at or after t that is inside
// some shift and outside every maintenance window.
func NextShiftStart(t time.Time, wc WorkCenter) (time.Time, error) {
	base := t.UTC()
	for i := 0; i <= MaxLookaheadDays; i++ {
		day := base.AddDate(0, 0, i)
		for _, shift := range ShiftsForDay(wc, day.Weekday()) {
			start := atHour(day, shift.StartHour)
			end := atHour(day, shift.EndHour)
			if base.After(start) {
				start = base
			}
			if !end.After(start) {
				continue
			}
			segments := SplitByMaintenance(Interval{Start: start, End: end}, wc)
			if len(segments) > 0 {
				return segments[0].Start, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("%w: nothing within %d days of %s on work center %s",
		ErrNoAvailableShift, MaxLookaheadDays, document.FormatTimestamp(base), wc.ID)
}
