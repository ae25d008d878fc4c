/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package calendar

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/factoryops/reflow/internal/document"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ExpandRecurring materializes recurring maintenance entries into absolute
// windows over [horizonStart, horizonStart + MaxLookaheadDays). An occurrence
// exactly at horizonStart is included. Entries with a non-positive duration
// are skipped.
func ExpandRecurring(entries []document.RecurringMaintenance, horizonStart time.Time) ([]Window, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	horizonStart = horizonStart.UTC()
	horizonEnd := horizonStart.AddDate(0, 0, MaxLookaheadDays)

	var windows []Window
	for _, entry := range entries {
		if entry.DurationMinutes <= 0 {
			continue
		}

		schedule, err := cronParser.Parse(entry.Cron)
		if err != nil {
			return nil, fmt.Errorf("invalid recurring maintenance cron %q: %w", entry.Cron, err)
		}

		duration := time.Duration(entry.DurationMinutes) * time.Minute
		for next := schedule.Next(horizonStart.Add(-time.Second)); next.Before(horizonEnd); next = schedule.Next(next) {
			windows = append(windows, Window{
				Start:  next.UTC(),
				End:    next.UTC().Add(duration),
				Reason: entry.Reason,
			})
		}
	}
	return windows, nil
}
