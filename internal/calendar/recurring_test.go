/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factoryops/reflow/internal/document"
)

func TestExpandRecurring(t *testing.T) {
	t.Run("daily entry covers the whole horizon", func(t *testing.T) {
		windows, err := ExpandRecurring([]document.RecurringMaintenance{
			{Cron: "0 9 * * *", DurationMinutes: 60, Reason: "daily calibration"},
		}, utc(1, 0, 0))
		require.NoError(t, err)
		require.Len(t, windows, MaxLookaheadDays)

		assert.Equal(t, utc(1, 9, 0), windows[0].Start)
		assert.Equal(t, utc(1, 10, 0), windows[0].End)
		assert.Equal(t, "daily calibration", windows[0].Reason)
		assert.Equal(t, utc(14, 9, 0), windows[len(windows)-1].Start)
	})

	t.Run("occurrence exactly at horizon start is included", func(t *testing.T) {
		windows, err := ExpandRecurring([]document.RecurringMaintenance{
			{Cron: "0 9 * * *", DurationMinutes: 30},
		}, utc(1, 9, 0))
		require.NoError(t, err)
		require.NotEmpty(t, windows)
		assert.Equal(t, utc(1, 9, 0), windows[0].Start)
	})

	t.Run("weekly entry", func(t *testing.T) {
		windows, err := ExpandRecurring([]document.RecurringMaintenance{
			{Cron: "0 6 * * 1", DurationMinutes: 120},
		}, utc(1, 0, 0))
		require.NoError(t, err)
		require.Len(t, windows, 2)
		assert.Equal(t, utc(1, 6, 0), windows[0].Start)
		assert.Equal(t, utc(8, 6, 0), windows[1].Start)
	})

	t.Run("invalid cron fails", func(t *testing.T) {
		_, err := ExpandRecurring([]document.RecurringMaintenance{
			{Cron: "not a cron", DurationMinutes: 60},
		}, utc(1, 0, 0))
		require.Error(t, err)
	})

	t.Run("non-positive duration is skipped", func(t *testing.T) {
		windows, err := ExpandRecurring([]document.RecurringMaintenance{
			{Cron: "0 9 * * *", DurationMinutes: 0},
		}, utc(1, 0, 0))
		require.NoError(t, err)
		assert.Empty(t, windows)
	})

	t.Run("no entries", func(t *testing.T) {
		windows, err := ExpandRecurring(nil, utc(1, 0, 0))
		require.NoError(t, err)
		assert.Nil(t, windows)
	})
}
