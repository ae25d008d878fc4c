/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package document

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonScenario = `[
  {
    "docId": "WO1",
    "docType": "workOrder",
    "data": {
      "workOrderNumber": "WO-001",
      "manufacturingOrderId": "MO1",
      "workCenterId": "WC1",
      "startDate": "2024-01-01T08:00:00Z",
      "endDate": "2024-01-01T09:00:00Z",
      "durationMinutes": 60,
      "isMaintenance": false,
      "dependsOnWorkOrderIds": []
    }
  },
  {
    "docId": "WC1",
    "docType": "workCenter",
    "data": {
      "name": "Mill 1",
      "shifts": [{"dayOfWeek": 1, "startHour": 8, "endHour": 16}],
      "maintenanceWindows": [
        {"startDate": "2024-01-01T10:00:00Z", "endDate": "2024-01-01T11:00:00Z", "reason": "inspection"}
      ]
    }
  },
  {
    "docId": "MO1",
    "docType": "manufacturingOrder",
    "data": {"whatever": true}
  }
]`

const yamlScenario = `
- docId: WO1
  docType: workOrder
  data:
    workOrderNumber: WO-001
    workCenterId: WC1
    startDate: "2024-01-01T08:00:00Z"
    endDate: "2024-01-01T09:00:00Z"
    durationMinutes: 60
    isMaintenance: false
    dependsOnWorkOrderIds: []
- docId: WC1
  docType: workCenter
  data:
    name: Mill 1
    shifts:
      - dayOfWeek: 1
        startHour: 8
        endHour: 16
    maintenanceWindows: []
    recurringMaintenance:
      - cron: "0 9 * * *"
        durationMinutes: 30
        reason: calibration
`

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	set, err := Load(writeScenario(t, "scenario.json", jsonScenario))
	require.NoError(t, err)

	require.Len(t, set.WorkOrders, 1)
	wo := set.WorkOrders[0]
	assert.Equal(t, "WO1", wo.DocID)
	assert.Equal(t, TypeWorkOrder, wo.DocType)
	assert.Equal(t, "WC1", wo.Data.WorkCenterID)
	assert.Equal(t, 60, wo.Data.DurationMinutes)

	require.Len(t, set.WorkCenters, 1)
	wc := set.WorkCenters[0]
	assert.Equal(t, "Mill 1", wc.Data.Name)
	require.Len(t, wc.Data.Shifts, 1)
	assert.Equal(t, 8, wc.Data.Shifts[0].StartHour)
	require.Len(t, wc.Data.MaintenanceWindows, 1)
	assert.Equal(t, "inspection", wc.Data.MaintenanceWindows[0].Reason)

	assert.Equal(t, 1, set.Ignored)
}

func TestLoadYAML(t *testing.T) {
	set, err := Load(writeScenario(t, "scenario.yaml", yamlScenario))
	require.NoError(t, err)

	require.Len(t, set.WorkOrders, 1)
	assert.Equal(t, "WO1", set.WorkOrders[0].DocID)

	require.Len(t, set.WorkCenters, 1)
	require.Len(t, set.WorkCenters[0].Data.RecurringMaintenance, 1)
	assert.Equal(t, "0 9 * * *", set.WorkCenters[0].Data.RecurringMaintenance[0].Cron)
	assert.Equal(t, 30, set.WorkCenters[0].Data.RecurringMaintenance[0].DurationMinutes)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read scenario")
	})

	t.Run("not a JSON array", func(t *testing.T) {
		_, err := Load(writeScenario(t, "bad.json", `{"docId": "WO1"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be a JSON array")
	})

	t.Run("malformed work order payload", func(t *testing.T) {
		_, err := Load(writeScenario(t, "bad.json",
			`[{"docId": "WO1", "docType": "workOrder", "data": {"durationMinutes": "sixty"}}]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid workOrder document "WO1"`)
	})
}

func TestParseTimestamp(t *testing.T) {
	t.Run("utc", func(t *testing.T) {
		got, err := ParseTimestamp("2024-01-01T08:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC), got)
	})

	t.Run("offset normalized to utc", func(t *testing.T) {
		got, err := ParseTimestamp("2024-01-01T10:00:00+02:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC), got)
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseTimestamp("next tuesday")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid timestamp")
	})
}

func TestFormatTimestamp(t *testing.T) {
	in := time.Date(2024, time.January, 2, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, "2024-01-02T09:00:00Z", FormatTimestamp(in))
}
