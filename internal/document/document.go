/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

// Package document defines the wire model for reflow scenario documents and
// the codecs that read them from disk.
package document

import (
	"fmt"
	"time"
)

// Document type discriminants as they appear in scenario files.
const (
	TypeWorkOrder          = "workOrder"
	TypeWorkCenter         = "workCenter"
	TypeManufacturingOrder = "manufacturingOrder"
)

// TimestampLayout is the output layout for all engine timestamps: UTC,
// second precision.
const TimestampLayout = "2006-01-02T15:04:05Z"

// WorkOrderData is the payload of a workOrder document.
type WorkOrderData struct {
	WorkOrderNumber       string   `json:"workOrderNumber" yaml:"workOrderNumber"`
	ManufacturingOrderID  string   `json:"manufacturingOrderId" yaml:"manufacturingOrderId"`
	WorkCenterID          string   `json:"workCenterId" yaml:"workCenterId"`
	StartDate             string   `json:"startDate" yaml:"startDate"`
	EndDate               string   `json:"endDate" yaml:"endDate"`
	DurationMinutes       int      `json:"durationMinutes" yaml:"durationMinutes"`
	IsMaintenance         bool     `json:"isMaintenance" yaml:"isMaintenance"`
	DependsOnWorkOrderIDs []string `json:"dependsOnWorkOrderIds" yaml:"dependsOnWorkOrderIds"`
}

// Shift is a recurring weekly availability window on a work center.
// DayOfWeek follows the scenario convention: 0=Sunday .. 6=Saturday.
// Hours are UTC clock hours; the window is [StartHour:00, EndHour:00).
type Shift struct {
	DayOfWeek int `json:"dayOfWeek" yaml:"dayOfWeek"`
	StartHour int `json:"startHour" yaml:"startHour"`
	EndHour   int `json:"endHour" yaml:"endHour"`
}

// MaintenanceWindow is an absolute blackout interval on a work center.
type MaintenanceWindow struct {
	StartDate string `json:"startDate" yaml:"startDate"`
	EndDate   string `json:"endDate" yaml:"endDate"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// RecurringMaintenance describes a repeating blackout as a cron expression
// plus a duration. Entries are expanded into absolute windows over the
// scheduling horizon before the engine runs.
type RecurringMaintenance struct {
	Cron            string `json:"cron" yaml:"cron"`
	DurationMinutes int    `json:"durationMinutes" yaml:"durationMinutes"`
	Reason          string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// WorkCenterData is the payload of a workCenter document.
type WorkCenterData struct {
	Name                 string                 `json:"name" yaml:"name"`
	Shifts               []Shift                `json:"shifts" yaml:"shifts"`
	MaintenanceWindows   []MaintenanceWindow    `json:"maintenanceWindows" yaml:"maintenanceWindows"`
	RecurringMaintenance []RecurringMaintenance `json:"recurringMaintenance,omitempty" yaml:"recurringMaintenance,omitempty"`
}

// WorkOrderDocument is a workOrder document with its identity.
type WorkOrderDocument struct {
	DocID   string        `json:"docId" yaml:"docId"`
	DocType string        `json:"docType" yaml:"docType"`
	Data    WorkOrderData `json:"data" yaml:"data"`
}

// WorkCenterDocument is a workCenter document with its identity.
type WorkCenterDocument struct {
	DocID   string         `json:"docId" yaml:"docId"`
	DocType string         `json:"docType" yaml:"docType"`
	Data    WorkCenterData `json:"data" yaml:"data"`
}

// Set is a decoded scenario: work orders and work centers in input order.
// Documents of any other type are counted and otherwise ignored.
type Set struct {
	WorkOrders  []WorkOrderDocument
	WorkCenters []WorkCenterDocument
	Ignored     int
}

// ParseTimestamp parses an ISO-8601 timestamp and normalizes it to UTC.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatTimestamp renders a timestamp as UTC without sub-second precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
