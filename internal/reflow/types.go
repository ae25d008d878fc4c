/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

// Package reflow implements the scheduling engine: dependency ordering,
// greedy interval allocation per work center, and post-hoc constraint
// validation of the produced schedule.
package reflow

import (
	"time"

	"github.com/factoryops/reflow/internal/document"
)

// Reason tags attached to change records.
const (
	ReasonDependencies   = "dependencies"
	ReasonShiftAlignment = "shift/maintenance alignment"
	ReasonConflict       = "work center conflict"
	ReasonMaintenance    = "maintenance not rescheduled"
)

// Change records the movement of a single work order.
type Change struct {
	WorkOrderID  string   `json:"workOrderId"`
	FromStart    string   `json:"fromStart"`
	FromEnd      string   `json:"fromEnd"`
	ToStart      string   `json:"toStart"`
	ToEnd        string   `json:"toEnd"`
	DeltaMinutes int      `json:"deltaMinutes"`
	Reasons      []string `json:"reasons"`
}

// Validation is the outcome of the constraint checker. Errors is empty iff
// the schedule is valid.
type Validation struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors,omitempty"`
}

// Result is the output bundle of a reflow invocation.
type Result struct {
	UpdatedWorkOrders []document.WorkOrderDocument `json:"updatedWorkOrders"`
	Changes           []Change                     `json:"changes"`
	Explanation       []string                     `json:"explanation"`
	Validation        Validation                   `json:"validation"`
}

// scheduledInterval is the transient placement of one work order on its work
// center, kept only for the duration of a single invocation.
type scheduledInterval struct {
	workOrderID   string
	start         time.Time
	end           time.Time
	isMaintenance bool
	originalStart time.Time
	originalEnd   time.Time
}

// schedulingState is the per-invocation registry of placed intervals. It is
// created fresh for every Reflow call and never shared.
type schedulingState struct {
	// byCenter holds each work center's placed intervals sorted by start.
	byCenter map[string][]scheduledInterval
	// completed indexes placed intervals by work-order identifier.
	completed map[string]scheduledInterval
}

func newSchedulingState() *schedulingState {
	return &schedulingState{
		byCenter:  make(map[string][]scheduledInterval),
		completed: make(map[string]scheduledInterval),
	}
}

// insert places an interval at its sorted-by-start position in the work
// center's list and records it in the completed index.
func (s *schedulingState) insert(workCenterID string, iv scheduledInterval) {
	list := s.byCenter[workCenterID]
	pos := len(list)
	for i, existing := range list {
		if existing.start.After(iv.start) {
			pos = i
			break
		}
	}
	list = append(list, scheduledInterval{})
	copy(list[pos+1:], list[pos:])
	list[pos] = iv
	s.byCenter[workCenterID] = list
	s.completed[iv.workOrderID] = iv
}
