/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package reflow

import (
	"fmt"
	"sort"
	"time"

	"github.com/factoryops/reflow/internal/calendar"
	"github.com/factoryops/reflow/internal/document"
)

// checkedOrder is a work order with parsed timestamps for validation.
type checkedOrder struct {
	doc   document.WorkOrderDocument
	start time.Time
	end   time.Time
}

// ValidateSchedule re-verifies a schedule against every constraint without
// trusting the scheduler's bookkeeping: dependency ordering, interval sanity,
// overlap-freedom per work center, and calendar alignment. All violations are
// accumulated; nothing short-circuits, and findings are returned as data
// rather than errors.
func ValidateSchedule(orders []document.WorkOrderDocument, centers map[string]calendar.WorkCenter) Validation {
	var errs []string

	checked := make([]checkedOrder, 0, len(orders))
	byID := make(map[string]checkedOrder, len(orders))
	for _, doc := range orders {
		start, startErr := document.ParseTimestamp(doc.Data.StartDate)
		end, endErr := document.ParseTimestamp(doc.Data.EndDate)
		if startErr != nil || endErr != nil {
			errs = append(errs, fmt.Sprintf("work order %s: unparseable start/end timestamps", doc.DocID))
			continue
		}
		co := checkedOrder{doc: doc, start: start, end: end}
		checked = append(checked, co)
		byID[doc.DocID] = co
	}

	errs = append(errs, checkDependencies(checked, byID)...)
	errs = append(errs, checkIntervals(checked)...)
	errs = append(errs, checkOverlaps(checked)...)
	errs = append(errs, checkAlignment(checked, centers)...)

	return Validation{IsValid: len(errs) == 0, Errors: errs}
}

func checkDependencies(orders []checkedOrder, byID map[string]checkedOrder) []string {
	var errs []string
	for _, order := range orders {
		for _, dep := range order.doc.Data.DependsOnWorkOrderIDs {
			depOrder, ok := byID[dep]
			if !ok {
				errs = append(errs, fmt.Sprintf("work order %s: missing dependency %s", order.doc.DocID, dep))
				continue
			}
			if order.start.Before(depOrder.end) {
				errs = append(errs, fmt.Sprintf("dependency violation: %s starts %s before dependency %s ends %s",
					order.doc.DocID, document.FormatTimestamp(order.start),
					dep, document.FormatTimestamp(depOrder.end)))
			}
		}
	}
	return errs
}

func checkIntervals(orders []checkedOrder) []string {
	var errs []string
	for _, order := range orders {
		if !order.end.After(order.start) {
			errs = append(errs, fmt.Sprintf("invalid interval: work order %s ends %s at or before its start %s",
				order.doc.DocID, document.FormatTimestamp(order.end), document.FormatTimestamp(order.start)))
		}
	}
	return errs
}

// checkOverlaps compares adjacent pairs per work center after sorting by
// start. Pairs involving a maintenance order are skipped. Only adjacent pairs
// are compared, so a long interval fully containing a later non-adjacent one
// can escape detection.
func checkOverlaps(orders []checkedOrder) []string {
	byCenter := make(map[string][]checkedOrder)
	var centerOrder []string
	for _, order := range orders {
		id := order.doc.Data.WorkCenterID
		if _, ok := byCenter[id]; !ok {
			centerOrder = append(centerOrder, id)
		}
		byCenter[id] = append(byCenter[id], order)
	}

	var errs []string
	for _, centerID := range centerOrder {
		group := byCenter[centerID]
		sort.SliceStable(group, func(i, j int) bool { return group[i].start.Before(group[j].start) })
		for i := 1; i < len(group); i++ {
			previous, current := group[i-1], group[i]
			if previous.doc.Data.IsMaintenance || current.doc.Data.IsMaintenance {
				continue
			}
			if current.start.Before(previous.end) {
				errs = append(errs, fmt.Sprintf("overlap on work center %s: %s and %s",
					centerID, previous.doc.DocID, current.doc.DocID))
			}
		}
	}
	return errs
}

func checkAlignment(orders []checkedOrder, centers map[string]calendar.WorkCenter) []string {
	var errs []string
	for _, order := range orders {
		id := order.doc.DocID

		if order.doc.Data.IsMaintenance {
			if elapsed := roundMinutes(order.end.Sub(order.start)); elapsed != order.doc.Data.DurationMinutes {
				errs = append(errs, fmt.Sprintf("maintenance work order %s duration mismatch: interval is %d minutes, duration is %d",
					id, elapsed, order.doc.Data.DurationMinutes))
			}
			continue
		}

		wc, ok := centers[order.doc.Data.WorkCenterID]
		if !ok {
			errs = append(errs, fmt.Sprintf("work order %s: unknown work center %s", id, order.doc.Data.WorkCenterID))
			continue
		}

		recomputed, err := calendar.AddWorkingMinutes(order.start, order.doc.Data.DurationMinutes, wc)
		if err != nil {
			errs = append(errs, fmt.Sprintf("work order %s: %v", id, err))
			continue
		}
		if !recomputed.Equal(order.end) {
			errs = append(errs, fmt.Sprintf("work order %s not aligned to shifts/maintenance: expected end %s, got %s",
				id, document.FormatTimestamp(recomputed), document.FormatTimestamp(order.end)))
		}
	}
	return errs
}
