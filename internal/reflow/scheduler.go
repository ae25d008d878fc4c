/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package reflow

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/samber/lo"

	"github.com/factoryops/reflow/internal/calendar"
	"github.com/factoryops/reflow/internal/document"
)

// maxSearchIterations bounds the per-order slot search so that pathological
// conflict chains fail instead of looping forever.
const maxSearchIterations = 200

// Engine reschedules a batch of work orders across their work centers. An
// Engine carries no state between invocations; each Reflow call owns a
// private interval registry, so independent invocations may run in parallel.
type Engine struct {
	log logr.Logger
}

// NewEngine creates a reflow engine.
func NewEngine(log logr.Logger) *Engine {
	return &Engine{log: log.WithName("engine")}
}

// parsedOrder pairs a work-order document with its parsed timestamps.
type parsedOrder struct {
	doc   document.WorkOrderDocument
	start time.Time
	end   time.Time
}

// BuildWorkCenters resolves every workCenter document into its calendar,
// expanding recurring maintenance over a horizon anchored at the earliest
// work-order start in the input.
func BuildWorkCenters(docs document.Set) (map[string]calendar.WorkCenter, error) {
	horizon := horizonStart(docs.WorkOrders)

	centers := make(map[string]calendar.WorkCenter, len(docs.WorkCenters))
	for _, wc := range docs.WorkCenters {
		resolved, err := calendar.FromDocument(wc.DocID, wc.Data, horizon)
		if err != nil {
			return nil, err
		}
		centers[wc.DocID] = resolved
	}
	return centers, nil
}

func horizonStart(orders []document.WorkOrderDocument) time.Time {
	var earliest time.Time
	for _, order := range orders {
		start, err := document.ParseTimestamp(order.Data.StartDate)
		if err != nil {
			continue
		}
		if earliest.IsZero() || start.Before(earliest) {
			earliest = start
		}
	}
	if earliest.IsZero() {
		return time.Now().UTC()
	}
	return earliest
}

// Reflow computes a new schedule for the input document set. On success the
// result carries updated work orders, a change log, explanation strings, and
// the validator's verdict. Any fatal error aborts the invocation with no
// partial schedule.
func (e *Engine) Reflow(docs document.Set) (*Result, error) {
	centers, err := BuildWorkCenters(docs)
	if err != nil {
		return nil, err
	}

	orders, err := parseOrders(docs.WorkOrders, centers)
	if err != nil {
		return nil, err
	}

	// Unknown dependencies are checked against the full order set; the
	// production-only sort below must not misreport a dependency on a
	// maintenance order as unknown.
	if _, err := BuildGraph(docs.WorkOrders); err != nil {
		return nil, err
	}

	maintenance := lo.Filter(orders, func(o parsedOrder, _ int) bool { return o.doc.Data.IsMaintenance })
	production := lo.Filter(orders, func(o parsedOrder, _ int) bool { return !o.doc.Data.IsMaintenance })

	state := newSchedulingState()
	result := &Result{}

	// Maintenance orders keep their requested interval untouched and occupy
	// it before any production order is considered.
	for _, mo := range maintenance {
		iv := scheduledInterval{
			workOrderID:   mo.doc.DocID,
			start:         mo.start,
			end:           mo.end,
			isMaintenance: true,
			originalStart: mo.start,
			originalEnd:   mo.end,
		}
		state.insert(mo.doc.Data.WorkCenterID, iv)

		result.Changes = append(result.Changes, Change{
			WorkOrderID:  mo.doc.DocID,
			FromStart:    document.FormatTimestamp(mo.start),
			FromEnd:      document.FormatTimestamp(mo.end),
			ToStart:      document.FormatTimestamp(mo.start),
			ToEnd:        document.FormatTimestamp(mo.end),
			DeltaMinutes: 0,
			Reasons:      []string{ReasonMaintenance},
		})
		result.Explanation = append(result.Explanation, fmt.Sprintf("%s: maintenance not rescheduled (%s - %s)",
			mo.doc.DocID, document.FormatTimestamp(mo.start), document.FormatTimestamp(mo.end)))
	}

	sorted, err := TopologicalSort(pruneMaintenanceDeps(production, maintenance))
	if err != nil {
		return nil, err
	}

	productionByID := lo.KeyBy(production, func(o parsedOrder) string { return o.doc.DocID })

	for _, id := range sorted {
		order := productionByID[id]
		placed, reasons, err := e.placeOrder(order, centers[order.doc.Data.WorkCenterID], state)
		if err != nil {
			return nil, err
		}

		state.insert(order.doc.Data.WorkCenterID, placed)
		e.log.V(1).Info("placed work order",
			"id", id,
			"start", document.FormatTimestamp(placed.start),
			"end", document.FormatTimestamp(placed.end),
			"reasons", reasons)

		delta := roundMinutes(placed.end.Sub(order.end))
		if placed.start.Equal(order.start) && delta == 0 {
			continue
		}

		result.Changes = append(result.Changes, Change{
			WorkOrderID:  id,
			FromStart:    document.FormatTimestamp(order.start),
			FromEnd:      document.FormatTimestamp(order.end),
			ToStart:      document.FormatTimestamp(placed.start),
			ToEnd:        document.FormatTimestamp(placed.end),
			DeltaMinutes: delta,
			Reasons:      reasons,
		})
		result.Explanation = append(result.Explanation, fmt.Sprintf("%s: rescheduled %s - %s to %s - %s (%s)",
			id,
			document.FormatTimestamp(order.start), document.FormatTimestamp(order.end),
			document.FormatTimestamp(placed.start), document.FormatTimestamp(placed.end),
			strings.Join(reasons, ", ")))
	}

	for _, doc := range docs.WorkOrders {
		iv, ok := state.completed[doc.DocID]
		if !ok {
			return nil, fmt.Errorf("internal: work order %s was never scheduled", doc.DocID)
		}
		updated := doc
		updated.Data.StartDate = document.FormatTimestamp(iv.start)
		updated.Data.EndDate = document.FormatTimestamp(iv.end)
		result.UpdatedWorkOrders = append(result.UpdatedWorkOrders, updated)
	}

	result.Validation = ValidateSchedule(result.UpdatedWorkOrders, centers)

	e.log.Info("reflow complete",
		"workOrders", len(result.UpdatedWorkOrders),
		"changes", len(result.Changes),
		"valid", result.Validation.IsValid)

	return result, nil
}

// placeOrder runs the bounded slot search for one production order: honor
// dependency completion times, align to shift availability, and retry past
// conflicting intervals on the work center.
func (e *Engine) placeOrder(order parsedOrder, wc calendar.WorkCenter, state *schedulingState) (scheduledInterval, []string, error) {
	id := order.doc.DocID

	candidate := order.start
	reasons := []string{}
	addReason := func(r string) {
		if !lo.Contains(reasons, r) {
			reasons = append(reasons, r)
		}
	}

	for _, dep := range order.doc.Data.DependsOnWorkOrderIDs {
		depInterval, ok := state.completed[dep]
		if !ok {
			return scheduledInterval{}, nil, fmt.Errorf("internal: dependency %s of %s not yet scheduled", dep, id)
		}
		if depInterval.end.After(candidate) {
			candidate = depInterval.end
			addReason(ReasonDependencies)
		}
	}

	cursor := candidate
	for i := 0; i < maxSearchIterations; i++ {
		aligned, err := calendar.NextShiftStart(cursor, wc)
		if err != nil {
			return scheduledInterval{}, nil, err
		}
		if !aligned.Equal(cursor) {
			cursor = aligned
			addReason(ReasonShiftAlignment)
		}

		end, err := calendar.AddWorkingMinutes(cursor, order.doc.Data.DurationMinutes, wc)
		if err != nil {
			return scheduledInterval{}, nil, err
		}

		conflict, found := findConflict(state.byCenter[order.doc.Data.WorkCenterID], cursor, end, wc)
		if !found {
			return scheduledInterval{
				workOrderID:   id,
				start:         cursor,
				end:           end,
				originalStart: order.start,
				originalEnd:   order.end,
			}, reasons, nil
		}

		cursor = conflict.end
		addReason(ReasonConflict)
	}

	return scheduledInterval{}, nil, fmt.Errorf("%w: work order %s after %d attempts", ErrSearchIterations, id, maxSearchIterations)
}

// findConflict returns the first interval on the work center whose overlap
// with [start, end) contains working time. An interval that only spans an
// out-of-shift gap, such as a maintenance order parked outside working hours
// underneath a multi-day production span, does not block placement.
func findConflict(intervals []scheduledInterval, start, end time.Time, wc calendar.WorkCenter) (scheduledInterval, bool) {
	for _, iv := range intervals {
		if !start.Before(iv.end) || !iv.start.Before(end) {
			continue
		}
		overlap := calendar.Interval{Start: laterOf(start, iv.start), End: earlierOf(end, iv.end)}
		if calendar.HasWorkingTime(overlap, wc) {
			return iv, true
		}
	}
	return scheduledInterval{}, false
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// parseOrders parses work-order timestamps and verifies work-center
// references. All orders referencing unknown work centers are reported in a
// single ErrMissingWorkCenter.
func parseOrders(orders []document.WorkOrderDocument, centers map[string]calendar.WorkCenter) ([]parsedOrder, error) {
	var missing []string
	parsed := make([]parsedOrder, 0, len(orders))

	for _, doc := range orders {
		start, err := document.ParseTimestamp(doc.Data.StartDate)
		if err != nil {
			return nil, fmt.Errorf("work order %s: %w", doc.DocID, err)
		}
		end, err := document.ParseTimestamp(doc.Data.EndDate)
		if err != nil {
			return nil, fmt.Errorf("work order %s: %w", doc.DocID, err)
		}
		if _, ok := centers[doc.Data.WorkCenterID]; !ok {
			missing = append(missing, fmt.Sprintf("%s -> %s", doc.DocID, doc.Data.WorkCenterID))
		}
		parsed = append(parsed, parsedOrder{doc: doc, start: start, end: end})
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingWorkCenter, strings.Join(missing, ", "))
	}
	return parsed, nil
}

// pruneMaintenanceDeps copies the production orders with dependencies on
// maintenance orders removed. Maintenance intervals are placed before the
// sort runs, so those dependencies are already satisfied and must not count
// as unknown identifiers.
func pruneMaintenanceDeps(production, maintenance []parsedOrder) []document.WorkOrderDocument {
	maintenanceIDs := make(map[string]struct{}, len(maintenance))
	for _, mo := range maintenance {
		maintenanceIDs[mo.doc.DocID] = struct{}{}
	}

	pruned := make([]document.WorkOrderDocument, 0, len(production))
	for _, po := range production {
		doc := po.doc
		doc.Data.DependsOnWorkOrderIDs = lo.Filter(po.doc.Data.DependsOnWorkOrderIDs, func(dep string, _ int) bool {
			_, isMaintenance := maintenanceIDs[dep]
			return !isMaintenance
		})
		pruned = append(pruned, doc)
	}
	return pruned
}

func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
