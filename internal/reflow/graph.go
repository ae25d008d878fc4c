/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package reflow

import (
	"fmt"
	"strings"

	"github.com/factoryops/reflow/internal/document"
)

// Graph maps each work-order identifier to the set of identifiers it depends
// on. Orders own dependency identifiers, never references to other orders.
type Graph map[string]map[string]struct{}

// BuildGraph builds the dependency graph for the given work orders. Every
// dependency identifier must name a work order in the input; otherwise all
// offending identifiers are reported in a single ErrUnknownDependency.
func BuildGraph(orders []document.WorkOrderDocument) (Graph, error) {
	graph := make(Graph, len(orders))
	for _, order := range orders {
		deps := make(map[string]struct{}, len(order.Data.DependsOnWorkOrderIDs))
		for _, dep := range order.Data.DependsOnWorkOrderIDs {
			deps[dep] = struct{}{}
		}
		graph[order.DocID] = deps
	}

	var unknown []string
	seen := make(map[string]struct{})
	for _, order := range orders {
		for _, dep := range order.Data.DependsOnWorkOrderIDs {
			if _, ok := graph[dep]; ok {
				continue
			}
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			unknown = append(unknown, dep)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDependency, strings.Join(unknown, ", "))
	}

	return graph, nil
}

// TopologicalSort orders work-order identifiers so that every dependency
// precedes its dependents, using Kahn's algorithm with a FIFO queue seeded in
// input order. For equal input ordering the result is deterministic, which
// keeps scheduling reproducible among independent orders.
func TopologicalSort(orders []document.WorkOrderDocument) ([]string, error) {
	graph, err := BuildGraph(orders)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(orders))
	remaining := make(Graph, len(orders))
	for _, order := range orders {
		ids = append(ids, order.DocID)
		deps := make(map[string]struct{}, len(graph[order.DocID]))
		for dep := range graph[order.DocID] {
			deps[dep] = struct{}{}
		}
		remaining[order.DocID] = deps
	}

	queue := make([]string, 0, len(ids))
	enqueued := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if len(remaining[id]) == 0 {
			queue = append(queue, id)
			enqueued[id] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(ids))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, current)

		for _, id := range ids {
			if _, done := enqueued[id]; done {
				continue
			}
			if _, depends := remaining[id][current]; !depends {
				continue
			}
			delete(remaining[id], current)
			if len(remaining[id]) == 0 {
				queue = append(queue, id)
				enqueued[id] = struct{}{}
			}
		}
	}

	if len(sorted) != len(ids) {
		var stuck []string
		for _, id := range ids {
			if _, done := enqueued[id]; !done {
				stuck = append(stuck, id)
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrCircularDependency, strings.Join(stuck, ", "))
	}

	return sorted, nil
}
