/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package reflow

import "errors"

// Fatal error kinds. Any of these aborts the whole invocation with no partial
// schedule; callers match with errors.Is.
var (
	// ErrUnknownDependency is returned when a work order depends on an
	// identifier absent from the input set.
	ErrUnknownDependency = errors.New("dependency references unknown work order")

	// ErrCircularDependency is returned when the dependency graph contains a
	// cycle.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrMissingWorkCenter is returned when a work order references a work
	// center absent from the input set.
	ErrMissingWorkCenter = errors.New("work order references unknown work center")

	// ErrSearchIterations is returned when the slot search exhausts its
	// iteration budget without finding a conflict-free interval.
	ErrSearchIterations = errors.New("slot search exceeded iteration limit")
)
