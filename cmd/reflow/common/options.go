/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

// Package common holds shared CLI options and wiring for reflow commands.
package common

// RootOptions are the global flags shared by every reflow command.
type RootOptions struct {
	// Output selects the result format: "json" (default) or "table".
	Output string

	// Debug enables verbose logging.
	Debug bool
}

// JSONOutput reports whether results should be printed as JSON.
func (o *RootOptions) JSONOutput() bool {
	return o.Output != "table"
}
