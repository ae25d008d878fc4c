/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

// Package printers renders reflow results as JSON or as a human-readable
// table.
package printers

import "io"

// Printer renders an object to a writer.
type Printer interface {
	PrintObj(obj any, w io.Writer) error
}
