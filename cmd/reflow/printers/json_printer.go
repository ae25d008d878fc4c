/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package printers

import (
	"encoding/json"
	"io"
)

// JSONPrinter renders objects as indented JSON.
type JSONPrinter struct{}

func (p *JSONPrinter) PrintObj(obj any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(obj)
}
