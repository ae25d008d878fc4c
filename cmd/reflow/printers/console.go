/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package printers

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"

	"github.com/factoryops/reflow/internal/reflow"
)

// ConsolePrinter renders a human-readable summary.
type ConsolePrinter struct{}

func (p *ConsolePrinter) PrintObj(obj any, w io.Writer) error {
	switch v := obj.(type) {
	case *reflow.Result:
		return p.printResult(v, w)
	case reflow.Validation:
		return p.printValidation(v, w)
	case *reflow.Validation:
		return p.printValidation(*v, w)
	default:
		jp := &JSONPrinter{}
		return jp.PrintObj(obj, w)
	}
}

func (p *ConsolePrinter) printResult(result *reflow.Result, w io.Writer) error {
	t := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	lo.Must1(fmt.Fprintf(t, "Work Orders:\t%d\n", len(result.UpdatedWorkOrders)))
	lo.Must1(fmt.Fprintf(t, "Changes:\t%d\n", len(result.Changes)))
	lo.Must1(fmt.Fprintln(t))

	if len(result.Changes) > 0 {
		lo.Must1(fmt.Fprintln(t, "ID\tFROM\tTO\tDELTA\tREASONS"))
		for _, c := range result.Changes {
			lo.Must1(fmt.Fprintf(t, "%s\t%s - %s\t%s - %s\t%+dm\t%s\n",
				c.WorkOrderID,
				c.FromStart, c.FromEnd,
				c.ToStart, c.ToEnd,
				c.DeltaMinutes,
				strings.Join(c.Reasons, ", ")))
		}
		lo.Must1(fmt.Fprintln(t))
	}

	for _, line := range result.Explanation {
		lo.Must1(fmt.Fprintf(t, "  %s\n", line))
	}
	if len(result.Explanation) > 0 {
		lo.Must1(fmt.Fprintln(t))
	}

	if err := t.Flush(); err != nil {
		return err
	}
	return p.printValidation(result.Validation, w)
}

func (p *ConsolePrinter) printValidation(v reflow.Validation, w io.Writer) error {
	if v.IsValid {
		_, err := fmt.Fprintln(w, "Validation: OK")
		return err
	}

	lo.Must1(fmt.Fprintf(w, "Validation: %d error(s)\n", len(v.Errors)))
	for _, e := range v.Errors {
		lo.Must1(fmt.Fprintf(w, "  - %s\n", e))
	}
	return nil
}
