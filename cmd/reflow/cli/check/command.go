/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package check

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/factoryops/reflow/cmd/reflow/common"
	"github.com/factoryops/reflow/cmd/reflow/printers"
	"github.com/factoryops/reflow/internal/document"
	"github.com/factoryops/reflow/internal/reflow"
)

// NewCommand creates the "check" command.
func NewCommand(opts *common.RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <scenario-file>",
		Short: "Validate a scenario's schedule as-is, without rescheduling",
		Long: `Run the constraint validator over the documents exactly as given:
dependency ordering, interval sanity, per-work-center overlaps, and
shift/maintenance alignment. Findings are printed as ordinary output;
the exit code is nonzero only for unreadable or malformed input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0])
		},
	}

	return cmd
}

func runCheck(opts *common.RootOptions, path string) error {
	docs, err := document.Load(path)
	if err != nil {
		return err
	}

	centers, err := reflow.BuildWorkCenters(docs)
	if err != nil {
		return err
	}

	validation := reflow.ValidateSchedule(docs.WorkOrders, centers)

	d := &printers.Dispatcher{JSON: opts.JSONOutput()}
	return d.PrintObj(validation, os.Stdout)
}
