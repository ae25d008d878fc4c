/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

// Package cli wires the reflow command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/factoryops/reflow/cmd/reflow/cli/check"
	"github.com/factoryops/reflow/cmd/reflow/cli/version"
	"github.com/factoryops/reflow/cmd/reflow/common"
	"github.com/factoryops/reflow/pkg/envutil"
)

// NewRootCommand creates the root command for reflow.
func NewRootCommand() *cobra.Command {
	opts := &common.RootOptions{}

	cmd := &cobra.Command{
		Use:   "reflow <scenario-file>",
		Short: "Reschedule a batch of production work orders across work centers",
		Long: "reflow recomputes start/end times for a batch of work orders so the\n" +
			"result respects dependency ordering, per-work-center shift calendars,\n" +
			"and maintenance blackout windows, moving each order as little as\n" +
			"possible from its requested time.\n\n" +
			"The scenario file is a JSON array (or YAML sequence) of workOrder,\n" +
			"workCenter, and manufacturingOrder documents. The resulting bundle is\n" +
			"printed to standard output:\n\n" +
			"  reflow scenario.json\n" +
			"  reflow scenario.yaml --output table\n" +
			"  reflow check scenario.json",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReflow(opts, args[0])
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", envutil.GetString("REFLOW_OUTPUT", "json"), "Output format: json or table")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", envutil.GetBool("REFLOW_DEBUG", false), "Enable debug logging")

	// Register subcommands
	cmd.AddCommand(check.NewCommand(opts))
	cmd.AddCommand(version.NewCommand())

	return cmd
}
