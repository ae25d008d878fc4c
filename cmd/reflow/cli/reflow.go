/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package cli

import (
	"os"

	"github.com/factoryops/reflow/cmd/reflow/common"
	"github.com/factoryops/reflow/cmd/reflow/printers"
	"github.com/factoryops/reflow/internal/document"
	"github.com/factoryops/reflow/internal/reflow"
)

// runReflow loads a scenario, runs the engine, and prints the result bundle.
func runReflow(opts *common.RootOptions, path string) error {
	log, err := common.NewLogger(opts.Debug)
	if err != nil {
		return err
	}

	docs, err := document.Load(path)
	if err != nil {
		return err
	}
	log.V(1).Info("scenario loaded",
		"workOrders", len(docs.WorkOrders),
		"workCenters", len(docs.WorkCenters),
		"ignored", docs.Ignored)

	result, err := reflow.NewEngine(log).Reflow(docs)
	if err != nil {
		return err
	}

	d := &printers.Dispatcher{JSON: opts.JSONOutput()}
	return d.PrintObj(result, os.Stdout)
}
