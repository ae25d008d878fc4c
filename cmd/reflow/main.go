/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package main

import (
	"os"

	"github.com/factoryops/reflow/cmd/reflow/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
