/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package version

import (
	"fmt"

	"github.com/spf13/cobra"

	internalversion "github.com/factoryops/reflow/internal/version"
)

// NewCommand creates the "version" command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(internalversion.GetVersion())
		},
	}
}
