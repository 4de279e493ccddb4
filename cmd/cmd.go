//go:build linux && (amd64 || arm64)

// Package cmd holds the abiprobe subcommands.
package cmd

import (
	"github.com/spf13/cobra"
)

// Register adds every subcommand to root.
func Register(root *cobra.Command) {
	root.AddCommand(
		CreateSizesCmd(),
		CreateLayoutCmd(),
		CreateFillCmd(),
		CreateBaselineCmd(),
		CreateDevicesCmd(),
	)
}
