package main

import (
	"github.com/jonathan/cvcheck/internal/entries"
	"github.com/jonathan/cvcheck/internal/observability"
	"github.com/spf13/cobra"
)

func newShapesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shapes",
		Short: "List the entry types sections can hold",
		Long: "Lists every entry type with the fields that identify it. A section's type is " +
			"detected from the first entry that has one of these fields.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			observability.NewPrinter(cmd.OutOrStdout()).PrintShapes(entries.Default())
			return nil
		},
	}
}
