package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"argentvault/internal/cli"
)

var flagVisitor string

var visitCmd = &cobra.Command{
	Use:   "visit",
	Short: "Record a visit and print the welcome message",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Println()
		fmt.Print(cli.RenderVisit(app.visits.Record(cmd.Context(), flagVisitor)))
		return nil
	},
}

func init() {
	visitCmd.Flags().StringVar(&flagVisitor, "visitor", "", "Visitor id (default: shared record)")
	rootCmd.AddCommand(visitCmd)
}
