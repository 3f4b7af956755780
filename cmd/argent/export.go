package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"argentvault/internal/adapters"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Mirror every saved budget into the configured spreadsheet",
	Long: `Export every saved budget to the sheet named by GOOGLE_SPREADSHEET_ID and
GOOGLE_SHEET_NAME, and remove rows of budgets that no longer exist. Without a
spreadsheet the export goes to memory and is only logged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		exp, err := app.factory.CreateExporter(cmd.Context(), app.backendCfg)
		if err != nil {
			return err
		}
		res, err := adapters.NewSheetSync(app.budgets, exp.Exporter, exp.Lister).Sync(cmd.Context())
		fmt.Printf("  %s export: %d exported, %d removed, %d failed\n", exp.Kind, res.Exported, res.Removed, res.Failed)
		return err
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
