package sheets

import (
	"context"

	"argentvault/internal/core"
)

// Ports for outbound export adapters.
type (
	// SnapshotExporter mirrors saved budgets into an external sheet. Both
	// calls are idempotent: exporting an id twice updates its row and
	// removing an unknown id is not an error.
	SnapshotExporter interface {
		ExportSnapshot(ctx context.Context, s core.BudgetSnapshot) (rowRef string, err error)
		RemoveSnapshot(ctx context.Context, id int64) error
	}

	// SnapshotLister reads back what has been exported.
	SnapshotLister interface {
		ListExported(ctx context.Context) ([]ExportedRow, error)
	}

	// ExportedRow is one budget as it appears in the sheet.
	ExportedRow struct {
		ID          int64
		Created     string
		Income      string
		Total       string
		Remaining   string
		SavingsRate string
		Expenses    string
	}
)

// Header is the first row of the export tab.
var Header = []string{"ID", "Created", "Income", "Total Expenses", "Remaining", "Savings Rate", "Expenses"}
