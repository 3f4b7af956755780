package sheets

import (
	"strings"
	"time"

	"argentvault/internal/core"
)

// RowFor renders a snapshot the way it is written to the sheet. Expenses
// are flattened to "Name: 12.34; Other: 5.00".
func RowFor(s core.BudgetSnapshot) ExportedRow {
	parts := make([]string, len(s.Expenses))
	for i, e := range s.Expenses {
		parts[i] = e.Name + ": " + e.Amount.StringFixed(2)
	}
	return ExportedRow{
		ID:          s.ID,
		Created:     s.CreatedAt.UTC().Format(time.RFC3339),
		Income:      s.Income.StringFixed(2),
		Total:       s.TotalExpenses.StringFixed(2),
		Remaining:   s.Remaining.StringFixed(2),
		SavingsRate: s.SavingsRate.StringFixed(1),
		Expenses:    strings.Join(parts, "; "),
	}
}

// Values returns the row in column order.
func (r ExportedRow) Values() []any {
	return []any{r.ID, r.Created, r.Income, r.Total, r.Remaining, r.SavingsRate, r.Expenses}
}
