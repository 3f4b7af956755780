package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"argentvault/internal/core"
	"argentvault/internal/sheets"
)

// Exporter keeps exported rows in memory. The export worker falls back to
// it when no spreadsheet is configured.
type Exporter struct {
	mu   sync.Mutex
	rows map[int64]sheets.ExportedRow
}

var (
	_ sheets.SnapshotExporter = (*Exporter)(nil)
	_ sheets.SnapshotLister   = (*Exporter)(nil)
)

func New() *Exporter {
	return &Exporter{rows: make(map[int64]sheets.ExportedRow)}
}

func (e *Exporter) ExportSnapshot(ctx context.Context, s core.BudgetSnapshot) (string, error) {
	if s.ID == 0 {
		return "", fmt.Errorf("export snapshot: missing id")
	}
	row := sheets.RowFor(s)
	e.mu.Lock()
	e.rows[s.ID] = row
	e.mu.Unlock()

	slog.InfoContext(ctx, "Budget exported to memory",
		"budget_id", s.ID, "total_expenses", row.Total, "savings_rate", row.SavingsRate)
	return fmt.Sprintf("mem:%d", s.ID), nil
}

func (e *Exporter) RemoveSnapshot(ctx context.Context, id int64) error {
	e.mu.Lock()
	_, existed := e.rows[id]
	delete(e.rows, id)
	e.mu.Unlock()

	slog.InfoContext(ctx, "Budget removed from memory export", "budget_id", id, "existed", existed)
	return nil
}

// ListExported returns rows ordered by id.
func (e *Exporter) ListExported(_ context.Context) ([]sheets.ExportedRow, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]sheets.ExportedRow, 0, len(e.rows))
	for _, r := range e.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
