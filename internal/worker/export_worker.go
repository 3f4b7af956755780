package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"argentvault/internal/amqp"
	"argentvault/internal/sheets"
)

// ExportWorker mirrors budget events into a sheet.
type ExportWorker struct {
	exporter sheets.SnapshotExporter

	exported atomic.Int64
	removed  atomic.Int64
	failed   atomic.Int64
}

func NewExportWorker(exporter sheets.SnapshotExporter) *ExportWorker {
	return &ExportWorker{exporter: exporter}
}

// Stats is a point-in-time count of handled events.
type Stats struct {
	Exported int64
	Removed  int64
	Failed   int64
}

func (w *ExportWorker) Stats() Stats {
	return Stats{Exported: w.exported.Load(), Removed: w.removed.Load(), Failed: w.failed.Load()}
}

// HandleEvent is an amqp.Handler. Returning an error lets the broker
// redeliver the event once.
func (w *ExportWorker) HandleEvent(ctx context.Context, event *amqp.BudgetEvent) error {
	slog.InfoContext(ctx, "Processing budget event", "type", event.Type, "budget_id", event.ID)

	switch event.Type {
	case amqp.EventBudgetSaved:
		ref, err := w.exporter.ExportSnapshot(ctx, event.Snapshot.Recompute())
		if err != nil {
			w.failed.Add(1)
			return fmt.Errorf("export budget %d: %w", event.ID, err)
		}
		w.exported.Add(1)
		slog.InfoContext(ctx, "Successfully exported budget",
			"budget_id", event.ID,
			"sheets_ref", ref,
			"total_expenses", event.Snapshot.TotalExpenses.StringFixed(2))
	case amqp.EventBudgetDeleted:
		if err := w.exporter.RemoveSnapshot(ctx, event.ID); err != nil {
			w.failed.Add(1)
			return fmt.Errorf("remove budget %d: %w", event.ID, err)
		}
		w.removed.Add(1)
		slog.InfoContext(ctx, "Successfully removed budget", "budget_id", event.ID)
	default:
		// Unknown types never reach here through BudgetEventFromJSON.
		slog.WarnContext(ctx, "Ignoring unknown budget event", "type", event.Type)
	}
	return nil
}
