// Package adapters bridges the budget store to the sheet export ports.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"argentvault/internal/core"
	applog "argentvault/internal/log"
	"argentvault/internal/sheets"
)

// BudgetLister is the read side of the budget store.
type BudgetLister interface {
	List(ctx context.Context) []core.BudgetSnapshot
}

// SheetSync reconciles the sheet with the stored budgets. It covers events
// the export worker never saw, e.g. budgets saved while AMQP was down.
type SheetSync struct {
	budgets  BudgetLister
	exporter sheets.SnapshotExporter
	lister   sheets.SnapshotLister
}

func NewSheetSync(budgets BudgetLister, exporter sheets.SnapshotExporter, lister sheets.SnapshotLister) *SheetSync {
	return &SheetSync{budgets: budgets, exporter: exporter, lister: lister}
}

type SyncResult struct {
	Exported int
	Removed  int
	Failed   int
}

// Sync exports every stored budget and removes sheet rows whose budget no
// longer exists. A failing row does not stop the run; the joined errors
// are returned with the counts.
func (s *SheetSync) Sync(ctx context.Context) (SyncResult, error) {
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentSheets)

	var (
		res  SyncResult
		errs []error
	)
	stored := make(map[int64]bool)
	for _, snap := range s.budgets.List(ctx) {
		stored[snap.ID] = true
		if _, err := s.exporter.ExportSnapshot(ctx, snap); err != nil {
			res.Failed++
			errs = append(errs, fmt.Errorf("export budget %d: %w", snap.ID, err))
			continue
		}
		res.Exported++
	}

	rows, err := s.lister.ListExported(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("list exported: %w", err))
	}
	for _, row := range rows {
		if stored[row.ID] {
			continue
		}
		if err := s.exporter.RemoveSnapshot(ctx, row.ID); err != nil {
			res.Failed++
			errs = append(errs, fmt.Errorf("remove budget %d: %w", row.ID, err))
			continue
		}
		res.Removed++
	}

	logger.Info("Sheet sync finished",
		applog.FieldOperation, applog.OpExport,
		"exported", res.Exported, "removed", res.Removed, "failed", res.Failed)
	return res, errors.Join(errs...)
}
