package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"argentvault/internal/core"
	"argentvault/internal/sheets/memory"
)

type fixedBudgets []core.BudgetSnapshot

func (f fixedBudgets) List(context.Context) []core.BudgetSnapshot { return f }

type flakyExporter struct {
	*memory.Exporter
	failID int64
}

func (f flakyExporter) ExportSnapshot(ctx context.Context, s core.BudgetSnapshot) (string, error) {
	if s.ID == f.failID {
		return "", errors.New("quota exceeded")
	}
	return f.Exporter.ExportSnapshot(ctx, s)
}

func snapshot(id int64) core.BudgetSnapshot {
	return core.NewSnapshot(id, time.Unix(id, 0).UTC(), decimal.NewFromInt(1000),
		[]core.ExpenseEntry{{Name: "Rent", Amount: decimal.NewFromInt(400)}})
}

func TestSheetSyncReconciles(t *testing.T) {
	ctx := context.Background()
	sheet := memory.New()
	// 9 was deleted while the worker was offline
	if _, err := sheet.ExportSnapshot(ctx, snapshot(9)); err != nil {
		t.Fatal(err)
	}

	sync := NewSheetSync(fixedBudgets{snapshot(1), snapshot(2)}, sheet, sheet)
	res, err := sync.Sync(ctx)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if res != (SyncResult{Exported: 2, Removed: 1}) {
		t.Fatalf("result = %+v", res)
	}

	rows, _ := sheet.ListExported(ctx)
	if len(rows) != 2 || rows[0].ID != 1 || rows[1].ID != 2 {
		t.Fatalf("rows = %+v", rows)
	}

	// running again changes nothing
	if res, err := sync.Sync(ctx); err != nil || res != (SyncResult{Exported: 2}) {
		t.Fatalf("second run = %+v, %v", res, err)
	}
}

func TestSheetSyncContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	sheet := memory.New()
	exp := flakyExporter{Exporter: sheet, failID: 1}

	res, err := NewSheetSync(fixedBudgets{snapshot(1), snapshot(2)}, exp, sheet).Sync(ctx)
	if err == nil {
		t.Fatal("expected joined error")
	}
	if res.Exported != 1 || res.Failed != 1 {
		t.Fatalf("result = %+v", res)
	}
}
