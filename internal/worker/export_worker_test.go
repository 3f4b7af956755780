package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"argentvault/internal/amqp"
	"argentvault/internal/core"
	"argentvault/internal/sheets/memory"
)

type brokenExporter struct{}

func (brokenExporter) ExportSnapshot(context.Context, core.BudgetSnapshot) (string, error) {
	return "", errors.New("quota exceeded")
}
func (brokenExporter) RemoveSnapshot(context.Context, int64) error { return errors.New("quota exceeded") }

func TestExportWorkerMirrorsEvents(t *testing.T) {
	ctx := context.Background()
	sink := memory.New()
	w := NewExportWorker(sink)
	snap := core.SampleSnapshot(time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC))

	if err := w.HandleEvent(ctx, amqp.NewBudgetSavedEvent(snap)); err != nil {
		t.Fatalf("saved: %v", err)
	}
	rows, _ := sink.ListExported(ctx)
	if len(rows) != 1 || rows[0].ID != snap.ID || rows[0].Remaining != "900.00" {
		t.Fatalf("unexpected rows %+v", rows)
	}

	if err := w.HandleEvent(ctx, amqp.NewBudgetDeletedEvent(snap.ID)); err != nil {
		t.Fatalf("deleted: %v", err)
	}
	rows, _ = sink.ListExported(ctx)
	if len(rows) != 0 {
		t.Fatalf("row not removed: %+v", rows)
	}

	if got := w.Stats(); got != (Stats{Exported: 1, Removed: 1}) {
		t.Fatalf("unexpected stats %+v", got)
	}
}

func TestExportWorkerPropagatesFailures(t *testing.T) {
	ctx := context.Background()
	w := NewExportWorker(brokenExporter{})

	if err := w.HandleEvent(ctx, amqp.NewBudgetSavedEvent(core.SampleSnapshot(time.Now()))); err == nil {
		t.Fatal("expected export error")
	}
	if err := w.HandleEvent(ctx, amqp.NewBudgetDeletedEvent(5)); err == nil {
		t.Fatal("expected remove error")
	}
	if w.Stats().Failed != 2 {
		t.Fatalf("failures not counted: %+v", w.Stats())
	}
}
