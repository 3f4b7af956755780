package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"argentvault/internal/amqp"
	"argentvault/internal/core"
	"argentvault/internal/storage"
)

func TestBudgetServiceCalculate(t *testing.T) {
	svc := NewBudgetService(newTestStore(storage.NewMemoryStore(), false), nil)

	got := svc.Calculate(context.Background(), "2000", []core.RawExpense{{Name: "Rent", Amount: "2200"}})
	if !got.Budget.Remaining.Equal(decimal.NewFromInt(-200)) {
		t.Fatalf("remaining = %s", got.Budget.Remaining)
	}
	var deficit bool
	for _, tip := range got.Tips {
		if tip.Priority == core.PriorityCritical {
			deficit = true
		}
	}
	if !deficit || len(got.Tips) < core.MinimumTips {
		t.Fatalf("expected a critical tip among %d tips: %+v", len(got.Tips), got.Tips)
	}
	if len(svc.List(context.Background())) != 0 {
		t.Fatal("calculate must not save")
	}
}

func TestBudgetServicePublishes(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := NewBudgetService(newTestStore(storage.NewMemoryStore(), false), pub)

	saved, err := svc.SaveInput(ctx, "3000", []core.RawExpense{
		{Name: "Rent", Amount: "1000"},
		{Name: "", Amount: "50"},
		{Name: "Unused", Amount: ""},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(saved.Expenses) != 2 || saved.Expenses[1].Name != "Expense 2" {
		t.Fatalf("unexpected expenses: %+v", saved.Expenses)
	}
	if err := svc.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(pub.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(pub.events))
	}
	if pub.events[0].Type != amqp.EventBudgetSaved || pub.events[0].Snapshot == nil || pub.events[0].ID != saved.ID {
		t.Fatalf("bad saved event: %+v", pub.events[0])
	}
	if pub.events[1].Type != amqp.EventBudgetDeleted || pub.events[1].ID != saved.ID {
		t.Fatalf("bad deleted event: %+v", pub.events[1])
	}
}

func TestBudgetServicePublishFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewBudgetService(newTestStore(storage.NewMemoryStore(), false), pub)

	saved, err := svc.SaveInput(ctx, "100", nil)
	if err != nil {
		t.Fatalf("publish failure leaked: %v", err)
	}
	if _, err := svc.Get(ctx, saved.ID); err != nil {
		t.Fatalf("budget should be stored: %v", err)
	}
}

func TestBudgetServiceTipsAndMissing(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := NewBudgetService(newTestStore(storage.NewMemoryStore(), true), pub)

	tips, err := svc.Tips(ctx, 1)
	if err != nil || len(tips) < core.MinimumTips {
		t.Fatalf("sample tips: %v %v", tips, err)
	}
	if _, err := svc.Tips(ctx, 2); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.Delete(ctx, 2); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Fatal("failed delete must not publish")
	}
}
