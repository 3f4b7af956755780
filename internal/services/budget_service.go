package services

import (
	"context"
	"fmt"

	"argentvault/internal/amqp"
	"argentvault/internal/core"
	applog "argentvault/internal/log"
)

// EventPublisher announces budget changes. *amqp.Client satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, event *amqp.BudgetEvent) error
}

// Calculation is the engine output together with its advice.
type Calculation struct {
	Budget core.BudgetComputation `json:"budget"`
	Tips   []core.Tip             `json:"tips"`
}

// BudgetService orchestrates budget operations across the store and AMQP.
type BudgetService struct {
	store     *BudgetStore
	publisher EventPublisher
}

// NewBudgetService wires the service. publisher may be nil, in which case
// no events are sent.
func NewBudgetService(store *BudgetStore, publisher EventPublisher) *BudgetService {
	return &BudgetService{store: store, publisher: publisher}
}

// Calculate runs the engine over raw form input without saving anything.
func (s *BudgetService) Calculate(ctx context.Context, income string, rows []core.RawExpense) Calculation {
	comp := core.Calculate(income, rows)
	tips := core.TipsFor(comp)

	applog.FromContext(ctx).WithComponent(applog.ComponentBudget).Debug("Budget calculated",
		applog.NewFields().WithOperation(applog.OpCalculate).
			WithBudget(0, comp.Income, comp.TotalExpenses, comp.SavingsRate, len(comp.Expenses)).ToSlice()...)
	return Calculation{Budget: comp, Tips: tips}
}

// SaveInput computes and stores a budget from raw form input.
func (s *BudgetService) SaveInput(ctx context.Context, income string, rows []core.RawExpense) (core.BudgetSnapshot, error) {
	comp := core.Calculate(income, rows)
	return s.Save(ctx, core.BudgetSnapshot{Income: comp.Income, Expenses: comp.Entries()})
}

// Save stores the snapshot and publishes budget.saved. A failed publish is
// logged and does not fail the save.
func (s *BudgetService) Save(ctx context.Context, snap core.BudgetSnapshot) (core.BudgetSnapshot, error) {
	saved, err := s.store.Save(ctx, snap)
	if err != nil {
		return core.BudgetSnapshot{}, fmt.Errorf("save budget: %w", err)
	}

	logger := applog.FromContext(ctx).WithComponent(applog.ComponentBudget)
	logger.Info("Budget saved",
		applog.NewFields().WithOperation(applog.OpCreate).
			WithBudget(saved.ID, saved.Income, saved.TotalExpenses, saved.SavingsRate, len(saved.Expenses)).ToSlice()...)

	s.publish(ctx, amqp.NewBudgetSavedEvent(saved))
	return saved, nil
}

func (s *BudgetService) List(ctx context.Context) []core.BudgetSnapshot {
	return s.store.List(ctx)
}

func (s *BudgetService) Get(ctx context.Context, id int64) (core.BudgetSnapshot, error) {
	return s.store.Load(ctx, id)
}

// Tips regenerates advice for a stored budget.
func (s *BudgetService) Tips(ctx context.Context, id int64) ([]core.Tip, error) {
	snap, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return core.TipsFor(snap.Computation()), nil
}

// Delete removes the budget and publishes budget.deleted.
func (s *BudgetService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	applog.FromContext(ctx).WithComponent(applog.ComponentBudget).Info("Budget deleted",
		applog.FieldBudgetID, id, applog.FieldOperation, applog.OpDelete)

	s.publish(ctx, amqp.NewBudgetDeletedEvent(id))
	return nil
}

func (s *BudgetService) publish(ctx context.Context, event *amqp.BudgetEvent) {
	logger := applog.FromContext(ctx).WithComponent(applog.ComponentAMQP)
	if s.publisher == nil {
		logger.Debug("AMQP client not available, skipping budget event",
			"type", event.Type, applog.FieldBudgetID, event.ID)
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		// Don't fail the request - the budget is already stored
		logger.Error("Failed to publish budget event",
			applog.NewFields().WithError(err).WithErrorType(applog.ErrorTypeNetwork).
				WithOperation(applog.OpPublish).ToSlice()...)
	}
}
