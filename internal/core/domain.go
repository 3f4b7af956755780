package core

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// RawExpense is an expense row exactly as the user typed it.
	RawExpense struct {
		Name   string `json:"name"`
		Amount string `json:"amount"`
	}

	ExpenseEntry struct {
		Name   string          `json:"name"`
		Amount decimal.Decimal `json:"amount"`
	}

	// BudgetSnapshot is an immutable record of one budget computation.
	BudgetSnapshot struct {
		ID            int64           `json:"id"`
		CreatedAt     time.Time       `json:"date"`
		Income        decimal.Decimal `json:"income"`
		Expenses      []ExpenseEntry  `json:"expenses"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		Remaining     decimal.Decimal `json:"remaining"`
		SavingsRate   decimal.Decimal `json:"savingsRate"`
	}
)

var (
	ErrNotFound      = errors.New("budget not found")
	ErrInvalidAmount = errors.New("invalid amount")
)

// NewSnapshot builds a snapshot whose derived fields are always recomputed
// from income and expenses.
func NewSnapshot(id int64, createdAt time.Time, income decimal.Decimal, expenses []ExpenseEntry) BudgetSnapshot {
	comp := ComputeBudget(income, expenses)
	included := make([]ExpenseEntry, len(comp.Expenses))
	for i, e := range comp.Expenses {
		included[i] = ExpenseEntry{Name: e.Name, Amount: e.Amount}
	}
	return BudgetSnapshot{
		ID:            id,
		CreatedAt:     createdAt.UTC(),
		Income:        comp.Income,
		Expenses:      included,
		TotalExpenses: comp.TotalExpenses,
		Remaining:     comp.Remaining,
		SavingsRate:   comp.SavingsRate,
	}
}

// Recompute returns a copy with totals, remaining and savings rate derived
// again from income and expenses. Stored values are never trusted.
func (s BudgetSnapshot) Recompute() BudgetSnapshot {
	return NewSnapshot(s.ID, s.CreatedAt, s.Income, s.Expenses)
}

// Computation returns the full view-model for a stored snapshot.
func (s BudgetSnapshot) Computation() BudgetComputation {
	return ComputeBudget(s.Income, s.Expenses)
}

// IDString formats the id for use in URLs and sheet cells.
func (s BudgetSnapshot) IDString() string {
	return strconv.FormatInt(s.ID, 10)
}

// SampleSnapshot is the budget shown to a brand new user.
func SampleSnapshot(createdAt time.Time) BudgetSnapshot {
	return NewSnapshot(1, createdAt, decimal.NewFromInt(3000), []ExpenseEntry{
		{Name: "Rent", Amount: decimal.NewFromInt(1000)},
		{Name: "Groceries", Amount: decimal.NewFromInt(300)},
		{Name: "Utilities", Amount: decimal.NewFromInt(150)},
		{Name: "Transportation", Amount: decimal.NewFromInt(200)},
		{Name: "Entertainment", Amount: decimal.NewFromInt(150)},
		{Name: "Savings", Amount: decimal.NewFromInt(300)},
	})
}
