package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DetailedChartLimit is the largest number of expenses drawn as
// individual chart slices.
const DetailedChartLimit = 8

type (
	// ExpenseShare is one included expense and its share of income.
	ExpenseShare struct {
		Name   string          `json:"name"`
		Amount decimal.Decimal `json:"amount"`
		Share  decimal.Decimal `json:"share"`
	}

	ChartSlice struct {
		Label string          `json:"label"`
		Value decimal.Decimal `json:"value"`
	}

	// ChartSummary is what a chart renderer needs: the expenses vs remaining
	// split and, for small budgets, one slice per expense.
	ChartSummary struct {
		ExpenseShare   decimal.Decimal `json:"expenseShare"`
		RemainingShare decimal.Decimal `json:"remainingShare"`
		Overview       []ChartSlice    `json:"overview"`
		Detailed       []ChartSlice    `json:"detailed,omitempty"`
	}

	// BudgetComputation is the view-model produced by ComputeBudget.
	BudgetComputation struct {
		Income        decimal.Decimal `json:"income"`
		Expenses      []ExpenseShare  `json:"expenses"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		Remaining     decimal.Decimal `json:"remaining"`
		SavingsRate   decimal.Decimal `json:"savingsRate"`
		Chart         ChartSummary    `json:"chart"`
	}
)

// InDeficit reports whether expenses exceed income.
func (b BudgetComputation) InDeficit() bool {
	return b.Remaining.IsNegative()
}

// Entries returns the included expenses without their shares.
func (b BudgetComputation) Entries() []ExpenseEntry {
	out := make([]ExpenseEntry, len(b.Expenses))
	for i, e := range b.Expenses {
		out[i] = ExpenseEntry{Name: e.Name, Amount: e.Amount}
	}
	return out
}

// NormalizeEntries turns raw form rows into entries. Blank names become
// "Expense N" after their row position and unparsable amounts become zero.
// Zero rows are kept here; ComputeBudget drops them.
func NormalizeEntries(rows []RawExpense) []ExpenseEntry {
	out := make([]ExpenseEntry, 0, len(rows))
	for i, r := range rows {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			name = PlaceholderName(i + 1)
		}
		out = append(out, ExpenseEntry{Name: name, Amount: ParseAmount(r.Amount)})
	}
	return out
}

// PlaceholderName is the name given to a blank row at 1-based position n.
func PlaceholderName(n int) string {
	return fmt.Sprintf("Expense %d", n)
}

// ComputeBudget derives totals, remaining balance, savings rate and
// per-expense shares. Negative income is treated as zero and only entries
// with a positive amount are included.
func ComputeBudget(income decimal.Decimal, entries []ExpenseEntry) BudgetComputation {
	income = ClampIncome(income)

	included := make([]ExpenseShare, 0, len(entries))
	total := decimal.Zero
	for i, e := range entries {
		if !e.Amount.IsPositive() {
			continue
		}
		name := strings.TrimSpace(e.Name)
		if name == "" {
			name = PlaceholderName(i + 1)
		}
		total = total.Add(e.Amount)
		included = append(included, ExpenseShare{
			Name:   name,
			Amount: e.Amount,
			Share:  percentOf(e.Amount, income),
		})
	}

	remaining := income.Sub(total)
	return BudgetComputation{
		Income:        income,
		Expenses:      included,
		TotalExpenses: total,
		Remaining:     remaining,
		SavingsRate:   percentOf(remaining, income),
		Chart:         buildChart(income, total, remaining, included),
	}
}

// Calculate parses raw input and computes the budget.
func Calculate(income string, rows []RawExpense) BudgetComputation {
	return ComputeBudget(ParseIncome(income), NormalizeEntries(rows))
}

// percentOf returns part/whole*100 rounded to one decimal, or zero when
// whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(1)
}

func buildChart(income, total, remaining decimal.Decimal, expenses []ExpenseShare) ChartSummary {
	expenseShare := percentOf(total, income)
	remainingShare := percentOf(remaining, income)
	chart := ChartSummary{
		ExpenseShare:   expenseShare,
		RemainingShare: remainingShare,
		Overview: []ChartSlice{
			{Label: "Expenses (" + FormatPercent(expenseShare) + ")", Value: total},
			{Label: "Remaining (" + FormatPercent(remainingShare) + ")", Value: remaining},
		},
	}
	if len(expenses) > 0 && len(expenses) <= DetailedChartLimit {
		chart.Detailed = make([]ChartSlice, len(expenses))
		for i, e := range expenses {
			chart.Detailed[i] = ChartSlice{Label: e.Name, Value: e.Amount}
		}
	}
	return chart
}
