package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// MinimumTips is the number of tips below which the generic set is appended.
const MinimumTips = 3

// Tip is a piece of budget advice.
type Tip struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Priority Priority `json:"priority"`
}

var (
	targetSavingsRate  = decimal.NewFromInt(20)
	highShareThreshold = decimal.NewFromFloat(0.3)

	discretionaryKeywords = []string{"Entertainment", "Dining", "Shopping"}

	genericTips = []Tip{
		{
			Title:    "Emergency Fund Priority",
			Content:  "Make sure you're contributing to an emergency fund with 3-6 months of expenses.",
			Priority: PriorityMedium,
		},
		{
			Title:    "Review Subscriptions",
			Content:  "Regularly review subscription services and cancel any you don't use frequently.",
			Priority: PriorityLow,
		},
		{
			Title:    "Automate Savings",
			Content:  "Set up automatic transfers to savings on payday to make saving effortless.",
			Priority: PriorityLow,
		},
	}
)

// GenerateTips evaluates every advice rule in order. When fewer than
// MinimumTips specific tips apply, the whole generic set is appended, so
// the result can hold up to six tips.
func GenerateTips(income decimal.Decimal, expenses []ExpenseEntry, remaining, savingsRate decimal.Decimal) []Tip {
	tips := make([]Tip, 0, 6)

	if savingsRate.LessThan(targetSavingsRate) {
		tips = append(tips, Tip{
			Title:    "Increase Your Savings Rate",
			Content:  fmt.Sprintf("Your current savings rate is %s. Aim for at least 20%% to build financial security.", FormatPercent(savingsRate)),
			Priority: PriorityHigh,
		})
	}

	if remaining.IsNegative() {
		tips = append(tips, Tip{
			Title:    "Budget Deficit Alert",
			Content:  "You're spending more than you earn. Review your expenses and identify areas to cut back.",
			Priority: PriorityCritical,
		})
	}

	limit := income.Mul(highShareThreshold)
	for _, e := range expenses {
		if !e.Amount.GreaterThan(limit) {
			continue
		}
		tips = append(tips, Tip{
			Title:    "High Expense Detected",
			Content:  highExpenseContent(e, income),
			Priority: PriorityMedium,
		})
		break
	}

	wants := decimal.Zero
	for _, e := range expenses {
		if IsDiscretionary(e.Name) {
			wants = wants.Add(e.Amount)
		}
	}
	if wants.GreaterThan(limit) {
		tips = append(tips, Tip{
			Title: "High Discretionary Spending",
			Content: fmt.Sprintf("You're spending %s on wants (%s of income). Consider reallocating some to savings.",
				FormatDollars(wants), FormatPercent(percentOf(wants, income))),
			Priority: PriorityMedium,
		})
	}

	if len(tips) < MinimumTips {
		tips = append(tips, genericTips...)
	}
	return tips
}

// TipsFor generates tips for an already computed budget.
func TipsFor(b BudgetComputation) []Tip {
	return GenerateTips(b.Income, b.Entries(), b.Remaining, b.SavingsRate)
}

// IsDiscretionary reports whether an expense name matches one of the
// "wants" keywords, case-insensitively.
func IsDiscretionary(name string) bool {
	lower := strings.ToLower(name)
	for _, k := range discretionaryKeywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

func highExpenseContent(e ExpenseEntry, income decimal.Decimal) string {
	if !income.IsPositive() {
		return fmt.Sprintf("%s is not covered by any income. Consider if this can be reduced.", e.Name)
	}
	return fmt.Sprintf("%s is taking %s of your income. Consider if this can be reduced.",
		e.Name, FormatPercent(percentOf(e.Amount, income)))
}
