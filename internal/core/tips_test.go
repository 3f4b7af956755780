package core

import (
	"strings"
	"testing"
)

func titles(tips []Tip) []string {
	out := make([]string, len(tips))
	for i, t := range tips {
		out[i] = t.Title
	}
	return out
}

func hasTip(tips []Tip, title string, p Priority) bool {
	for _, t := range tips {
		if t.Title == title && t.Priority == p {
			return true
		}
	}
	return false
}

func TestGenerateTipsRules(t *testing.T) {
	cases := []struct {
		name   string
		income string
		exps   []ExpenseEntry
		want   []string
	}{
		{
			name:   "healthy budget gets generic set only",
			income: "3000",
			exps:   entries("Rent", "800", "Groceries", "300"),
			want:   []string{"Emergency Fund Priority", "Review Subscriptions", "Automate Savings"},
		},
		{
			name:   "low savings and high expense",
			income: "2000",
			exps:   entries("Rent", "1000", "Food", "700"),
			want: []string{
				"Increase Your Savings Rate", "High Expense Detected",
				"Emergency Fund Priority", "Review Subscriptions", "Automate Savings",
			},
		},
		{
			name:   "deficit with discretionary",
			income: "1000",
			exps:   entries("Rent", "600", "Dining Out", "200", "Online shopping", "250"),
			want: []string{
				"Increase Your Savings Rate", "Budget Deficit Alert",
				"High Expense Detected", "High Discretionary Spending",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := ComputeBudget(dec(tc.income), tc.exps)
			got := titles(TipsFor(b))
			if strings.Join(got, "|") != strings.Join(tc.want, "|") {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGenerateTipsDeficitScenario(t *testing.T) {
	b := ComputeBudget(dec("2000"), entries("Rent", "2200"))
	tips := TipsFor(b)
	if !hasTip(tips, "Budget Deficit Alert", PriorityCritical) {
		t.Fatalf("missing critical deficit tip: %v", titles(tips))
	}
	if !hasTip(tips, "Increase Your Savings Rate", PriorityHigh) {
		t.Fatalf("missing savings tip")
	}
	for _, tip := range tips {
		if tip.Title == "High Expense Detected" && !strings.Contains(tip.Content, "Rent is taking 110.0%") {
			t.Fatalf("unexpected content %q", tip.Content)
		}
	}
}

func TestGenerateTipsHighExpenseFirstMatchOnly(t *testing.T) {
	b := ComputeBudget(dec("1000"), entries("Rent", "400", "Car", "350"))
	n := 0
	for _, tip := range TipsFor(b) {
		if tip.Title == "High Expense Detected" {
			n++
			if !strings.HasPrefix(tip.Content, "Rent ") {
				t.Fatalf("expected first match, got %q", tip.Content)
			}
		}
	}
	if n != 1 {
		t.Fatalf("expected exactly one high expense tip, got %d", n)
	}
}

func TestGenerateTipsAlwaysAtLeastThree(t *testing.T) {
	inputs := []struct {
		income string
		exps   []ExpenseEntry
	}{
		{"0", nil},
		{"0", entries("Movies", "10")},
		{"10000", entries("Rent", "1")},
		{"500", entries("Entertainment", "400")},
	}
	for _, in := range inputs {
		b := ComputeBudget(dec(in.income), in.exps)
		if got := TipsFor(b); len(got) < MinimumTips {
			t.Fatalf("income %s: got %d tips", in.income, len(got))
		}
	}
}

func TestIsDiscretionary(t *testing.T) {
	cases := map[string]bool{
		"Entertainment":   true,
		"fine DINING":     true,
		"shopping spree":  true,
		"Rent":            false,
		"Savings account": false,
	}
	for name, want := range cases {
		if got := IsDiscretionary(name); got != want {
			t.Fatalf("%q: got %v want %v", name, got, want)
		}
	}
}
