package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"argentvault/internal/core"
)

func TestParseBudgetInput(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        BudgetInput
		wantErr     bool
	}{
		{
			name:        "json mixed types",
			contentType: "application/json; charset=utf-8",
			body:        `{"income": 2500.5, "expenses": [{"name": " Rent\u0007 ", "amount": 900}, {"name": null, "amount": "12.30"}]}`,
			want: BudgetInput{Income: "2500.5", Expenses: []core.RawExpense{
				{Name: "Rent", Amount: "900"},
				{Name: "", Amount: "12.30"},
			}},
		},
		{
			name:        "form with ragged arrays",
			contentType: "application/x-www-form-urlencoded",
			body: url.Values{
				"income":        {" 100 "},
				"expenseName":   {"Food", "Bus"},
				"expenseAmount": {"40"},
			}.Encode(),
			want: BudgetInput{Income: "100", Expenses: []core.RawExpense{
				{Name: "Food", Amount: "40"},
				{Name: "Bus", Amount: ""},
			}},
		},
		{name: "empty json", contentType: "application/json", body: "", wantErr: true},
		{name: "object as amount", contentType: "application/json", body: `{"expenses": [{"amount": {}}]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			got, err := ParseBudgetInput(req)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Income != tt.want.Income || len(got.Expenses) != len(tt.want.Expenses) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			for i := range got.Expenses {
				if got.Expenses[i] != tt.want.Expenses[i] {
					t.Fatalf("expense %d = %+v, want %+v", i, got.Expenses[i], tt.want.Expenses[i])
				}
			}
		})
	}
}

func TestParseBudgetID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"1735689600000", 1735689600000, false},
		{"0", 0, true},
		{"-4", 0, true},
		{"x", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.raw)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			got, err := ParseBudgetID(req)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Fatalf("ParseBudgetID(%q) = %d, %v", tt.raw, got, err)
			}
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := map[string]int{
		"":     defaultExpenseNameCount,
		"5":    5,
		"0":    defaultExpenseNameCount,
		"nope": defaultExpenseNameCount,
		"500":  maxExpenseNameCount,
	}
	for raw, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?count="+raw, nil)
		if got := parseCount(req); got != want {
			t.Errorf("parseCount(%q) = %d, want %d", raw, got, want)
		}
	}
}
