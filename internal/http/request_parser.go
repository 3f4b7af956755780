package http

// This file implements parsing of request bodies and path parameters. Bodies
// may be JSON or form-encoded; numbers may arrive as JSON numbers or strings.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"argentvault/internal/core"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 64 << 10

var errEmptyBody = errors.New("empty request body")

// flexString accepts a JSON string, number or null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*f = ""
	case strings.HasPrefix(s, `"`):
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexString(v)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", s)
		}
		*f = flexString(n.String())
	}
	return nil
}

// BudgetInput is the body of calculate and save requests.
type BudgetInput struct {
	Income   string
	Expenses []core.RawExpense
}

type budgetInputJSON struct {
	Income   flexString `json:"income"`
	Expenses []struct {
		Name   flexString `json:"name"`
		Amount flexString `json:"amount"`
	} `json:"expenses"`
}

// ParseBudgetInput reads a budget from JSON
// {"income": 3000, "expenses": [{"name": "Rent", "amount": "1000"}]} or from a
// form with income plus repeated expenseName / expenseAmount fields.
func ParseBudgetInput(r *http.Request) (BudgetInput, error) {
	if isJSON(r) {
		var in budgetInputJSON
		if err := decodeJSON(r, &in); err != nil {
			return BudgetInput{}, err
		}
		out := BudgetInput{Income: sanitizeInput(string(in.Income))}
		for _, e := range in.Expenses {
			out.Expenses = append(out.Expenses, core.RawExpense{
				Name:   sanitizeInput(string(e.Name)),
				Amount: sanitizeInput(string(e.Amount)),
			})
		}
		return out, nil
	}

	form, err := parseForm(r)
	if err != nil {
		return BudgetInput{}, err
	}
	names, amounts := form["expenseName"], form["expenseAmount"]
	n := max(len(names), len(amounts))
	out := BudgetInput{Income: sanitizeInput(form.Get("income"))}
	for i := 0; i < n; i++ {
		out.Expenses = append(out.Expenses, core.RawExpense{
			Name:   sanitizeInput(at(names, i)),
			Amount: sanitizeInput(at(amounts, i)),
		})
	}
	return out, nil
}

// ParseSubscriptionRequest reads a newsletter request from JSON or form.
func ParseSubscriptionRequest(r *http.Request) (core.SubscriptionRequest, error) {
	if isJSON(r) {
		var req core.SubscriptionRequest
		if err := decodeJSON(r, &req); err != nil {
			return core.SubscriptionRequest{}, err
		}
		req.Name, req.Email, req.Interest = sanitizeInput(req.Name), sanitizeInput(req.Email), sanitizeInput(req.Interest)
		return req, nil
	}
	form, err := parseForm(r)
	if err != nil {
		return core.SubscriptionRequest{}, err
	}
	return core.SubscriptionRequest{
		Name:     sanitizeInput(form.Get("name")),
		Email:    sanitizeInput(form.Get("email")),
		Interest: sanitizeInput(form.Get("interest")),
	}, nil
}

// ParseBudgetID extracts the {id} path parameter.
func ParseBudgetID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid budget id %q", raw)
	}
	return id, nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func parseForm(r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form body: %w", err)
	}
	return r.PostForm, nil
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
