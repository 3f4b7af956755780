// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts typed by a user
// and formatting them back for display.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseDecimal converts a decimal string to a decimal amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and a
// leading sign. Returns ErrInvalidAmount for empty or malformed input.
//
// Examples:
//
//	ParseDecimal("12.34") -> 12.34, nil
//	ParseDecimal("12,34") -> 12.34, nil
//	ParseDecimal("-5")    -> -5, nil
//	ParseDecimal("abc")   -> 0, ErrInvalidAmount
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	body := strings.TrimLeft(s, "+-")
	if body == "" || strings.Count(body, ".") > 1 || len(s)-len(body) > 1 {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, r := range body {
		if r != '.' && !unicode.IsDigit(r) {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	s = strings.TrimPrefix(s, "+")
	if strings.HasPrefix(body, ".") {
		s = strings.Replace(s, ".", "0.", 1)
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(s, "."))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseAmount is the lenient variant used for form input: anything that is
// not a number counts as zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseIncome parses income and clamps negatives to zero.
func ParseIncome(s string) decimal.Decimal {
	return ClampIncome(ParseAmount(s))
}

func ClampIncome(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FormatDollars formats an amount as "$1234.50" or "-$200.00".
func FormatDollars(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// FormatPercent formats a percentage with one decimal, e.g. "30.0%".
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}
