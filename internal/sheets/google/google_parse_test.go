package google

import (
	"testing"
	"time"

	"argentvault/internal/core"
	ports "argentvault/internal/sheets"
)

func TestFindRowByID(t *testing.T) {
	values := [][]any{
		{"ID"},
		{"1717171717171"},
		{},
		{float64(1717171717999)},
		{"not-a-number"},
	}
	tests := []struct {
		id   int64
		want int
	}{
		{1717171717171, 1},
		{1717171717999, 3},
		{42, -1},
	}
	for _, tt := range tests {
		if got := findRowByID(values, tt.id); got != tt.want {
			t.Errorf("findRowByID(%d) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestParseExportedRows(t *testing.T) {
	snap := core.SampleSnapshot(time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC))
	header := make([]any, len(ports.Header))
	for i, h := range ports.Header {
		header[i] = h
	}
	values := [][]any{
		header,
		ports.RowFor(snap).Values(),
		{},
		{"7", "2025-07-02T00:00:00Z", "100.00"},
	}

	rows := parseExportedRows(values)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(rows), rows)
	}
	if rows[0] != ports.RowFor(snap) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", rows[0], ports.RowFor(snap))
	}
	if rows[1].ID != 7 || rows[1].Income != "100.00" || rows[1].Expenses != "" {
		t.Fatalf("short row parsed wrong: %+v", rows[1])
	}
}

func TestRowRange(t *testing.T) {
	if got := rowRange("Budgets", 5); got != "Budgets!A5:G5" {
		t.Fatalf("rowRange = %q", got)
	}
}
