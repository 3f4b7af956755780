package google

import (
	"fmt"
	"strconv"
	"strings"

	ports "argentvault/internal/sheets"
)

// rowRange addresses columns A..G of a 1-based sheet row.
func rowRange(sheet string, row int) string {
	return fmt.Sprintf("%s!A%d:G%d", sheet, row, row)
}

// findRowByID returns the 0-based index of the first row whose column A
// holds id, or -1.
func findRowByID(values [][]any, id int64) int {
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		if got, ok := parseID(row[0]); ok && got == id {
			return i
		}
	}
	return -1
}

// parseExportedRows converts a values matrix into rows, skipping the
// header, cleared rows and anything without a numeric id.
func parseExportedRows(values [][]any) []ports.ExportedRow {
	var out []ports.ExportedRow
	for _, raw := range values {
		if len(raw) == 0 {
			continue
		}
		id, ok := parseID(raw[0])
		if !ok {
			continue
		}
		cols := toStrings(raw)
		out = append(out, ports.ExportedRow{
			ID:          id,
			Created:     safeGet(cols, 1),
			Income:      safeGet(cols, 2),
			Total:       safeGet(cols, 3),
			Remaining:   safeGet(cols, 4),
			SavingsRate: safeGet(cols, 5),
			Expenses:    safeGet(cols, 6),
		})
	}
	return out
}

// parseID accepts ids rendered as integers or, after a USER_ENTERED
// round trip, as floats.
func parseID(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n <= 0 || n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, n > 0
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
