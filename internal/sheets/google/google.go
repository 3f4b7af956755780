package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"argentvault/internal/core"
	ports "argentvault/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client mirrors saved budgets into one tab of a spreadsheet, one row per
// budget keyed by the id in column A.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var (
	_ ports.SnapshotExporter = (*Client)(nil)
	_ ports.SnapshotLister   = (*Client)(nil)
)

// Options selects the spreadsheet and the service account used to reach it.
// ServiceAccountJSON wins over ServiceAccountFile.
type Options struct {
	SpreadsheetID      string
	SheetName          string
	ServiceAccountFile string
	ServiceAccountJSON string
}

func New(ctx context.Context, opts Options) (*Client, error) {
	id := strings.TrimSpace(opts.SpreadsheetID)
	if id == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheet := strings.TrimSpace(opts.SheetName)
	if sheet == "" {
		sheet = "Budgets"
	}

	svc, err := newSheetsService(ctx, opts.ServiceAccountFile, opts.ServiceAccountJSON)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: id, sheetName: sheet}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, file, inline string) (*gsheet.Service, error) {
	file, inline = strings.TrimSpace(file), strings.TrimSpace(inline)

	var credentialsJSON []byte
	switch {
	case inline != "":
		slog.InfoContext(ctx, "Using inline JSON credentials", "json_length", len(inline))
		credentialsJSON = []byte(inline)
	case file != "":
		slog.InfoContext(ctx, "Reading credentials from file", "path", file)
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	slog.InfoContext(ctx, "Google Sheets service created", "scope", gsheet.SpreadsheetsScope)
	return service, nil
}

// ExportSnapshot writes the snapshot row, overwriting an existing row with
// the same id or appending a new one.
func (c *Client) ExportSnapshot(ctx context.Context, s core.BudgetSnapshot) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	if s.ID == 0 {
		return "", errors.New("export snapshot: missing id")
	}

	ids, err := c.idColumn(ctx)
	if err != nil {
		return "", err
	}

	row := [][]any{ports.RowFor(s).Values()}
	if idx := findRowByID(ids, s.ID); idx >= 0 {
		rng := rowRange(c.sheetName, idx+1)
		_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheet.ValueRange{Values: row}).
			ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("update %s: %w", rng, err)
		}
		return rng, nil
	}

	if len(ids) == 0 {
		if err := c.writeHeader(ctx); err != nil {
			return "", err
		}
	}
	rng := fmt.Sprintf("%s!A:G", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, &gsheet.ValueRange{Values: row}).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to %s: %w", c.sheetName, err)
	}
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		return resp.Updates.UpdatedRange, nil
	}
	return rng, nil
}

// RemoveSnapshot clears the row holding id. Unknown ids are ignored.
func (c *Client) RemoveSnapshot(ctx context.Context, id int64) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	ids, err := c.idColumn(ctx)
	if err != nil {
		return err
	}
	idx := findRowByID(ids, id)
	if idx < 0 {
		slog.InfoContext(ctx, "Budget not present in sheet", "budget_id", id, "sheet", c.sheetName)
		return nil
	}
	rng := rowRange(c.sheetName, idx+1)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}
	return nil
}

func (c *Client) ListExported(ctx context.Context) ([]ports.ExportedRow, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:G", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return parseExportedRows(resp.Values), nil
}

func (c *Client) idColumn(ctx context.Context) ([][]any, error) {
	rng := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

func (c *Client) writeHeader(ctx context.Context) error {
	header := make([]any, len(ports.Header))
	for i, h := range ports.Header {
		header[i] = h
	}
	rng := rowRange(c.sheetName, 1)
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheet.ValueRange{Values: [][]any{header}}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header to %s: %w", c.sheetName, err)
	}
	return nil
}
