package report

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"google.golang.org/api/sheets/v4"

	"github.com/oncallops/groupwatch/internal/change"
)

// SheetsReporter appends run results as rows to a Google Sheet, one tab per
// record kind. Missing tabs and header rows are created on first use.
type SheetsReporter struct {
	svc           *sheets.Service
	spreadsheetID string

	mu      sync.Mutex
	ensured map[string]bool
}

var tabCaser = cases.Title(language.English)

func NewSheetsReporter(svc *sheets.Service, spreadsheetID string) *SheetsReporter {
	return &SheetsReporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		ensured:       make(map[string]bool),
	}
}

func (r *SheetsReporter) ReportChanges(ctx context.Context, run RunInfo, changes []change.Change) error {
	return r.appendRows(ctx, "changes", changeHeader, buildChangeRows(run, changes))
}

func (r *SheetsReporter) ReportViolations(ctx context.Context, run RunInfo, violations []GroupViolations) error {
	return r.appendRows(ctx, "violations", violationHeader, buildViolationRows(run, violations))
}

func (r *SheetsReporter) ReportEvent(ctx context.Context, event Event) error {
	return r.appendRows(ctx, "events", eventHeader, [][]any{buildEventRow(event)})
}

func (r *SheetsReporter) appendRows(ctx context.Context, tab string, header []any, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	title := tabCaser.String(tab)
	if err := r.ensureTab(ctx, title, header); err != nil {
		return err
	}

	values := &sheets.ValueRange{Values: rows}
	_, err := r.svc.Spreadsheets.Values.
		Append(r.spreadsheetID, title+"!A1", values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", title, err)
	}
	return nil
}

// ensureTab creates the tab and writes the header row if either is missing.
// Checked once per tab per process.
func (r *SheetsReporter) ensureTab(ctx context.Context, title string, header []any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ensured[title] {
		return nil
	}

	doc, err := r.svc.Spreadsheets.Get(r.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	exists := false
	for _, sheet := range doc.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			exists = true
			break
		}
	}

	if !exists {
		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: title},
				},
			}},
		}
		if _, err := r.svc.Spreadsheets.BatchUpdate(r.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("failed to create tab %s: %w", title, err)
		}
	}

	head, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, title+"!1:1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read header of %s: %w", title, err)
	}
	if len(head.Values) == 0 {
		headerRange := &sheets.ValueRange{Values: [][]any{header}}
		_, err := r.svc.Spreadsheets.Values.
			Update(r.spreadsheetID, title+"!A1", headerRange).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write header of %s: %w", title, err)
		}
	}

	r.ensured[title] = true
	return nil
}
