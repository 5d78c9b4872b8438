package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/proyek/internal/config"
	"github.com/alexanderramin/proyek/internal/invoice"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// ValuesClient is the slice of the Sheets values API the exporter needs.
type ValuesClient interface {
	Clear(ctx context.Context, spreadsheetID, rangeA1 string) error
	Update(ctx context.Context, spreadsheetID, rangeA1 string, values [][]any) error
}

// SheetsExporter replaces the contents of one tab with a report.
type SheetsExporter struct {
	values        ValuesClient
	spreadsheetID string
	sheet         string
}

func NewSheetsExporter(values ValuesClient, spreadsheetID, sheet string) *SheetsExporter {
	return &SheetsExporter{values: values, spreadsheetID: spreadsheetID, sheet: sheet}
}

// NewGoogleSheetsExporter authenticates with service account credentials
// from cfg.
func NewGoogleSheetsExporter(ctx context.Context, cfg config.SheetsConfig) (*SheetsExporter, error) {
	if !cfg.Enabled() {
		return nil, errors.New("sheets export is not configured (set PROYEK_SHEETS_SPREADSHEET_ID)")
	}

	credentialsJSON := []byte(cfg.CredentialsJSON)
	if len(credentialsJSON) == 0 {
		var err error
		credentialsJSON, err = os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	slog.DebugContext(ctx, "sheets_service_created", "spreadsheet", cfg.SpreadsheetID, "sheet", cfg.SheetName)
	return NewSheetsExporter(&googleValues{svc: svc}, cfg.SpreadsheetID, cfg.SheetName), nil
}

// Export clears the tab and writes rows from A1. It returns the written range.
func (e *SheetsExporter) Export(ctx context.Context, rows []invoice.Row) (string, error) {
	if err := e.values.Clear(ctx, e.spreadsheetID, fmt.Sprintf("'%s'!A:H", e.sheet)); err != nil {
		return "", fmt.Errorf("clearing sheet %q: %w", e.sheet, err)
	}
	values := SheetValues(rows)
	rng := fmt.Sprintf("'%s'!A1:H%d", e.sheet, len(values))
	if err := e.values.Update(ctx, e.spreadsheetID, rng, values); err != nil {
		return "", fmt.Errorf("writing sheet %q: %w", e.sheet, err)
	}
	return rng, nil
}

type googleValues struct {
	svc *gsheet.Service
}

func (g *googleValues) Clear(ctx context.Context, spreadsheetID, rangeA1 string) error {
	_, err := g.svc.Spreadsheets.Values.Clear(spreadsheetID, rangeA1, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	return err
}

func (g *googleValues) Update(ctx context.Context, spreadsheetID, rangeA1 string, values [][]any) error {
	vr := &gsheet.ValueRange{Values: values}
	_, err := g.svc.Spreadsheets.Values.Update(spreadsheetID, rangeA1, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	return err
}
