// Package export renders invoice reports as CSV, JSON or Google Sheets values.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/proyek/internal/app"
	"github.com/alexanderramin/proyek/internal/contract"
	"github.com/alexanderramin/proyek/internal/invoice"
)

type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatCSV, FormatJSON:
		return Format(s), nil
	case "":
		return FormatTable, nil
	}
	return "", fmt.Errorf("invalid format %q (table|csv|json)", s)
}

// WriteCSV writes the header and one record per row in report order.
func WriteCSV(w io.Writer, rows []invoice.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(invoice.Records(invoice.ExportRows(rows))); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// WriteJSON writes the report in its API shape.
func WriteJSON(w io.Writer, resp *app.ReportResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(contract.NewReportDTO(resp)); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}
	return nil
}

// SheetValues returns the report as a spreadsheet grid: the header, one line
// per row with a numeric Jumlah, and a closing total line.
func SheetValues(rows []invoice.Row) [][]any {
	exported := invoice.ExportRows(rows)
	out := make([][]any, 0, len(exported)+2)

	header := make([]any, len(invoice.Header))
	for i, h := range invoice.Header {
		header[i] = h
	}
	out = append(out, header)

	for _, r := range exported {
		out = append(out, []any{r.No, r.Proyek, r.Klien, r.Jenis, r.Invoice, r.Tanggal, r.Status, int64(r.Jumlah)})
	}
	out = append(out, []any{"", "", "", "", "", "", "TOTAL", int64(invoice.SumExport(exported))})
	return out
}
