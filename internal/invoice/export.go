package invoice

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/proyek/internal/domain"
)

// Header is the column set of every exported report.
var Header = []string{"No", "Proyek", "Klien", "Jenis", "Invoice", "Tanggal", "Status", "Jumlah"}

// ExportRow is the flat spreadsheet shape of a Row.
type ExportRow struct {
	No      int          `json:"no"`
	Proyek  string       `json:"proyek"`
	Klien   string       `json:"klien"`
	Jenis   string       `json:"jenis"`
	Invoice string       `json:"invoice"`
	Tanggal string       `json:"tanggal"`
	Status  string       `json:"status"`
	Jumlah  domain.Money `json:"jumlah"`
}

// ExportRows numbers rows from 1 in their current order.
func ExportRows(rows []Row) []ExportRow {
	out := make([]ExportRow, len(rows))
	for i, r := range rows {
		out[i] = ExportRow{
			No:      i + 1,
			Proyek:  r.ProjectName,
			Klien:   r.Client,
			Jenis:   r.JobType,
			Invoice: r.StageName,
			Tanggal: domain.FormatDate(r.Date),
			Status:  strings.ToUpper(string(r.Status)),
			Jumlah:  r.Amount,
		}
	}
	return out
}

// Record returns the row as spreadsheet cells in Header order. Jumlah is the
// plain integer amount.
func (e ExportRow) Record() []string {
	return []string{
		strconv.Itoa(e.No),
		e.Proyek,
		e.Klien,
		e.Jenis,
		e.Invoice,
		e.Tanggal,
		e.Status,
		strconv.FormatInt(int64(e.Jumlah), 10),
	}
}

// Records returns Header followed by one record per row.
func Records(rows []ExportRow) [][]string {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, append([]string(nil), Header...))
	for _, r := range rows {
		out = append(out, r.Record())
	}
	return out
}

// SumExport re-derives the amount total from exported rows.
func SumExport(rows []ExportRow) domain.Money {
	var total domain.Money
	for _, r := range rows {
		total += r.Jumlah
	}
	return total
}
