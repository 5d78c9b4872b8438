package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/proyek/internal/app"
	"github.com/alexanderramin/proyek/internal/invoice"
)

// FormatReport renders an invoice report as a table. Projection reports get
// a month-by-month breakdown under the rows.
func FormatReport(resp *app.ReportResponse) string {
	var b strings.Builder

	title := string(resp.Kind)
	if resp.Year > 0 {
		title = fmt.Sprintf("%s %d", resp.Kind, resp.Year)
	}

	if len(resp.Rows) == 0 {
		b.WriteString(Dim("No invoices match.") + "\n")
	} else {
		b.WriteString(FormatInvoiceRows(resp.Rows))
	}

	if resp.Months != nil {
		b.WriteString("\n" + Header("Per month") + "\n")
		b.WriteString(formatMonths(resp.Months))
	}

	t := resp.Totals
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s   %s %s\n",
		Dim("Billed"), Bold(t.Billed.String()),
		Dim("Lunas"), StyleGreen.Render(t.Paid.String()),
		Dim("Pending"), StyleYellow.Render(t.Pending.String()),
		Dim("Overdue"), StyleRed.Render(t.Overdue.String()),
	))

	return RenderBox(title, b.String())
}

// FormatInvoiceRows renders report rows in the export column layout.
func FormatInvoiceRows(rows []invoice.Row) string {
	export := invoice.ExportRows(rows)
	out := make([][]string, 0, len(export))
	for i, e := range export {
		out = append(out, []string{
			fmt.Sprintf("%d", e.No),
			e.Proyek,
			e.Klien,
			e.Jenis,
			e.Invoice,
			e.Tanggal,
			PaymentPill(rows[i].Status),
			rows[i].Amount.String(),
		})
	}
	headers := make([]string, len(invoice.Header))
	for i, h := range invoice.Header {
		headers[i] = strings.ToUpper(h)
	}
	return RenderTable(headers, out, 0, 7)
}

func formatMonths(months *[12]invoice.MonthBucket) string {
	rows := make([][]string, 0, 12)
	for _, m := range months {
		if m.Total() == 0 {
			continue
		}
		rows = append(rows, []string{
			m.Month.String(),
			m.Paid.String(),
			m.Pending.String(),
			m.Overdue.String(),
			Bold(m.Total().String()),
		})
	}
	if len(rows) == 0 {
		return Dim("No projected income.") + "\n"
	}
	return RenderTable([]string{"MONTH", "LUNAS", "PENDING", "OVERDUE", "TOTAL"}, rows, 1, 2, 3, 4)
}
