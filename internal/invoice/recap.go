package invoice

import "github.com/alexanderramin/proyek/internal/domain"

type RecapFilter struct {
	Month   int
	JobType string
}

// Recap is the outstanding-billing view. TotalPaid is always zero because
// paid stages are excluded.
type Recap struct {
	Year         int
	Rows         []Row
	TotalBilled  domain.Money
	TotalPaid    domain.Money
	TotalPending domain.Money
	TotalOverdue domain.Money
}

// BuildRecap lists unpaid stage invoices of year, dated by realized invoice
// date falling back to the expected date.
func BuildRecap(projects []domain.Project, year int, f RecapFilter) Recap {
	all := filterRows(collect(projects, realizedFirst), criteria{
		year:    year,
		month:   f.Month,
		jobType: f.JobType,
	})

	out := Recap{Year: year, Rows: make([]Row, 0, len(all))}
	for _, r := range all {
		if r.Status == domain.PaymentPaid {
			continue
		}
		out.Rows = append(out.Rows, r)
		out.TotalBilled += r.Amount
		switch r.Status {
		case domain.PaymentOverdue:
			out.TotalOverdue += r.Amount
		default:
			out.TotalPending += r.Amount
		}
	}
	sortRows(out.Rows, SortByDate)
	return out
}
