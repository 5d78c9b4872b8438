package invoice

import (
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
)

type ProjectionFilter struct {
	JobType string
	Status  domain.PaymentStatus
}

// MonthBucket holds one month of projected income split by payment status.
type MonthBucket struct {
	Month   time.Month
	Paid    domain.Money
	Pending domain.Money
	Overdue domain.Money
}

func (b MonthBucket) Total() domain.Money {
	return b.Paid + b.Pending + b.Overdue
}

func (b *MonthBucket) add(r Row) {
	switch r.Status {
	case domain.PaymentPaid:
		b.Paid += r.Amount
	case domain.PaymentOverdue:
		b.Overdue += r.Amount
	default:
		b.Pending += r.Amount
	}
}

type Projection struct {
	Year   int
	Rows   []Row
	Months [12]MonthBucket
	Totals MonthBucket
}

// Project builds the yearly income projection. Stages are dated by their
// expected invoice date, falling back to the realized date, and only those
// falling in year are kept.
func Project(projects []domain.Project, year int, f ProjectionFilter) Projection {
	rows := filterRows(collect(projects, projectedFirst), criteria{
		year:    year,
		jobType: f.JobType,
		status:  f.Status,
	})
	sortRows(rows, SortByDate)

	out := Projection{Year: year, Rows: rows}
	for i := range out.Months {
		out.Months[i].Month = time.Month(i + 1)
	}
	for _, r := range rows {
		if r.Date == nil {
			continue
		}
		out.Months[r.Date.Month()-1].add(r)
		out.Totals.add(r)
	}
	return out
}
