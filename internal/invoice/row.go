// Package invoice derives reporting views from the invoice fields of project
// stages. Every function is pure: inputs are never modified and results are
// recomputed on each call.
package invoice

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
)

// Row is one stage invoice as seen by a report view.
type Row struct {
	ProjectID    string
	ProjectCode  string
	ProjectName  string
	Client       string
	JobType      string
	StageID      string
	StageNumber  int
	StageName    string
	Date         *time.Time // effective date for the view that produced the row
	InvoiceDate  *time.Time
	ExpectedDate *time.Time
	Amount       domain.Money
	Status       domain.PaymentStatus
}

type SortMode string

const (
	SortByDate    SortMode = "date"
	SortByJobType SortMode = "jenis"
	SortByStatus  SortMode = "status"
)

func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case SortByDate, SortByJobType, SortByStatus:
		return SortMode(s), nil
	case "":
		return SortByDate, nil
	}
	return "", fmt.Errorf("invalid sort mode %q (date|jenis|status)", s)
}

// dateRule picks the effective date of a stage.
type dateRule func(s domain.Stage) *time.Time

func realizedFirst(s domain.Stage) *time.Time {
	return domain.CoalesceDate(s.InvoiceDate, s.ExpectedInvoiceDate)
}

func projectedFirst(s domain.Stage) *time.Time {
	return domain.CoalesceDate(s.ExpectedInvoiceDate, s.InvoiceDate)
}

// collect walks projects in the given order and their stages in Number order,
// producing one row per stage that carries invoice data.
func collect(projects []domain.Project, effective dateRule) []Row {
	var rows []Row
	for _, p := range projects {
		stages := make([]domain.Stage, len(p.Stages))
		copy(stages, p.Stages)
		sort.SliceStable(stages, func(i, j int) bool { return stages[i].Number < stages[j].Number })

		for _, s := range stages {
			if !s.HasInvoiceData() {
				continue
			}
			rows = append(rows, Row{
				ProjectID:    p.ID,
				ProjectCode:  p.Code,
				ProjectName:  p.Name,
				Client:       p.Client,
				JobType:      p.JobType,
				StageID:      s.ID,
				StageNumber:  s.Number,
				StageName:    s.Name,
				Date:         effective(s),
				InvoiceDate:  s.InvoiceDate,
				ExpectedDate: s.ExpectedInvoiceDate,
				Amount:       domain.MoneyFromPtr(s.InvoiceAmount),
				Status:       s.EffectivePaymentStatus(),
			})
		}
	}
	return rows
}

// criteria is the shared exact-match filter. Zero values match everything.
// Rows without an effective date never match a year or month.
type criteria struct {
	year    int
	month   int
	jobType string
	status  domain.PaymentStatus
}

func (c criteria) match(r Row) bool {
	if c.year != 0 && (r.Date == nil || r.Date.Year() != c.year) {
		return false
	}
	if c.month != 0 && (r.Date == nil || int(r.Date.Month()) != c.month) {
		return false
	}
	if c.jobType != "" && r.JobType != c.jobType {
		return false
	}
	if c.status != "" && r.Status != c.status {
		return false
	}
	return true
}

func filterRows(rows []Row, c criteria) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if c.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// sortRows orders rows stably. Undated rows sort after dated ones.
func sortRows(rows []Row, mode SortMode) {
	switch mode {
	case SortByJobType:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].JobType < rows[j].JobType })
	case SortByStatus:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Status < rows[j].Status })
	default:
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i].Date, rows[j].Date
			if (a == nil) != (b == nil) {
				return a != nil
			}
			if a == nil {
				return false
			}
			return domain.DateOnly(*a).Before(domain.DateOnly(*b))
		})
	}
}

// Sum adds the amounts of rows.
func Sum(rows []Row) domain.Money {
	var total domain.Money
	for _, r := range rows {
		total += r.Amount
	}
	return total
}
