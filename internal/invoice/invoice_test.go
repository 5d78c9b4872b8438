package invoice

import (
	"testing"
	"time"

	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func money(v int64) *domain.Money {
	m := domain.Money(v)
	return &m
}

// fixture returns two projects whose stages cover every combination of
// invoice fields the views distinguish.
func fixture() []domain.Project {
	return []domain.Project{
		{
			ID: "p1", Name: "Jembatan Kali", Client: "Dinas PU", JobType: "jembatan",
			Stages: []domain.Stage{
				// Deliberately out of Number order.
				{ID: "p1s2", Number: 2, Name: "Termin 2", ExpectedInvoiceDate: date(2025, 3, 15), InvoiceAmount: money(200), PaymentStatus: domain.PaymentPending},
				{ID: "p1s1", Number: 1, Name: "Termin 1", InvoiceDate: date(2025, 1, 20), ExpectedInvoiceDate: date(2024, 12, 30), InvoiceAmount: money(100), PaymentStatus: domain.PaymentPaid},
				{ID: "p1s3", Number: 3, Name: "Retensi", InvoiceAmount: money(50)},
				{ID: "p1s4", Number: 4, Name: "Tanpa invoice"},
			},
		},
		{
			ID: "p2", Name: "Gedung Sekolah", Client: "Yayasan", JobType: "gedung",
			Stages: []domain.Stage{
				{ID: "p2s1", Number: 1, Name: "DP", InvoiceDate: date(2025, 3, 1), InvoiceAmount: money(400), PaymentStatus: domain.PaymentOverdue},
				{ID: "p2s2", Number: 2, Name: "Termin 1", ExpectedInvoiceDate: date(2025, 1, 20), PaymentStatus: domain.PaymentPending},
				{ID: "p2s3", Number: 3, Name: "Termin 2", ExpectedInvoiceDate: date(2026, 2, 1), InvoiceAmount: money(999)},
			},
		},
	}
}

func stageIDs(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.StageID
	}
	return out
}

func TestTracking_IncludesOnlyStagesWithInvoiceData(t *testing.T) {
	rows := Tracking(fixture(), TrackingFilter{Sort: SortByJobType})
	assert.NotContains(t, stageIDs(rows), "p1s4")
	assert.Len(t, rows, 6)
}

func TestTracking_DefaultSortByEffectiveDate(t *testing.T) {
	rows := Tracking(fixture(), TrackingFilter{})

	// p1s1 is dated by its invoice date (Jan 20) not its expected date (Dec 30).
	// p1s1 and p2s2 tie on Jan 20 and keep source order. Undated p1s3 is last.
	assert.Equal(t, []string{"p1s1", "p2s2", "p2s1", "p1s2", "p2s3", "p1s3"}, stageIDs(rows))
	assert.Equal(t, "2025-01-20", domain.FormatDate(rows[0].Date))
}

func TestTracking_DefaultsAmountAndStatus(t *testing.T) {
	rows := Tracking(fixture(), TrackingFilter{})
	byID := map[string]Row{}
	for _, r := range rows {
		byID[r.StageID] = r
	}
	assert.Equal(t, domain.Money(0), byID["p2s2"].Amount)
	assert.Equal(t, domain.PaymentPending, byID["p1s3"].Status)
	assert.Equal(t, domain.PaymentPending, byID["p2s3"].Status)
}

func TestTracking_Filters(t *testing.T) {
	tests := []struct {
		name string
		f    TrackingFilter
		want []string
	}{
		{"year", TrackingFilter{Year: 2025}, []string{"p1s1", "p2s2", "p2s1", "p1s2"}},
		{"year and month", TrackingFilter{Year: 2025, Month: 3}, []string{"p2s1", "p1s2"}},
		{"month only", TrackingFilter{Month: 1}, []string{"p1s1", "p2s2"}},
		{"job type", TrackingFilter{JobType: "gedung"}, []string{"p2s2", "p2s1", "p2s3"}},
		{"status pending includes defaulted", TrackingFilter{Status: domain.PaymentPending}, []string{"p2s2", "p1s2", "p2s3", "p1s3"}},
		{"status overdue", TrackingFilter{Status: domain.PaymentOverdue}, []string{"p2s1"}},
		{"no match", TrackingFilter{Year: 2030}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stageIDs(Tracking(fixture(), tt.f)))
		})
	}
}

func TestTracking_SortModesAreStable(t *testing.T) {
	byJob := Tracking(fixture(), TrackingFilter{Sort: SortByJobType})
	// gedung < jembatan; within each job type source order is kept.
	assert.Equal(t, []string{"p2s1", "p2s2", "p2s3", "p1s1", "p1s2", "p1s3"}, stageIDs(byJob))

	byStatus := Tracking(fixture(), TrackingFilter{Sort: SortByStatus})
	// lunas < overdue < pending
	assert.Equal(t, []string{"p1s1", "p2s1", "p1s2", "p1s3", "p2s2", "p2s3"}, stageIDs(byStatus))
}

func TestTracking_DoesNotMutateInput(t *testing.T) {
	projects := fixture()
	_ = Tracking(projects, TrackingFilter{Sort: SortByStatus})
	assert.Equal(t, "p1s2", projects[0].Stages[0].ID)
}

func TestProject_UsesExpectedDateFirst(t *testing.T) {
	proj := Project(fixture(), 2025, ProjectionFilter{})

	// p1s1 is dated Dec 30 2024 by its expected date and falls out of 2025.
	assert.Equal(t, []string{"p2s2", "p2s1", "p1s2"}, stageIDs(proj.Rows))

	assert.Equal(t, domain.Money(0), proj.Months[0].Total())
	assert.Equal(t, domain.Money(400), proj.Months[2].Overdue)
	assert.Equal(t, domain.Money(200), proj.Months[2].Pending)
	assert.Equal(t, time.March, proj.Months[2].Month)
	assert.Equal(t, domain.Money(600), proj.Totals.Total())
}

func TestProject_PaidBucketAndFilters(t *testing.T) {
	proj := Project(fixture(), 2024, ProjectionFilter{})
	require.Len(t, proj.Rows, 1)
	assert.Equal(t, domain.Money(100), proj.Months[11].Paid)

	gedung := Project(fixture(), 2025, ProjectionFilter{JobType: "gedung", Status: domain.PaymentOverdue})
	assert.Equal(t, []string{"p2s1"}, stageIDs(gedung.Rows))
}

func TestProject_Idempotent(t *testing.T) {
	projects := fixture()
	a := Project(projects, 2025, ProjectionFilter{})
	b := Project(projects, 2025, ProjectionFilter{})
	assert.Equal(t, a.Months, b.Months)
	assert.Equal(t, a.Totals, b.Totals)
}

func TestBuildRecap_ExcludesPaid(t *testing.T) {
	projects := fixture()
	// Paid stage dated in 2025 by its invoice date.
	rec := BuildRecap(projects, 2025, RecapFilter{})

	for _, r := range rec.Rows {
		assert.NotEqual(t, domain.PaymentPaid, r.Status)
	}
	assert.Equal(t, []string{"p2s2", "p2s1", "p1s2"}, stageIDs(rec.Rows))
	assert.Equal(t, domain.Money(600), rec.TotalBilled)
	assert.Equal(t, domain.Money(0), rec.TotalPaid)
	assert.Equal(t, domain.Money(200), rec.TotalPending)
	assert.Equal(t, domain.Money(400), rec.TotalOverdue)
}

func TestBuildRecap_MonthAndJobType(t *testing.T) {
	rec := BuildRecap(fixture(), 2025, RecapFilter{Month: 3, JobType: "jembatan"})
	assert.Equal(t, []string{"p1s2"}, stageIDs(rec.Rows))
	assert.Equal(t, domain.Money(200), rec.TotalBilled)
}

func TestExportRows_Shape(t *testing.T) {
	rows := ExportRows(Tracking(fixture(), TrackingFilter{Year: 2025, Month: 3}))
	require.Len(t, rows, 2)

	assert.Equal(t, ExportRow{
		No: 1, Proyek: "Gedung Sekolah", Klien: "Yayasan", Jenis: "gedung",
		Invoice: "DP", Tanggal: "2025-03-01", Status: "OVERDUE", Jumlah: 400,
	}, rows[0])
	assert.Equal(t, []string{"2", "Jembatan Kali", "Dinas PU", "jembatan", "Termin 2", "2025-03-15", "PENDING", "200"}, rows[1].Record())

	recs := Records(rows)
	assert.Equal(t, Header, recs[0])
	assert.Len(t, recs, 3)
}

func TestExportRows_UndatedRowHasEmptyDate(t *testing.T) {
	rows := ExportRows(Tracking(fixture(), TrackingFilter{JobType: "jembatan"}))
	last := rows[len(rows)-1]
	assert.Equal(t, "Retensi", last.Invoice)
	assert.Equal(t, "", last.Tanggal)
}

func TestExport_RoundTripTotals(t *testing.T) {
	filters := []TrackingFilter{
		{},
		{Year: 2025},
		{JobType: "gedung", Sort: SortByStatus},
		{Status: domain.PaymentPending, Sort: SortByJobType},
	}
	for _, f := range filters {
		rows := Tracking(fixture(), f)

		var direct domain.Money
		for _, p := range fixture() {
			for _, s := range p.Stages {
				r := Row{JobType: p.JobType, Status: s.EffectivePaymentStatus(), Date: realizedFirst(s)}
				if s.HasInvoiceData() && (criteria{year: f.Year, month: f.Month, jobType: f.JobType, status: f.Status}).match(r) {
					direct += domain.MoneyFromPtr(s.InvoiceAmount)
				}
			}
		}

		assert.Equal(t, direct, SumExport(ExportRows(rows)), "filter %+v", f)
		assert.Equal(t, Sum(rows), SumExport(ExportRows(rows)))
	}
}

func TestParseSortMode(t *testing.T) {
	m, err := ParseSortMode("")
	require.NoError(t, err)
	assert.Equal(t, SortByDate, m)

	_, err = ParseSortMode("amount")
	assert.Error(t, err)
}
