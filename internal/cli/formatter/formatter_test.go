package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/proyek/internal/app"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/invoice"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/alexanderramin/proyek/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

var today = testutil.Date(2026, time.October, 19)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"NAME", "AMOUNT"},
		[][]string{{"Aspal", "Rp 1.000"}, {"Persiapan Lahan", "Rp 25"}},
		1,
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "Aspal            Rp 1.000", lines[2])
	assert.Equal(t, "Persiapan Lahan     Rp 25", lines[3])
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderProgress_Clamps(t *testing.T) {
	assert.Contains(t, stripANSI(RenderProgress(150, 4)), "100%")
	assert.Contains(t, stripANSI(RenderProgress(-5, 4)), "  0%")
	assert.Equal(t, "[██░░]  50%", stripANSI(RenderProgress(50, 4)))
}

func TestDaysLeftLabel(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "Today"},
		{1, "Tomorrow"},
		{12, "In 12d"},
		{90, "In 3mo"},
		{-3, "3d late"},
		{-90, "3mo late"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysLeftLabel(tt.days))
	}
}

func TestFormatProjectList_UsesCodeAndMarksArchived(t *testing.T) {
	archived := today
	p := testutil.NewTestProject("Jalan Lingkar", testutil.WithCode("JLN01"))
	p.ArchivedAt = &archived

	out := stripANSI(FormatProjectList([]*domain.Project{p}, today))

	assert.Contains(t, out, "JLN01")
	assert.Contains(t, out, "(archived)")
	assert.Contains(t, out, "Rp 500.000.000")
}

func TestFormatProjectDetail_StagesAndBudget(t *testing.T) {
	done := testutil.NewTestStage("Persiapan", 40, testutil.WithStageStatus(domain.StageDone))
	late := testutil.NewTestStage("Aspal", 30, testutil.WithStageEnd(testutil.Date(2026, time.October, 1)),
		testutil.WithInvoice(testutil.Date(2026, time.September, 1), 150_000_000, domain.PaymentOverdue))
	p := testutil.NewTestProject("Jalan Lingkar",
		testutil.WithCode("JLN01"),
		testutil.WithEndDate(testutil.Date(2026, time.December, 31)),
		testutil.WithStages(done, late),
		testutil.WithBudgetLines(
			testutil.NewTestBudgetLine("Semen", 100, testutil.ForStage(done.ID), testutil.WithRealized(150)),
			testutil.NewTestBudgetLine("Sewa alat", 50),
		),
	)
	p.Progress = ledger.WeightedProgress(p.Stages)

	out := stripANSI(FormatProjectDetail(p, today))

	assert.Contains(t, out, "1  Persiapan")
	assert.Contains(t, out, "▲ Overdue")
	assert.Contains(t, out, "Overdue")
	assert.Contains(t, out, "Rp 150.000.000")
	assert.Contains(t, out, "(30.0% unallocated)")
	assert.Contains(t, out, "Unassigned")
	assert.Contains(t, out, "-Rp 50")
	assert.Contains(t, out, "● WARNING")
}

func TestFormatProjectDetail_SnapshotBadge(t *testing.T) {
	p := testutil.NewTestProject("Gudang")
	p.Synthetic = true

	out := stripANSI(FormatProjectDetail(p, today))

	assert.Contains(t, out, "[snapshot]")
	assert.Contains(t, out, "No stages yet.")
	assert.Contains(t, out, "No budget lines yet.")
}

func TestFormatStatus_SummaryAndWarnings(t *testing.T) {
	end := "2026-10-24"
	days := 5
	resp := &app.StatusResponse{
		Summary: app.StatusSummary{CountsTotal: 1, CountsCritical: 1},
		Projects: []app.ProjectStatusView{{
			ProjectCode:  "JLN01",
			ProjectName:  "Jalan Lingkar",
			Deadline:     domain.DeadlineCritical,
			EndDate:      &end,
			DaysLeft:     &days,
			ProgressPct:  40,
			FullyPlanned: false,
			Stages:       ledger.StageCounts{Total: 2, Done: 1, Overdue: 1},
			Budget:       ledger.BudgetTotals{Planned: 100, Realized: 150},
		}},
		Warnings: []string{"JLN01: stage weights leave 30.0% unallocated"},
	}

	out := stripANSI(FormatStatus(resp))

	assert.Contains(t, out, "● CRITICAL")
	assert.Contains(t, out, "In 5d")
	assert.Contains(t, out, "1/2 done 1 late")
	assert.Contains(t, out, "1 Critical")
	assert.Contains(t, out, "WARNING: JLN01: stage weights leave 30.0% unallocated")
}

func TestFormatReport_ProjectionMonths(t *testing.T) {
	d := testutil.Date(2026, time.March, 10)
	var months [12]invoice.MonthBucket
	for i := range months {
		months[i].Month = time.Month(i + 1)
	}
	months[2].Pending = 750_000_000
	resp := &app.ReportResponse{
		Kind: app.ReportProjection,
		Year: 2026,
		Rows: []invoice.Row{{
			ProjectName: "Jalan Lingkar", Client: "Dinas PUPR", JobType: "Jalan",
			StageName: "Termin 1", Date: &d, Amount: 750_000_000, Status: domain.PaymentPending,
		}},
		Totals: app.ReportTotals{Billed: 750_000_000, Pending: 750_000_000},
		Months: &months,
	}

	out := stripANSI(FormatReport(resp))

	assert.Contains(t, out, "PROJECTION 2026")
	assert.Contains(t, out, "Termin 1")
	assert.Contains(t, out, "2026-03-10")
	assert.Contains(t, out, "March")
	assert.NotContains(t, out, "January")
	assert.Contains(t, out, "Rp 750.000.000")
}

func TestFormatReport_Empty(t *testing.T) {
	out := stripANSI(FormatReport(&app.ReportResponse{Kind: app.ReportTracking}))
	assert.Contains(t, out, "No invoices match.")
}
