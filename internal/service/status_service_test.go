package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/proyek/internal/app"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusService_SortsByDeadlineSeverity(t *testing.T) {
	database, uow := setupDB(t)
	today := domain.DateOnly(time.Now().UTC())
	day := func(offset int) time.Time { return today.AddDate(0, 0, offset) }
	start := day(-60)

	seedProject(t, database, uow, testutil.NewTestProject("Safe Road",
		testutil.WithCode("SAF01"), testutil.WithStartDate(start)))
	seedProject(t, database, uow, testutil.NewTestProject("Critical Bridge",
		testutil.WithCode("CRT01"), testutil.WithStartDate(start), testutil.WithEndDate(day(5)),
		testutil.WithStages(testutil.NewTestStage("Gelagar", 100))))
	seedProject(t, database, uow, testutil.NewTestProject("Warning Dam",
		testutil.WithCode("WRN01"), testutil.WithStartDate(start), testutil.WithEndDate(day(30)),
		testutil.WithStages(
			testutil.NewTestStage("Kisdam", 30, testutil.WithStageEnd(day(-2))),
			testutil.NewTestStage("Galian", 30, testutil.WithStageEnd(day(-1))),
			testutil.NewTestStage("Pintu", 40, testutil.WithStageEnd(day(20))),
		)))
	seedProject(t, database, uow, testutil.NewTestProject("Overdue School",
		testutil.WithCode("OVD01"), testutil.WithStartDate(start), testutil.WithEndDate(day(-3)),
		testutil.WithStages(testutil.NewTestStage("Atap", 50))))

	svc := NewStatusService(database, nil)
	now := today.Add(10 * time.Hour)
	req := app.NewStatusRequest()
	req.Now = &now

	resp, err := svc.GetStatus(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Projects, 4)

	codes := make([]string, len(resp.Projects))
	for i, v := range resp.Projects {
		codes[i] = v.ProjectCode
	}
	assert.Equal(t, []string{"OVD01", "CRT01", "WRN01", "SAF01"}, codes)

	warning := resp.Projects[2]
	assert.Equal(t, domain.DeadlineWarning, warning.Deadline)
	assert.Equal(t, 2, warning.Stages.Overdue)
	require.NotNil(t, warning.DaysLeft)
	assert.Equal(t, 30, *warning.DaysLeft)
	assert.True(t, warning.FullyPlanned)

	assert.Equal(t, 4, resp.Summary.CountsTotal)
	assert.Equal(t, 1, resp.Summary.CountsOverdue)
	assert.Equal(t, 1, resp.Summary.CountsCritical)
	assert.Equal(t, 1, resp.Summary.CountsWarning)
	assert.Equal(t, 1, resp.Summary.CountsSafe)
	assert.Equal(t, domain.Money(4*500_000_000), resp.Summary.ContractTotal)

	assert.Contains(t, resp.Warnings, "OVD01: stage weights leave 50.0% unallocated")
}

func TestStatusService_InvoiceAndBudgetFigures(t *testing.T) {
	database, uow := setupDB(t)
	s1 := testutil.NewTestStage("Termin 1", 50,
		testutil.WithStageStatus(domain.StageDone),
		testutil.WithInvoice(testutil.Date(2026, 2, 1), 100, domain.PaymentPaid))
	s2 := testutil.NewTestStage("Termin 2", 50,
		testutil.WithInvoice(testutil.Date(2026, 3, 1), 80, domain.PaymentOverdue))
	seedProject(t, database, uow, testutil.NewTestProject("Saluran",
		testutil.WithCode("SLR01"),
		testutil.WithStages(s1, s2),
		testutil.WithBudgetLines(
			testutil.NewTestBudgetLine("Batu", 40, testutil.ForStage(s1.ID), testutil.WithRealized(55)),
			testutil.NewTestBudgetLine("Pasir", 10),
		)))

	resp, err := NewStatusService(database, nil).GetStatus(context.Background(), app.NewStatusRequest())
	require.NoError(t, err)
	require.Len(t, resp.Projects, 1)

	v := resp.Projects[0]
	assert.InDelta(t, 50, v.ProgressPct, 0.001)
	assert.Equal(t, domain.Money(180), v.InvoiceBilled)
	assert.Equal(t, domain.Money(100), v.InvoicePaid)
	assert.Equal(t, domain.Money(80), v.InvoiceOverdue)
	assert.Equal(t, domain.Money(50), v.Budget.Planned)
	assert.Equal(t, domain.Money(55), v.Budget.Realized)
	assert.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "SLR01: realized spending")
}

func TestStatusService_ScopeAndFinishedFilter(t *testing.T) {
	database, uow := setupDB(t)
	seedProject(t, database, uow, testutil.NewTestProject("Aktif", testutil.WithCode("AKT01")))
	seedProject(t, database, uow, testutil.NewTestProject("Selesai",
		testutil.WithCode("SLS01"), testutil.WithProjectStatus(domain.ProjectCompleted)))
	svc := NewStatusService(database, func() time.Time { return testutil.Date(2026, 10, 19) })
	ctx := context.Background()

	req := app.NewStatusRequest()
	req.IncludeFinished = false
	resp, err := svc.GetStatus(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, "AKT01", resp.Projects[0].ProjectCode)
	assert.Equal(t, testutil.Date(2026, 10, 19), resp.Summary.GeneratedAt)

	req = app.NewStatusRequest()
	req.ProjectScope = []string{"sls01"}
	resp, err = svc.GetStatus(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, "SLS01", resp.Projects[0].ProjectCode)

	req.ProjectScope = []string{"SLS01", "XYZ99"}
	_, err = svc.GetStatus(ctx, req)
	var serr *app.StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, app.StatusErrInvalidScope, serr.Code)
	assert.Contains(t, serr.Message, "XYZ99")
}
