package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/proyek/internal/contract"
	"github.com/alexanderramin/proyek/internal/domain"
	"github.com/alexanderramin/proyek/internal/invoice"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/alexanderramin/proyek/internal/repository"
	"github.com/alexanderramin/proyek/internal/service"
	"github.com/alexanderramin/proyek/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmdToday = testutil.Date(2026, time.October, 19)

func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clock := func() time.Time { return cmdToday }
	return &App{
		Projects:  service.NewProjectService(database, uow, ledger.OrphanDetach),
		Ledger:    service.NewLedgerService(uow, ledger.OrphanDetach),
		Status:    service.NewStatusService(database, clock),
		Reports:   service.NewReportService(database),
		Import:    service.NewImportService(uow),
		Snapshots: service.NewSnapshotService(database),
		Orphans:   ledger.OrphanDetach,
		Clock:     clock,
	}
}

// executeCmd runs the root command with args and returns what it printed.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stripANSI(buf.String()), err
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEsc = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// seedJalan stores JLN01: a fully allocated road project with one paid
// invoice and one expected invoice.
func seedJalan(t *testing.T, app *App) *domain.Project {
	t.Helper()
	prep := testutil.NewTestStage("Persiapan", 40,
		testutil.WithStageStatus(domain.StageDone),
		testutil.WithInvoice(testutil.Date(2026, time.March, 10), 500_000_000, domain.PaymentPaid))
	paving := testutil.NewTestStage("Pengaspalan", 60,
		testutil.WithExpectedInvoice(testutil.Date(2026, time.November, 15), 750_000_000))
	p := testutil.NewTestProject("Jalan Lingkar",
		testutil.WithCode("JLN01"),
		testutil.WithContractValue(1_250_000_000),
		testutil.WithStartDate(testutil.Date(2026, time.February, 1)),
		testutil.WithEndDate(testutil.Date(2026, time.December, 31)),
		testutil.WithStages(prep, paving),
		testutil.WithBudgetLines(
			testutil.NewTestBudgetLine("Aspal hotmix", 400_000_000,
				testutil.ForStage(paving.ID), testutil.WithRealized(150_000_000)),
		),
	)
	require.NoError(t, app.Projects.Create(context.Background(), p))
	return p
}

func reload(t *testing.T, app *App, ref string) *domain.Project {
	t.Helper()
	p, err := app.Projects.Get(context.Background(), ref)
	require.NoError(t, err)
	return p
}

func TestProjectCreate_ListAndShow(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "create",
		"--code", "jln02", "--name", "Jalan Desa", "--client", "Dinas PUPR", "--jenis", "Jalan",
		"--value", "Rp 1.250.000.000", "--start", "2026-02-01", "--end", "2026-12-31")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Jalan Desa [JLN02]")

	p := reload(t, app, "JLN02")
	assert.Equal(t, domain.Money(1_250_000_000), p.ContractValue)
	assert.Equal(t, domain.ProjectPreparation, p.Status)
	assert.Equal(t, domain.SourceNonTender, p.Tender.Source)

	out, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "JLN02")
	assert.Contains(t, out, "Rp 1.250.000.000")

	out, err = executeCmd(t, app, "project", "show", "jln02")
	require.NoError(t, err)
	assert.Contains(t, out, "Jalan Desa")
	assert.Contains(t, out, "No stages yet.")
}

func TestProjectCreate_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "create", "--code", "JLN02", "--name", "Jalan Desa")
	assert.EqualError(t, err, "--start is required")

	_, err = executeCmd(t, app, "project", "create", "--code", "J1", "--name", "Jalan Desa", "--start", "2026-02-01")
	assert.ErrorContains(t, err, "must be 3-6 uppercase letters")

	_, err = executeCmd(t, app, "project", "create", "--code", "JLN02", "--start", "2026-02-01")
	assert.True(t, ledger.IsValidation(err))

	_, err = executeCmd(t, app, "project", "create", "--code", "JLN02", "--name", "X", "--start", "2026-02-31")
	assert.ErrorContains(t, err, "invalid date")

	_, err = executeCmd(t, app, "project", "create", "--code", "JLN02", "--name", "X", "--start", "2026-02-01", "--value", "-5")
	assert.ErrorContains(t, err, "amount cannot be negative")
}

func TestProjectUpdate_ChangesOnlyGivenFields(t *testing.T) {
	app := testApp(t)
	seedJalan(t, app)

	out, err := executeCmd(t, app, "project", "update", "JLN01", "--status", "selesai", "--end", "2027-01-31")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated project Jalan Lingkar [JLN01]")

	p := reload(t, app, "JLN01")
	assert.Equal(t, domain.ProjectCompleted, p.Status)
	require.NotNil(t, p.EndDate)
	assert.Equal(t, "2027-01-31", domain.FormatDate(p.EndDate))
	assert.Equal(t, "Jalan Lingkar", p.Name)
	assert.Equal(t, domain.Money(1_250_000_000), p.ContractValue)
	assert.Len(t, p.Stages, 2)
	assert.Len(t, p.BudgetLines, 1)
}

func TestProjectArchiveAndDelete(t *testing.T) {
	app := testApp(t)
	seedJalan(t, app)

	_, err := executeCmd(t, app, "project", "delete", "JLN01")
	assert.ErrorIs(t, err, service.ErrNotArchived)

	out, err := executeCmd(t, app, "project", "archive", "JLN01")
	require.NoError(t, err)
	assert.Contains(t, out, "Archived project JLN01")

	out, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects found.")

	out, err = executeCmd(t, app, "project", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "(archived)")

	out, err = executeCmd(t, app, "project", "delete", "JLN01")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted project JLN01")

	_, err = executeCmd(t, app, "project", "show", "JLN01")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectShow_JSON(t *testing.T) {
	app := testApp(t)
	seedJalan(t, app)

	out, err := executeCmd(t, app, "project", "show", "JLN01", "--json")
	require.NoError(t, err)

	var dto contract.ProjectDTO
	require.NoError(t, json.Unmarshal([]byte(out), &dto))
	assert.Equal(t, "JLN01", dto.Code)
	assert.Len(t, dto.Stages, 2)
	assert.InDelta(t, 40, dto.Progress, 0.001)
}

func TestProjectSnapshot(t *testing.T) {
	app := testApp(t)
	seedJalan(t, app)
	done := testutil.NewTestProject("Gedung Serbaguna",
		testutil.WithCode("GDG01"),
		testutil.WithProjectStatus(domain.ProjectHandedOver),
		testutil.WithStartDate(testutil.Date(2025, time.January, 10)),
		testutil.WithEndDate(testutil.Date(2025, time.June, 30)),
	)
	require.NoError(t, app.Projects.Create(context.Background(), done))

	out, err := executeCmd(t, app, "project", "snapshot", "GDG01")
	require.NoError(t, err)
	assert.Contains(t, out, "[snapshot]")
	assert.Contains(t, out, "Gedung Serbaguna")

	// Snapshots are never stored.
	assert.Empty(t, reload(t, app, "GDG01").Stages)

	_, err = executeCmd(t, app, "project", "snapshot", "JLN01")
	assert.ErrorIs(t, err, service.ErrNotEligible)
}

func TestStageAdd(t *testing.T) {
	app := testApp(t)
	p := testutil.NewTestProject("Gedung Kantor", testutil.WithCode("GDK01"))
	require.NoError(t, app.Projects.Create(context.Background(), p))

	out, err := executeCmd(t, app, "stage", "add", "GDK01",
		"--name", "Pondasi", "--weight", "30", "--status", "done", "--end", "2026-11-01")
	require.NoError(t, err)
	assert.Contains(t, out, `Added stage "Pondasi" to GDK01`)
	assert.Contains(t, out, "Progress 30.0%, 30.0% allocated")

	out, err = executeCmd(t, app, "stage", "list", "GDK01")
	require.NoError(t, err)
	assert.Contains(t, out, "Pondasi")
	assert.Contains(t, out, "70.0% of weight left to allocate")
}

func TestStageAdd_WeightExceeded(t *testing.T) {
	app := testApp(t)
	seedJalan(t, app)

	_, err := executeCmd(t, app, "stage", "add", "JLN01", "--name", "Extra", "--weight", "10")
	require.Error(t, err)
	assert.Equal(t, ledger.CodeWeightExceeded, ledger.ValidationCodeOf(err))
	assert.Len(t, reload(t, app, "JLN01").Stages, 2)
}

func TestStageStatus(t *testing.T) {
	app := testApp(t)
	seedJalan(t, app)

	out, err := executeCmd(t, app, "stage", "status", "JLN01", "2", "done")
	require.NoError(t, err)
	assert.Contains(t, out, "Stage 2 is now done")
	assert.Contains(t, out, "Progress 100.0%")

	p := reload(t, app, "JLN01")
	assert.InDelta(t, 100, p.Progress, 0.001)

	_, err = executeCmd(t, app, "stage", "status", "JLN01", "2", "--next")
	require.NoError(t, err)
	s, ok := reload(t, app, "JLN01").StageByNumber(2)
	require.True(t, ok)
	assert.Equal(t, domain.StagePending, s.Status)

	_, err = executeCmd(t, app, "stage", "status", "JLN01", "2")
	assert.EqualError(t, err, "give either a status or --next")

	_, err = executeCmd(t, app, "stage", "status", "JLN01", "7", "done")
	assert.ErrorContains(t, err, "has no stage #7")
}

func TestStageMoveAndRemove(t *testing.T) {
	app := testApp(t)
	seedJalan(t, app)

	out, err := executeCmd(t, app, "stage", "down", "JLN01", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Moved "Persiapan" down`)

	p := reload(t, app, "JLN01")
	first, ok := p.StageByNumber(1)
	require.True(t, ok)
	assert.Equal(t, "Pengaspalan", first.Name)

	out, err = executeCmd(t, app, "stage", "remove", "JLN01", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Removed stage "Pengaspalan"`)

	p = reload(t, app, "JLN01")
	require.Len(t, p.Stages, 1)
	assert.Equal(t, 1, p.Stages[0].Number)
	require.Len(t, p.BudgetLines, 1)
	assert.Empty(t, p.BudgetLines[0].StageID, "orphaned line is detached")
}

func TestStageInvoice_ThenTrackingCSV(t *testing.T) {
	app := testApp(t)
	seedJalan(t, app)

	out, err := executeCmd(t, app, "stage", "invoice", "JLN01", "2",
		"--date", "2026-10-01", "--amount", "750.000.000", "--payment", "overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded invoice for stage 2 of JLN01")

	s, ok := reload(t, app, "JLN01").StageByNumber(2)
	require.True(t, ok)
	require.NotNil(t, s.ExpectedInvoiceDate, "unchanged flags keep their values")

	out, err = executeCmd(t, app, "report", "tracking", "--year", "2026", "--format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, invoice.Header, records[0])
	assert.Equal(t, "Persiapan", records[1][4])
	assert.Equal(t, "LUNAS", records[1][6])
	assert.Equal(t, "Pengaspalan", records[2][4])
	assert.Equal(t, "2026-10-01", records[2][5])
	assert.Equal(t, "OVERDUE", records[2][6])
	assert.Equal(t, "750000000", records[2][7])

	out, err = executeCmd(t, app, "report", "tracking", "--status", "overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "Pengaspalan")
	assert.NotContains(t, out, "Persiapan")
}

func TestReportProjection_JSON(t *testing.T) {
	app := testApp(t)
	seedJalan(t, app)

	out, err := executeCmd(t, app, "report", "projection", "--format", "json")
	require.NoError(t, err)

	var dto contract.ReportDTO
	require.NoError(t, json.Unmarshal([]byte(out), &dto))
	assert.Equal(t, "projection", dto.Kind)
	assert.Equal(t, 2026, dto.Year)
	assert.Equal(t, int64(1_250_000_000), dto.Totals.Billed)
	require.Len(t, dto.Months, 12)
	assert.Equal(t, int64(500_000_000), dto.Months[2].Paid)
	assert.Equal(t, int64(750_000_000), dto.Months[10].Pending)
}

func TestReportRecap_Table(t *testing.T) {
	app := testApp(t)
	seedJalan(t, app)

	out, err := executeCmd(t, app, "report", "recap")
	require.NoError(t, err)
	assert.Contains(t, out, "RECAP 2026")
	assert.Contains(t, out, "Pengaspalan")
	assert.NotContains(t, out, "Persiapan")
}

func TestReport_FlagErrors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "report", "tracking", "--month", "13")
	assert.ErrorContains(t, err, "month must be between 1 and 12")

	_, err = executeCmd(t, app, "report", "tracking", "--format", "xml")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "report", "projection", "--month", "3")
	assert.Error(t, err, "projection has no month filter")
}

func TestReport_OutputFile(t *testing.T) {
	app := testApp(t)
	seedJalan(t, app)
	path := filepath.Join(t.TempDir(), "tracking.csv")

	out, err := executeCmd(t, app, "report", "tracking", "--format", "csv", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 rows to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "No,Proyek,Klien"))
}

type fakeSheets struct {
	rows []invoice.Row
}

func (f *fakeSheets) Export(_ context.Context, rows []invoice.Row) (string, error) {
	f.rows = rows
	return "'Invoice'!A1:H3", nil
}

func TestReport_Sheet(t *testing.T) {
	app := testApp(t)
	seedJalan(t, app)

	_, err := executeCmd(t, app, "report", "tracking", "--sheet")
	assert.ErrorContains(t, err, "sheets export is not configured")

	fake := &fakeSheets{}
	app.Sheets = func(context.Context) (SheetsExporter, error) { return fake, nil }

	out, err := executeCmd(t, app, "report", "tracking", "--sheet")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 rows to 'Invoice'!A1:H3")
	assert.Len(t, fake.rows, 2)
}

func TestBudget_AddUpdateRemove(t *testing.T) {
	app := testApp(t)
	p := seedJalan(t, app)

	out, err := executeCmd(t, app, "budget", "add", "JLN01",
		"--stage", "1", "--category", "Upah", "--description", "Tukang", "--planned", "20.000.000")
	require.NoError(t, err)
	assert.Contains(t, out, `Added budget line "Tukang" to JLN01`)

	var line domain.BudgetLine
	for _, l := range reload(t, app, "JLN01").BudgetLines {
		if l.Description == "Tukang" {
			line = l
		}
	}
	require.NotEmpty(t, line.ID)
	assert.Equal(t, p.Stages[0].ID, line.StageID)
	assert.Equal(t, domain.Money(20_000_000), line.Planned)

	out, err = executeCmd(t, app, "budget", "update", "JLN01", line.ID[:8], "--realized", "25000000")
	require.NoError(t, err)
	assert.Contains(t, out, `Updated budget line "Tukang"`)

	for _, l := range reload(t, app, "JLN01").BudgetLines {
		if l.ID == line.ID {
			assert.Equal(t, domain.Money(25_000_000), l.Realized)
			assert.Equal(t, domain.Money(20_000_000), l.Planned)
		}
	}

	out, err = executeCmd(t, app, "budget", "remove", "JLN01", line.ID)
	require.NoError(t, err)
	assert.Contains(t, out, `Removed budget line "Tukang"`)
	assert.Len(t, reload(t, app, "JLN01").BudgetLines, 1)

	_, err = executeCmd(t, app, "budget", "add", "JLN01", "--stage", "9", "--description", "X")
	assert.ErrorContains(t, err, "has no stage #9")

	_, err = executeCmd(t, app, "budget", "remove", "JLN01", "nope")
	assert.ErrorContains(t, err, "budget line not found")
}

func TestStatus(t *testing.T) {
	app := testApp(t)
	seedJalan(t, app)

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "JLN01")
	assert.Contains(t, out, "0 Overdue, 0 Critical, 0 Warning, 1 Safe")

	out, err = executeCmd(t, app, "status", "--json")
	require.NoError(t, err)
	var dto contract.StatusDTO
	require.NoError(t, json.Unmarshal([]byte(out), &dto))
	require.Len(t, dto.Projects, 1)
	assert.Equal(t, "JLN01", dto.Projects[0].Code)
	assert.Equal(t, string(domain.DeadlineSafe), dto.Projects[0].Deadline)
	require.NotNil(t, dto.Projects[0].DaysLeft)
	assert.Equal(t, 73, *dto.Projects[0].DaysLeft)

	_, err = executeCmd(t, app, "status", "NOPE01")
	assert.ErrorContains(t, err, "unknown project(s): NOPE01")
}

func TestStatus_Empty(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects found.")
}

func TestImport(t *testing.T) {
	app := testApp(t)
	const fixture = "../importer/testdata/store.json"

	out, err := executeCmd(t, app, "import", fixture, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid: 2 projects, 2 stages, 2 budget lines")
	assert.Contains(t, out, "warning:")

	stored, err := app.Projects.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, stored, "dry run stores nothing")

	out, err = executeCmd(t, app, "import", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 projects (2 stages, 2 budget lines)")

	out, err = executeCmd(t, app, "import", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 projects")
	assert.Contains(t, out, "Skipped 2 existing")

	_, err = executeCmd(t, app, "import", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestEdit_NeedsTerminal(t *testing.T) {
	app := testApp(t)
	seedJalan(t, app)

	_, err := executeCmd(t, app, "edit", "JLN01")
	assert.EqualError(t, err, "edit needs an interactive terminal")
}
