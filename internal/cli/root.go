package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/proyek/internal/invoice"
	"github.com/alexanderramin/proyek/internal/ledger"
	"github.com/alexanderramin/proyek/internal/service"
	"github.com/spf13/cobra"
)

// SheetsExporter writes report rows to a spreadsheet tab and returns the
// range it wrote.
type SheetsExporter interface {
	Export(ctx context.Context, rows []invoice.Row) (string, error)
}

type App struct {
	Projects  service.ProjectService
	Ledger    service.LedgerService
	Status    service.StatusService
	Reports   service.ReportService
	Import    service.ImportService
	Snapshots service.SnapshotService

	// Sheets builds the spreadsheet exporter on demand. Nil when no
	// spreadsheet is configured.
	Sheets func(ctx context.Context) (SheetsExporter, error)

	// Orphans must match the policy the ledger service was built with so the
	// editor previews what will be stored.
	Orphans ledger.OrphanPolicy

	Logger   *slog.Logger
	HTTPAddr string
	Clock    func() time.Time

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "proyek",
		Short:         "Construction project stage, budget and invoice ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newStageCmd(app),
		newBudgetCmd(app),
		newReportCmd(app),
		newStatusCmd(app),
		newImportCmd(app),
		newEditCmd(app),
		newServeCmd(app),
	)

	return root
}
